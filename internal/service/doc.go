// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
// 1. Service Interfaces:
//   - Define application-specific operations available to the delivery mechanisms
//   - Each service focuses on a specific area (users, card sets, settings, generation)
//
// 2. Use Case Implementations:
//   - Coordinate between repositories, the credential sealer and the card generator
//   - Apply transactional boundaries when an operation reads and then writes
//   - Enforce ownership: a user only ever sees their own card sets
//
// 3. Error Handling:
//   - Translate store errors to service sentinels (ErrNotOwned, ErrAPIKeyMissing)
//   - Pass generation errors through unchanged so the API layer can classify them
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
