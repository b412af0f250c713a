// Package mocks provides hand-written test doubles for the store, generator
// and token interfaces.
//
// Each mock exposes function fields for per-test overrides. Store mocks fall
// back to an in-memory map when no override is set, so service tests can run
// a full create/read/update cycle without a database:
//
//	sets := mocks.NewMockCardSetStore()
//	sets.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
//	    return nil, store.ErrCardSetNotFound
//	}
package mocks
