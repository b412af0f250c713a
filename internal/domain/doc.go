// Package domain contains the core entities of flashdeck: users, card sets
// with their cards, and per-user settings. Entities validate themselves;
// persistence and transport live elsewhere.
package domain
