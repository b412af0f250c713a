// Package store defines the persistence interfaces for users, card sets and
// user settings, the errors implementations return, and a transaction helper.
package store
