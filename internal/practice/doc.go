// Package practice runs flashcard practice sessions over a card set: the
// cards are shuffled, shown one at a time with the answer hidden until
// revealed, and can be stepped through forwards and backwards or restarted
// with a fresh shuffle.
//
// Sessions are held in memory by a Manager, belong to the user who started
// them, and expire after a period of inactivity.
package practice
