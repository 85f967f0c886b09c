// Package rng provides the random sources used by the game engine and the deck.
// Every consumer takes a Generator so outcomes can be made reproducible in tests.
package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}
