package rng

import (
	"math/rand"
	"sync"
)

// Seeded is a deterministic generator. The same seed always yields the same sequence.
type Seeded struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeeded returns a Seeded generator
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rnd: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rnd.Intn(n)
}

// Fixed always returns the same value (modulo n)
// Fixed(0) always picks the first bucket, which the revolver treats as a live round.
type Fixed int

// Intn returns int(f) mod n
func (f Fixed) Intn(n int) int {
	v := int(f) % n
	if v < 0 {
		v += n
	}

	return v
}

// Sequence replays the values in order and then repeats the last one
type Sequence struct {
	Values []int
	next   int
}

// Intn returns the next value in the sequence, mod n
func (s *Sequence) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}

	i := s.next
	if i >= len(s.Values) {
		i = len(s.Values) - 1
	} else {
		s.next++
	}

	return Fixed(s.Values[i]).Intn(n)
}
