package entity

import (
	"math/rand"
	"sort"
)

// Selection is a random pick that is made once and then remembered.
// Repeated renders and resizes see the same indices until Reset.
type Selection struct {
	picked []int
	set    map[int]bool
	done   bool
}

// Choose picks n distinct indices out of [0, m) on the first call and
// returns the memo on every later call.
func (s *Selection) Choose(rng *rand.Rand, n, m int) []int {
	if s.done {
		return s.picked
	}
	if n > m {
		n = m
	}
	if n < 0 {
		n = 0
	}
	perm := rng.Perm(m)
	s.picked = append([]int(nil), perm[:n]...)
	s.set = make(map[int]bool, n)
	for _, i := range s.picked {
		s.set[i] = true
	}
	s.done = true
	return s.picked
}

// Chosen reports whether the pick was made
func (s *Selection) Chosen() bool { return s.done }

// Has reports whether index i was picked
func (s *Selection) Has(i int) bool { return s.set[i] }

// Indices returns the picked indices in pick order
func (s *Selection) Indices() []int { return s.picked }

func (s *Selection) Len() int { return len(s.picked) }

// Sorted returns a sorted copy of the picked indices
func (s *Selection) Sorted() []int {
	out := append([]int(nil), s.picked...)
	sort.Ints(out)
	return out
}

// Reset forgets the pick
func (s *Selection) Reset() {
	s.picked = nil
	s.set = nil
	s.done = false
}
