package main

import (
	"math/rand"
	"time"
)

// randSource returns a fresh, independently-seeded RNG for commands
// that need one-shot randomness (random strategy fill). Each call gets
// its own source since these commands run once and exit.
func randSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
