// Package randutil centralizes deterministic RNG seeding so every table,
// shuffle, and simulation derived from the same table seed is reproducible.
package randutil

import "math/rand"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Tables seed
// their deck RNG from a per-table seed this way so a recorded hand history
// can, given the same seed, be replayed deterministically.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix(uint64(seed) + goldenRatio64))))
}

// mix is a splitmix64 step, used to avoid low-bit correlation between
// nearby seeds, such as timestamps taken moments apart.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
