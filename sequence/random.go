package sequence

import (
	"math/rand"

	"notebox/midi"
	"notebox/player"
)

// RandomVelocity wraps a source and scales each polled batch's velocity by
// a fresh random factor in [0, 0.99), humanizing fixed-velocity sequences.
type RandomVelocity struct {
	source player.Source
}

// NewRandomVelocity wraps the given source.
func NewRandomVelocity(source player.Source) *RandomVelocity {
	return &RandomVelocity{source: source}
}

func (r *RandomVelocity) Next() ([]midi.Note, bool) {
	factor := float64(rand.Intn(99)) / 100
	notes, ok := r.source.Next()
	if !ok {
		return nil, false
	}
	scaled := make([]midi.Note, len(notes))
	for i, n := range notes {
		scaled[i] = n.WithVelocity(uint8(float64(n.Velocity) * factor))
	}
	return scaled, true
}
