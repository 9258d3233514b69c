package player

import "time"

// Meter reports how long one scheduler tick lasts in wall-clock time. It is
// queried once per tick, so a dynamic implementation can change tempo
// mid-run.
type Meter interface {
	TickDuration() time.Duration
}

// Bpm is a fixed-tempo meter: beats per minute, each beat divided into
// Division equal ticks.
type Bpm struct {
	Bpm      int
	Division int // ticks per beat
}

// NewBpm returns a meter ticking once per beat at the given tempo.
func NewBpm(bpm int) Bpm {
	return Bpm{Bpm: bpm, Division: 1}
}

func (b Bpm) TickDuration() time.Duration {
	if b.Bpm <= 0 {
		return 0
	}
	division := b.Division
	if division <= 0 {
		division = 1
	}
	return time.Duration(float64(time.Minute) / float64(b.Bpm) / float64(division))
}
