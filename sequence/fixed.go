package sequence

import "notebox/midi"

// Fixed is a looping sequence of statically defined notes, played one note
// per poll. Transforms return modified copies, so variations of one
// sequence can feed different players without sharing state.
type Fixed struct {
	notes []midi.Note
	head  int // playhead index into notes
}

// NewFixed creates a sequence from the given notes.
func NewFixed(notes ...midi.Note) *Fixed {
	return &Fixed{notes: notes}
}

// Next returns the note under the playhead and advances, wrapping at the
// end. An empty sequence has nothing to give.
func (s *Fixed) Next() ([]midi.Note, bool) {
	if len(s.notes) == 0 {
		return nil, false
	}
	note := s.notes[s.head]
	s.head = (s.head + 1) % len(s.notes)
	return []midi.Note{note}, true
}

// Len returns the number of notes in the sequence.
func (s *Fixed) Len() int {
	return len(s.notes)
}

// LenTicks returns the total duration of the sequence in ticks.
func (s *Fixed) LenTicks() uint32 {
	var total uint32
	for _, n := range s.notes {
		total += n.Duration
	}
	return total
}

// FastForward returns a copy with the playhead advanced by n notes,
// wrapping at the end.
func (s *Fixed) FastForward(n int) *Fixed {
	c := s.clone()
	if len(c.notes) > 0 {
		c.head = (c.head + n) % len(c.notes)
	}
	return c
}

// Duration returns a copy with every note lasting d ticks.
func (s *Fixed) Duration(d uint32) *Fixed {
	return s.mapNotes(func(n midi.Note) midi.Note { return n.WithDuration(d) })
}

// Velocity returns a copy with every note struck at velocity v.
func (s *Fixed) Velocity(v uint8) *Fixed {
	return s.mapNotes(func(n midi.Note) midi.Note { return n.WithVelocity(v) })
}

// ScaleDuration returns a copy with every note's duration multiplied by
// factor.
func (s *Fixed) ScaleDuration(factor uint32) *Fixed {
	return s.mapNotes(func(n midi.Note) midi.Note { return n.WithDuration(n.Duration * factor) })
}

// Extend returns a copy with the other sequence's notes appended.
func (s *Fixed) Extend(other *Fixed) *Fixed {
	c := s.clone()
	c.notes = append(c.notes, other.notes...)
	return c
}

// Repeat returns a copy with the whole sequence repeated the given number
// of times.
func (s *Fixed) Repeat(times int) *Fixed {
	c := s.clone()
	repeated := make([]midi.Note, 0, len(c.notes)*times)
	for i := 0; i < times; i++ {
		repeated = append(repeated, c.notes...)
	}
	c.notes = repeated
	return c
}

// Reverse returns a copy with the notes in reverse order.
func (s *Fixed) Reverse() *Fixed {
	c := s.clone()
	for i, j := 0, len(c.notes)-1; i < j; i, j = i+1, j-1 {
		c.notes[i], c.notes[j] = c.notes[j], c.notes[i]
	}
	return c
}

// TransposeUp returns a copy with every pitched note raised by the given
// number of semitones.
func (s *Fixed) TransposeUp(semitones int) *Fixed {
	return s.mapNotes(func(n midi.Note) midi.Note { return n.Transpose(semitones) })
}

// TransposeDown returns a copy with every pitched note lowered by the given
// number of semitones.
func (s *Fixed) TransposeDown(semitones int) *Fixed {
	return s.TransposeUp(-semitones)
}

// SplitToTicks returns a copy where each note becomes a run of one-tick
// notes adding up to the note's duration.
func (s *Fixed) SplitToTicks() *Fixed {
	c := s.clone()
	var split []midi.Note
	for _, n := range c.notes {
		for i := uint32(0); i < n.Duration; i++ {
			split = append(split, n.WithDuration(1))
		}
	}
	c.notes = split
	return c
}

// Mask returns a copy with notes muted wherever the mask bit is false. The
// mask starts at the first note and cycles to cover the whole sequence.
// Muted notes become rests of the same duration, so the rhythm is kept.
func (s *Fixed) Mask(mask ...bool) *Fixed {
	c := s.clone()
	if len(mask) == 0 {
		return c
	}
	for i := range c.notes {
		if !mask[i%len(mask)] {
			c.notes[i] = c.notes[i].WithPitch(midi.Rest, 4)
		}
	}
	return c
}

// SplitNotes splits the sequence into one-tick notes and applies the mask,
// turning held notes into rhythmic patterns.
func (s *Fixed) SplitNotes(mask ...bool) *Fixed {
	return s.SplitToTicks().Mask(mask...)
}

func (s *Fixed) mapNotes(f func(midi.Note) midi.Note) *Fixed {
	c := s.clone()
	for i, n := range c.notes {
		c.notes[i] = f(n)
	}
	return c
}

func (s *Fixed) clone() *Fixed {
	notes := make([]midi.Note, len(s.notes))
	copy(notes, s.notes)
	return &Fixed{notes: notes, head: s.head}
}
