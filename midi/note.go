package midi

// Tone is a pitch class, or Rest for silence.
type Tone int

const (
	Rest Tone = iota
	C
	Db
	D
	Eb
	E
	F
	Gb
	G
	Ab
	A
	Bb
	B
)

var toneNames = [...]string{"Rest", "C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

func (t Tone) String() string {
	if t < Rest || t > B {
		return "?"
	}
	return toneNames[t]
}

// Note is a single musical event: a pitch (or rest), how many ticks it
// sounds for, and how hard it is struck. Notes are plain values; transforms
// return modified copies.
type Note struct {
	Tone     Tone
	Octave   int
	Duration uint32 // in ticks
	Velocity uint8
}

// NewNote builds a pitched note. Octave follows the MIDI convention where
// C4 is middle C (key 60).
func NewNote(tone Tone, octave int, duration uint32, velocity uint8) Note {
	return Note{Tone: tone, Octave: octave, Duration: duration, Velocity: velocity}
}

// NewRest builds a silent note that still occupies duration ticks.
func NewRest(duration uint32) Note {
	return Note{Tone: Rest, Octave: 4, Duration: duration}
}

// IsRest reports whether the note is silent.
func (n Note) IsRest() bool {
	return n.Tone == Rest
}

// Key returns the MIDI key number for the note's pitch. ok is false for
// rests and for pitches outside the 0-127 MIDI range; callers must not
// send anything for those.
func (n Note) Key() (uint8, bool) {
	if n.Tone == Rest {
		return 0, false
	}
	key := 12*(n.Octave+1) + int(n.Tone-C)
	if key < 0 || key > 127 {
		return 0, false
	}
	return uint8(key), true
}

// WithPitch returns a copy with the given tone and octave.
func (n Note) WithPitch(tone Tone, octave int) Note {
	n.Tone = tone
	n.Octave = octave
	return n
}

// WithDuration returns a copy lasting d ticks.
func (n Note) WithDuration(d uint32) Note {
	n.Duration = d
	return n
}

// WithVelocity returns a copy struck with velocity v.
func (n Note) WithVelocity(v uint8) Note {
	n.Velocity = v
	return n
}

// Transpose returns a copy shifted by the given number of semitones.
// Rests are unchanged.
func (n Note) Transpose(semitones int) Note {
	if n.Tone == Rest {
		return n
	}
	key := 12*(n.Octave+1) + int(n.Tone-C) + semitones
	n.Octave = key/12 - 1
	n.Tone = C + Tone(key%12)
	if key%12 < 0 {
		// Go's remainder is negative here; normalize to a valid tone
		n.Tone += 12
		n.Octave--
	}
	return n
}
