package midi

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Message is the raw 3-byte MIDI voice message sent to an output port:
// status byte, key number, velocity.
type Message [3]byte
