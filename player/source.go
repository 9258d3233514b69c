package player

import "notebox/midi"

// Source produces batches of notes for one channel of playback.
//
// The player polls a source only when none of its previously returned notes
// are still sounding, so a source cannot run ahead of its own output. Next
// returns the next batch (possibly empty) and true, or nil and false when
// the source has nothing to give this poll. A false return is not terminal:
// the player tries again next tick.
type Source interface {
	Next() ([]midi.Note, bool)
}
