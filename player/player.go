package player

import (
	"sort"
	"time"

	"notebox/debug"
	"notebox/midi"
)

// Player owns playback time and the set of currently sounding notes. It is
// not safe for concurrent use: a single goroutine drives polling, ticking,
// and reaping (see Runner).
type Player struct {
	// Ticks elapsed since playback started.
	tickID uint64
	// Last note identifier handed out. Identifiers are unique for the
	// lifetime of the Player and never reused.
	noteID uint64
	// Sounding notes, keyed by note identifier.
	playing map[uint64]PlayingNote
}

// PlayingNote records a note admitted to the sounding table: which source
// produced it and the tick it started on. Records are handed out by value.
type PlayingNote struct {
	Source    int
	StartTick uint64
	Note      midi.Note
}

// elapsedAt reports whether the note's duration has run out as of tick.
func (n PlayingNote) elapsedAt(tick uint64) bool {
	return n.StartTick+uint64(n.Note.Duration) == tick
}

// New creates a Player at tick 0 with nothing sounding.
func New() *Player {
	return &Player{
		playing: make(map[uint64]PlayingNote),
	}
}

// Tick sleeps for one tick of the meter, then advances and returns the tick
// counter. The meter is queried every tick, so tempo may change mid-run.
func (p *Player) Tick(m Meter) uint64 {
	time.Sleep(m.TickDuration())
	p.tickID++
	return p.tickID
}

// Time returns ticks elapsed since playback started.
func (p *Player) Time() uint64 {
	return p.tickID
}

// Sounding returns the number of notes currently in the sounding table.
func (p *Player) Sounding() int {
	return len(p.playing)
}

// shouldPoll reports whether a source has no sounding notes. A source may
// not send more notes until everything it already sent finishes playing.
func (p *Player) shouldPoll(source int) bool {
	for _, n := range p.playing {
		if n.Source == source {
			return false
		}
	}
	return true
}

// PollSources asks each eligible source for its next batch and admits the
// returned notes to the sounding table. Zero-duration notes are dropped but
// still consume a note identifier. A source with nothing to give is skipped
// and retried next tick; it never blocks the others.
//
// Returns the records admitted this tick, in admission order, for note-on
// routing.
func (p *Player) PollSources(sources []Source) []PlayingNote {
	for id, source := range sources {
		if !p.shouldPoll(id) {
			continue
		}
		notes, ok := source.Next()
		if !ok {
			debug.Log("player", "no input from source %d", id)
			continue
		}
		for _, note := range notes {
			p.noteID++
			if note.Duration == 0 {
				continue
			}
			p.playing[p.noteID] = PlayingNote{
				Source:    id,
				StartTick: p.tickID,
				Note:      note,
			}
		}
	}

	var started []PlayingNote
	for _, id := range p.sortedIDs() {
		if n := p.playing[id]; n.StartTick == p.tickID {
			started = append(started, n)
		}
	}
	return started
}

// ClearElapsed removes and returns every note whose duration has run out as
// of the current tick, in admission order. Simultaneous note-offs across
// sources therefore route deterministically.
func (p *Player) ClearElapsed() []PlayingNote {
	tick := p.tickID
	return p.clearNotes(func(n PlayingNote) bool {
		return n.elapsedAt(tick)
	})
}

// ClearAll drains the sounding table unconditionally, in admission order.
// Used when playback stops with notes still sounding, so that every note-on
// gets its note-off.
func (p *Player) ClearAll() []PlayingNote {
	return p.clearNotes(func(PlayingNote) bool { return true })
}

// clearNotes snapshots matching identifiers before deleting, so the table
// is never mutated mid-scan.
func (p *Player) clearNotes(shouldClear func(PlayingNote) bool) []PlayingNote {
	var ids []uint64
	for id, n := range p.playing {
		if shouldClear(n) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cleared := make([]PlayingNote, 0, len(ids))
	for _, id := range ids {
		cleared = append(cleared, p.playing[id])
		delete(p.playing, id)
	}
	return cleared
}

func (p *Player) sortedIDs() []uint64 {
	ids := make([]uint64, 0, len(p.playing))
	for id := range p.playing {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
