package player

import (
	"testing"
	"time"

	"notebox/midi"
)

// scriptedSource returns canned batches in order, then empty batches
// forever.
type scriptedSource struct {
	batches [][]midi.Note
	polls   int
}

func (s *scriptedSource) Next() ([]midi.Note, bool) {
	s.polls++
	if len(s.batches) == 0 {
		return []midi.Note{}, true
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, true
}

// silentSource never has anything to give.
type silentSource struct {
	polls int
}

func (s *silentSource) Next() ([]midi.Note, bool) {
	s.polls++
	return nil, false
}

type instantMeter struct{}

func (instantMeter) TickDuration() time.Duration { return 0 }

func TestPollAdmitsBatchAtCurrentTick(t *testing.T) {
	p := New()
	src := &scriptedSource{batches: [][]midi.Note{{
		midi.NewNote(midi.C, 4, 2, 100),
		midi.NewNote(midi.E, 4, 3, 90),
	}}}

	started := p.PollSources([]Source{src})
	if len(started) != 2 {
		t.Fatalf("expected 2 started records, got %d", len(started))
	}
	for i, n := range started {
		if n.StartTick != 0 {
			t.Errorf("record %d: start tick = %d, want 0", i, n.StartTick)
		}
		if n.Source != 0 {
			t.Errorf("record %d: source = %d, want 0", i, n.Source)
		}
	}
	if p.Sounding() != 2 {
		t.Errorf("sounding = %d, want 2", p.Sounding())
	}
}

func TestSingleFlightPerSource(t *testing.T) {
	p := New()
	src := &scriptedSource{batches: [][]midi.Note{{
		midi.NewNote(midi.C, 4, 3, 100),
	}}}
	sources := []Source{src}

	p.PollSources(sources)
	if src.polls != 1 {
		t.Fatalf("polls = %d, want 1", src.polls)
	}

	// The note sounds for 3 ticks; the source must not be polled again
	// until it elapses.
	for tick := 1; tick <= 2; tick++ {
		p.Tick(instantMeter{})
		p.ClearElapsed()
		p.PollSources(sources)
		if src.polls != 1 {
			t.Fatalf("tick %d: polls = %d, want 1", tick, src.polls)
		}
	}

	p.Tick(instantMeter{})
	cleared := p.ClearElapsed()
	if len(cleared) != 1 {
		t.Fatalf("expected note to elapse at tick 3, cleared %d", len(cleared))
	}
	p.PollSources(sources)
	if src.polls != 2 {
		t.Errorf("polls after elapse = %d, want 2", src.polls)
	}
}

func TestZeroDurationNoteDiscarded(t *testing.T) {
	p := New()
	src := &scriptedSource{batches: [][]midi.Note{{
		midi.NewNote(midi.C, 4, 0, 100),
	}}}
	sources := []Source{src}

	started := p.PollSources(sources)
	if len(started) != 0 {
		t.Errorf("zero-duration note started: %v", started)
	}
	if p.Sounding() != 0 {
		t.Errorf("sounding = %d, want 0", p.Sounding())
	}
	// The identifier is still consumed.
	if p.noteID != 1 {
		t.Errorf("noteID = %d, want 1", p.noteID)
	}

	// Nothing blocks the source; it is polled again next tick.
	p.Tick(instantMeter{})
	p.PollSources(sources)
	if src.polls != 2 {
		t.Errorf("polls = %d, want 2", src.polls)
	}
}

func TestClearElapsedReturnsAdmissionOrder(t *testing.T) {
	p := New()
	a := &scriptedSource{batches: [][]midi.Note{{
		midi.NewNote(midi.C, 4, 1, 100),
		midi.NewNote(midi.E, 4, 1, 100),
	}}}
	b := &scriptedSource{batches: [][]midi.Note{{
		midi.NewNote(midi.G, 4, 1, 100),
	}}}

	p.PollSources([]Source{a, b})
	p.Tick(instantMeter{})

	cleared := p.ClearElapsed()
	if len(cleared) != 3 {
		t.Fatalf("cleared %d records, want 3", len(cleared))
	}
	wantSources := []int{0, 0, 1}
	for i, n := range cleared {
		if n.Source != wantSources[i] {
			t.Errorf("cleared[%d].Source = %d, want %d", i, n.Source, wantSources[i])
		}
	}
	if p.Sounding() != 0 {
		t.Errorf("sounding = %d, want 0", p.Sounding())
	}
}

func TestClearElapsedLeavesUnfinishedNotes(t *testing.T) {
	p := New()
	src := &scriptedSource{batches: [][]midi.Note{{
		midi.NewNote(midi.C, 4, 1, 100),
		midi.NewNote(midi.E, 4, 5, 100),
	}}}

	p.PollSources([]Source{src})
	p.Tick(instantMeter{})

	cleared := p.ClearElapsed()
	if len(cleared) != 1 {
		t.Fatalf("cleared %d records, want 1", len(cleared))
	}
	if cleared[0].Note.Duration != 1 {
		t.Errorf("cleared the wrong note: %+v", cleared[0].Note)
	}
	if p.Sounding() != 1 {
		t.Errorf("sounding = %d, want 1", p.Sounding())
	}
}

func TestClearAllDrainsEverything(t *testing.T) {
	p := New()
	a := &scriptedSource{batches: [][]midi.Note{{midi.NewNote(midi.C, 4, 100, 100)}}}
	b := &scriptedSource{batches: [][]midi.Note{{midi.NewNote(midi.G, 4, 7, 100)}}}

	p.PollSources([]Source{a, b})
	drained := p.ClearAll()
	if len(drained) != 2 {
		t.Fatalf("drained %d records, want 2", len(drained))
	}
	if drained[0].Source != 0 || drained[1].Source != 1 {
		t.Errorf("drain order = %d,%d, want 0,1", drained[0].Source, drained[1].Source)
	}
	if p.Sounding() != 0 {
		t.Errorf("sounding = %d, want 0", p.Sounding())
	}
}

func TestNoteIdentifiersNeverReused(t *testing.T) {
	p := New()
	src := &scriptedSource{batches: [][]midi.Note{
		{midi.NewNote(midi.C, 4, 1, 100)},
		{midi.NewNote(midi.D, 4, 1, 100)},
	}}
	sources := []Source{src}

	p.PollSources(sources)
	first := p.noteID
	p.Tick(instantMeter{})
	p.ClearElapsed()
	p.PollSources(sources)

	if p.noteID <= first {
		t.Errorf("noteID = %d, want > %d", p.noteID, first)
	}
}

func TestExhaustedSourceRetriedEveryTick(t *testing.T) {
	p := New()
	src := &silentSource{}
	sources := []Source{src}

	for i := 0; i < 3; i++ {
		p.PollSources(sources)
		p.Tick(instantMeter{})
	}
	if src.polls != 3 {
		t.Errorf("polls = %d, want 3", src.polls)
	}
	if p.Sounding() != 0 {
		t.Errorf("sounding = %d, want 0", p.Sounding())
	}
}

func TestExhaustedSourceDoesNotBlockOthers(t *testing.T) {
	p := New()
	dead := &silentSource{}
	live := &scriptedSource{batches: [][]midi.Note{{midi.NewNote(midi.C, 4, 2, 100)}}}

	started := p.PollSources([]Source{dead, live})
	if len(started) != 1 {
		t.Fatalf("started %d records, want 1", len(started))
	}
	if started[0].Source != 1 {
		t.Errorf("started source = %d, want 1", started[0].Source)
	}
}

func TestTickAdvancesByOne(t *testing.T) {
	p := New()
	for want := uint64(1); want <= 3; want++ {
		if got := p.Tick(instantMeter{}); got != want {
			t.Fatalf("tick = %d, want %d", got, want)
		}
		if p.Time() != want {
			t.Fatalf("time = %d, want %d", p.Time(), want)
		}
	}
}
