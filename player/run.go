package player

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	"notebox/debug"
	"notebox/midi"
)

// Flag tells the run loop whether to keep playing. It is written from an
// asynchronous context (signal handler, UI) and read once per tick at the
// top of the loop, so worst-case stop latency is one tick.
type Flag struct {
	stopped atomic.Bool
}

// Stop asks the run loop to finish. The tick in progress completes
// normally, then the loop drains all sounding notes and returns.
func (f *Flag) Stop() {
	f.stopped.Store(true)
}

// ShouldContinue reports whether the run loop should start another tick.
func (f *Flag) ShouldContinue() bool {
	return !f.stopped.Load()
}

// Output delivers raw 3-byte MIDI events to a destination port. midi.Ports
// implements it over real output ports; tests substitute a recorder.
type Output interface {
	Send(port int, msg midi.Message) error
}

// Status is a snapshot of playback state, published after every tick.
type Status struct {
	Tick     uint64
	Sounding int
}

// Runner drives the playback loop: poll sources, route note-ons, tick, reap
// elapsed notes, route note-offs; once stopped, drain whatever is still
// sounding. All scheduling state lives on the goroutine that calls Run; the
// stop flag and status channel are the only things shared across
// goroutines.
type Runner struct {
	cfg     Config
	meter   Meter
	sources []Source
	out     Output
	flag    *Flag

	// StatusChan receives a snapshot after each tick. Sends are
	// non-blocking: a slow reader misses snapshots, never stalls playback.
	StatusChan chan Status
}

// NewRunner creates a Runner ready to play the given sources through out.
func NewRunner(cfg Config, meter Meter, sources []Source, out Output) *Runner {
	return &Runner{
		cfg:        cfg,
		meter:      meter,
		sources:    sources,
		out:        out,
		flag:       &Flag{},
		StatusChan: make(chan Status, 1),
	}
}

// Stop flips the runner's stop flag. Safe to call from any goroutine.
func (r *Runner) Stop() {
	r.flag.Stop()
}

// Run plays until the stop flag flips, then drains all sounding notes and
// returns. A sink failure aborts immediately with the error; remaining
// notes are not drained because the output is unusable anyway.
func (r *Runner) Run() error {
	debug.Log("player", "starting with %d sources", len(r.sources))
	p := New()

	for r.flag.ShouldContinue() {
		for _, n := range p.PollSources(r.sources) {
			if err := r.routeNote(n, midi.NoteOn); err != nil {
				return err
			}
		}
		p.Tick(r.meter)
		for _, n := range p.ClearElapsed() {
			if err := r.routeNote(n, midi.NoteOff); err != nil {
				return err
			}
		}
		r.publish(Status{Tick: p.Time(), Sounding: p.Sounding()})
		debug.LogEvery(64, "player", "tick %d, %d sounding", p.Time(), p.Sounding())
	}

	for _, n := range p.ClearAll() {
		if err := r.routeNote(n, midi.NoteOff); err != nil {
			return err
		}
	}
	debug.Log("player", "exiting at tick %d", p.Time())
	return nil
}

// RunUntilInterrupt wires the stop flag to SIGINT, then runs.
func (r *Runner) RunUntilInterrupt() error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		<-sig
		r.flag.Stop()
	}()
	return r.Run()
}

// routeNote turns a playing-note record into a wire event and sends it to
// the record's routed port. Rests are silent for both note-on and note-off.
// A source with no route logs and drops the event; a failed send is fatal
// to the run.
func (r *Runner) routeNote(n PlayingNote, status uint8) error {
	key, ok := n.Note.Key()
	if !ok {
		return nil // resting
	}
	port, ok := r.cfg.Route(n.Source)
	if !ok {
		debug.Log("player", "no port configured for source %d", n.Source)
		return nil
	}
	if err := r.out.Send(port, midi.Message{status, key, n.Note.Velocity}); err != nil {
		return fmt.Errorf("route note %d to port %d: %w", key, port, err)
	}
	return nil
}

func (r *Runner) publish(s Status) {
	select {
	case r.StatusChan <- s:
	default:
	}
}

// Run opens the MIDI output ports the config requires and plays the given
// sources until interrupted. Embedders wanting their own output or stop
// control build a Runner directly.
func Run(cfg Config, meter Meter, sources []Source) error {
	ports, err := midi.OpenPorts(cfg.RequiredPorts())
	if err != nil {
		return err
	}
	defer ports.Close()
	return NewRunner(cfg, meter, sources, ports).RunUntilInterrupt()
}
