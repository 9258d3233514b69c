package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"notebox/config"
	"notebox/debug"
	"notebox/midi"
	"notebox/player"
	"notebox/sequence"
	"notebox/tui"
)

func main() {
	if os.Getenv("NOTEBOX_DEBUG") != "" {
		debug.Enable()
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Demo material: a slow bass line and a masked lead on top of it
	bass := sequence.NewFixed(
		midi.NewNote(midi.C, 2, 8, 100),
		midi.NewNote(midi.G, 2, 8, 90),
		midi.NewNote(midi.Ab, 2, 8, 90),
		midi.NewNote(midi.F, 2, 8, 90),
	)
	lead := sequence.NewFixed(
		midi.NewNote(midi.C, 4, 2, 80),
		midi.NewNote(midi.Eb, 4, 2, 80),
		midi.NewNote(midi.G, 4, 2, 80),
		midi.NewRest(2),
	).Repeat(2).SplitNotes(true, false, true)

	sources := []player.Source{
		bass,
		sequence.NewRandomVelocity(lead),
	}

	router := cfg.Router()

	for i, name := range midi.PortNames() {
		fmt.Printf("%d: %s\n", i, name)
	}

	ports, err := midi.OpenPorts(router.RequiredPorts())
	if err != nil {
		fmt.Printf("Error opening MIDI ports: %v\n", err)
		os.Exit(1)
	}
	defer ports.Close()

	runner := player.NewRunner(player.ConfigFromRouter(router), cfg.Meter(), sources, ports)

	m := tui.NewModel(runner, cfg.Tempo)
	p := tea.NewProgram(m)

	errCh := make(chan error, 1)
	go func() {
		err := runner.RunUntilInterrupt()
		errCh <- err
		p.Send(tui.DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	// Wait for the drain to finish so every sounding note gets its note-off.
	if err := <-errCh; err != nil {
		fmt.Printf("Playback error: %v\n", err)
		os.Exit(1)
	}
}
