package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"notebox/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "send":
		sendNote()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list         - List all MIDI output ports")
	fmt.Println("  send [port]  - Send middle C to a port (default 0)")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	for i, name := range midi.PortNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func sendNote() {
	port := 0
	if len(os.Args) > 2 {
		p, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Printf("Bad port %q\n", os.Args[2])
			return
		}
		port = p
	}

	ports, err := midi.OpenPorts(map[int]bool{port: true})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer ports.Close()

	note := midi.NewNote(midi.C, 4, 1, 100)
	key, _ := note.Key()

	fmt.Printf("Sending middle C (key %d) to port %d...\n", key, port)
	if err := ports.Send(port, midi.Message{midi.NoteOn, key, note.Velocity}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(500 * time.Millisecond)
	if err := ports.Send(port, midi.Message{midi.NoteOff, key, note.Velocity}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Done!")
}
