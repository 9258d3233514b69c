package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// Ports holds open connections to MIDI output ports, keyed by port index.
// Only the ports playback actually routes to are opened; sending to any
// other index is an error.
type Ports struct {
	senders map[int]func(gomidi.Message) error
}

// PortNames returns the names of all MIDI output ports on the system,
// indexed by port id.
func PortNames() []string {
	outs := gomidi.GetOutPorts()
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names
}

// OpenPorts opens the given output ports and returns a Ports ready for
// sending. It fails if any required port does not exist or cannot be
// opened, before anything is played.
func OpenPorts(required map[int]bool) (*Ports, error) {
	outs := gomidi.GetOutPorts()
	senders := make(map[int]func(gomidi.Message) error, len(required))

	for id, want := range required {
		if !want {
			continue
		}
		if id < 0 || id >= len(outs) {
			return nil, fmt.Errorf("midi: no output port %d (found %d ports)", id, len(outs))
		}
		send, err := gomidi.SendTo(outs[id])
		if err != nil {
			return nil, fmt.Errorf("midi: open port %d (%s): %w", id, outs[id].String(), err)
		}
		senders[id] = send
	}

	return &Ports{senders: senders}, nil
}

// Send delivers a raw 3-byte message to an open port.
func (p *Ports) Send(port int, msg Message) error {
	send, ok := p.senders[port]
	if !ok {
		return fmt.Errorf("midi: port %d is not open", port)
	}
	if err := send(gomidi.Message(msg[:])); err != nil {
		return fmt.Errorf("midi: send to port %d: %w", port, err)
	}
	return nil
}

// Close releases the MIDI driver. The Ports is unusable afterwards.
func (p *Ports) Close() {
	gomidi.CloseDriver()
}
