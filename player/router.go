package player

// Router maps a source index to the MIDI output port its events are sent
// to. RequiredPorts is consulted once at startup so only the ports playback
// actually needs are opened.
type Router interface {
	Route(source int) (port int, ok bool)
	RequiredPorts() map[int]bool
}

// StaticRouter sends every source to a single port.
type StaticRouter struct {
	Port int
}

func (r StaticRouter) Route(source int) (int, bool) {
	return r.Port, true
}

func (r StaticRouter) RequiredPorts() map[int]bool {
	return map[int]bool{r.Port: true}
}

// TableRouter maps each source index to its own port. A source without an
// entry has no destination; its events are dropped and logged.
type TableRouter struct {
	Ports map[int]int // source index -> port index
}

func (r TableRouter) Route(source int) (int, bool) {
	port, ok := r.Ports[source]
	return port, ok
}

func (r TableRouter) RequiredPorts() map[int]bool {
	required := make(map[int]bool, len(r.Ports))
	for _, port := range r.Ports {
		required[port] = true
	}
	return required
}

// Config describes where each source's notes go during playback.
type Config struct {
	router Router
}

// EmptyConfig routes everything to port 0.
func EmptyConfig() Config {
	return Config{router: StaticRouter{Port: 0}}
}

// ConfigForPort routes every source to the given port.
func ConfigForPort(port int) Config {
	return Config{router: StaticRouter{Port: port}}
}

// ConfigFromRouter wraps an arbitrary router.
func ConfigFromRouter(r Router) Config {
	return Config{router: r}
}

func (c Config) Route(source int) (int, bool) {
	if c.router == nil {
		return 0, true
	}
	return c.router.Route(source)
}

func (c Config) RequiredPorts() map[int]bool {
	if c.router == nil {
		return map[int]bool{0: true}
	}
	return c.router.RequiredPorts()
}
