package session

// State is the lifecycle position of the current (or last) run.
type State int

const (
	Idle State = iota
	Validating
	Scanning
	Encoding
	Succeeded
	Failed
)

var stateNames = [...]string{
	Idle:       "idle",
	Validating: "validating",
	Scanning:   "scanning",
	Encoding:   "encoding",
	Succeeded:  "succeeded",
	Failed:     "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Running reports whether a new run must be refused in this state.
func (s State) Running() bool {
	return s == Validating || s == Scanning || s == Encoding
}

// EventKind distinguishes progress updates from the two terminal outcomes.
type EventKind int

const (
	EventProgress EventKind = iota
	EventSucceeded
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventSucceeded:
		return "succeeded"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event is one message from a background run. Progress events carry
// Percent; Succeeded carries OutputPath; Failed carries Err. Exactly one
// terminal event ends every run, after which the channel is closed.
type Event struct {
	Kind       EventKind
	RunID      string
	Percent    int
	OutputPath string
	Err        error
}

// Terminal reports whether e ends the run.
func (e Event) Terminal() bool { return e.Kind != EventProgress }

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	State   State
	RunID   string
	Frames  int // Images in the run.
	Percent int
	Output  string
	Err     error
}
