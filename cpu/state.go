package cpu

// State of the execution engine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_POWERED_OFF = State(0) // powered-off
	STATE_RUNNING     = State(1) // running
	STATE_HALTED      = State(2) // halted
	STATE_STOPPED     = State(3) // stopped
)
