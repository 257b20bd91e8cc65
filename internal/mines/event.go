package mines

import "fmt"

type EventKind int8

const (
	TimerStarted EventKind = iota + 1
	TimerStopped
	GameOver
	Victory
	Ticked
)

func (k EventKind) String() string {
	switch k {
	case TimerStarted:
		return "timer_started"
	case TimerStopped:
		return "timer_stopped"
	case GameOver:
		return "game_over"
	case Victory:
		return "victory"
	case Ticked:
		return "tick"
	default:
		return "unknown"
	}
}

// [EventKind] implements [encoding.TextMarshaler]
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for kind := TimerStarted; kind <= Ticked; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event is what a [Session] tells its listeners about state transitions and
// the clock.
type Event struct {
	Kind    EventKind `json:"kind"`
	Elapsed int       `json:"elapsed"`
}

type listener struct {
	id int
	fn func(Event)
}
