package ytplayer

import "strconv"

// State is the numeric playback state code reported by the widget.
type State int

const (
	StateUnstarted State = -1
	StateEnded     State = 0
	StatePlaying   State = 1
	StatePaused    State = 2
	StateBuffering State = 3
	StateCued      State = 5
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateEnded:
		return "ended"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateBuffering:
		return "buffering"
	case StateCued:
		return "cued"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// Status is the display-oriented reading of a state code.
type Status struct {
	IsPlaying   bool `json:"is_playing"`
	IsPaused    bool `json:"is_paused"`
	Ended       bool `json:"ended"`
	IsBuffering bool `json:"is_buffering"`
}

// ClassifyState maps a state code to flags. Cued and unstarted are resting
// states and read as paused.
func ClassifyState(s State) Status {
	return Status{
		IsPlaying:   s == StatePlaying,
		IsPaused:    s == StatePaused || s == StateCued || s == StateUnstarted,
		Ended:       s == StateEnded,
		IsBuffering: s == StateBuffering,
	}
}

// Classify reads the widget's current state. A nil widget yields all-false.
func Classify(w Widget) Status {
	if w == nil {
		return Status{}
	}

	return ClassifyState(w.PlayerState())
}
