// Package playback owns the player's state snapshot and the state
// machine that mutates it. All mutation happens on the control
// goroutine; the machine derives the set of changed aspects from
// state deltas so the coordinator can batch notifications.
package playback

import (
	"time"

	"github.com/llehouerou/reel/internal/timeline"
)

// State represents the playback state.
//
// Valid transitions:
//   - Idle      → Buffering (prepare)
//   - Buffering → Ready     (enough data buffered)
//   - Ready     ⇄ Buffering (availability fluctuates)
//   - Ready     → Ended     (media ends, no repeat)
//   - any       → Idle      (stop, or fatal error carrying the error)
type State int

const (
	StateIdle State = iota
	StateBuffering
	StateReady
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateBuffering:
		return "Buffering"
	case StateReady:
		return "Ready"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// SuppressionReason is the cause preventing playback despite an
// expressed intent to play.
type SuppressionReason int

const (
	SuppressionNone SuppressionReason = iota
	SuppressionTransientAudioFocusLoss
)

// String returns the suppression reason name.
func (r SuppressionReason) String() string {
	switch r {
	case SuppressionNone:
		return "None"
	case SuppressionTransientAudioFocusLoss:
		return "TransientAudioFocusLoss"
	default:
		return "Unknown"
	}
}

// Parameters are the playback speed parameters.
type Parameters struct {
	Speed float64
	Pitch float64
}

// DefaultParameters plays at normal speed.
var DefaultParameters = Parameters{Speed: 1, Pitch: 1}

// PlayerState is one snapshot of the player. Snapshots are plain
// values; the Machine is the single writer.
type PlayerState struct {
	State         State
	PlayWhenReady bool
	Suppression   SuppressionReason
	Repeat        timeline.RepeatMode
	Shuffle       bool

	WindowIndex int
	PeriodIndex int
	Position    time.Duration

	Parameters Parameters

	// Err is present only while State is Idle and until the next
	// successful prepare.
	Err *Error
}

// IsPlaying reports whether media is actually advancing: ready,
// intending to play, and not suppressed.
func (s PlayerState) IsPlaying() bool {
	return s.State == StateReady && s.PlayWhenReady && s.Suppression == SuppressionNone
}
