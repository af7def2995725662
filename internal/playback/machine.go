package playback

import (
	"time"

	"github.com/llehouerou/reel/internal/event"
	"github.com/llehouerou/reel/internal/timeline"
)

// Machine is the playback state machine. It owns the current
// PlayerState and accumulates the aspects changed since the last
// Flush into a pending event set.
//
// The machine is not safe for concurrent use: the coordinator
// guarantees all calls happen on the control goroutine.
type Machine struct {
	state   PlayerState
	pending event.Set
}

// NewMachine creates a machine in Idle with playback not requested.
func NewMachine() *Machine {
	return &Machine{
		state: PlayerState{
			State:       StateIdle,
			WindowIndex: timeline.IndexUnset,
			PeriodIndex: timeline.IndexUnset,
			Parameters:  DefaultParameters,
		},
	}
}

// State returns the current snapshot.
func (m *Machine) State() PlayerState {
	return m.state
}

// Flush returns the current snapshot together with the aspects changed
// since the previous flush, and starts a fresh pending set.
func (m *Machine) Flush() (PlayerState, event.Set) {
	set := m.pending
	m.pending = event.Set{}
	return m.state, set
}

// apply mutates the state and folds the delta into the pending set.
func (m *Machine) apply(mut func(*PlayerState)) {
	old := m.state
	mut(&m.state)
	m.pending.Merge(diff(old, m.state))
}

// Prepare transitions to Buffering and clears any previous error.
func (m *Machine) Prepare() {
	m.apply(func(s *PlayerState) {
		s.Err = nil
		s.State = StateBuffering
	})
}

// SetState applies renderer-side progress: Buffering, Ready or Ended.
// Idle is reserved for Stop and Fail and is ignored here.
func (m *Machine) SetState(st State) {
	if st == StateIdle {
		return
	}
	m.apply(func(s *PlayerState) {
		s.State = st
	})
}

// SetPlayWhenReady records the play intent together with the
// suppression decided by the audio-routing arbitration.
func (m *Machine) SetPlayWhenReady(playWhenReady bool, suppression SuppressionReason) {
	m.apply(func(s *PlayerState) {
		s.PlayWhenReady = playWhenReady
		s.Suppression = suppression
	})
}

// Stop forces Idle. Playlist, position and any recorded error are
// deliberately kept; only Release is terminal.
func (m *Machine) Stop() {
	m.apply(func(s *PlayerState) {
		s.State = StateIdle
	})
}

// Fail forces Idle carrying the error into the state. The error is
// cleared only by the next successful Prepare.
func (m *Machine) Fail(err *Error) {
	m.apply(func(s *PlayerState) {
		s.State = StateIdle
		s.Err = err
	})
}

// Seek moves the current position. It always marks a position
// discontinuity, which is never conflated with a timeline change.
func (m *Machine) Seek(windowIndex, periodIndex int, pos time.Duration) {
	m.apply(func(s *PlayerState) {
		s.WindowIndex = windowIndex
		s.PeriodIndex = periodIndex
		s.Position = pos
	})
	m.pending.Add(event.AspectPositionDiscontinuity)
}

// MovePosition updates the current position without a discontinuity,
// used when a structural timeline change relocates the masked
// position.
func (m *Machine) MovePosition(windowIndex, periodIndex int, pos time.Duration) {
	m.apply(func(s *PlayerState) {
		s.WindowIndex = windowIndex
		s.PeriodIndex = periodIndex
		s.Position = pos
	})
}

// SetRepeatMode updates the repeat mode.
func (m *Machine) SetRepeatMode(mode timeline.RepeatMode) {
	m.apply(func(s *PlayerState) {
		s.Repeat = mode
	})
}

// SetShuffle updates whether shuffle is enabled.
func (m *Machine) SetShuffle(enabled bool) {
	m.apply(func(s *PlayerState) {
		s.Shuffle = enabled
	})
}

// SetParameters updates the playback speed parameters.
func (m *Machine) SetParameters(p Parameters) {
	m.apply(func(s *PlayerState) {
		s.Parameters = p
	})
}

// MarkAux records an externally-reported delta (tracks, metadata,
// isLoading, timeline, media item) into the pending set.
func (m *Machine) MarkAux(a event.Aspect) {
	m.pending.Add(a)
}

// diff derives the changed aspects between two snapshots, including
// the derived isPlaying aspect: clearing suppression alone fires
// exactly one isPlaying change with no playWhenReady change.
func diff(old, cur PlayerState) event.Set {
	var set event.Set
	if old.State != cur.State {
		set.Add(event.AspectPlaybackState)
	}
	if old.PlayWhenReady != cur.PlayWhenReady {
		set.Add(event.AspectPlayWhenReady)
	}
	if old.Suppression != cur.Suppression {
		set.Add(event.AspectSuppressionReason)
	}
	if old.Repeat != cur.Repeat {
		set.Add(event.AspectRepeatMode)
	}
	if old.Shuffle != cur.Shuffle {
		set.Add(event.AspectShuffleMode)
	}
	if old.Parameters != cur.Parameters {
		set.Add(event.AspectPlaybackParameters)
	}
	if old.Err != cur.Err {
		set.Add(event.AspectPlayerError)
	}
	if old.IsPlaying() != cur.IsPlaying() {
		set.Add(event.AspectIsPlaying)
	}
	return set
}
