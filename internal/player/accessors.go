package player

import (
	"time"

	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/timeline"
)

// Read accessors report the coalesced state as of the last processing
// unit. They must be called on the control goroutine; with
// FailOnWrongGoroutine set, off-goroutine reads return zero values.

// State returns the playback state.
func (p *Player) State() playback.State {
	if p.verifyControlGoroutine() != nil {
		return playback.StateIdle
	}
	return p.machine.State().State
}

// PlayWhenReady reports the current play intent.
func (p *Player) PlayWhenReady() bool {
	if p.verifyControlGoroutine() != nil {
		return false
	}
	return p.machine.State().PlayWhenReady
}

// IsPlaying reports whether media is actively advancing.
func (p *Player) IsPlaying() bool {
	if p.verifyControlGoroutine() != nil {
		return false
	}
	return p.machine.State().IsPlaying()
}

// SuppressionReason reports why a set play intent is not playing.
func (p *Player) SuppressionReason() playback.SuppressionReason {
	if p.verifyControlGoroutine() != nil {
		return playback.SuppressionNone
	}
	return p.machine.State().Suppression
}

// RepeatMode returns the repeat mode.
func (p *Player) RepeatMode() timeline.RepeatMode {
	if p.verifyControlGoroutine() != nil {
		return timeline.RepeatOff
	}
	return p.machine.State().Repeat
}

// ShuffleModeEnabled reports whether shuffled playback is on.
func (p *Player) ShuffleModeEnabled() bool {
	if p.verifyControlGoroutine() != nil {
		return false
	}
	return p.machine.State().Shuffle
}

// CurrentTimeline returns the current timeline snapshot. Never nil.
func (p *Player) CurrentTimeline() *timeline.Timeline {
	if p.verifyControlGoroutine() != nil {
		return timeline.Empty
	}
	return p.tl
}

// CurrentWindowIndex returns the window index playback is at, or
// timeline.IndexUnset.
func (p *Player) CurrentWindowIndex() int {
	if p.verifyControlGoroutine() != nil {
		return timeline.IndexUnset
	}
	return p.machine.State().WindowIndex
}

// CurrentPeriodIndex returns the period index playback is at, or
// timeline.IndexUnset.
func (p *Player) CurrentPeriodIndex() int {
	if p.verifyControlGoroutine() != nil {
		return timeline.IndexUnset
	}
	return p.machine.State().PeriodIndex
}

// CurrentPosition returns the playback position within the current
// period.
func (p *Player) CurrentPosition() time.Duration {
	if p.verifyControlGoroutine() != nil {
		return 0
	}
	return p.machine.State().Position
}

// CurrentMediaItem returns the playlist item under the current window,
// or nil.
func (p *Player) CurrentMediaItem() *playlist.Item {
	if p.verifyControlGoroutine() != nil {
		return nil
	}
	return p.items.Item(p.machine.State().WindowIndex)
}

// MediaItemCount returns the number of playlist items.
func (p *Player) MediaItemCount() int {
	if p.verifyControlGoroutine() != nil {
		return 0
	}
	return p.items.Len()
}

// MediaItemAt returns the playlist item at index, or nil.
func (p *Player) MediaItemAt(index int) *playlist.Item {
	if p.verifyControlGoroutine() != nil {
		return nil
	}
	return p.items.Item(index)
}

// PlayerError returns the error that moved the player to Idle, or nil.
// It is cleared by Prepare.
func (p *Player) PlayerError() *playback.Error {
	if p.verifyControlGoroutine() != nil {
		return nil
	}
	return p.machine.State().Err
}

// PlaybackParameters returns the active playback speed parameters.
func (p *Player) PlaybackParameters() playback.Parameters {
	if p.verifyControlGoroutine() != nil {
		return playback.DefaultParameters
	}
	return p.machine.State().Parameters
}

// IsLoading reports whether the source is loading data.
func (p *Player) IsLoading() bool {
	if p.verifyControlGoroutine() != nil {
		return false
	}
	return p.isLoading
}
