package player

import (
	"fmt"
	"time"

	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/timeline"
)

// Prepare starts loading the current playlist: Idle becomes Buffering
// and any recorded error is cleared.
func (p *Player) Prepare() error {
	if err := p.guard(); err != nil {
		return err
	}
	p.machine.Prepare()
	p.flush()
	return nil
}

// Play expresses the intent to play. The audio-routing arbiter may
// suppress or deny it; a suppressed intent keeps playWhenReady set
// while isPlaying stays false.
func (p *Player) Play() error {
	if err := p.guard(); err != nil {
		return err
	}
	p.applyFocus(true)
	p.flush()
	return nil
}

// Pause clears the play intent.
func (p *Player) Pause() error {
	if err := p.guard(); err != nil {
		return err
	}
	p.machine.SetPlayWhenReady(false, playback.SuppressionNone)
	p.flush()
	return nil
}

// Stop forces Idle. Playlist, position and any recorded error are
// kept; use Release to free resources.
func (p *Player) Stop() error {
	if err := p.guard(); err != nil {
		return err
	}
	p.machine.Stop()
	p.flush()
	return nil
}

// SeekTo moves playback to a position within the given window. Pass
// timeline.TimeUnset as pos to seek to the window's default position.
// An out-of-range window index on a non-empty timeline is rejected
// with no state mutation and no event.
func (p *Player) SeekTo(windowIndex int, pos time.Duration) error {
	if err := p.guard(); err != nil {
		return err
	}
	if err := p.seekInternal(windowIndex, pos, TransitionSeek); err != nil {
		return err
	}
	p.flush()
	return nil
}

// SeekToDefaultPosition seeks to the default position of the given
// window, applying the configured live-edge projection.
func (p *Player) SeekToDefaultPosition(windowIndex int) error {
	return p.SeekTo(windowIndex, timeline.TimeUnset)
}

// Next moves to the window after the current one under the current
// repeat and shuffle modes. No-op at the boundary with repeat off.
func (p *Player) Next() error {
	if err := p.guard(); err != nil {
		return err
	}
	st := p.machine.State()
	next := p.tl.NextWindowIndex(st.WindowIndex, st.Repeat, st.Shuffle)
	if next == timeline.IndexUnset {
		return nil
	}
	if err := p.seekInternal(next, timeline.TimeUnset, TransitionSeek); err != nil {
		return err
	}
	p.flush()
	return nil
}

// Previous moves to the window before the current one under the
// current repeat and shuffle modes. No-op at the boundary with repeat
// off.
func (p *Player) Previous() error {
	if err := p.guard(); err != nil {
		return err
	}
	st := p.machine.State()
	prev := p.tl.PreviousWindowIndex(st.WindowIndex, st.Repeat, st.Shuffle)
	if prev == timeline.IndexUnset {
		return nil
	}
	if err := p.seekInternal(prev, timeline.TimeUnset, TransitionSeek); err != nil {
		return err
	}
	p.flush()
	return nil
}

// seekInternal validates and applies a seek without flushing.
func (p *Player) seekInternal(windowIndex int, pos time.Duration, reason MediaItemTransitionReason) error {
	if p.tl.IsEmpty() {
		// Position is masked until a timeline exists.
		p.machine.Seek(windowIndex, timeline.IndexUnset, pos)
		p.unit.discontinuity = DiscontinuitySeek
		return nil
	}
	if windowIndex < 0 || windowIndex >= p.tl.WindowCount() {
		return fmt.Errorf("player: seek to window %d: %w", windowIndex, timeline.ErrIndexOutOfRange)
	}
	projection := time.Duration(0)
	if pos == timeline.TimeUnset {
		projection = p.cfg.LiveEdgeProjection.Std()
	}
	pp, err := p.tl.PeriodPosition(windowIndex, pos, projection)
	if err != nil {
		return err
	}
	prevWindow := p.machine.State().WindowIndex
	p.machine.Seek(windowIndex, pp.Index, pp.Position)
	p.unit.discontinuity = DiscontinuitySeek
	if p.machine.State().State == playback.StateEnded {
		p.machine.SetState(playback.StateBuffering)
	}
	if windowIndex != prevWindow {
		p.markItemTransition(windowIndex, reason)
	}
	return nil
}

// SetRepeatMode updates the repeat mode.
func (p *Player) SetRepeatMode(mode timeline.RepeatMode) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.machine.SetRepeatMode(mode)
	p.flush()
	return nil
}

// SetShuffleModeEnabled toggles shuffled playback, rebuilding the
// shuffle order over the current playlist.
func (p *Player) SetShuffleModeEnabled(enabled bool) error {
	if err := p.guard(); err != nil {
		return err
	}
	if p.machine.State().Shuffle == enabled {
		return nil
	}
	p.machine.SetShuffle(enabled)
	if err := p.rebuildTimeline(TimelineChangePlaylist); err != nil {
		return err
	}
	p.flush()
	return nil
}

// SetPlaybackParameters updates the playback speed parameters.
func (p *Player) SetPlaybackParameters(params playback.Parameters) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.machine.SetParameters(params)
	p.flush()
	return nil
}
