package player

import (
	"github.com/llehouerou/reel/internal/event"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/timeline"
)

// TimelineChangeReason classifies timeline replacements.
type TimelineChangeReason int

const (
	// TimelineChangePlaylist marks a change caused by a playlist edit.
	TimelineChangePlaylist TimelineChangeReason = iota

	// TimelineChangeSourceUpdate marks a change caused by the media
	// source reporting new structure (e.g. live-edge growth).
	TimelineChangeSourceUpdate
)

// MediaItemTransitionReason classifies why playback moved to another
// (or the same) media item.
type MediaItemTransitionReason int

const (
	// TransitionRepeat marks an automatic restart of the current item
	// in repeat-one mode.
	TransitionRepeat MediaItemTransitionReason = iota

	// TransitionAuto marks an automatic advance at end of media.
	TransitionAuto

	// TransitionSeek marks a transition caused by an explicit seek.
	TransitionSeek

	// TransitionPlaylistChanged marks a transition forced by a
	// playlist edit.
	TransitionPlaylistChanged
)

// DiscontinuityReason classifies position discontinuities.
type DiscontinuityReason int

const (
	DiscontinuitySeek DiscontinuityReason = iota
	DiscontinuityAutoTransition
	DiscontinuityInternal
)

// ItemTransition describes one media item transition.
type ItemTransition struct {
	Item   *playlist.Item
	Reason MediaItemTransitionReason
}

// Listener receives player callbacks. Every field is optional. Within
// one processing unit the per-aspect callbacks fire first, in aspect
// enumeration order, followed by exactly one OnEvents carrying the
// full set.
//
// Callbacks run on the control goroutine. Registration and removal are
// safe from any goroutine.
type Listener struct {
	OnTimelineChanged           func(*timeline.Timeline, TimelineChangeReason)
	OnMediaItemTransition       func(*playlist.Item, MediaItemTransitionReason)
	OnTracksChanged             func()
	OnStaticMetadataChanged     func()
	OnIsLoadingChanged          func(bool)
	OnPlaybackStateChanged      func(playback.State)
	OnPlayWhenReadyChanged      func(bool)
	OnSuppressionReasonChanged  func(playback.SuppressionReason)
	OnIsPlayingChanged          func(bool)
	OnRepeatModeChanged         func(timeline.RepeatMode)
	OnShuffleModeChanged        func(bool)
	OnPlayerError               func(*playback.Error)
	OnPositionDiscontinuity     func(DiscontinuityReason)
	OnPlaybackParametersChanged func(playback.Parameters)
	OnSurfaceSizeChanged        func(width, height int)
	OnEvents                    func(*Player, event.Set)
}

// AddListener registers a listener. Safe from any goroutine.
func (p *Player) AddListener(l *Listener) {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()
	cur := *p.listeners.Load()
	next := make([]*Listener, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, l)
	p.listeners.Store(&next)
}

// RemoveListener unregisters a listener. Safe from any goroutine.
func (p *Player) RemoveListener(l *Listener) {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()
	cur := *p.listeners.Load()
	next := make([]*Listener, 0, len(cur))
	for _, x := range cur {
		if x != l {
			next = append(next, x)
		}
	}
	p.listeners.Store(&next)
}

func (p *Player) snapshotListeners() []*Listener {
	return *p.listeners.Load()
}

// flush closes the current processing unit: pending internal updates
// are applied first, then the per-aspect callbacks fire, then the
// aggregate callback.
func (p *Player) flush() {
	p.applyPendingUpdates()
	state, set := p.machine.Flush()
	u := p.unit
	p.unit = unit{}
	if set.IsEmpty() {
		return
	}
	ls := p.snapshotListeners()
	for _, a := range set.Aspects() {
		p.fireAspect(ls, a, state, u)
	}
	for _, l := range ls {
		if l.OnEvents != nil {
			l.OnEvents(p, set)
		}
	}
}

func (p *Player) fireAspect(ls []*Listener, a event.Aspect, state playback.PlayerState, u unit) {
	for _, l := range ls {
		switch a {
		case event.AspectTimeline:
			if l.OnTimelineChanged != nil {
				l.OnTimelineChanged(p.tl, u.timelineReason)
			}
		case event.AspectMediaItem:
			if l.OnMediaItemTransition != nil && u.transition != nil {
				l.OnMediaItemTransition(u.transition.Item, u.transition.Reason)
			}
		case event.AspectTracks:
			if l.OnTracksChanged != nil {
				l.OnTracksChanged()
			}
		case event.AspectStaticMetadata:
			if l.OnStaticMetadataChanged != nil {
				l.OnStaticMetadataChanged()
			}
		case event.AspectIsLoading:
			if l.OnIsLoadingChanged != nil {
				l.OnIsLoadingChanged(p.isLoading)
			}
		case event.AspectPlaybackState:
			if l.OnPlaybackStateChanged != nil {
				l.OnPlaybackStateChanged(state.State)
			}
		case event.AspectPlayWhenReady:
			if l.OnPlayWhenReadyChanged != nil {
				l.OnPlayWhenReadyChanged(state.PlayWhenReady)
			}
		case event.AspectSuppressionReason:
			if l.OnSuppressionReasonChanged != nil {
				l.OnSuppressionReasonChanged(state.Suppression)
			}
		case event.AspectIsPlaying:
			if l.OnIsPlayingChanged != nil {
				l.OnIsPlayingChanged(state.IsPlaying())
			}
		case event.AspectRepeatMode:
			if l.OnRepeatModeChanged != nil {
				l.OnRepeatModeChanged(state.Repeat)
			}
		case event.AspectShuffleMode:
			if l.OnShuffleModeChanged != nil {
				l.OnShuffleModeChanged(state.Shuffle)
			}
		case event.AspectPlayerError:
			if l.OnPlayerError != nil {
				l.OnPlayerError(state.Err)
			}
		case event.AspectPositionDiscontinuity:
			if l.OnPositionDiscontinuity != nil {
				l.OnPositionDiscontinuity(u.discontinuity)
			}
		case event.AspectPlaybackParameters:
			if l.OnPlaybackParametersChanged != nil {
				l.OnPlaybackParametersChanged(state.Parameters)
			}
		}
	}
}
