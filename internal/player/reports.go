package player

import (
	"time"

	"github.com/llehouerou/reel/internal/event"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/timeline"
)

// postUpdate queues an internal update for application on the control
// goroutine. Updates are applied, in order, at the start of the next
// processing unit. Safe from any goroutine.
func (p *Player) postUpdate(fn func(*Player)) {
	p.pendingMu.Lock()
	p.pending = append(p.pending, fn)
	p.pendingMu.Unlock()
}

func (p *Player) applyPendingUpdates() {
	p.pendingMu.Lock()
	pending := p.pending
	p.pending = nil
	p.pendingMu.Unlock()
	for _, fn := range pending {
		fn(p)
	}
}

// ProcessUpdates applies internal updates queued by the Report* entry
// points and fires the resulting events. Call it from the control
// goroutine whenever renderers or sources have reported progress.
func (p *Player) ProcessUpdates() error {
	if err := p.guard(); err != nil {
		return err
	}
	p.flush()
	return nil
}

// ReportRendererState is called by the playback internals when the
// renderers move between buffering and ready.
func (p *Player) ReportRendererState(state playback.State) {
	p.postUpdate(func(p *Player) {
		p.machine.SetState(state)
	})
}

// ReportTracksChanged is called when the selected track set changed.
func (p *Player) ReportTracksChanged() {
	p.postUpdate(func(p *Player) {
		p.machine.MarkAux(event.AspectTracks)
	})
}

// ReportStaticMetadataChanged is called when the static metadata of
// the current item changed.
func (p *Player) ReportStaticMetadataChanged() {
	p.postUpdate(func(p *Player) {
		p.machine.MarkAux(event.AspectStaticMetadata)
	})
}

// ReportIsLoadingChanged is called when the source starts or stops
// loading data.
func (p *Player) ReportIsLoadingChanged(isLoading bool) {
	p.postUpdate(func(p *Player) {
		if p.isLoading == isLoading {
			return
		}
		p.isLoading = isLoading
		p.machine.MarkAux(event.AspectIsLoading)
	})
}

// ReportSourceError is called when the source fails. The player moves
// to Idle and records the error; position and playlist are kept so a
// later Prepare can retry.
func (p *Player) ReportSourceError(err error) {
	p.postUpdate(func(p *Player) {
		p.machine.Fail(playback.NewSourceError(err))
	})
}

// ReportEndOfWindow is called when playback reached the end of the
// current window. Repeat-one restarts the same window; otherwise
// playback advances in playback order, or ends at the boundary.
func (p *Player) ReportEndOfWindow() {
	p.postUpdate(func(p *Player) {
		st := p.machine.State()
		if st.State != playback.StateReady && st.State != playback.StateBuffering {
			return
		}
		if st.Repeat == timeline.RepeatOne {
			p.advanceTo(st.WindowIndex, TransitionRepeat)
			return
		}
		next := p.tl.NextWindowIndex(st.WindowIndex, st.Repeat, st.Shuffle)
		if next == timeline.IndexUnset {
			p.machine.SetState(playback.StateEnded)
			return
		}
		p.advanceTo(next, TransitionAuto)
	})
}

// advanceTo relocates to a window's default position as an automatic
// transition.
func (p *Player) advanceTo(windowIndex int, reason MediaItemTransitionReason) {
	pp, err := p.tl.PeriodPosition(windowIndex, timeline.TimeUnset, 0)
	if err != nil {
		p.log.Warn("auto advance has no playable position", "window", windowIndex, "error", err)
		p.machine.SetState(playback.StateEnded)
		return
	}
	p.machine.Seek(windowIndex, pp.Index, pp.Position)
	p.unit.discontinuity = DiscontinuityAutoTransition
	p.markItemTransition(windowIndex, reason)
}

// SourceInfo carries refined structure reported by a source for one
// playlist item.
type SourceInfo struct {
	ItemID   string
	Duration time.Duration
	Seekable bool
	Dynamic  bool
}

// ReportSourceInfo is called when a source learns more about an item's
// structure, typically its real duration. A known duration never
// reverts to unknown.
func (p *Player) ReportSourceInfo(info SourceInfo) {
	p.postUpdate(func(p *Player) {
		item := p.items.ItemByID(info.ItemID)
		if item == nil {
			return
		}
		updated := *item
		if info.Duration != timeline.TimeUnset {
			updated.Duration = info.Duration
		}
		updated.Seekable = info.Seekable
		updated.Dynamic = info.Dynamic
		if updated.Duration == item.Duration &&
			updated.Seekable == item.Seekable &&
			updated.Dynamic == item.Dynamic {
			return
		}
		p.items.Update(updated)
		if err := p.rebuildTimeline(TimelineChangeSourceUpdate); err != nil {
			p.log.Warn("source info rejected", "item", info.ItemID, "error", err)
		}
	})
}
