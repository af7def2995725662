package player

import (
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/timeline"
)

// SetMediaItems replaces the playlist. Playback position resets to the
// default position of the first window in playback order.
func (p *Player) SetMediaItems(items ...playlist.Item) error {
	if err := p.guard(); err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = playlist.NewID()
		}
	}
	prevItem := p.currentItemID()
	p.items.Replace(items...)
	p.history.Push(p.items.Items())
	if err := p.rebuildTimeline(TimelineChangePlaylist); err != nil {
		return err
	}
	p.resetPosition()
	if p.currentItemID() != prevItem {
		p.markItemTransition(p.machine.State().WindowIndex, TransitionPlaylistChanged)
	}
	p.flush()
	return nil
}

// AddMediaItems inserts items at index; index == item count appends.
// The current item and position are unaffected.
func (p *Player) AddMediaItems(index int, items ...playlist.Item) error {
	if err := p.guard(); err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = playlist.NewID()
		}
	}
	if err := p.items.Add(index, items...); err != nil {
		return err
	}
	p.history.Push(p.items.Items())
	if err := p.rebuildTimeline(TimelineChangePlaylist); err != nil {
		return err
	}
	st := p.machine.State()
	if st.WindowIndex >= index {
		p.machine.MovePosition(st.WindowIndex+len(items), st.WindowIndex+len(items), st.Position)
	}
	p.flush()
	return nil
}

// RemoveMediaItems removes the items in [from, to). A malformed range
// is rejected with no state mutation and no event. When the current
// item is removed, playback transitions to the item now at the removal
// point (or the last item).
func (p *Player) RemoveMediaItems(from, to int) error {
	if err := p.guard(); err != nil {
		return err
	}
	if err := p.items.Remove(from, to); err != nil {
		return err
	}
	p.history.Push(p.items.Items())
	if err := p.rebuildTimeline(TimelineChangePlaylist); err != nil {
		return err
	}
	st := p.machine.State()
	switch {
	case st.WindowIndex >= to:
		shift := to - from
		p.machine.MovePosition(st.WindowIndex-shift, st.WindowIndex-shift, st.Position)
	case st.WindowIndex >= from:
		// Current item removed.
		p.moveToWindowAfterRemoval(from)
	}
	p.flush()
	return nil
}

// moveToWindowAfterRemoval relocates playback after the current item
// disappeared in a playlist edit.
func (p *Player) moveToWindowAfterRemoval(removalPoint int) {
	if p.tl.IsEmpty() {
		p.machine.MovePosition(timeline.IndexUnset, timeline.IndexUnset, 0)
		p.markItemTransition(timeline.IndexUnset, TransitionPlaylistChanged)
		return
	}
	next := removalPoint
	if next >= p.tl.WindowCount() {
		next = p.tl.WindowCount() - 1
	}
	pp, err := p.tl.PeriodPosition(next, timeline.TimeUnset, 0)
	if err != nil {
		p.machine.MovePosition(next, next, 0)
	} else {
		p.machine.MovePosition(next, pp.Index, pp.Position)
	}
	p.markItemTransition(next, TransitionPlaylistChanged)
}

// MoveMediaItems moves the items in [from, to) so that they start at
// newIndex. The current item keeps playing.
func (p *Player) MoveMediaItems(from, to, newIndex int) error {
	if err := p.guard(); err != nil {
		return err
	}
	if err := p.items.Move(from, to, newIndex); err != nil {
		return err
	}
	p.history.Push(p.items.Items())
	if err := p.rebuildTimeline(TimelineChangePlaylist); err != nil {
		return err
	}
	st := p.machine.State()
	cur := st.WindowIndex
	if cur >= 0 {
		moved := movedIndex(cur, from, to, newIndex)
		if moved != cur {
			p.machine.MovePosition(moved, moved, st.Position)
		}
	}
	p.flush()
	return nil
}

// movedIndex computes where index ends up after moving [from, to) to
// newIndex.
func movedIndex(index, from, to, newIndex int) int {
	if index >= from && index < to {
		return index - from + newIndex
	}
	size := to - from
	rest := index
	if rest >= to {
		rest -= size
	}
	if rest >= newIndex {
		rest += size
	}
	return rest
}

// UndoPlaylistEdit restores the playlist before the last edit.
func (p *Player) UndoPlaylistEdit() error {
	if err := p.guard(); err != nil {
		return err
	}
	items, ok := p.history.Undo()
	if !ok {
		return nil
	}
	return p.replaceFromHistory(items)
}

// RedoPlaylistEdit re-applies the last undone playlist edit.
func (p *Player) RedoPlaylistEdit() error {
	if err := p.guard(); err != nil {
		return err
	}
	items, ok := p.history.Redo()
	if !ok {
		return nil
	}
	return p.replaceFromHistory(items)
}

func (p *Player) replaceFromHistory(items []playlist.Item) error {
	prevItem := p.currentItemID()
	p.items.Replace(items...)
	if err := p.rebuildTimeline(TimelineChangePlaylist); err != nil {
		return err
	}
	p.resetPosition()
	if p.currentItemID() != prevItem {
		p.markItemTransition(p.machine.State().WindowIndex, TransitionPlaylistChanged)
	}
	p.flush()
	return nil
}

// resetPosition moves to the default position of the first window in
// playback order without a discontinuity event.
func (p *Player) resetPosition() {
	if p.tl.IsEmpty() {
		p.machine.MovePosition(timeline.IndexUnset, timeline.IndexUnset, 0)
		return
	}
	st := p.machine.State()
	first := p.tl.FirstWindowIndex(st.Shuffle)
	pp, err := p.tl.PeriodPosition(first, timeline.TimeUnset, 0)
	if err != nil {
		p.machine.MovePosition(first, first, 0)
		return
	}
	p.machine.MovePosition(first, pp.Index, pp.Position)
}
