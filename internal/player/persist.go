package player

import (
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/timeline"
)

// SaveState writes the current session (playlist, position, modes) to
// the state manager.
func (p *Player) SaveState(m *state.Manager) error {
	if err := p.guard(); err != nil {
		return err
	}
	st := p.machine.State()
	return m.Save(state.Snapshot{
		Items:         p.items.Items(),
		CurrentIndex:  st.WindowIndex,
		Position:      st.Position,
		Repeat:        st.Repeat,
		Shuffle:       st.Shuffle,
		PlayWhenReady: st.PlayWhenReady,
	})
}

// RestoreState loads the stored session, if any, into the player. The
// player stays Idle; call Prepare to resume.
func (p *Player) RestoreState(m *state.Manager) error {
	if err := p.guard(); err != nil {
		return err
	}
	snap, err := m.Load()
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}
	p.items.Replace(snap.Items...)
	p.history.Push(p.items.Items())
	p.machine.SetRepeatMode(snap.Repeat)
	p.machine.SetShuffle(snap.Shuffle)
	if err := p.rebuildTimeline(TimelineChangePlaylist); err != nil {
		return err
	}
	idx := snap.CurrentIndex
	if idx < 0 || idx >= p.tl.WindowCount() {
		p.resetPosition()
	} else {
		pp, err := p.tl.PeriodPosition(idx, snap.Position, 0)
		if err != nil {
			pp = timeline.PeriodPosition{Index: idx, Position: 0}
		}
		p.machine.MovePosition(idx, pp.Index, pp.Position)
	}
	p.machine.SetPlayWhenReady(snap.PlayWhenReady, p.machine.State().Suppression)
	p.flush()
	return nil
}
