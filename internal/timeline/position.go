package timeline

import (
	"fmt"
	"time"
)

// PeriodPosition locates a point inside a specific period.
type PeriodPosition struct {
	// UID identifies the period.
	UID string

	// Index is the period index within the snapshot the position was
	// resolved against.
	Index int

	// Position is the offset within the period.
	Position time.Duration
}

// PeriodPosition maps a position within a window to the period that
// contains it and the offset inside that period.
//
// When windowPos is TimeUnset the window's default position is used,
// after applying projection; if the projected default position is
// itself unset the mapping fails with ErrNoPosition. An explicit
// windowPos is never affected by projection.
//
// The walk starts at the window's first period and subtracts known
// period durations while the remaining offset reaches past them. It
// never advances past a period whose duration is unknown and never
// leaves the window: the last period absorbs any remaining offset.
func (t *Timeline) PeriodPosition(windowIndex int, windowPos, projection time.Duration) (PeriodPosition, error) {
	w, err := t.Window(windowIndex, projection)
	if err != nil {
		return PeriodPosition{}, err
	}
	if windowPos == TimeUnset {
		windowPos = w.DefaultPosition
		if windowPos == TimeUnset {
			return PeriodPosition{}, fmt.Errorf("%w: window %d", ErrNoPosition, windowIndex)
		}
	}
	index := w.FirstPeriodIndex
	offset := w.PositionInFirstPeriod + windowPos
	duration := t.periods[index].Duration
	for duration != TimeUnset && offset >= duration && index < w.LastPeriodIndex {
		offset -= duration
		index++
		duration = t.periods[index].Duration
	}
	return PeriodPosition{
		UID:      t.periods[index].UID,
		Index:    index,
		Position: offset,
	}, nil
}
