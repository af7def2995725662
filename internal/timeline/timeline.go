// Package timeline models the media structure a player moves through:
// an immutable snapshot of windows (playlist entries) and periods
// (logical media segments), with position-mapping and navigation over
// it. A fresh Timeline replaces the previous one wholesale on any
// structural change; readers never observe mutation.
package timeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrIndexOutOfRange rejects window or period indices outside the
	// snapshot.
	ErrIndexOutOfRange = errors.New("timeline: index out of range")

	// ErrNoPosition is returned by PeriodPosition when no valid
	// position exists, i.e. the window's default position could not be
	// projected.
	ErrNoPosition = errors.New("timeline: window has no valid position")
)

// Timeline is an immutable snapshot of windows and periods.
type Timeline struct {
	windows    []Window
	periods    []Period
	indexByUID map[string]int
	order      Order
}

// Empty is the distinguished empty timeline.
var Empty = &Timeline{}

// Option configures a Timeline at construction.
type Option func(*Timeline)

// WithOrder installs the shuffle-order policy consulted by shuffled
// navigation.
func WithOrder(order Order) Option {
	return func(t *Timeline) {
		t.order = order
	}
}

// New builds a timeline from windows and their periods, validating the
// structural invariants: period ranges of consecutive windows tile the
// period sequence, every period points back at its owning window, and
// period UIDs are unique.
func New(windows []Window, periods []Period, opts ...Option) (*Timeline, error) {
	t := &Timeline{
		windows:    append([]Window(nil), windows...),
		periods:    append([]Period(nil), periods...),
		indexByUID: make(map[string]int, len(periods)),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.order == nil {
		t.order = NewUnshuffledOrder(len(windows))
	}
	if t.order.Length() != len(windows) {
		return nil, fmt.Errorf("timeline: order length %d does not match %d windows", t.order.Length(), len(windows))
	}

	next := 0
	for wi := range t.windows {
		w := &t.windows[wi]
		if w.FirstPeriodIndex > w.LastPeriodIndex {
			return nil, fmt.Errorf("timeline: window %d has inverted period range [%d, %d]", wi, w.FirstPeriodIndex, w.LastPeriodIndex)
		}
		if w.FirstPeriodIndex != next {
			return nil, fmt.Errorf("timeline: window %d periods not contiguous at %d", wi, w.FirstPeriodIndex)
		}
		if w.LastPeriodIndex >= len(t.periods) {
			return nil, fmt.Errorf("timeline: window %d period range exceeds %d periods", wi, len(t.periods))
		}
		if w.DefaultPosition == TimeUnset {
			return nil, fmt.Errorf("timeline: window %d constructed with unset default position", wi)
		}
		for pi := w.FirstPeriodIndex; pi <= w.LastPeriodIndex; pi++ {
			if t.periods[pi].WindowIndex != wi {
				return nil, fmt.Errorf("timeline: period %d claims window %d, belongs to %d", pi, t.periods[pi].WindowIndex, wi)
			}
		}
		next = w.LastPeriodIndex + 1
	}
	if next != len(t.periods) {
		return nil, fmt.Errorf("timeline: %d periods not covered by any window", len(t.periods)-next)
	}
	for pi := range t.periods {
		uid := t.periods[pi].UID
		if uid == "" {
			continue
		}
		if _, dup := t.indexByUID[uid]; dup {
			return nil, fmt.Errorf("timeline: duplicate period uid %q", uid)
		}
		t.indexByUID[uid] = pi
	}
	return t, nil
}

// WindowCount returns the number of windows.
func (t *Timeline) WindowCount() int { return len(t.windows) }

// PeriodCount returns the number of periods.
func (t *Timeline) PeriodCount() int { return len(t.periods) }

// IsEmpty reports whether the timeline has no windows.
func (t *Timeline) IsEmpty() bool { return len(t.windows) == 0 }

// Window returns the window at index. For a dynamic window a non-zero
// projection advances the default position towards the live edge,
// clamped to the window bounds; when the projected position falls
// outside them the returned default position is TimeUnset.
func (t *Timeline) Window(index int, projection time.Duration) (Window, error) {
	if index < 0 || index >= len(t.windows) {
		return Window{}, fmt.Errorf("%w: window %d of %d", ErrIndexOutOfRange, index, len(t.windows))
	}
	w := t.windows[index]
	if projection != 0 && w.IsDynamic {
		if w.Duration == TimeUnset {
			w.DefaultPosition = TimeUnset
		} else if pos := w.DefaultPosition + projection; pos > w.Duration {
			w.DefaultPosition = TimeUnset
		} else {
			w.DefaultPosition = pos
		}
	}
	return w, nil
}

// Period returns the period at index. Identifiers are populated only
// when withIDs is set, so repeated calls that do not need identity
// stay cheap for callers that key on them.
func (t *Timeline) Period(index int, withIDs bool) (Period, error) {
	if index < 0 || index >= len(t.periods) {
		return Period{}, fmt.Errorf("%w: period %d of %d", ErrIndexOutOfRange, index, len(t.periods))
	}
	p := t.periods[index]
	if !withIDs {
		p.ID = ""
		p.UID = ""
	}
	return p, nil
}

// PeriodByUID returns the period with the given unique identifier.
func (t *Timeline) PeriodByUID(uid string) (Period, error) {
	return t.Period(t.IndexOfPeriod(uid), true)
}

// IndexOfPeriod returns the index of the period with the given unique
// identifier, or IndexUnset when the uid is unknown.
func (t *Timeline) IndexOfPeriod(uid string) int {
	if i, ok := t.indexByUID[uid]; ok {
		return i
	}
	return IndexUnset
}

// UIDOfPeriod returns the unique identifier of the period at index.
func (t *Timeline) UIDOfPeriod(index int) (string, error) {
	if index < 0 || index >= len(t.periods) {
		return "", fmt.Errorf("%w: period %d of %d", ErrIndexOutOfRange, index, len(t.periods))
	}
	return t.periods[index].UID, nil
}

// Equal reports structural equality with another timeline. It is used
// for change detection only, never for identity.
func (t *Timeline) Equal(o *Timeline) bool {
	if t == o {
		return true
	}
	if len(t.windows) != len(o.windows) || len(t.periods) != len(o.periods) {
		return false
	}
	for i := range t.windows {
		if !t.windows[i].Equal(&o.windows[i]) {
			return false
		}
	}
	for i := range t.periods {
		if !t.periods[i].Equal(&o.periods[i]) {
			return false
		}
	}
	return true
}
