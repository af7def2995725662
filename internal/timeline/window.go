package timeline

import (
	"math"
	"time"

	"github.com/llehouerou/reel/internal/ads"
)

const (
	// TimeUnset marks an unknown duration or position.
	TimeUnset time.Duration = math.MinInt64

	// IndexUnset is returned by lookups and navigation that find no
	// window or period.
	IndexUnset = -1
)

// RepeatMode defines how navigation behaves at window boundaries.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatOne:
		return "One"
	case RepeatAll:
		return "All"
	default:
		return "Unknown"
	}
}

// LiveConfiguration describes the live-playback parameters of a live
// window. A window is live iff it carries one.
type LiveConfiguration struct {
	TargetOffset time.Duration
	MinOffset    time.Duration
	MaxOffset    time.Duration
	MinSpeed     float64
	MaxSpeed     float64
}

// Equal reports whether two live configurations match.
func (c *LiveConfiguration) Equal(o *LiveConfiguration) bool {
	if c == nil || o == nil {
		return c == o
	}
	return *c == *o
}

// Window is a playable region of a timeline, usually one playlist
// entry. Windows are plain values; Timeline hands out copies.
type Window struct {
	// UID is the stable identity of the window.
	UID string

	// MediaID identifies the media descriptor associated with the
	// window. Media carries the descriptor itself; it is opaque to the
	// timeline and excluded from structural equality.
	MediaID string
	Media   any

	// PresentationStartTime and StartTime are wall-clock times; the
	// zero value means unknown or not applicable.
	PresentationStartTime time.Time
	StartTime             time.Time

	IsSeekable bool

	// IsDynamic reports that the window may still change, e.g. because
	// the live edge is growing.
	IsDynamic bool

	// Live is present iff the window is a live stream.
	Live *LiveConfiguration

	// IsPlaceholder reports that real data has not been loaded yet.
	IsPlaceholder bool

	FirstPeriodIndex int
	LastPeriodIndex  int

	// DefaultPosition is the offset into the window at which playback
	// starts by default. TimeUnset only when a non-zero live-edge
	// projection could not be satisfied within the window bounds.
	DefaultPosition time.Duration

	// Duration of the window, or TimeUnset.
	Duration time.Duration

	// PositionInFirstPeriod is the offset of the window start relative
	// to the start of its first period.
	PositionInFirstPeriod time.Duration
}

// IsLive reports whether the window is a live stream.
func (w *Window) IsLive() bool {
	return w.Live != nil
}

// Equal reports structural equality; the opaque Media descriptor is
// compared by MediaID only.
func (w *Window) Equal(o *Window) bool {
	return w.UID == o.UID &&
		w.MediaID == o.MediaID &&
		w.PresentationStartTime.Equal(o.PresentationStartTime) &&
		w.StartTime.Equal(o.StartTime) &&
		w.IsSeekable == o.IsSeekable &&
		w.IsDynamic == o.IsDynamic &&
		w.Live.Equal(o.Live) &&
		w.IsPlaceholder == o.IsPlaceholder &&
		w.FirstPeriodIndex == o.FirstPeriodIndex &&
		w.LastPeriodIndex == o.LastPeriodIndex &&
		w.DefaultPosition == o.DefaultPosition &&
		w.Duration == o.Duration &&
		w.PositionInFirstPeriod == o.PositionInFirstPeriod
}

// Period is one logical media segment of a timeline.
type Period struct {
	// ID is a display identifier, not necessarily unique. Optional.
	ID string

	// UID is the stable unique identifier of the period. Optional on
	// values returned with withIDs=false.
	UID string

	// WindowIndex is the index of the window this period belongs to.
	WindowIndex int

	// Duration of the period, or TimeUnset. Once known within a
	// snapshot it never becomes unknown again.
	Duration time.Duration

	// PositionInWindow is the position of the period start relative to
	// the window start. Negative when the window starts mid-period.
	PositionInWindow time.Duration

	// Ads is the ad schedule of the period, ads.None by default.
	Ads ads.Schedule
}

// Equal reports structural equality with another period.
func (p *Period) Equal(o *Period) bool {
	return p.ID == o.ID &&
		p.UID == o.UID &&
		p.WindowIndex == o.WindowIndex &&
		p.Duration == o.Duration &&
		p.PositionInWindow == o.PositionInWindow &&
		p.Ads.Equal(o.Ads)
}
