// Package ads models the ad-insertion schedule attached to a timeline
// period. A Schedule is an immutable snapshot: every mutation returns a
// new value, so readers can hold one without synchronization.
package ads

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// CountUnset marks a group whose ad count is not yet known.
	CountUnset = -1

	// IndexUnset is returned by group lookups that find no match.
	IndexUnset = -1

	// TimeUnset marks an unknown duration.
	TimeUnset time.Duration = math.MinInt64

	// PostRoll is the trigger-time sentinel for a group anchored at the
	// end of the period. It sorts after every real trigger time.
	PostRoll time.Duration = math.MaxInt64
)

// AdState is the playback state of a single ad within a group.
type AdState int

const (
	AdStateUnavailable AdState = iota
	AdStateAvailable
	AdStatePlayed
	AdStateSkipped
)

// String returns the ad state name.
func (s AdState) String() string {
	switch s {
	case AdStateUnavailable:
		return "Unavailable"
	case AdStateAvailable:
		return "Available"
	case AdStatePlayed:
		return "Played"
	case AdStateSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// ErrStateReverted is returned when a played or skipped ad would be
// moved back to an earlier state.
var ErrStateReverted = errors.New("ads: played or skipped ad cannot revert")

// Group holds per-group bookkeeping: the number of ads (CountUnset
// until known), per-ad states and durations.
type Group struct {
	Count     int
	States    []AdState
	Durations []time.Duration
}

// NextAdToPlay returns the index of the first ad after lastPlayedAd
// that still needs to be played. The result may be past the known
// states when the count is not yet known.
func (g Group) NextAdToPlay(lastPlayedAd int) int {
	next := lastPlayedAd + 1
	for next < len(g.States) {
		if g.States[next] == AdStateUnavailable || g.States[next] == AdStateAvailable {
			break
		}
		next++
	}
	return next
}

// FirstAdToPlay returns the index of the first ad to play, skipping
// leading played or skipped ads.
func (g Group) FirstAdToPlay() int {
	return g.NextAdToPlay(-1)
}

// HasUnplayedAds reports whether the group still has an ad to play. A
// group with an unknown count always does.
func (g Group) HasUnplayedAds() bool {
	return g.Count == CountUnset || g.FirstAdToPlay() < g.Count
}

func (g Group) equal(o Group) bool {
	if g.Count != o.Count || len(g.States) != len(o.States) || len(g.Durations) != len(o.Durations) {
		return false
	}
	for i := range g.States {
		if g.States[i] != o.States[i] {
			return false
		}
	}
	for i := range g.Durations {
		if g.Durations[i] != o.Durations[i] {
			return false
		}
	}
	return true
}

func (g Group) copy() Group {
	c := Group{Count: g.Count}
	c.States = append([]AdState(nil), g.States...)
	c.Durations = append([]time.Duration(nil), g.Durations...)
	return c
}

// Schedule is the immutable ad schedule of one period.
type Schedule struct {
	id             string
	times          []time.Duration
	groups         []Group
	resumePosition time.Duration
}

// None is the schedule of a period without ads.
var None = Schedule{}

// NewSchedule creates a schedule identified by the opaque id, with one
// group per trigger time. Trigger times must be non-decreasing; a
// PostRoll sentinel anchors a group at the period end.
func NewSchedule(id string, times ...time.Duration) (Schedule, error) {
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return Schedule{}, fmt.Errorf("ads: trigger times not sorted at group %d", i)
		}
	}
	groups := make([]Group, len(times))
	for i := range groups {
		groups[i] = Group{Count: CountUnset}
	}
	return Schedule{
		id:     id,
		times:  append([]time.Duration(nil), times...),
		groups: groups,
	}, nil
}

// ID returns the opaque identity of the ads source this schedule came
// from.
func (s Schedule) ID() string { return s.id }

// GroupCount returns the number of ad groups.
func (s Schedule) GroupCount() int { return len(s.groups) }

// GroupTime returns the trigger time of group i.
func (s Schedule) GroupTime(i int) time.Duration { return s.times[i] }

// AdCount returns the number of ads in group i, or CountUnset.
func (s Schedule) AdCount(i int) int { return s.groups[i].Count }

// HasUnplayedAds reports whether group i still has an ad to play.
func (s Schedule) HasUnplayedAds(i int) bool { return s.groups[i].HasUnplayedAds() }

// FirstAdToPlay returns the first ad index to play in group i.
func (s Schedule) FirstAdToPlay(i int) int { return s.groups[i].FirstAdToPlay() }

// NextAdToPlay returns the next ad index to play in group i after
// lastPlayedAd.
func (s Schedule) NextAdToPlay(i, lastPlayedAd int) int {
	return s.groups[i].NextAdToPlay(lastPlayedAd)
}

// AdDuration returns the duration of an ad, or TimeUnset while the
// group's count (and therefore its durations) is unknown.
func (s Schedule) AdDuration(i, ad int) time.Duration {
	g := s.groups[i]
	if g.Count == CountUnset || ad >= len(g.Durations) {
		return TimeUnset
	}
	return g.Durations[ad]
}

// ResumePosition returns the offset into the first unplayed ad at
// which playback should resume.
func (s Schedule) ResumePosition() time.Duration { return s.resumePosition }

// GroupIndexForPosition returns the index of the group at or before
// pos that still has unplayed ads, or IndexUnset. periodDuration may
// be TimeUnset when the period length is unknown.
func (s Schedule) GroupIndexForPosition(pos, periodDuration time.Duration) int {
	i := len(s.times) - 1
	for i >= 0 && s.positionBeforeGroup(pos, periodDuration, i) {
		i--
	}
	if i >= 0 && s.groups[i].HasUnplayedAds() {
		return i
	}
	return IndexUnset
}

// GroupIndexAfterPosition returns the index of the first group
// strictly after pos that has unplayed ads, or IndexUnset. A post-roll
// group counts as after any mid-period position.
func (s Schedule) GroupIndexAfterPosition(pos, periodDuration time.Duration) int {
	for i := 0; i < len(s.times); i++ {
		after := s.times[i] == PostRoll || pos < s.times[i]
		if after && s.groups[i].HasUnplayedAds() {
			return i
		}
	}
	return IndexUnset
}

// positionBeforeGroup reports whether pos falls strictly before the
// trigger point of group i. A post-roll group starts at the period
// end, which is unreachable while the duration is unknown.
func (s Schedule) positionBeforeGroup(pos, periodDuration time.Duration, i int) bool {
	t := s.times[i]
	if t == PostRoll {
		return periodDuration == TimeUnset || pos < periodDuration
	}
	return pos < t
}

// WithAdCount returns a copy with the ad count of group i set. The
// count is immutable once known.
func (s Schedule) WithAdCount(i, count int) (Schedule, error) {
	if count < 0 {
		return Schedule{}, fmt.Errorf("ads: invalid ad count %d", count)
	}
	if s.groups[i].Count != CountUnset && s.groups[i].Count != count {
		return Schedule{}, fmt.Errorf("ads: ad count of group %d already set", i)
	}
	c := s.copyWithGroup(i)
	g := &c.groups[i]
	g.Count = count
	for len(g.States) < count {
		g.States = append(g.States, AdStateUnavailable)
	}
	for len(g.Durations) < count {
		g.Durations = append(g.Durations, TimeUnset)
	}
	return c, nil
}

// WithAvailableAd returns a copy with one ad marked available.
func (s Schedule) WithAvailableAd(i, ad int) (Schedule, error) {
	return s.withAdState(i, ad, AdStateAvailable)
}

// WithPlayedAd returns a copy with one ad marked played.
func (s Schedule) WithPlayedAd(i, ad int) (Schedule, error) {
	return s.withAdState(i, ad, AdStatePlayed)
}

// WithSkippedAd returns a copy with one ad marked skipped.
func (s Schedule) WithSkippedAd(i, ad int) (Schedule, error) {
	return s.withAdState(i, ad, AdStateSkipped)
}

func (s Schedule) withAdState(i, ad int, st AdState) (Schedule, error) {
	g := s.groups[i]
	if ad >= len(g.States) {
		if g.Count != CountUnset {
			return Schedule{}, fmt.Errorf("ads: ad %d out of range in group %d", ad, i)
		}
		// Grow the known states up to the ad being marked.
		var err error
		s, err = s.growStates(i, ad+1)
		if err != nil {
			return Schedule{}, err
		}
		g = s.groups[i]
	}
	cur := g.States[ad]
	if (cur == AdStatePlayed || cur == AdStateSkipped) && cur != st {
		return Schedule{}, ErrStateReverted
	}
	c := s.copyWithGroup(i)
	c.groups[i].States[ad] = st
	if st == AdStatePlayed || st == AdStateSkipped {
		c.resumePosition = 0
	}
	return c, nil
}

// WithAdDurations returns a copy with the per-ad durations of group i
// set.
func (s Schedule) WithAdDurations(i int, durations ...time.Duration) (Schedule, error) {
	g := s.groups[i]
	if g.Count != CountUnset && len(durations) != g.Count {
		return Schedule{}, fmt.Errorf("ads: %d durations for group %d with %d ads", len(durations), i, g.Count)
	}
	c := s.copyWithGroup(i)
	c.groups[i].Durations = append([]time.Duration(nil), durations...)
	return c, nil
}

// WithResumePosition returns a copy with the resume offset into the
// first unplayed ad set.
func (s Schedule) WithResumePosition(pos time.Duration) Schedule {
	c := s.copyWithGroup(-1)
	c.resumePosition = pos
	return c
}

func (s Schedule) growStates(i, n int) (Schedule, error) {
	c := s.copyWithGroup(i)
	g := &c.groups[i]
	for len(g.States) < n {
		g.States = append(g.States, AdStateUnavailable)
	}
	return c, nil
}

// copyWithGroup shallow-copies the schedule, deep-copying group i
// (pass -1 to copy no group) so the original stays untouched.
func (s Schedule) copyWithGroup(i int) Schedule {
	c := Schedule{
		id:             s.id,
		times:          s.times,
		groups:         append([]Group(nil), s.groups...),
		resumePosition: s.resumePosition,
	}
	if i >= 0 {
		c.groups[i] = s.groups[i].copy()
	}
	return c
}

// Equal reports structural equality with another schedule.
func (s Schedule) Equal(o Schedule) bool {
	if s.id != o.id || s.resumePosition != o.resumePosition || len(s.times) != len(o.times) {
		return false
	}
	for i := range s.times {
		if s.times[i] != o.times[i] || !s.groups[i].equal(o.groups[i]) {
			return false
		}
	}
	return true
}
