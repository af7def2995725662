package timeline

import "math/rand"

// Order is the shuffle-ordering policy consulted by navigation when
// shuffle is enabled. Implementations must describe a permutation of
// [0, Length).
type Order interface {
	Length() int

	// NextIndex returns the index after index in playback order, or
	// IndexUnset when index is the last.
	NextIndex(index int) int

	// PreviousIndex returns the index before index in playback order,
	// or IndexUnset when index is the first.
	PreviousIndex(index int) int

	FirstIndex() int
	LastIndex() int
}

// unshuffledOrder plays windows in timeline order.
type unshuffledOrder struct {
	length int
}

// NewUnshuffledOrder returns the identity playback order.
func NewUnshuffledOrder(length int) Order {
	return unshuffledOrder{length: length}
}

func (o unshuffledOrder) Length() int { return o.length }

func (o unshuffledOrder) NextIndex(index int) int {
	if index >= o.length-1 {
		return IndexUnset
	}
	return index + 1
}

func (o unshuffledOrder) PreviousIndex(index int) int {
	if index <= 0 {
		return IndexUnset
	}
	return index - 1
}

func (o unshuffledOrder) FirstIndex() int {
	if o.length == 0 {
		return IndexUnset
	}
	return 0
}

func (o unshuffledOrder) LastIndex() int {
	return o.length - 1
}

// shuffledOrder is a seeded random permutation.
type shuffledOrder struct {
	shuffled []int // position in playback order -> window index
	inverse  []int // window index -> position in playback order
}

// NewShuffledOrder returns a playback order over a random permutation
// derived from seed. The seed is explicit so orders are reproducible.
func NewShuffledOrder(length int, seed int64) Order {
	o := shuffledOrder{
		shuffled: rand.New(rand.NewSource(seed)).Perm(length),
		inverse:  make([]int, length),
	}
	for pos, idx := range o.shuffled {
		o.inverse[idx] = pos
	}
	return o
}

func (o shuffledOrder) Length() int { return len(o.shuffled) }

func (o shuffledOrder) NextIndex(index int) int {
	pos := o.inverse[index]
	if pos >= len(o.shuffled)-1 {
		return IndexUnset
	}
	return o.shuffled[pos+1]
}

func (o shuffledOrder) PreviousIndex(index int) int {
	pos := o.inverse[index]
	if pos <= 0 {
		return IndexUnset
	}
	return o.shuffled[pos-1]
}

func (o shuffledOrder) FirstIndex() int {
	if len(o.shuffled) == 0 {
		return IndexUnset
	}
	return o.shuffled[0]
}

func (o shuffledOrder) LastIndex() int {
	if len(o.shuffled) == 0 {
		return IndexUnset
	}
	return o.shuffled[len(o.shuffled)-1]
}

// FirstWindowIndex returns the first window in playback order, or
// IndexUnset on an empty timeline.
func (t *Timeline) FirstWindowIndex(shuffled bool) int {
	if t.IsEmpty() {
		return IndexUnset
	}
	if shuffled {
		return t.order.FirstIndex()
	}
	return 0
}

// LastWindowIndex returns the last window in playback order, or
// IndexUnset on an empty timeline.
func (t *Timeline) LastWindowIndex(shuffled bool) int {
	if t.IsEmpty() {
		return IndexUnset
	}
	if shuffled {
		return t.order.LastIndex()
	}
	return len(t.windows) - 1
}

// NextWindowIndex returns the window to play after index. RepeatOff
// yields IndexUnset at the boundary, RepeatOne stays on index, and
// RepeatAll wraps to the first window in playback order.
func (t *Timeline) NextWindowIndex(index int, mode RepeatMode, shuffled bool) int {
	if t.IsEmpty() {
		return IndexUnset
	}
	switch mode {
	case RepeatOne:
		return index
	case RepeatAll:
		if index == t.LastWindowIndex(shuffled) {
			return t.FirstWindowIndex(shuffled)
		}
	default:
		if index == t.LastWindowIndex(shuffled) {
			return IndexUnset
		}
	}
	if shuffled {
		return t.order.NextIndex(index)
	}
	return index + 1
}

// PreviousWindowIndex returns the window to play before index, under
// the same boundary rules as NextWindowIndex.
func (t *Timeline) PreviousWindowIndex(index int, mode RepeatMode, shuffled bool) int {
	if t.IsEmpty() {
		return IndexUnset
	}
	switch mode {
	case RepeatOne:
		return index
	case RepeatAll:
		if index == t.FirstWindowIndex(shuffled) {
			return t.LastWindowIndex(shuffled)
		}
	default:
		if index == t.FirstWindowIndex(shuffled) {
			return IndexUnset
		}
	}
	if shuffled {
		return t.order.PreviousIndex(index)
	}
	return index - 1
}

// NextPeriodIndex returns the period after periodIndex in playback
// order, advancing into the next window when the period is the last of
// its window, or IndexUnset at the end of the timeline.
func (t *Timeline) NextPeriodIndex(periodIndex int, mode RepeatMode, shuffled bool) int {
	if periodIndex < 0 || periodIndex >= len(t.periods) {
		return IndexUnset
	}
	windowIndex := t.periods[periodIndex].WindowIndex
	if t.windows[windowIndex].LastPeriodIndex != periodIndex {
		return periodIndex + 1
	}
	nextWindow := t.NextWindowIndex(windowIndex, mode, shuffled)
	if nextWindow == IndexUnset {
		return IndexUnset
	}
	return t.windows[nextWindow].FirstPeriodIndex
}

// IsLastPeriod reports whether periodIndex is the final period in
// playback order.
func (t *Timeline) IsLastPeriod(periodIndex int, mode RepeatMode, shuffled bool) bool {
	return t.NextPeriodIndex(periodIndex, mode, shuffled) == IndexUnset
}
