// Package playlist holds the ordered media items the player feeds
// into timeline construction.
package playlist

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/llehouerou/reel/internal/ads"
	"github.com/llehouerou/reel/internal/timeline"
)

// Item describes one playlist entry.
type Item struct {
	// ID is the stable identity of the item. NewID assigns
	// creation-ordered identifiers.
	ID string

	URI   string
	Title string

	// Duration of the media, or timeline.TimeUnset until known.
	Duration time.Duration

	Seekable bool

	// Dynamic marks media whose structure may still change.
	Dynamic bool

	// Live is present iff the item is a live stream.
	Live *timeline.LiveConfiguration

	// DefaultPosition is the offset at which playback starts.
	DefaultPosition time.Duration

	// StartTime is the wall-clock start of the item, zero if not
	// applicable.
	StartTime time.Time

	// Ads is the item's ad schedule, ads.None by default.
	Ads ads.Schedule
}

// NewID returns a new creation-ordered item identifier.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Playlist holds an ordered collection of items. Edits validate their
// ranges and leave the playlist untouched on failure.
type Playlist struct {
	items []Item
}

// New creates an empty playlist.
func New() *Playlist {
	return &Playlist{items: make([]Item, 0)}
}

// Add inserts items at index; index == Len appends.
func (p *Playlist) Add(index int, items ...Item) error {
	if index < 0 || index > len(p.items) {
		return fmt.Errorf("playlist: insert index %d out of range [0, %d]", index, len(p.items))
	}
	p.items = append(p.items[:index], append(append([]Item(nil), items...), p.items[index:]...)...)
	return nil
}

// Remove removes the items in [from, to).
func (p *Playlist) Remove(from, to int) error {
	if from < 0 || to < from || to > len(p.items) {
		return fmt.Errorf("playlist: remove range [%d, %d) out of range [0, %d)", from, to, len(p.items))
	}
	p.items = append(p.items[:from], p.items[to:]...)
	return nil
}

// Move moves the items in [from, to) so that they start at newIndex,
// expressed against the playlist after removal.
func (p *Playlist) Move(from, to, newIndex int) error {
	if from < 0 || to < from || to > len(p.items) {
		return fmt.Errorf("playlist: move range [%d, %d) out of range [0, %d)", from, to, len(p.items))
	}
	if newIndex < 0 || newIndex > len(p.items)-(to-from) {
		return fmt.Errorf("playlist: move target %d out of range", newIndex)
	}
	block := append([]Item(nil), p.items[from:to]...)
	rest := append(p.items[:from:from], p.items[to:]...)
	p.items = append(rest[:newIndex:newIndex], append(block, rest[newIndex:]...)...)
	return nil
}

// Replace clears the playlist and adds the given items.
func (p *Playlist) Replace(items ...Item) {
	p.items = append(p.items[:0:0], items...)
}

// Items returns a copy of all items.
func (p *Playlist) Items() []Item {
	return append([]Item(nil), p.items...)
}

// Item returns the item at index, or nil if out of bounds.
func (p *Playlist) Item(index int) *Item {
	if index < 0 || index >= len(p.items) {
		return nil
	}
	item := p.items[index]
	return &item
}

// ItemByID returns the item with the given id, or nil.
func (p *Playlist) ItemByID(id string) *Item {
	return p.Item(p.IndexOf(id))
}

// Update replaces the stored item carrying the same id. Unknown ids
// are ignored.
func (p *Playlist) Update(item Item) {
	if i := p.IndexOf(item.ID); i >= 0 {
		p.items[i] = item
	}
}

// IndexOf returns the index of the item with the given id, or -1.
func (p *Playlist) IndexOf(id string) int {
	for i := range p.items {
		if p.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of items.
func (p *Playlist) Len() int {
	return len(p.items)
}
