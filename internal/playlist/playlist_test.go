package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeItems() []Item {
	return []Item{
		{ID: "a", URI: "/a.mkv"},
		{ID: "b", URI: "/b.mkv"},
		{ID: "c", URI: "/c.mkv"},
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Fatal("NewID returned duplicate ids")
	}
	if len(a) != 26 {
		t.Errorf("id length = %d, want 26", len(a))
	}
}

func TestAdd(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(0, threeItems()...))
	assert.Equal(t, 3, p.Len())

	require.NoError(t, p.Add(1, Item{ID: "x"}))
	assert.Equal(t, []string{"a", "x", "b", "c"}, ids(p))

	// Appending at Len is allowed.
	require.NoError(t, p.Add(4, Item{ID: "y"}))
	assert.Equal(t, "y", p.Item(4).ID)

	assert.Error(t, p.Add(-1, Item{}))
	assert.Error(t, p.Add(99, Item{}))
}

func TestRemove(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(0, threeItems()...))

	require.NoError(t, p.Remove(1, 2))
	assert.Equal(t, []string{"a", "c"}, ids(p))

	// Empty range is a no-op.
	require.NoError(t, p.Remove(1, 1))
	assert.Equal(t, 2, p.Len())

	assert.Error(t, p.Remove(-1, 1))
	assert.Error(t, p.Remove(1, 0))
	assert.Error(t, p.Remove(0, 5))
	assert.Equal(t, 2, p.Len(), "failed edits leave the playlist untouched")
}

func TestMove(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(0, threeItems()...))

	require.NoError(t, p.Move(0, 1, 2))
	assert.Equal(t, []string{"b", "c", "a"}, ids(p))

	require.NoError(t, p.Move(1, 3, 0))
	assert.Equal(t, []string{"c", "a", "b"}, ids(p))

	assert.Error(t, p.Move(0, 4, 0))
	assert.Error(t, p.Move(0, 2, 2))
}

func TestReplaceAndItems(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(0, threeItems()...))
	p.Replace(Item{ID: "z"})
	assert.Equal(t, []string{"z"}, ids(p))

	// Items returns a copy.
	items := p.Items()
	items[0].ID = "mutated"
	assert.Equal(t, "z", p.Item(0).ID)
}

func TestItemLookups(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(0, threeItems()...))

	assert.Nil(t, p.Item(-1))
	assert.Nil(t, p.Item(3))
	assert.Equal(t, "b", p.Item(1).ID)

	assert.Equal(t, 2, p.IndexOf("c"))
	assert.Equal(t, -1, p.IndexOf("missing"))

	assert.Equal(t, "b", p.ItemByID("b").ID)
	assert.Nil(t, p.ItemByID("missing"))
}

func TestUpdate(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(0, threeItems()...))

	p.Update(Item{ID: "b", Title: "renamed"})
	assert.Equal(t, "renamed", p.Item(1).Title)

	// Unknown ids are ignored.
	p.Update(Item{ID: "missing", Title: "nope"})
	assert.Equal(t, 3, p.Len())
}

func ids(p *Playlist) []string {
	var out []string
	for _, item := range p.Items() {
		out = append(out, item.ID)
	}
	return out
}
