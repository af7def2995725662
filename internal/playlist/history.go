package playlist

// History is a bounded undo/redo stack of item-list snapshots. The
// first push after construction seeds the baseline; every later push
// records the list as it stands after an edit.
type History struct {
	snapshots [][]Item
	cursor    int
	limit     int
}

// NewHistory creates a history that keeps at most limit snapshots.
func NewHistory(limit int) *History {
	return &History{cursor: -1, limit: limit}
}

func cloneItems(items []Item) []Item {
	return append([]Item(nil), items...)
}

// Push records a snapshot, discarding any redo tail. The oldest
// snapshots fall off once the limit is exceeded.
func (h *History) Push(items []Item) {
	h.snapshots = append(h.snapshots[:h.cursor+1], cloneItems(items))
	if n := len(h.snapshots) - h.limit; n > 0 {
		h.snapshots = h.snapshots[:copy(h.snapshots, h.snapshots[n:])]
	}
	h.cursor = len(h.snapshots) - 1
}

// Undo steps back and returns that snapshot, or false when the cursor
// is already at the baseline.
func (h *History) Undo() ([]Item, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return cloneItems(h.snapshots[h.cursor]), true
}

// Redo steps forward and returns that snapshot, or false when the
// cursor is already at the newest one.
func (h *History) Redo() ([]Item, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return cloneItems(h.snapshots[h.cursor]), true
}

// CanUndo reports whether a snapshot precedes the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a snapshot follows the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}
