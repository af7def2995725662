package renderer

import (
	"sync"
	"time"
)

// ReceivedCommand is one command a Fake renderer has processed.
type ReceivedCommand struct {
	Kind    int
	Payload any
}

// Fake is a renderer for tests. It records every command and can be
// configured to fail or to sleep on specific kinds, which is how the
// hand-off timeout paths are exercised.
type Fake struct {
	trackType TrackType

	mu       sync.Mutex
	received []ReceivedCommand

	// Fail maps a command kind to the error its handler returns.
	Fail map[int]error

	// Delay maps a command kind to how long its handler sleeps before
	// completing.
	Delay map[int]time.Duration
}

// NewFake creates a fake renderer of the given track type.
func NewFake(t TrackType) *Fake {
	return &Fake{
		trackType: t,
		Fail:      make(map[int]error),
		Delay:     make(map[int]time.Duration),
	}
}

// TrackType returns the configured track type.
func (f *Fake) TrackType() TrackType {
	return f.trackType
}

// HandleCommand records the command after any configured delay.
func (f *Fake) HandleCommand(kind int, payload any) error {
	if d, ok := f.Delay[kind]; ok {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.received = append(f.received, ReceivedCommand{Kind: kind, Payload: payload})
	f.mu.Unlock()
	return f.Fail[kind]
}

// Received returns a copy of the commands processed so far.
func (f *Fake) Received() []ReceivedCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ReceivedCommand(nil), f.received...)
}

// FakeSurface is a Surface for tests that records release calls.
type FakeSurface struct {
	mu       sync.Mutex
	released int
}

// Release records the call.
func (s *FakeSurface) Release() {
	s.mu.Lock()
	s.released++
	s.mu.Unlock()
}

// Released returns how many times Release was called.
func (s *FakeSurface) Released() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
