// Package player is the public operation surface of the playback
// core. The Player validates and normalizes requests on the control
// goroutine, drives the playback state machine, dispatches
// renderer-facing side effects through the command channel, and
// notifies listeners with coalesced per-unit events.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/dispatch"
	"github.com/llehouerou/reel/internal/event"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/renderer"
	"github.com/llehouerou/reel/internal/timeline"
)

var (
	// ErrReleased rejects operations on a released player.
	ErrReleased = errors.New("player: released")

	// ErrWrongGoroutine rejects public operations issued off the
	// control goroutine when the player is configured to fail fast.
	ErrWrongGoroutine = errors.New("player: accessed from a goroutine other than the control goroutine")
)

// Player coordinates the playback core. All public operations must be
// issued from the goroutine that created the player (the control
// goroutine); listener registration and the Report* feedback entry
// points are safe from any goroutine.
type Player struct {
	cfg config.PlayerConfig
	log *slog.Logger

	controlID uint64
	wrongOnce sync.Once

	machine *playback.Machine
	tl      *timeline.Timeline
	items   *playlist.Playlist
	history *playlist.History

	channel   *dispatch.Channel
	renderers []renderer.Renderer
	arbiter   FocusArbiter

	shuffleSeed int64

	surface     renderer.Surface
	ownsSurface bool
	surfaceW    int
	surfaceH    int

	volume    float64
	isLoading bool

	listenersMu sync.Mutex
	listeners   atomic.Pointer[[]*Listener]

	pendingMu sync.Mutex
	pending   []func(*Player)

	unit     unit
	released bool
}

// unit carries the payloads accumulated for the current processing
// unit; it is reset on every flush.
type unit struct {
	timelineReason TimelineChangeReason
	transition     *ItemTransition
	discontinuity  DiscontinuityReason
}

// Option configures a Player at construction.
type Option func(*Player)

// WithFocusArbiter installs the audio-routing arbitration consulted on
// every play intent.
func WithFocusArbiter(a FocusArbiter) Option {
	return func(p *Player) { p.arbiter = a }
}

// WithShuffleSeed fixes the seed of the shuffle order, making shuffled
// navigation reproducible.
func WithShuffleSeed(seed int64) Option {
	return func(p *Player) { p.shuffleSeed = seed }
}

// New creates a player bound to the calling goroutine as its control
// goroutine.
func New(cfg config.PlayerConfig, log *slog.Logger, renderers []renderer.Renderer, opts ...Option) *Player {
	p := &Player{
		cfg:         cfg,
		log:         log,
		controlID:   goroutineID(),
		machine:     playback.NewMachine(),
		tl:          timeline.Empty,
		items:       playlist.New(),
		history:     playlist.NewHistory(32),
		renderers:   renderers,
		shuffleSeed: time.Now().UnixNano(),
		volume:      1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.channel = dispatch.NewChannel(log)
	p.history.Push(nil)
	empty := []*Listener{}
	p.listeners.Store(&empty)
	return p
}

// guard is the entry check of every mutating public operation.
func (p *Player) guard() error {
	if err := p.verifyControlGoroutine(); err != nil {
		return err
	}
	if p.released {
		return ErrReleased
	}
	return nil
}

func (p *Player) verifyControlGoroutine() error {
	if goroutineID() == p.controlID {
		return nil
	}
	if p.cfg.FailOnWrongGoroutine {
		return ErrWrongGoroutine
	}
	p.wrongOnce.Do(func() {
		p.log.Warn("player accessed from wrong goroutine; this warning is only logged once")
	})
	return nil
}

// goroutineID parses the current goroutine id out of the stack header.
// Only used for the control-goroutine check.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		if id, err := strconv.ParseUint(s[:i], 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// Release frees the player's resources. It awaits the renderer
// hand-off (bounded by ReleaseTimeout), stops the command channel and
// rejects all further operations. Safe to call more than once.
func (p *Player) Release() error {
	if err := p.verifyControlGoroutine(); err != nil {
		return err
	}
	if p.released {
		return nil
	}
	p.released = true

	cmds := p.sendToRenderers(renderer.TrackVideo, renderer.KindSetSurface, nil)
	if err := dispatch.AwaitAll(cmds, p.cfg.ReleaseTimeout.Std()); err != nil {
		p.log.Warn("renderer release not confirmed before timeout", "error", err)
	}
	if p.ownsSurface && p.surface != nil {
		p.surface.Release()
	}
	p.surface = nil
	p.channel.Close()
	return nil
}

// sendToRenderers issues one command per renderer of the given track
// type and returns the delivery handles.
func (p *Player) sendToRenderers(t renderer.TrackType, kind int, payload any) []*dispatch.Command {
	var cmds []*dispatch.Command
	for _, r := range p.renderers {
		if r.TrackType() == t {
			cmds = append(cmds, p.channel.Send(r, kind, payload))
		}
	}
	return cmds
}

// currentItemID returns the id of the item under the current window
// index, or "".
func (p *Player) currentItemID() string {
	item := p.items.Item(p.machine.State().WindowIndex)
	if item == nil {
		return ""
	}
	return item.ID
}

func (p *Player) markItemTransition(windowIndex int, reason MediaItemTransitionReason) {
	p.machine.MarkAux(event.AspectMediaItem)
	p.unit.transition = &ItemTransition{
		Item:   p.items.Item(windowIndex),
		Reason: reason,
	}
}

// rebuildTimeline derives a fresh snapshot from the playlist. A
// structurally equal result fires no timeline event at all.
func (p *Player) rebuildTimeline(reason TimelineChangeReason) error {
	order := timeline.NewUnshuffledOrder(p.items.Len())
	if p.machine.State().Shuffle {
		order = timeline.NewShuffledOrder(p.items.Len(), p.shuffleSeed)
	}
	tl, err := playlist.BuildTimeline(p.items.Items(), timeline.WithOrder(order))
	if err != nil {
		return fmt.Errorf("player: rebuild timeline: %w", err)
	}
	if !tl.Equal(p.tl) {
		p.machine.MarkAux(event.AspectTimeline)
		p.unit.timelineReason = reason
	}
	p.tl = tl
	return nil
}
