// Package dispatch delivers one-shot commands across the boundary
// between the control goroutine and the internal execution path. A
// command is enqueued without blocking; callers that must not observe
// two versions of an exclusive resource await its delivery against an
// explicit timeout.
package dispatch

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrDeliveryTimeout is returned when a command was not processed
	// within the await bound. The in-flight command is not cancelled.
	ErrDeliveryTimeout = errors.New("dispatch: delivery not confirmed within timeout")

	// ErrChannelClosed rejects sends on a closed channel.
	ErrChannelClosed = errors.New("dispatch: channel closed")
)

// Target is an internal execution target, typically a renderer.
type Target interface {
	HandleCommand(kind int, payload any) error
}

// Command is a one-shot command addressed to a target. It is created
// by Channel.Send and must not be reused.
type Command struct {
	target  Target
	kind    int
	payload any

	done chan struct{}
	err  error // written once, before done closes
}

// Done is closed once the target has processed the command.
func (c *Command) Done() <-chan struct{} {
	return c.done
}

// AwaitDelivery blocks until the target has processed the command or
// the timeout elapses. A timeout failure does not cancel the command;
// it may still be applied later. When the command was processed, the
// handler's error (if any) is returned.
func (c *Command) AwaitDelivery(timeout time.Duration) error {
	select {
	case <-c.done:
		return c.err
	default:
	}
	if timeout <= 0 {
		return ErrDeliveryTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-c.done:
		return c.err
	case <-timer.C:
		return ErrDeliveryTimeout
	}
}

func (c *Command) deliver(err error) {
	c.err = err
	close(c.done)
}

// Channel owns the single internal worker goroutine that applies
// commands in send order.
type Channel struct {
	log *slog.Logger

	mu      sync.Mutex
	pending []*Command
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewChannel starts the internal worker.
func NewChannel(log *slog.Logger) *Channel {
	ch := &Channel{
		log:  log,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go ch.run()
	return ch
}

// Send enqueues a command for asynchronous execution and returns
// immediately. On a closed channel the returned command is already
// failed with ErrChannelClosed.
func (ch *Channel) Send(target Target, kind int, payload any) *Command {
	cmd := &Command{
		target:  target,
		kind:    kind,
		payload: payload,
		done:    make(chan struct{}),
	}
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		cmd.deliver(ErrChannelClosed)
		return cmd
	}
	ch.pending = append(ch.pending, cmd)
	ch.mu.Unlock()
	select {
	case ch.wake <- struct{}{}:
	default:
	}
	return cmd
}

// Close stops accepting commands, lets the worker finish everything
// already queued, and waits for it to exit. Safe to call more than
// once.
func (ch *Channel) Close() {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		<-ch.done
		return
	}
	ch.closed = true
	ch.mu.Unlock()
	close(ch.quit)
	<-ch.done
}

func (ch *Channel) run() {
	defer close(ch.done)
	for {
		ch.drain()
		select {
		case <-ch.wake:
		case <-ch.quit:
			ch.drain()
			return
		}
	}
}

func (ch *Channel) drain() {
	for {
		ch.mu.Lock()
		if len(ch.pending) == 0 {
			ch.mu.Unlock()
			return
		}
		cmd := ch.pending[0]
		ch.pending = ch.pending[1:]
		ch.mu.Unlock()

		err := cmd.target.HandleCommand(cmd.kind, cmd.payload)
		if err != nil {
			ch.log.Warn("command handler failed", "kind", cmd.kind, "error", err)
		}
		cmd.deliver(err)
	}
}

// AwaitAll waits for delivery of every command against one shared
// deadline. Any single miss fails the whole hand-off with
// ErrDeliveryTimeout; handler errors are returned as encountered.
func AwaitAll(cmds []*Command, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for _, cmd := range cmds {
		if err := cmd.AwaitDelivery(time.Until(deadline)); err != nil {
			return err
		}
	}
	return nil
}
