// Package typewriter produces the typing then deleting text animation
// used by the hero banner and the animated tagline widgets.
//
// Machine is the pure state machine and can be stepped by hand. Cycler
// drives a Machine from a Scheduler and reports each change in the
// displayed text to its observers until it is cancelled.
package typewriter

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Observer receives the displayed text after every change, and whether
// the machine was typing (true) or deleting (false) when it changed.
type Observer func(text string, typing bool)

// Cycler owns one Machine and its single pending timer.
type Cycler struct {
	scheduler Scheduler

	mu        sync.Mutex
	machine   *Machine
	pending   Timer
	gen       uint64
	running   bool
	observers []Observer
	finished  chan struct{}

	cancelled atomic.Bool
}

// New validates cfg and returns a stopped Cycler. Nothing is scheduled
// until Start.
func New(cfg Config, scheduler Scheduler) (*Cycler, error) {
	machine, err := NewMachine(cfg)
	if err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	c := &Cycler{
		scheduler: scheduler,
		machine:   machine,
		finished:  make(chan struct{}),
	}
	if machine.Done() {
		close(c.finished)
	}
	return c, nil
}

// Subscribe registers o for every later change of the displayed text.
func (c *Cycler) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Start schedules the first tick. Calling it again, or after Cancel,
// does nothing.
func (c *Cycler) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || c.cancelled.Load() {
		return
	}
	c.running = true
	c.scheduleLocked()
}

// Cancel invalidates the pending tick. No observer is called and no
// state changes after Cancel returns, including for a tick that was
// already queued. Cancel may be called any number of times, including
// from inside an observer.
func (c *Cycler) Cancel() {
	if c.cancelled.Swap(true) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// Cancelled reports whether Cancel has been called.
func (c *Cycler) Cancelled() bool { return c.cancelled.Load() }

// Finished is closed when a non-looping cycler types its last phrase.
// It is never closed for a looping cycler.
func (c *Cycler) Finished() <-chan struct{} { return c.finished }

// Frame returns the currently displayed text.
func (c *Cycler) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Frame()
}

func (c *Cycler) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

func (c *Cycler) scheduleLocked() {
	if c.machine.Done() {
		return
	}
	c.gen++
	gen := c.gen
	c.pending = c.scheduler.AfterFunc(c.machine.Delay(), func() { c.fire(gen) })
}

// fire applies one tick, notifies observers outside the lock and only
// then schedules the successor, so ticks stay strictly sequential.
func (c *Cycler) fire(gen uint64) {
	c.mu.Lock()
	if c.cancelled.Load() || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	changed := c.machine.Tick()
	frame := c.machine.Frame()
	done := c.machine.Done()
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	if changed {
		for _, o := range observers {
			if c.cancelled.Load() {
				return
			}
			o(frame.Text, frame.Typing)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled.Load() || gen != c.gen {
		return
	}
	if done {
		close(c.finished)
		return
	}
	c.scheduleLocked()
}
