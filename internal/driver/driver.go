// Package driver holds the term count and play state behind the list and
// bar views, and owns the ticker that cycles the count during auto-play.
//
// Every change goes through Dispatch under a single lock. The auto-play
// ticker is a goroutine owned by the Driver; it is cancelled on stop,
// reset, manual input and Close, and ticks from a cancelled ticker are
// dropped by generation so they never mutate state.
package driver

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/san-kum/fibviz/internal/fib"
	"github.com/san-kum/fibviz/internal/logging"
)

const (
	DefaultInterval = 800 * time.Millisecond
	DefaultTerms    = 8
	ResetTerms      = 2
	// WrapAt is the last count reached by auto-play before it wraps to
	// ResetTerms.
	WrapAt = 20
)

// State is a snapshot handed to views and subscribers. Version increases
// with every change so late notifications can be told apart.
type State struct {
	Count    int
	Playing  bool
	Sequence []int64
	Version  uint64
}

func (s State) clone() State {
	s.Sequence = append([]int64(nil), s.Sequence...)
	return s
}

type Kind int

const (
	SetTerms Kind = iota
	TogglePlay
	Reset
	Tick
)

func (k Kind) String() string {
	switch k {
	case SetTerms:
		return "set_terms"
	case TogglePlay:
		return "toggle_play"
	case Reset:
		return "reset"
	case Tick:
		return "tick"
	}
	return "unknown"
}

// Action is the only way to change a Driver.
type Action struct {
	Kind  Kind
	Input string // raw text for SetTerms
	gen   uint64 // ticker generation for Tick
}

type ticker struct {
	gen    uint64
	cancel context.CancelFunc
}

type Driver struct {
	mu        sync.Mutex
	state     State
	interval  time.Duration
	ticker    *ticker
	gen       uint64
	running   sync.WaitGroup
	closed    bool
	listeners []func(State)
	log       *logging.Logger
}

type Option func(*Driver)

// WithInterval overrides the auto-play period.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(dr *Driver) {
		if l != nil {
			dr.log = l
		}
	}
}

// WithInitial sets the starting term count and play state. Counts outside
// the valid range fall back to DefaultTerms.
func WithInitial(count int, playing bool) Option {
	return func(dr *Driver) {
		if fib.ValidTerms(count) {
			dr.state.Count = count
		}
		dr.state.Playing = playing
	}
}

func New(opts ...Option) *Driver {
	d := &Driver{
		state:    State{Count: DefaultTerms},
		interval: DefaultInterval,
		log:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With("component", "driver")
	d.state.Sequence = fib.Generate(d.state.Count)
	if d.state.Playing {
		d.startLocked()
	}
	return d
}

// Subscribe registers fn to receive every state change. fn runs outside
// the driver lock, possibly on the ticker goroutine.
func (d *Driver) Subscribe(fn func(State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.clone()
}

// Running reports whether an auto-play ticker is live.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticker != nil
}

// SetInput applies manually entered text. Invalid input is ignored and
// reported by the false return.
func (d *Driver) SetInput(raw string) bool {
	_, ok := d.dispatch(Action{Kind: SetTerms, Input: raw})
	return ok
}

func (d *Driver) Toggle() State { return d.Dispatch(Action{Kind: TogglePlay}) }

func (d *Driver) Reset() State { return d.Dispatch(Action{Kind: Reset}) }

// Dispatch applies a and returns the resulting state.
func (d *Driver) Dispatch(a Action) State {
	s, _ := d.dispatch(a)
	return s
}

func (d *Driver) dispatch(a Action) (State, bool) {
	d.mu.Lock()
	if d.closed {
		s := d.state.clone()
		d.mu.Unlock()
		return s, false
	}

	next, ok := d.reduce(a)
	if !ok {
		s := d.state.clone()
		d.mu.Unlock()
		return s, false
	}

	wasPlaying := d.state.Playing
	d.state = next
	switch {
	case !wasPlaying && next.Playing:
		d.startLocked()
	case wasPlaying && !next.Playing:
		d.stopLocked()
	}

	s := d.state.clone()
	listeners := slices.Clone(d.listeners)
	d.mu.Unlock()

	d.log.Debug("state changed", "action", a.Kind.String(), "count", s.Count, "playing", s.Playing)
	for _, fn := range listeners {
		fn(s.clone())
	}
	return s, true
}

// reduce computes the state after a. It reports false when a leaves the
// state untouched.
func (d *Driver) reduce(a Action) (State, bool) {
	s := d.state
	switch a.Kind {
	case SetTerms:
		n, err := fib.ParseTerms(a.Input)
		if err != nil {
			d.log.Debug("ignoring term input", "error", err)
			return s, false
		}
		s.Count, s.Playing = n, false
	case TogglePlay:
		s.Playing = !s.Playing
	case Reset:
		s.Count, s.Playing = ResetTerms, false
	case Tick:
		if d.ticker == nil || a.gen != d.ticker.gen {
			return s, false
		}
		if s.Count < WrapAt {
			s.Count++
		} else {
			s.Count = ResetTerms
		}
	default:
		return s, false
	}
	s.Sequence = fib.Generate(s.Count)
	s.Version++
	return s, true
}

func (d *Driver) startLocked() {
	d.gen++
	ctx, cancel := context.WithCancel(context.Background())
	t := &ticker{gen: d.gen, cancel: cancel}
	d.ticker = t
	d.running.Add(1)
	go d.run(ctx, t)
}

// stopLocked cancels the ticker without waiting for it: the goroutine may
// be blocked on d.mu or inside a listener, and its next tick carries a
// stale generation.
func (d *Driver) stopLocked() {
	if d.ticker != nil {
		d.ticker.cancel()
		d.ticker = nil
	}
}

func (d *Driver) run(ctx context.Context, t *ticker) {
	defer d.running.Done()
	tk := time.NewTicker(d.interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			d.Dispatch(Action{Kind: Tick, gen: t.gen})
		}
	}
}

// Close stops auto-play and waits for every ticker goroutine to exit,
// including ones stopped earlier that are still inside a listener. It must
// not be called from a listener. Later actions are ignored.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.state.Playing = false
	d.stopLocked()
	d.mu.Unlock()

	d.running.Wait()
	d.log.Debug("closed")
}
