// Package board owns a set of named cooldowns on behalf of the daemon and
// serializes every access to them.
package board

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jv-albuquerque/cooldown/go/cooldown"
	"github.com/jv-albuquerque/cooldown/go/internal/config"
	"github.com/rs/zerolog/log"
)

// Board holds named cooldowns. Cooldowns are not safe for concurrent use, so
// every read and write goes through mu.
type Board struct {
	mu        sync.Mutex
	clock     cooldown.Clock
	opts      []cooldown.Option
	entries   map[string]*entry
	listeners []func(Transition)
}

type entry struct {
	id   uuid.UUID
	name string
	cd   *cooldown.Cooldown
	last cooldown.State
}

// New creates an empty board. opts are applied to every cooldown it builds.
func New(clock cooldown.Clock, opts ...cooldown.Option) *Board {
	return &Board{
		clock:   clock,
		opts:    opts,
		entries: make(map[string]*entry),
	}
}

// FromPresets builds a board holding one cooldown per preset.
func FromPresets(presets []config.Preset, clock cooldown.Clock, opts ...cooldown.Option) (*Board, error) {
	b := New(clock, opts...)
	for _, p := range presets {
		if _, err := b.Add(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// OnTransition registers fn to be called for every state change. Listeners
// run after the board lock is released.
func (b *Board) OnTransition(fn func(Transition)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Add builds the cooldown described by p.
func (b *Board) Add(p config.Preset) (Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[p.Name]; exists {
		return Entry{}, fmt.Errorf("%w: %q", ErrExists, p.Name)
	}

	opts := append([]cooldown.Option{
		cooldown.WithClock(b.clock),
		cooldown.WithLogger(log.With().Str("cooldown", p.Name).Logger()),
	}, b.opts...)
	cd, err := p.Build(opts...)
	if err != nil {
		return Entry{}, err
	}

	e := &entry{id: uuid.New(), name: p.Name, cd: cd, last: cd.State()}
	b.entries[p.Name] = e

	log.Info().
		Str("cooldown", p.Name).
		Str("id", e.id.String()).
		Bool("ranged", p.Ranged()).
		Str("state", e.last.String()).
		Msg("cooldown registered")

	return e.view(), nil
}

// Get returns the current view of one cooldown.
func (b *Board) Get(name string) (Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e.view(), nil
}

// List returns every cooldown sorted by name.
func (b *Board) List() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.sorted() {
		out = append(out, e.view())
	}
	return out
}

// Apply performs action on the named cooldown. delta is only used by
// ActionAddTime.
func (b *Board) Apply(name string, action Action, delta time.Duration) (Entry, error) {
	b.mu.Lock()
	e, ok := b.entries[name]
	if !ok {
		b.mu.Unlock()
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	switch action {
	case ActionStart:
		e.cd.Start()
	case ActionRestart:
		e.cd.Restart()
	case ActionReset:
		e.cd.Reset()
	case ActionPause:
		e.cd.Pause()
	case ActionStop:
		e.cd.Stop()
	case ActionForceFinish:
		e.cd.ForceFinish()
	case ActionAddTime:
		e.cd.AddTime(delta)
	default:
		b.mu.Unlock()
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	var transitions []Transition
	if t, changed := b.observe(e, string(action)); changed {
		transitions = append(transitions, t)
	}
	view := e.view()
	listeners := b.listeners
	b.mu.Unlock()

	log.Debug().
		Str("cooldown", name).
		Str("action", string(action)).
		Str("state", view.State.String()).
		Float64("remaining_sec", view.RemainingSec).
		Msg("cooldown action applied")

	notify(listeners, transitions)
	return view, nil
}

func (b *Board) Start(name string) (Entry, error)   { return b.Apply(name, ActionStart, 0) }
func (b *Board) Restart(name string) (Entry, error) { return b.Apply(name, ActionRestart, 0) }
func (b *Board) Pause(name string) (Entry, error)   { return b.Apply(name, ActionPause, 0) }
func (b *Board) Stop(name string) (Entry, error)    { return b.Apply(name, ActionStop, 0) }
func (b *Board) ForceFinish(name string) (Entry, error) {
	return b.Apply(name, ActionForceFinish, 0)
}
func (b *Board) AddTime(name string, delta time.Duration) (Entry, error) {
	return b.Apply(name, ActionAddTime, delta)
}

// Tick reports cooldowns whose state changed since the previous observation,
// typically running cooldowns that have just become ready.
func (b *Board) Tick() []Transition {
	b.mu.Lock()
	var transitions []Transition
	for _, e := range b.sorted() {
		if t, changed := b.observe(e, "tick"); changed {
			transitions = append(transitions, t)
		}
	}
	listeners := b.listeners
	b.mu.Unlock()

	notify(listeners, transitions)
	return transitions
}

func (b *Board) observe(e *entry, cause string) (Transition, bool) {
	snap := e.cd.Snapshot()
	if snap.State == e.last {
		return Transition{}, false
	}
	t := Transition{
		ID:       e.id,
		Name:     e.name,
		From:     e.last,
		To:       snap.State,
		Cause:    cause,
		At:       snap.TakenAt,
		Snapshot: snap,
	}
	e.last = snap.State

	log.Debug().
		Str("cooldown", e.name).
		Str("from", t.From.String()).
		Str("to", t.To.String()).
		Str("cause", cause).
		Msg("cooldown transition")
	return t, true
}

func (b *Board) sorted() []*entry {
	out := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (e *entry) view() Entry {
	return Entry{ID: e.id, Name: e.name, Snapshot: e.cd.Snapshot()}
}

func notify(listeners []func(Transition), transitions []Transition) {
	for _, t := range transitions {
		for _, fn := range listeners {
			fn(t)
		}
	}
}
