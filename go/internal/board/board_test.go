package board

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jv-albuquerque/cooldown/go/cooldown"
	"github.com/jv-albuquerque/cooldown/go/internal/config"
)

func newTestBoard(t *testing.T) (*Board, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	b, err := FromPresets([]config.Preset{
		{Name: "fireball", Duration: 8 * time.Second, AutoStart: true},
		{Name: "blink", Duration: 2 * time.Second},
		{Name: "spawn", MinDuration: 3 * time.Second, MaxDuration: 3 * time.Second},
	}, clock, cooldown.WithRandomSource(cooldown.NewRandSource(1)))
	if err != nil {
		t.Fatalf("FromPresets: %v", err)
	}
	return b, clock
}

func TestListIsSortedByName(t *testing.T) {
	b, _ := newTestBoard(t)

	entries := b.List()
	want := []string{"blink", "fireball", "spawn"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("entries[%d] = %q, want %q", i, entries[i].Name, name)
		}
	}
	if entries[1].State != cooldown.Running || entries[0].State != cooldown.Idle {
		t.Fatalf("unexpected initial states: %s, %s", entries[0].State, entries[1].State)
	}
}

func TestAddDuplicate(t *testing.T) {
	b, _ := newTestBoard(t)
	if _, err := b.Add(config.Preset{Name: "blink", Duration: time.Second}); !errors.Is(err, ErrExists) {
		t.Fatalf("error = %v, want ErrExists", err)
	}
}

func TestAddInvalidRange(t *testing.T) {
	b, _ := newTestBoard(t)
	_, err := b.Add(config.Preset{Name: "bad", MinDuration: 2 * time.Second, MaxDuration: time.Second})
	if !errors.Is(err, cooldown.ErrInvalidRange) {
		t.Fatalf("error = %v, want ErrInvalidRange", err)
	}
	if _, err := b.Get("bad"); !errors.Is(err, ErrNotFound) {
		t.Fatal("invalid preset should not be registered")
	}
}

func TestGetUnknown(t *testing.T) {
	b, _ := newTestBoard(t)
	if _, err := b.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if _, err := b.Start("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestApplyActions(t *testing.T) {
	b, clock := newTestBoard(t)

	e, err := b.Start("blink")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if e.State != cooldown.Running || e.RemainingSec != 2 {
		t.Fatalf("after start: %+v", e.Snapshot)
	}

	clock.Advance(500 * time.Millisecond)
	if e, _ = b.Pause("blink"); e.State != cooldown.Paused || e.RemainingSec != 1.5 {
		t.Fatalf("after pause: %+v", e.Snapshot)
	}

	clock.Advance(time.Minute)
	if e, _ = b.Apply("blink", ActionReset, 0); e.State != cooldown.Running || e.RemainingSec != 1.5 {
		t.Fatalf("after reset (resume): %+v", e.Snapshot)
	}

	if e, _ = b.AddTime("blink", time.Second); e.RemainingSec != 2.5 {
		t.Fatalf("after add-time: %+v", e.Snapshot)
	}

	if e, _ = b.Stop("blink"); e.State != cooldown.Paused || e.PercentComplete != 0 {
		t.Fatalf("after stop: %+v", e.Snapshot)
	}

	if e, _ = b.Restart("blink"); e.State != cooldown.Running || e.RemainingSec != 2 {
		t.Fatalf("after restart: %+v", e.Snapshot)
	}

	if e, _ = b.ForceFinish("blink"); e.State != cooldown.Finished || !e.Finished {
		t.Fatalf("after force-finish: %+v", e.Snapshot)
	}

	if _, err := b.Apply("blink", Action("explode"), 0); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("error = %v, want ErrUnknownAction", err)
	}
}

func TestTickReportsReady(t *testing.T) {
	b, clock := newTestBoard(t)

	var heard []Transition
	b.OnTransition(func(tr Transition) { heard = append(heard, tr) })

	if got := b.Tick(); len(got) != 0 {
		t.Fatalf("unexpected transitions before time passes: %+v", got)
	}

	clock.Advance(8 * time.Second)
	got := b.Tick()
	if len(got) != 1 {
		t.Fatalf("transitions = %d, want 1", len(got))
	}
	tr := got[0]
	if tr.Name != "fireball" || tr.From != cooldown.Running || tr.To != cooldown.Finished || tr.Cause != "tick" {
		t.Fatalf("transition = %+v", tr)
	}
	if tr.Kind() != "ready" {
		t.Fatalf("kind = %q, want ready", tr.Kind())
	}
	if len(heard) != 1 || heard[0].Name != "fireball" {
		t.Fatalf("listener heard %+v", heard)
	}

	if got := b.Tick(); len(got) != 0 {
		t.Fatalf("transition repeated on the next tick: %+v", got)
	}
}

func TestActionTransitionsNotifyListeners(t *testing.T) {
	b, _ := newTestBoard(t)

	var kinds []string
	b.OnTransition(func(tr Transition) { kinds = append(kinds, tr.Cause+":"+tr.Kind()) })

	if _, err := b.Pause("fireball"); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if _, err := b.Start("fireball"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// restart of a running cooldown stays running and is not a transition
	if _, err := b.Restart("fireball"); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	want := []string{"pause:paused", "start:running"}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, s := range []string{"start", "restart", "reset", "pause", "stop", "force-finish", "add-time"} {
		if _, err := ParseAction(s); err != nil {
			t.Fatalf("ParseAction(%q): %v", s, err)
		}
	}
	if _, err := ParseAction("finish"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("error = %v, want ErrUnknownAction", err)
	}
}
