package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/jv-albuquerque/cooldown/go/cooldown"
	"github.com/jv-albuquerque/cooldown/go/internal/board"
	"github.com/jv-albuquerque/cooldown/go/internal/config"
)

func newTestServer(t *testing.T) (*httptest.Server, *Service, *board.Board, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	b, err := board.FromPresets([]config.Preset{
		{Name: "blink", Duration: 2 * time.Second},
		{Name: "fireball", Duration: 8 * time.Second, AutoStart: true},
	}, clock)
	if err != nil {
		t.Fatalf("FromPresets: %v", err)
	}

	cfg := DefaultConfig()
	svc := NewService(cfg, b)
	b.OnTransition(svc.BroadcastTransition)

	srv := httptest.NewServer(svc.Handler(cfg))
	t.Cleanup(srv.Close)
	return srv, svc, b, clock
}

func decodeEntry(t *testing.T, resp *http.Response) board.Entry {
	t.Helper()
	defer resp.Body.Close()
	var e board.Entry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	return e
}

func TestListCooldowns(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/cooldowns")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var entries []board.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "blink" || entries[1].Name != "fireball" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[1].State != cooldown.Running || entries[1].RemainingSec != 8 {
		t.Fatalf("fireball = %+v", entries[1].Snapshot)
	}
}

func TestGetCooldown(t *testing.T) {
	srv, _, _, clock := newTestServer(t)
	clock.Advance(2 * time.Second)

	resp, err := http.Get(srv.URL + "/api/cooldowns/fireball")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	e := decodeEntry(t, resp)
	if e.Name != "fireball" || e.RemainingSec != 6 || e.PercentComplete != 25 {
		t.Fatalf("entry = %+v", e)
	}

	resp, err = http.Get(srv.URL + "/api/cooldowns/missing")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCooldownActions(t *testing.T) {
	srv, _, _, clock := newTestServer(t)

	post := func(path string) *http.Response {
		t.Helper()
		resp, err := http.Post(srv.URL+path, "application/json", nil)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		return resp
	}

	e := decodeEntry(t, post("/api/cooldowns/blink/start"))
	if e.State != cooldown.Running || e.RemainingSec != 2 {
		t.Fatalf("after start = %+v", e.Snapshot)
	}

	clock.Advance(time.Second)
	e = decodeEntry(t, post("/api/cooldowns/blink/pause"))
	if !e.Paused || e.RemainingSec != 1 {
		t.Fatalf("after pause = %+v", e.Snapshot)
	}

	decodeEntry(t, post("/api/cooldowns/blink/start"))
	e = decodeEntry(t, post("/api/cooldowns/blink/add-time?delta=1.5s"))
	if e.RemainingSec != 2.5 {
		t.Fatalf("after add-time = %+v", e.Snapshot)
	}

	e = decodeEntry(t, post("/api/cooldowns/blink/force-finish"))
	if !e.Finished {
		t.Fatalf("after force-finish = %+v", e.Snapshot)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/cooldowns/blink/explode", http.StatusBadRequest},
		{"/api/cooldowns/blink/add-time", http.StatusBadRequest},
		{"/api/cooldowns/blink/add-time?delta=later", http.StatusBadRequest},
		{"/api/cooldowns/missing/start", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := post(tt.path)
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Fatalf("POST %s status = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}

func TestHealth(t *testing.T) {
	srv, _, _, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestWebSocketStream(t *testing.T) {
	srv, svc, b, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/cooldowns"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first Message
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if first.Type != MessageSnapshot || len(first.Cooldowns) != 2 {
		t.Fatalf("initial message = %+v", first)
	}

	if _, err := b.Start("blink"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	var second Message
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read transition: %v", err)
	}
	if second.Type != MessageTransition || second.Transition == nil {
		t.Fatalf("second message = %+v", second)
	}
	if second.Transition.Name != "blink" || second.Transition.To != cooldown.Running {
		t.Fatalf("transition = %+v", second.Transition)
	}

	svc.BroadcastSnapshot()
	var third Message
	if err := conn.ReadJSON(&third); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if third.Type != MessageSnapshot || third.Cooldowns[0].State != cooldown.Running {
		t.Fatalf("third message = %+v", third)
	}
	if svc.ConnectionCount() != 1 {
		t.Fatalf("connections = %d, want 1", svc.ConnectionCount())
	}
}
