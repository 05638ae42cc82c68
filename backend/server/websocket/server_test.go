package websocket

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tajmaha8849/VideoCall/backend/registry"
	"github.com/Tajmaha8849/VideoCall/backend/service"
	"github.com/Tajmaha8849/VideoCall/backend/storage/memory"
	_switch "github.com/Tajmaha8849/VideoCall/backend/switch"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newStack(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.New(io.Discard)
	svc := service.NewService(service.Config{
		RoomStore: memory.NewMemStore(),
		Registry:  registry.New(),
		Switch:    _switch.NewSwitch(&logger),
		Logger:    &logger,
	})
	srv := NewServer(Config{
		Logger:      &logger,
		Coordinator: svc,
		ListenAddr:  ":0",
	})
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	var ev map[string]any
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

func writeEvent(t *testing.T, conn *websocket.Conn, ev map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(ev); err != nil {
		t.Fatalf("write event: %v", err)
	}
}

func TestCreateJoinSignalLeave(t *testing.T) {
	ts := newStack(t)

	alice := dial(t, ts)
	writeEvent(t, alice, map[string]any{"type": "create-room", "name": "Alice"})

	created := readEvent(t, alice)
	if created["type"] != "room-created" || created["isHost"] != true {
		t.Fatalf("unexpected create response: %v", created)
	}
	code, _ := created["roomCode"].(string)
	if len(code) != 6 {
		t.Fatalf("unexpected room code %q", code)
	}
	users := created["users"].([]any)
	aliceID := users[0].(map[string]any)["id"].(string)

	bob := dial(t, ts)
	writeEvent(t, bob, map[string]any{"type": "join-room", "name": "Bob", "roomCode": code})

	joined := readEvent(t, bob)
	if joined["type"] != "room-joined" || joined["isHost"] != false {
		t.Fatalf("unexpected join response: %v", joined)
	}
	if got := len(joined["users"].([]any)); got != 2 {
		t.Fatalf("joiner sees %d users, want 2", got)
	}
	bobID := joined["users"].([]any)[1].(map[string]any)["id"].(string)

	userJoined := readEvent(t, alice)
	if userJoined["type"] != "user-joined" {
		t.Fatalf("alice got %v, want user-joined", userJoined)
	}
	if userJoined["user"].(map[string]any)["name"] != "Bob" {
		t.Fatalf("unexpected joined user: %v", userJoined["user"])
	}

	// handshake relay
	writeEvent(t, bob, map[string]any{
		"type": "offer", "target": aliceID,
		"offer": map[string]any{"sdp": "v=0"},
	})
	offer := readEvent(t, alice)
	if offer["type"] != "offer" || offer["caller"] != bobID {
		t.Fatalf("alice got %v, want offer from bob", offer)
	}
	if offer["offer"].(map[string]any)["sdp"] != "v=0" {
		t.Fatalf("offer payload altered: %v", offer["offer"])
	}

	// bob drops; alice is told
	bob.Close()
	left := readEvent(t, alice)
	if left["type"] != "user-left" || left["userId"] != bobID {
		t.Fatalf("alice got %v, want user-left for bob", left)
	}
	if got := len(left["users"].([]any)); got != 1 {
		t.Fatalf("alice sees %d remaining users, want 1", got)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	ts := newStack(t)

	bob := dial(t, ts)
	writeEvent(t, bob, map[string]any{"type": "join-room", "name": "Bob", "roomCode": "ZZZZZZ"})

	ev := readEvent(t, bob)
	if ev["type"] != "error" || ev["message"] != "Room not found" {
		t.Fatalf("got %v, want Room not found error", ev)
	}
}

func TestMalformedFrameIgnored(t *testing.T) {
	ts := newStack(t)

	alice := dial(t, ts)
	if err := alice.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// connection survives and keeps serving
	writeEvent(t, alice, map[string]any{"type": "create-room", "name": "Alice"})
	ev := readEvent(t, alice)
	if ev["type"] != "room-created" {
		t.Fatalf("got %v, want room-created after malformed frame", ev)
	}
}
