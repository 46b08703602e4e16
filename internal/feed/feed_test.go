package feed

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/pkg/types"
)

func dialHub(t *testing.T, h *Hub) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(h.Handler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestNewHub(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	h := NewHub(logger)

	if h == nil {
		t.Fatal("expected non-nil hub")
	}
	if h.clients == nil {
		t.Error("expected non-nil clients map")
	}
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	h := NewHub(logger)
	defer h.Close()

	conn, cleanup := dialHub(t, h)
	defer cleanup()

	// Registration happens inside the upgrade handler; wait for the
	// client to appear before publishing.
	deadline := time.Now().Add(time.Second)
	for {
		h.mu.RLock()
		n := len(h.clients)
		h.mu.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	ev := events.BetCancelled{
		GameUUID: uuid.MustParse("e629f9aa-6b2c-46aa-8fa8-36d8109d2542"),
		BetUUID:  uuid.MustParse("9e331b08-0d82-4b3e-b8c4-05be26eed347"),
		Better:   "alice",
		Refund:   types.NewAsset(500),
		Reason:   "better_cancel",
	}
	h.Publish(ev)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got struct {
		Type string              `json:"type"`
		Data events.BetCancelled `json:"data"`
	}
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Type != "bet_cancelled" {
		t.Errorf("expected type bet_cancelled, got %q", got.Type)
	}
	if got.Data.Better != "alice" {
		t.Errorf("expected better alice, got %q", got.Data.Better)
	}
	if got.Data.Refund.Amount != 500 {
		t.Errorf("expected refund 500, got %d", got.Data.Refund.Amount)
	}
}

func TestHub_PublishWithNoSubscribers(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	h := NewHub(logger)
	defer h.Close()

	// Must not block or panic.
	h.Publish(events.GameCancelled{
		GameUUID: uuid.MustParse("e629f9aa-6b2c-46aa-8fa8-36d8109d2542"),
		Reason:   "auto_resolve",
	})
}

func TestHub_CloseDisconnectsSubscribers(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	h := NewHub(logger)

	conn, cleanup := dialHub(t, h)
	defer cleanup()

	deadline := time.Now().Add(time.Second)
	for {
		h.mu.RLock()
		n := len(h.clients)
		h.mu.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected read error after hub close")
	}

	h.mu.RLock()
	remaining := len(h.clients)
	h.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("expected 0 clients after close, got %d", remaining)
	}
}
