package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coinpulse/internal/domain"

	"github.com/gorilla/websocket"
)

func TestStreamSendsStateThenUpdates(t *testing.T) {
	stub := newStubDashboard()
	srv := httptest.NewServer(newTestRouter(stub))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first streamMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if first.Event != nil || first.State.ActiveID != "bitcoin" {
		t.Fatalf("unexpected initial message: %+v", first)
	}

	// The subscription is registered before the initial write.
	if stub.subscriberCount() != 1 {
		t.Fatalf("expected one subscriber, got %d", stub.subscriberCount())
	}
	if err := stub.Select("ethereum"); err != nil {
		t.Fatalf("select error: %v", err)
	}

	var update streamMessage
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if update.Event == nil || update.Event.Kind != domain.EventSelectionChanged {
		t.Fatalf("unexpected event: %+v", update.Event)
	}
	if update.State.ActiveID != "ethereum" {
		t.Fatalf("expected state after change, got %s", update.State.ActiveID)
	}
}
