package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testClient(topic string) *Client {
	return &Client{send: make(chan []byte, 4), topic: topic}
}

func TestHubDeliversToSubscribedTopicOnly(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	personaA := uuid.NewString()
	personaB := uuid.NewString()

	a := testClient(personaA)
	b := testClient(personaB)
	all := testClient("")
	hub.Register(a)
	hub.Register(b)
	hub.Register(all)

	waitFor(t, func() bool { return hub.ClientCount() == 3 })

	hub.Publish(personaA, []byte("event-a"))

	select {
	case msg := <-a.send:
		if string(msg) != "event-a" {
			t.Fatalf("unexpected payload %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive its event")
	}

	select {
	case <-all.send:
	case <-time.After(time.Second):
		t.Fatal("wildcard client must receive every event")
	}

	select {
	case msg := <-b.send:
		t.Fatalf("client b must not receive persona a's event, got %q", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifierPublishesBatchScoredEvent(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	personaID := uuid.New()
	client := testClient(personaID.String())
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	NewNotifier(hub).NotifyScored(personaID, 3, 5)

	select {
	case msg := <-client.send:
		var evt BatchScoredEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("event unmarshal: %v", err)
		}
		if evt.Type != "batch_scored" || evt.Scored != 3 || evt.Total != 5 {
			t.Fatalf("unexpected event: %+v", evt)
		}
		if evt.PersonaID != personaID.String() {
			t.Fatalf("persona id = %q", evt.PersonaID)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.NotifyScored(uuid.New(), 1, 1)

	NewNotifier(nil).NotifyScored(uuid.New(), 1, 1)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
