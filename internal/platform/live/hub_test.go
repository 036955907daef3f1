package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient() *client {
	return &client{
		id:    "test",
		views: make(map[string]struct{}),
		send:  make(chan []byte, 8),
	}
}

func receive(t *testing.T, c *client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func TestHub_ClockChangeReachesEveryClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	a, b := newTestClient(), newTestClient()
	hub.register(a)
	hub.register(b)
	hub.process(a, subscribeMessage{Action: "subscribe", Views: []string{"worklist"}})

	hub.NotifyClockChanged()

	for _, c := range []*client{a, b} {
		ev := receive(t, c)
		if ev.Type != "clock-changed" {
			t.Errorf("event type = %q", ev.Type)
		}
	}
}

func TestHub_ViewEventOnlyReachesSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub, other := newTestClient(), newTestClient()
	hub.register(sub)
	hub.register(other)
	hub.process(sub, subscribeMessage{Action: "subscribe", Views: []string{"billing"}})
	hub.process(other, subscribeMessage{Action: "subscribe", Views: []string{"slots"}})

	hub.NotifyView("billing")

	ev := receive(t, sub)
	if ev.Type != "view-changed" || ev.View != "billing" {
		t.Errorf("event = %+v", ev)
	}
	select {
	case <-other.send:
		t.Error("unsubscribed client received a view event")
	default:
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := newTestClient()
	hub.register(c)
	hub.process(c, subscribeMessage{Action: "subscribe", Views: []string{"worklist"}})
	hub.process(c, subscribeMessage{Action: "unsubscribe", Views: []string{"worklist"}})

	hub.NotifyView("worklist")
	select {
	case <-c.send:
		t.Error("unsubscribed client received an event")
	default:
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := newTestClient()
	hub.register(c)
	if hub.ClientCount() != 1 {
		t.Fatalf("clients = %d", hub.ClientCount())
	}

	hub.unregister(c)
	if hub.ClientCount() != 0 {
		t.Errorf("clients = %d after unregister", hub.ClientCount())
	}
	if _, open := <-c.send; open {
		t.Error("send channel still open")
	}

	// A second unregister of the same client is a no-op.
	hub.unregister(c)
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := &client{id: "slow", views: make(map[string]struct{}), send: make(chan []byte)}
	hub.register(c)

	done := make(chan struct{})
	go func() {
		hub.NotifyClockChanged()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}
