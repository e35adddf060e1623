package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout: %s", msg)
}

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := &Client{hub: hub, send: make(chan []byte, 4)}
	b := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.ClientCount() == 2 }, "both clients registered")

	hub.Broadcast([]byte("hello"))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			if string(msg) != "hello" {
				t.Fatalf("message = %q", msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("client did not receive the broadcast")
		}
	}

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client unregistered")

	select {
	case _, open := <-a.send:
		if open {
			t.Fatalf("unregistered client's channel must be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("send channel not closed after unregister")
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	slow := &Client{hub: hub, send: make(chan []byte)} // unbuffered, never read
	hub.Register(slow)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client registered")

	hub.Broadcast([]byte("one"))
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "slow client dropped")
}

func TestNotifyInsightsUpdated(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	SetDefaultHub(hub)
	defer SetDefaultHub(nil)

	c := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client registered")

	NotifyInsightsUpdated("Technology")

	select {
	case msg := <-c.send:
		var ev InsightsUpdatedEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != "insights_updated" || ev.Industry != "Technology" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event delivered")
	}
}
