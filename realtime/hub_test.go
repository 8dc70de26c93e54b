// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"testing"
	"time"
)

func TestHubNotifySubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("evt1")
	defer cancel()

	hub.Notify("evt1")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Expected a signal")
	}
}

func TestHubScopedToEvent(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("evt1")
	defer cancel()

	hub.Notify("evt2")

	select {
	case <-ch:
		t.Fatal("Expected no signal for another event")
	default:
	}
}

// A slow subscriber holds at most one pending signal; bursts coalesce.
func TestHubCoalescesSignals(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("evt1")
	defer cancel()

	for i := 0; i < 10; i++ {
		hub.Notify("evt1")
	}

	select {
	case <-ch:
	default:
		t.Fatal("Expected a pending signal")
	}
	select {
	case <-ch:
		t.Fatal("Expected burst to coalesce into one signal")
	default:
	}
}

func TestHubMultipleSubscribers(t *testing.T) {
	hub := NewHub()
	ch1, cancel1 := hub.Subscribe("evt1")
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("evt1")
	defer cancel2()

	if hub.SubscriberCount("evt1") != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", hub.SubscriberCount("evt1"))
	}

	hub.Notify("evt1")

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %d got no signal", i)
		}
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("evt1")
	cancel()

	if hub.SubscriberCount("evt1") != 0 {
		t.Fatalf("Expected 0 subscribers after cancel, got %d", hub.SubscriberCount("evt1"))
	}

	// Cancel twice is fine
	cancel()

	hub.Notify("evt1")
	select {
	case <-ch:
		t.Fatal("Expected no signal after cancel")
	default:
	}
}
