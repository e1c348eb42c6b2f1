package notify

import (
	"context"
	"testing"
)

func TestHubBroadcastsToChannelSubscribers(t *testing.T) {
	hub := NewHub(nil)
	a := hub.Subscribe("realm-1")
	b := hub.Subscribe("realm-1")
	other := hub.Subscribe("realm-2")
	defer a.Cancel()
	defer b.Cancel()
	defer other.Cancel()

	msg := Message{ChannelID: "realm-1", Style: StyleEvent, Text: "Aldric travels to Grimm Peaks."}
	if err := hub.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}

	for name, sub := range map[string]*Subscription{"a": a, "b": b} {
		select {
		case got := <-sub.C:
			if got.Text != msg.Text {
				t.Fatalf("subscriber %s got %q", name, got.Text)
			}
		default:
			t.Fatalf("subscriber %s received nothing", name)
		}
	}

	select {
	case got := <-other.C:
		t.Fatalf("wrong-channel subscriber received %q", got.Text)
	default:
	}
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.Subscribe("realm-1")
	defer sub.Cancel()

	// Overfill the buffer; Send must stay non-blocking throughout.
	for i := 0; i < subscriberBuffer+10; i++ {
		if err := hub.Send(context.Background(), Message{ChannelID: "realm-1", Text: "tick"}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	if len(sub.C) != subscriberBuffer {
		t.Fatalf("expected full buffer, got %d", len(sub.C))
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.Subscribe("realm-1")

	sub.Cancel()
	sub.Cancel() // must not panic on double close

	if hub.SubscriberCount("realm-1") != 0 {
		t.Fatal("expected subscriber removed")
	}
}

func TestDiscardNotifier(t *testing.T) {
	var n Notifier = Discard{}
	if err := n.Send(context.Background(), Message{Text: "x"}); err != nil {
		t.Fatalf("discard send: %v", err)
	}
}
