package network

import (
	"testing"

	"wildroot-server/pkg/api"
)

func TestBroadcaster_RegisterAndBroadcast(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("session_a")

	if b.SubscriberCount() != 1 {
		t.Fatalf("subscribers = %d, want 1", b.SubscriberCount())
	}

	b.Broadcast(api.ServerResponse{Type: "UPDATE", Tick: 7})

	select {
	case msg := <-ch:
		if msg.Tick != 7 {
			t.Errorf("tick = %d, want 7", msg.Tick)
		}
	default:
		t.Fatal("subscriber must receive the broadcast")
	}
}

func TestBroadcaster_ReRegisterClosesOldChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("session_a")
	fresh := b.Register("session_a")

	if _, open := <-old; open {
		t.Error("re-registering must close the previous channel")
	}
	if b.SubscriberCount() != 1 {
		t.Errorf("subscribers = %d, want 1", b.SubscriberCount())
	}

	b.Broadcast(api.ServerResponse{Tick: 1})
	select {
	case <-fresh:
	default:
		t.Error("the fresh channel must receive broadcasts")
	}
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("session_a")
	b.Unregister("session_a")

	if b.SubscriberCount() != 0 {
		t.Errorf("subscribers = %d, want 0", b.SubscriberCount())
	}
	if _, open := <-ch; open {
		t.Error("unregister must close the channel")
	}
	// Повторный Unregister безвреден
	b.Unregister("session_a")
}

func TestBroadcaster_FullChannelIsSkipped(t *testing.T) {
	b := NewBroadcaster()
	b.Register("slow")

	// Переполняем буфер: рассылка не должна блокироваться
	for i := 0; i < 150; i++ {
		b.Broadcast(api.ServerResponse{Tick: i})
	}

	alive := b.Register("alive")
	b.Broadcast(api.ServerResponse{Tick: 999})
	select {
	case msg := <-alive:
		if msg.Tick != 999 {
			t.Errorf("tick = %d, want 999", msg.Tick)
		}
	default:
		t.Fatal("a lagging subscriber must not stall the others")
	}
}
