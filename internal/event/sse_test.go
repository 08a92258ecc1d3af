package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesSubscriber(t *testing.T) {
	server := NewSSEServer()
	go server.Run()

	client := make(chan Event)
	server.Register(TopicModeration, client)
	defer server.Unregister(TopicModeration, client)

	server.Broadcast(Event{Topic: TopicModeration, Type: EventTypeListingSubmitted, Data: "l1"})

	select {
	case ev := <-client:
		require.Equal(t, EventTypeListingSubmitted, ev.Type)
		require.Equal(t, "l1", ev.Data)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the event")
	}
}

func TestBroadcastSkipsOtherTopics(t *testing.T) {
	server := NewSSEServer()
	go server.Run()

	moderator := make(chan Event)
	seller := make(chan Event)
	server.Register(TopicModeration, moderator)
	server.Register(SellerTopic("s1"), seller)
	defer server.Unregister(TopicModeration, moderator)
	defer server.Unregister(SellerTopic("s1"), seller)

	server.Broadcast(Event{Topic: SellerTopic("s1"), Type: EventTypeListingApproved})

	select {
	case ev := <-seller:
		require.Equal(t, EventTypeListingApproved, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("seller never received the event")
	}

	select {
	case ev := <-moderator:
		t.Fatalf("moderation feed received a seller event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

// A client that disconnects while the broadcaster is still trying to deliver
// to it must not take the broadcaster down with it.
func TestUnregisterDuringStalledSend(t *testing.T) {
	server := NewSSEServer()

	panicked := make(chan interface{}, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked <- r
			}
		}()
		server.Run()
	}()

	stalled := make(chan Event) // never read from
	server.Register(TopicModeration, stalled)

	server.Broadcast(Event{Topic: TopicModeration, Type: EventTypeListingSubmitted})
	time.Sleep(20 * time.Millisecond)
	server.Unregister(TopicModeration, stalled)

	// Give the 100 ms slow-client timeout room to fire.
	time.Sleep(200 * time.Millisecond)

	select {
	case r := <-panicked:
		t.Fatalf("broadcaster goroutine panicked: %v", r)
	default:
	}

	// The broadcaster must still be able to serve new subscribers.
	fresh := make(chan Event)
	server.Register(TopicModeration, fresh)
	defer server.Unregister(TopicModeration, fresh)
	server.Broadcast(Event{Topic: TopicModeration, Type: EventTypeListingApproved})

	select {
	case ev := <-fresh:
		require.Equal(t, EventTypeListingApproved, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("broadcaster stopped delivering after the stalled client left")
	}
}
