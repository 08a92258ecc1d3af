package event

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type SSEServer struct {
	clients map[string]map[chan Event]bool
	events  chan Event
	mu      sync.Mutex
}

func NewSSEServer() EventSender {
	return &SSEServer{
		clients: make(map[string]map[chan Event]bool),
		events:  make(chan Event),
	}
}

// Register subscribes a client channel to a topic.
func (s *SSEServer) Register(topic string, client chan Event) {
	s.mu.Lock()
	if _, ok := s.clients[topic]; !ok {
		s.clients[topic] = make(map[chan Event]bool)
	}
	s.clients[topic][client] = true
	s.mu.Unlock()
	log.Info().Msgf("New client registered to topic %s. Total clients: %d", topic, len(s.clients[topic]))
}

// Unregister removes a client channel from a topic. The channel is never
// closed here: Run may still be mid-send to it, and the subscriber simply
// stops reading once it returns.
func (s *SSEServer) Unregister(topic string, client chan Event) {
	s.mu.Lock()
	if clients, ok := s.clients[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(s.clients, topic)
		}
	}
	s.mu.Unlock()
	log.Info().Msgf("Client unregistered from topic %s. Remaining clients: %d", topic, len(s.clients[topic]))
}

// Broadcast queues an event for delivery to every client of its topic.
func (s *SSEServer) Broadcast(event Event) {
	s.events <- event
}

// Run drains the event stream. A slow client is skipped rather than allowed
// to stall the whole topic.
func (s *SSEServer) Run() {
	for event := range s.events {
		s.mu.Lock()
		clients := make([]chan Event, 0, len(s.clients[event.Topic]))
		for client := range s.clients[event.Topic] {
			clients = append(clients, client)
		}
		s.mu.Unlock()

		for _, client := range clients {
			select {
			case client <- event:
			case <-time.After(100 * time.Millisecond):
				log.Warn().Str("topic", event.Topic).Msg("dropping event for slow client")
			}
		}
	}
}
