// services/feed.go - Live session event fan-out
package services

import (
	"sync"

	"github.com/google/uuid"
)

const feedBufferSize = 16

// FeedEvent is pushed to websocket subscribers of a session feed.
type FeedEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	FeedParticipantJoined = "participant_joined"
	FeedSessionClosed     = "session_closed"
)

// SessionFeed fans session events out to subscribers keyed by join code.
// Slow subscribers drop events rather than block the publisher.
type SessionFeed struct {
	mu      sync.RWMutex
	clients map[string]map[string]chan FeedEvent
}

func NewSessionFeed() *SessionFeed {
	return &SessionFeed{clients: make(map[string]map[string]chan FeedEvent)}
}

// Subscribe registers a listener on a session code and returns its client id
// and event channel. The channel is closed on Unsubscribe.
func (f *SessionFeed) Subscribe(code string) (string, <-chan FeedEvent) {
	id := uuid.New().String()
	ch := make(chan FeedEvent, feedBufferSize)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clients[code] == nil {
		f.clients[code] = make(map[string]chan FeedEvent)
	}
	f.clients[code][id] = ch
	return id, ch
}

func (f *SessionFeed) Unsubscribe(code, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs := f.clients[code]
	ch, ok := subs[id]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(f.clients, code)
	}
	close(ch)
}

// Publish delivers an event to every subscriber of the session code.
func (f *SessionFeed) Publish(code string, event FeedEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.clients[code] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports the number of listeners on a session code.
func (f *SessionFeed) SubscriberCount(code string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients[code])
}
