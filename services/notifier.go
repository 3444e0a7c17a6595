package services

import (
	"sync"
	"time"
)

// Notifier is the narrow sink the drivers and controllers emit progress
// through. The core only needs these two capabilities; delivery is the
// hub's problem.
type Notifier interface {
	Notify(userID int, message string)
	ReportOutcome(userID, applicationID int, outcome *FillOutcome)
}

// Event is one message on a user's progress stream.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ProgressHub fans events out to per-user subscribers. Sends never block:
// a subscriber that falls behind drops events rather than stalling a fill
// attempt.
type ProgressHub struct {
	mu          sync.Mutex
	subscribers map[int][]chan Event
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{subscribers: make(map[int][]chan Event)}
}

// Subscribe registers a stream for a user and returns the channel plus an
// unsubscribe func. The channel is buffered; the caller drains it.
func (h *ProgressHub) Subscribe(userID int) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subscribers[userID] = append(h.subscribers[userID], ch)
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscribers[userID]
		for i, sub := range subs {
			if sub == ch {
				h.subscribers[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
	}
	return ch, unsubscribe
}

func (h *ProgressHub) publish(userID int, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than block the driver.
		}
	}
}

func (h *ProgressHub) Notify(userID int, message string) {
	h.publish(userID, Event{
		Type:      "status_update",
		Payload:   map[string]string{"message": message},
		Timestamp: time.Now().UTC(),
	})
}

func (h *ProgressHub) ReportOutcome(userID, applicationID int, outcome *FillOutcome) {
	h.publish(userID, Event{
		Type: "fill_outcome",
		Payload: map[string]interface{}{
			"application_id": applicationID,
			"outcome":        outcome,
		},
		Timestamp: time.Now().UTC(),
	})
}
