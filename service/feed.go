package service

import (
	"sync"

	"museum-booking-cli/model"
)

const welcomeMessage = "Welcome to the Museum Ticket Booking System!"

// EventFeed is the in-process hub for the inbound message channel. The push
// transport publishes {message, action} events into it; the flow controller
// consumes them one at a time. The feed greets with the welcome message on
// open, matching the server's connect behavior.
type EventFeed struct {
	mu     sync.Mutex
	ch     chan model.ChatEvent
	closed bool
}

func NewEventFeed() *EventFeed {
	feed := &EventFeed{ch: make(chan model.ChatEvent, 16)}
	feed.ch <- model.ChatEvent{Message: welcomeMessage}
	return feed
}

// Publish delivers an event to the consumer. Events published after Close,
// or while the buffer is full, are dropped; the channel is best-effort.
func (f *EventFeed) Publish(event model.ChatEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- event:
	default:
	}
}

// Events exposes the consumer side of the feed.
func (f *EventFeed) Events() <-chan model.ChatEvent {
	return f.ch
}

func (f *EventFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}
