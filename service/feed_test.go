package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"museum-booking-cli/model"
)

func TestEventFeed_GreetsOnOpen(t *testing.T) {
	feed := NewEventFeed()
	defer feed.Close()

	select {
	case event := <-feed.Events():
		assert.Equal(t, "Welcome to the Museum Ticket Booking System!", event.Message)
		assert.Empty(t, event.Action)
	default:
		t.Fatal("expected a buffered welcome event")
	}
}

func TestEventFeed_PublishDeliversInOrder(t *testing.T) {
	feed := NewEventFeed()
	defer feed.Close()
	<-feed.Events() // drain welcome

	feed.Publish(model.ChatEvent{Message: "Pick a date", Action: "show_calendar"})
	feed.Publish(model.ChatEvent{Message: "Where are you from?", Action: "select_nationality"})

	first := <-feed.Events()
	second := <-feed.Events()
	assert.Equal(t, "show_calendar", first.Action)
	assert.Equal(t, "select_nationality", second.Action)
}

func TestEventFeed_PublishAfterCloseIsDropped(t *testing.T) {
	feed := NewEventFeed()
	feed.Close()
	feed.Publish(model.ChatEvent{Message: "late"})

	event, ok := <-feed.Events()
	require.True(t, ok, "welcome event should survive close")
	assert.Equal(t, "Welcome to the Museum Ticket Booking System!", event.Message)

	_, ok = <-feed.Events()
	assert.False(t, ok)
}

func TestEventFeed_CloseIsIdempotent(t *testing.T) {
	feed := NewEventFeed()
	feed.Close()
	feed.Close()
}

func TestEventFeed_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	feed := NewEventFeed()
	defer feed.Close()

	for i := 0; i < 32; i++ {
		feed.Publish(model.ChatEvent{Message: "burst"})
	}
	// fills without blocking; the drained count stays within the buffer size
	count := 0
	for {
		select {
		case <-feed.Events():
			count++
		default:
			assert.LessOrEqual(t, count, 16)
			return
		}
	}
}
