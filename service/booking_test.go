package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"museum-booking-cli/model"
)

func newTestClient(server *httptest.Server) *Client {
	client := NewClient(server.Client(), server.URL, zerolog.Nop())
	client.maxAttempts = 1
	return client
}

func TestGetPricing_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pricing", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "Foreign", query.Get("nationality"))
		require.Equal(t, "Regular", query.Get("ticketType"))
		require.Equal(t, "2024-06-10", query.Get("date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"adult_price": 500, "child_price": 250}`))
	}))
	defer server.Close()

	pricing, err := newTestClient(server).GetPricing(context.Background(), model.NationalityForeign, model.TicketRegular, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 500.0, pricing.AdultPrice)
	assert.Equal(t, 250.0, pricing.ChildPrice)
}

func TestGetPricing_MissingParams(t *testing.T) {
	client := NewClient(nil, "", zerolog.Nop())
	_, err := client.GetPricing(context.Background(), "", model.TicketRegular, "2024-06-10")
	require.Error(t, err)
}

func TestCreateBooking_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bookings/create", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "booking_id": "B123", "amount": 1250}`))
	}))
	defer server.Close()

	result, err := newTestClient(server).CreateBooking(context.Background(), model.BookingRequest{
		Date: "2024-06-10", Nationality: "Foreign", Adults: 2, Children: 1,
		TicketType: "Regular", TimeSlot: "10:00 AM", Email: "x@y.com", Amount: 1250,
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "B123", result.BookingID)
	assert.Equal(t, 1250.0, result.Amount)
}

func TestCreateBooking_GatewayErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Not enough capacity available"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateBooking(context.Background(), model.BookingRequest{})
	require.Error(t, err)
	assert.Equal(t, "Not enough capacity available", UserMessage(err, "generic"))
}

func TestUserMessage_FallsBack(t *testing.T) {
	assert.Equal(t, "fallback", UserMessage(context.DeadlineExceeded, "fallback"))
	assert.Equal(t, "fallback", UserMessage(&APIError{Body: "not json"}, "fallback"))
}

func TestGetBookingStatus_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bookings/B123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": "success",
  "data": {
    "id": "B123",
    "date": "2024-06-10",
    "time_slot": "10:00 AM",
    "adult_count": 2,
    "child_count": 1,
    "total_amount": 1250.0,
    "status": "Confirmed",
    "payment_status": "completed"
  }
}`))
	}))
	defer server.Close()

	view, err := newTestClient(server).GetBookingStatus(context.Background(), "B123")
	require.NoError(t, err)
	assert.Equal(t, "B123", view.ID)
	assert.Equal(t, 2, view.Adults)
	assert.Equal(t, "completed", view.PaymentStatus)
}

func TestGetBookingStatus_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": "error", "message": "Booking not found"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetBookingStatus(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBookingStatus_NonSuccessEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "message": "oops"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetBookingStatus(context.Background(), "B1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBookingStatus_EmptyID(t *testing.T) {
	client := NewClient(nil, "", zerolog.Nop())
	_, err := client.GetBookingStatus(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetMonthlyAvailability_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/calendar/monthly/2024/6", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "2024-06-10": {
    "status": "available",
    "slots": [
      {"time": "10:00 AM", "available": 45, "capacity": 50, "booked": 5},
      {"time": "2:00 PM", "available": 50, "capacity": 50, "booked": 0}
    ],
    "total_available": 95,
    "total_capacity": 100
  }
}`))
	}))
	defer server.Close()

	availability, err := newTestClient(server).GetMonthlyAvailability(context.Background(), 2024, 6)
	require.NoError(t, err)
	require.Contains(t, availability, "2024-06-10")
	assert.Len(t, availability["2024-06-10"].Slots, 2)
}

func TestGetMonthlyAvailability_InvalidMonth(t *testing.T) {
	client := NewClient(nil, "", zerolog.Nop())
	_, err := client.GetMonthlyAvailability(context.Background(), 2024, 13)
	require.Error(t, err)
}

func TestSendConfirmationEmail_RequiresRecipient(t *testing.T) {
	client := NewClient(nil, "", zerolog.Nop())
	err := client.SendConfirmationEmail(context.Background(), model.EmailRequest{})
	require.Error(t, err)
}

func TestSendChatMessage_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat/message", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Received: book", "intent": "booking", "next_action": "show_calendar"}`))
	}))
	defer server.Close()

	reply, err := newTestClient(server).SendChatMessage(context.Background(), "session-1", "book")
	require.NoError(t, err)
	assert.Equal(t, "show_calendar", reply.NextAction)
}

func TestDoJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"adult_price": 20, "child_price": 10}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, zerolog.Nop())
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	pricing, err := client.GetPricing(context.Background(), model.NationalityLocal, model.TicketRegular, "2024-06-10")
	require.NoError(t, err)
	assert.EqualValues(t, 3, attempts)
	assert.Equal(t, 20.0, pricing.AdultPrice)
}

func TestDoJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, zerolog.Nop())
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	_, err := client.GetPricing(context.Background(), model.NationalityLocal, model.TicketRegular, "2024-06-10")
	require.Error(t, err)
	assert.EqualValues(t, 1, attempts)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(&APIError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsNotFound(context.Canceled))
}
