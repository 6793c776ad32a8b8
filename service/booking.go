package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"museum-booking-cli/model"
)

const (
	defaultGatewayURL  = "http://localhost:5001"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client wraps HTTP access to the booking gateway.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	log         zerolog.Logger
}

// APIError is returned when the gateway responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "gateway api error"
	}
	return fmt.Sprintf("gateway api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the gateway.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// UserMessage extracts the human-readable message from a gateway error
// response, falling back to the given default. Technical detail stays in the
// error itself for diagnostics.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Body != "" {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal([]byte(apiErr.Body), &payload); jsonErr == nil {
			if payload.Error != "" {
				return payload.Error
			}
			if payload.Message != "" {
				return payload.Message
			}
		}
	}
	return fallback
}

// NewClient creates a gateway client. A nil httpClient gets a sane default;
// an empty gatewayURL falls back to the local gateway.
func NewClient(httpClient *http.Client, gatewayURL string, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if strings.TrimSpace(gatewayURL) == "" {
		gatewayURL = defaultGatewayURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(gatewayURL, "/"),
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
		log:         log.With().Str("component", "gateway-client").Logger(),
	}
}

// GetPricing fetches unit prices for a (nationality, ticketType, date) tuple.
func (c *Client) GetPricing(ctx context.Context, nationality model.Nationality, ticketType model.TicketType, date string) (model.Pricing, error) {
	if nationality == "" || ticketType == "" || date == "" {
		return model.Pricing{}, errors.New("nationality, ticket type and date are required")
	}
	query := url.Values{}
	query.Set("nationality", string(nationality))
	query.Set("ticketType", string(ticketType))
	query.Set("date", date)
	endpoint := fmt.Sprintf("%s/api/pricing?%s", c.baseURL, query.Encode())

	var pricing model.Pricing
	if err := c.getJSON(ctx, endpoint, &pricing); err != nil {
		return model.Pricing{}, err
	}
	if pricing.AdultPrice < 0 || pricing.ChildPrice < 0 {
		return model.Pricing{}, errors.New("malformed pricing response")
	}
	return pricing, nil
}

// CreateBooking submits the booking. A response with success=false is
// returned as-is so the caller can surface its message.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (model.BookingResult, error) {
	endpoint := fmt.Sprintf("%s/api/bookings/create", c.baseURL)
	var result model.BookingResult
	if err := c.postJSON(ctx, endpoint, req, &result); err != nil {
		return model.BookingResult{}, err
	}
	return result, nil
}

// statusEnvelope wraps the booking-status payload.
type statusEnvelope struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Data    model.BookingStatusView `json:"data"`
}

// ErrBookingNotFound covers unknown references and non-success status
// envelopes alike.
var ErrBookingNotFound = errors.New("booking not found")

// GetBookingStatus looks up a booking by reference.
func (c *Client) GetBookingStatus(ctx context.Context, bookingID string) (model.BookingStatusView, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return model.BookingStatusView{}, ErrBookingNotFound
	}
	endpoint := fmt.Sprintf("%s/api/bookings/%s", c.baseURL, url.PathEscape(bookingID))

	var envelope statusEnvelope
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		if IsNotFound(err) {
			return model.BookingStatusView{}, ErrBookingNotFound
		}
		return model.BookingStatusView{}, err
	}
	if envelope.Status != "success" {
		return model.BookingStatusView{}, ErrBookingNotFound
	}
	return envelope.Data, nil
}

// GetMonthlyAvailability fetches the per-date slot availability for a month.
func (c *Client) GetMonthlyAvailability(ctx context.Context, year int, month int) (model.MonthAvailability, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month: %d", month)
	}
	endpoint := fmt.Sprintf("%s/api/calendar/monthly/%d/%d", c.baseURL, year, month)

	var availability model.MonthAvailability
	if err := c.getJSON(ctx, endpoint, &availability); err != nil {
		return nil, err
	}
	return availability, nil
}

// SendConfirmationEmail asks the gateway to mail the booking snapshot.
// Callers treat failure as advisory; the booking itself stands.
func (c *Client) SendConfirmationEmail(ctx context.Context, req model.EmailRequest) error {
	if req.ToEmail == "" || req.BookingID == "" {
		return errors.New("recipient and booking id are required")
	}
	endpoint := fmt.Sprintf("%s/api/email/send", c.baseURL)
	var ack struct {
		Message string `json:"message"`
	}
	return c.postJSON(ctx, endpoint, req, &ack)
}

// SendChatMessage forwards a user utterance to the gateway chat endpoint.
func (c *Client) SendChatMessage(ctx context.Context, sessionID string, text string) (model.ChatReply, error) {
	if strings.TrimSpace(text) == "" {
		return model.ChatReply{}, errors.New("message text is required")
	}
	endpoint := fmt.Sprintf("%s/api/chat/message", c.baseURL)
	payload := map[string]string{
		"session_id": sessionID,
		"message":    text,
	}
	var reply model.ChatReply
	if err := c.postJSON(ctx, endpoint, payload, &reply); err != nil {
		return model.ChatReply{}, err
	}
	return reply, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) doJSON(ctx context.Context, method string, endpoint string, body []byte, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				c.log.Debug().Err(err).Int("attempt", attempt).Str("endpoint", endpoint).Msg("retrying after network error")
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
			_ = res.Body.Close()

			apiErr := &APIError{
				StatusCode: res.StatusCode,
				Status:     res.Status,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				c.log.Debug().Int("status", res.StatusCode).Int("attempt", attempt).Str("endpoint", endpoint).Msg("retrying after server error")
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		dec := json.NewDecoder(res.Body)
		err = dec.Decode(out)
		_ = res.Body.Close()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
