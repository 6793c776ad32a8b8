package model

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Nationality selects the pricing tier, not a legal attribute.
type Nationality string

const (
	NationalityLocal   Nationality = "Local"
	NationalityForeign Nationality = "Foreign"
)

type TicketType string

const (
	TicketRegular TicketType = "Regular"
)

// VenueTimeSlots is the fixed venue-wide slot schedule.
var VenueTimeSlots = []string{"10:00 AM", "2:00 PM"}

// BookingDraft is the in-progress reservation. A single instance is owned by
// the booking flow for the duration of one attempt; only the flow (and the
// pricing fields via ApplyPricing) mutate it.
type BookingDraft struct {
	Date        string // YYYY-MM-DD, empty until a date is picked
	Nationality Nationality
	TicketType  TicketType
	TimeSlot    string
	Adults      int
	Children    int
	AdultPrice  float64
	ChildPrice  float64
	Amount      float64
	Email       string
}

var (
	ErrNoVisitors     = errors.New("at least one visitor is required")
	ErrNegativeCount  = errors.New("visitor counts cannot be negative")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrIncompleteData = errors.New("booking is missing required fields")
)

var validate = validator.New()

// ValidEmail reports whether the confirmation email address is deliverable
// in shape. The gateway re-validates on its side.
func ValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// SetVisitors validates and applies visitor counts, then recomputes the total.
func (d *BookingDraft) SetVisitors(adults, children int) error {
	if adults < 0 || children < 0 {
		return ErrNegativeCount
	}
	if adults+children < 1 {
		return ErrNoVisitors
	}
	d.Adults = adults
	d.Children = children
	d.recompute()
	return nil
}

func (d *BookingDraft) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}
	d.Email = email
	return nil
}

// ApplyPricing is the only write path for prices. Amount is always the
// weighted sum, never edited directly.
func (d *BookingDraft) ApplyPricing(p Pricing) {
	d.AdultPrice = p.AdultPrice
	d.ChildPrice = p.ChildPrice
	d.recompute()
}

func (d *BookingDraft) recompute() {
	d.Amount = float64(d.Adults)*d.AdultPrice + float64(d.Children)*d.ChildPrice
}

// ReadyToSubmit reports whether every field the create-booking endpoint
// requires is present.
func (d *BookingDraft) ReadyToSubmit() error {
	if d.Date == "" || d.Nationality == "" || d.TicketType == "" || d.TimeSlot == "" {
		return ErrIncompleteData
	}
	if d.Adults < 0 || d.Children < 0 {
		return ErrNegativeCount
	}
	if d.Adults+d.Children < 1 {
		return ErrNoVisitors
	}
	if !ValidEmail(d.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Pricing is the unit-price pair returned by the pricing endpoint for a
// (nationality, ticketType, date) tuple.
type Pricing struct {
	AdultPrice float64 `json:"adult_price"`
	ChildPrice float64 `json:"child_price"`
}

// BookingRequest is the create-booking payload.
type BookingRequest struct {
	Date        string  `json:"date"`
	Nationality string  `json:"nationality"`
	Adults      int     `json:"adults"`
	Children    int     `json:"children"`
	TicketType  string  `json:"ticketType"`
	TimeSlot    string  `json:"timeSlot"`
	Email       string  `json:"email"`
	Amount      float64 `json:"amount"`
}

// Request builds the wire payload from the draft.
func (d *BookingDraft) Request() BookingRequest {
	return BookingRequest{
		Date:        d.Date,
		Nationality: string(d.Nationality),
		Adults:      d.Adults,
		Children:    d.Children,
		TicketType:  string(d.TicketType),
		TimeSlot:    d.TimeSlot,
		Email:       d.Email,
		Amount:      d.Amount,
	}
}

// BookingResult is the create-booking response.
type BookingResult struct {
	Success   bool    `json:"success"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Message   string  `json:"message"`
	Error     string  `json:"error"`
}

// ConfirmedBooking is the immutable snapshot of a created booking. It is
// produced once from the create-booking response and only displayed.
type ConfirmedBooking struct {
	ID       string
	Date     string
	TimeSlot string
	Adults   int
	Children int
	Amount   float64
	Email    string
}

// BookingStatusView is the rendered form of a status lookup.
type BookingStatusView struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"time_slot"`
	Adults        int     `json:"adult_count"`
	Children      int     `json:"child_count"`
	Amount        float64 `json:"total_amount"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
}

// EmailRequest is the confirmation-email payload, mirroring the booking
// snapshot the gateway expects.
type EmailRequest struct {
	ToEmail        string       `json:"to_email"`
	BookingID      string       `json:"booking_id"`
	BookingDetails EmailDetails `json:"booking_details"`
}

type EmailDetails struct {
	Date     string  `json:"date"`
	TimeSlot string  `json:"timeSlot"`
	Adults   int     `json:"adults"`
	Children int     `json:"children"`
	Amount   float64 `json:"amount"`
	Email    string  `json:"email"`
}
