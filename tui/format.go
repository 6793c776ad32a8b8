package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"museum-booking-cli/model"
)

const currencySymbol = "₹"

var (
	tagConfirmed = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1)
	tagPending   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1)
	tagFailed    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("1")).Padding(0, 1)
)

// formatAmount renders a currency value with a fixed symbol prefix and two
// decimal places.
func formatAmount(value float64) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, value)
}

// humanDate turns YYYY-MM-DD into a readable date. Unparseable input falls
// back to a placeholder rather than failing the render.
func humanDate(date string) string {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return "Date not available"
	}
	return parsed.Format("Monday, 2 January 2006")
}

// visitorSummary pluralizes visitor counts: "1 Adult", "2 Adults, 1 Child".
func visitorSummary(adults, children int) string {
	parts := []string{pluralize(adults, "Adult", "Adults")}
	if children > 0 {
		parts = append(parts, pluralize(children, "Child", "Children"))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func pricingSummary(p model.Pricing) string {
	return fmt.Sprintf("Ticket prices: Adult %s, Child %s.", formatAmount(p.AdultPrice), formatAmount(p.ChildPrice))
}

// renderConfirmation formats a finalized booking for display.
func renderConfirmation(b model.ConfirmedBooking) string {
	rows := []string{
		lipgloss.NewStyle().Bold(true).Render("Booking Confirmed!"),
		"",
		fmt.Sprintf("Reference:  %s", b.ID),
		fmt.Sprintf("Date:       %s", humanDate(b.Date)),
	}
	if b.TimeSlot != "" {
		rows = append(rows, fmt.Sprintf("Time slot:  %s", b.TimeSlot))
	}
	rows = append(rows,
		fmt.Sprintf("Visitors:   %s", visitorSummary(b.Adults, b.Children)),
		fmt.Sprintf("Amount:     %s", formatAmount(b.Amount)),
	)
	return lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("2")).
		Render(strings.Join(rows, "\n"))
}

// renderStatus formats a status lookup result: booking lifecycle and payment
// status as two distinct tags, plus the visitor summary and reference.
func renderStatus(v model.BookingStatusView) string {
	rows := []string{
		lipgloss.NewStyle().Bold(true).Render("Booking " + v.ID),
		"",
		"Status:   " + statusTag(v.Status) + "  Payment: " + paymentTag(v.PaymentStatus),
		"",
		fmt.Sprintf("Date:     %s", humanDate(v.Date)),
		fmt.Sprintf("Slot:     %s", v.TimeSlot),
		fmt.Sprintf("Visitors: %s", visitorSummary(v.Adults, v.Children)),
		fmt.Sprintf("Amount:   %s", formatAmount(v.Amount)),
	}
	return lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(rows, "\n"))
}

func statusTag(status string) string {
	switch strings.ToLower(status) {
	case "confirmed":
		return tagConfirmed.Render("Confirmed")
	case "cancelled":
		return tagFailed.Render("Cancelled")
	default:
		return tagPending.Render(titleCase(status, "Pending"))
	}
}

func paymentTag(status string) string {
	switch strings.ToLower(status) {
	case "completed":
		return tagConfirmed.Render("Completed")
	case "failed":
		return tagFailed.Render("Failed")
	default:
		return tagPending.Render(titleCase(status, "Pending"))
	}
}

func titleCase(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
