package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const transcriptLines = 6

func (m appModel) View() string {
	header := m.headerView()
	chat := m.transcriptView()
	body := m.bodyView()

	sections := []string{header}
	if chat != "" {
		sections = append(sections, chat)
	}
	sections = append(sections, body)
	return strings.Join(sections, "\n\n")
}

func (m appModel) bodyView() string {
	switch m.state {
	case stateMenu:
		return m.menuList.View()
	case stateSelectDate:
		return m.calendarView()
	case stateSelectNationality:
		return m.nationalityList.View()
	case stateSelectTicketType:
		return m.ticketList.View()
	case stateSelectTimeSlot:
		return m.slotList.View()
	case stateEnterVisitors:
		return m.visitorsFormView()
	case stateEnterEmail:
		return "Email address:\n" + m.emailInput.View()
	case stateReviewSummary:
		return m.summaryView()
	case stateSubmitting:
		return fmt.Sprintf("%s Submitting your booking...\n\n%s", m.spinner.View(), hint("Hold on while we confirm your payment."))
	case stateConfirmed:
		return m.confirmationView()
	case stateEnterBookingRef:
		return m.bookingRefView()
	case stateLoadingStatus:
		return fmt.Sprintf("%s Looking up booking %s...", m.spinner.View(), m.lookupRef)
	case stateShowStatus:
		return m.statusLookupView()
	case stateError:
		if m.err != nil {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press enter or esc to go back.")
		}
		return hint("Press enter or esc to go back.")
	default:
		return ""
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Museum Booking Assistant")
	sub := []string{}
	if m.draft.Date != "" {
		sub = append(sub, fmt.Sprintf("Date: %s", m.draft.Date))
	}
	if m.draft.Nationality != "" {
		sub = append(sub, fmt.Sprintf("Visitor: %s", m.draft.Nationality))
	}
	if m.draft.TimeSlot != "" {
		sub = append(sub, fmt.Sprintf("Slot: %s", m.draft.TimeSlot))
	}
	if m.draft.Adults+m.draft.Children > 0 {
		sub = append(sub, visitorSummary(m.draft.Adults, m.draft.Children))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back"
	switch m.state {
	case stateSelectDate:
		hints = "arrows move • [ ] change month • enter pick date • esc back • ctrl+c quit"
	case stateEnterVisitors:
		hints = "tab switch field • enter continue • esc back • ctrl+c quit"
	case stateReviewSummary:
		hints = "enter confirm and pay • esc back • ctrl+c quit"
	case stateConfirmed, stateShowStatus:
		hints = "enter back to menu • ctrl+c quit"
	}
	return title + meta + "\n" + hint(hints)
}

func (m appModel) transcriptView() string {
	if len(m.transcript) == 0 {
		return ""
	}
	start := len(m.transcript) - transcriptLines
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, transcriptLines)
	botStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	userStyle := lipgloss.NewStyle().Faint(true)
	for _, line := range m.transcript[start:] {
		if line.fromUser {
			lines = append(lines, userStyle.Render("you: "+line.text))
		} else {
			lines = append(lines, botStyle.Render("assistant: "+line.text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m appModel) visitorsFormView() string {
	var b strings.Builder
	if m.draft.AdultPrice > 0 || m.draft.ChildPrice > 0 {
		b.WriteString(hint(fmt.Sprintf("Adult %s • Child %s", formatAmount(m.draft.AdultPrice), formatAmount(m.draft.ChildPrice))))
		b.WriteString("\n\n")
	} else if m.pricingPending {
		b.WriteString(hint("Fetching ticket prices..."))
		b.WriteString("\n\n")
	}
	b.WriteString("Adults:   " + m.adultsInput.View() + "\n")
	b.WriteString("Children: " + m.childrenInput.View())
	return b.String()
}

func (m appModel) summaryView() string {
	rows := []string{
		fmt.Sprintf("Date:        %s", humanDate(m.draft.Date)),
		fmt.Sprintf("Time slot:   %s", m.draft.TimeSlot),
		fmt.Sprintf("Visitors:    %s", visitorSummary(m.draft.Adults, m.draft.Children)),
		fmt.Sprintf("Nationality: %s", m.draft.Nationality),
		fmt.Sprintf("Ticket:      %s", m.draft.TicketType),
		fmt.Sprintf("Email:       %s", m.draft.Email),
	}
	if m.pricingPending {
		rows = append(rows, "Total:       "+hint("refreshing prices..."))
	} else {
		rows = append(rows, fmt.Sprintf("Total:       %s", formatAmount(m.draft.Amount)))
	}
	panel := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(rows, "\n"))
	return panel
}

func (m appModel) confirmationView() string {
	body := renderConfirmation(m.confirmed)
	var advisory string
	switch {
	case m.emailPending:
		advisory = hint("Sending confirmation email...")
	case m.confirmationEmailErr:
		advisory = hint("Note: the confirmation email could not be sent. Keep your booking reference safe.")
	case m.confirmationEmailOK:
		advisory = hint(fmt.Sprintf("A confirmation email is on its way to %s.", m.confirmed.Email))
	}
	if advisory != "" {
		return body + "\n\n" + advisory
	}
	return body
}

func (m appModel) bookingRefView() string {
	var b strings.Builder
	b.WriteString("Booking reference:\n")
	b.WriteString(m.refInput.View())
	if len(m.recentBookings) > 0 {
		refs := make([]string, 0, len(m.recentBookings))
		for _, booking := range m.recentBookings {
			refs = append(refs, booking.ID)
		}
		b.WriteString("\n\n" + hint("Recent: "+strings.Join(refs, ", ")))
	}
	return b.String()
}

func (m appModel) statusLookupView() string {
	if m.statusNotFound {
		return fmt.Sprintf("No booking found for reference %q.\n\n%s",
			m.lookupRef, hint("Check the reference and try again."))
	}
	return renderStatus(m.statusView)
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}
