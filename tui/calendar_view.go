package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"museum-booking-cli/calendar"
)

var (
	cellBase        = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	cellPast        = cellBase.Foreground(lipgloss.Color("240"))
	cellLoading     = cellBase.Foreground(lipgloss.Color("244"))
	cellAvailable   = cellBase.Foreground(lipgloss.Color("2"))
	cellLimited     = cellBase.Foreground(lipgloss.Color("3"))
	cellFull        = cellBase.Foreground(lipgloss.Color("1"))
	cellUnavailable = cellBase.Foreground(lipgloss.Color("240")).Strikethrough(true)
	cellError       = cellBase.Foreground(lipgloss.Color("5"))
	cellCursor      = lipgloss.NewStyle().Width(4).Align(lipgloss.Center).Reverse(true).Bold(true)
	cellToday       = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m appModel) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "left", "h":
		m.moveCursor(-1)
		return m, nil, true
	case "right", "l":
		m.moveCursor(1)
		return m, nil, true
	case "up", "k":
		m.moveCursor(-7)
		return m, nil, true
	case "down", "j":
		m.moveCursor(7)
		return m, nil, true
	case "pgup", "[":
		next, cmd := m.navigateMonth(-1)
		return next, cmd, true
	case "pgdown", "]":
		next, cmd := m.navigateMonth(1)
		return next, cmd, true
	case "enter":
		return m.pickCursorDate()
	}
	return m, nil, false
}

func (m appModel) pickCursorDate() (tea.Model, tea.Cmd, bool) {
	cells := m.grid.Cells()
	if m.calCursor < 0 || m.calCursor >= len(cells) {
		return m, nil, true
	}
	cell := cells[m.calCursor]
	if cell.DayStatus == calendar.DayPast {
		next := m.botSay("That date has already passed. Please pick a future date.")
		return next, nil, true
	}
	if !cell.Selectable() {
		next := m.botSay(fmt.Sprintf("%s is %s. Please pick another date.", cell.Date, cell.Availability))
		return next, nil, true
	}
	m.draft.Date = cell.Date
	next := m.userSay(cell.Date)
	next2, cmd := next.enterNationalityStep()
	return next2, cmd, true
}

// navigateMonth rebuilds the grid for an adjacent month. The previous
// overlay is discarded outright; the fresh fetch repopulates it.
func (m appModel) navigateMonth(delta int) (appModel, tea.Cmd) {
	anchor := time.Date(m.calYear, m.calMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.calYear, m.calMonth = anchor.Year(), anchor.Month()
	m.grid = calendar.BuildMonthGrid(m.calYear, m.calMonth, m.now())
	m.calCursor = m.defaultCursor()
	return m, m.fetchAvailabilityCmd(m.calYear, m.calMonth)
}

func (m *appModel) moveCursor(delta int) {
	cells := m.grid.Cells()
	if len(cells) == 0 {
		return
	}
	next := m.calCursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(cells) {
		next = len(cells) - 1
	}
	m.calCursor = next
}

// defaultCursor lands on today when the grid contains it, otherwise on the
// first non-past cell.
func (m appModel) defaultCursor() int {
	cells := m.grid.Cells()
	for i, cell := range cells {
		if cell.DayStatus == calendar.DayToday {
			return i
		}
	}
	for i, cell := range cells {
		if cell.DayStatus != calendar.DayPast {
			return i
		}
	}
	return 0
}

func (m appModel) cursorSelectable() bool {
	cells := m.grid.Cells()
	if m.calCursor < 0 || m.calCursor >= len(cells) {
		return false
	}
	return cells[m.calCursor].Selectable()
}

func (m appModel) calendarView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.grid.Title()))
	b.WriteString("\n")
	b.WriteString(hint("Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	index := 0
	for _, week := range m.grid.Weeks {
		for _, cell := range week {
			if cell == nil {
				b.WriteString(cellBase.Render(""))
				continue
			}
			b.WriteString(m.renderCell(cell, index == m.calCursor))
			index++
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hint("green available • yellow limited • red full • struck unavailable"))

	cells := m.grid.Cells()
	if m.calCursor >= 0 && m.calCursor < len(cells) {
		cell := cells[m.calCursor]
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(cell.Date))
		b.WriteString(" — " + cell.Availability.String())
		if tooltip := calendar.Tooltip(cell.Slots); tooltip != "" {
			b.WriteString("\n" + hint(tooltip))
		}
	}
	return b.String()
}

func (m appModel) renderCell(cell *calendar.Cell, cursor bool) string {
	label := fmt.Sprintf("%d", cell.Day)
	if cell.DayStatus == calendar.DayToday {
		label = cellToday.Render(label)
	}
	if cursor {
		return cellCursor.Render(label)
	}
	if cell.DayStatus == calendar.DayPast {
		return cellPast.Render(label)
	}
	switch cell.Availability {
	case calendar.StatusLoading:
		return cellLoading.Render(label)
	case calendar.StatusAvailable:
		return cellAvailable.Render(label)
	case calendar.StatusLimited:
		return cellLimited.Render(label)
	case calendar.StatusFull:
		return cellFull.Render(label)
	case calendar.StatusError:
		return cellError.Render(label)
	default:
		return cellUnavailable.Render(label)
	}
}
