package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"museum-booking-cli/calendar"
	"museum-booking-cli/model"
)

type menuAction int

const (
	menuBook menuAction = iota
	menuStatus
	menuQuit
)

type menuItem struct {
	title  string
	desc   string
	action menuAction
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{title: "Book Tickets", desc: "Start a new booking", action: menuBook},
		menuItem{title: "Check Booking Status", desc: "Look up an existing booking", action: menuStatus},
		menuItem{title: "Quit", desc: "Leave the booking assistant", action: menuQuit},
	}
}

type choiceItem struct {
	value string
	desc  string
}

func (i choiceItem) Title() string       { return i.value }
func (i choiceItem) Description() string { return i.desc }
func (i choiceItem) FilterValue() string { return i.value }

func nationalityItems() []list.Item {
	return []list.Item{
		choiceItem{value: string(model.NationalityLocal), desc: "Resident pricing"},
		choiceItem{value: string(model.NationalityForeign), desc: "International pricing"},
	}
}

func ticketItems() []list.Item {
	return []list.Item{
		choiceItem{value: string(model.TicketRegular), desc: "General admission"},
	}
}

type slotItem struct {
	time      string
	available int
	capacity  int
	known     bool
	past      bool
}

func (i slotItem) Title() string {
	if i.past {
		return fmt.Sprintf("%s (Past)", i.time)
	}
	return i.time
}

func (i slotItem) Description() string {
	if i.past {
		return "No longer available today"
	}
	if i.known {
		return fmt.Sprintf("%d of %d seats left", i.available, i.capacity)
	}
	return ""
}

func (i slotItem) FilterValue() string { return i.time }

// buildSlotItems offers the venue's fixed slot set, disabling slots that have
// already passed when the drafted date is today.
func (m appModel) buildSlotItems() []list.Item {
	now := m.now()
	isToday := m.draft.Date == now.Format("2006-01-02")
	cell := m.grid.CellFor(m.draft.Date)

	items := make([]list.Item, 0, len(model.VenueTimeSlots))
	for _, slot := range model.VenueTimeSlots {
		item := slotItem{
			time: slot,
			past: isToday && calendar.SlotPassed(slot, now.Hour()),
		}
		if cell != nil {
			for _, info := range cell.Slots {
				if info.Time == slot {
					item.available = info.Available
					item.capacity = info.Capacity
					item.known = true
				}
			}
		}
		items = append(items, item)
	}
	return items
}
