// Package calendar builds the month grid for the booking calendar and merges
// live availability onto it. Everything here is pure: the current date is
// injected by the caller, never read from the wall clock.
package calendar

import (
	"fmt"
	"time"
)

type DayStatus int

const (
	DayPast DayStatus = iota
	DayToday
	DayFuture
)

type AvailabilityStatus int

const (
	StatusLoading AvailabilityStatus = iota
	StatusAvailable
	StatusLimited
	StatusFull
	StatusUnavailable
	StatusError
)

func (s AvailabilityStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAvailable:
		return "available"
	case StatusLimited:
		return "limited"
	case StatusFull:
		return "full"
	case StatusUnavailable:
		return "unavailable"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// SlotInfo is one slot's contribution to a day cell's tooltip.
type SlotInfo struct {
	Time      string
	Capacity  int
	Available int
	Past      bool
}

// Cell is one real day in the month grid. Week rows pad month boundaries with
// nil cells.
type Cell struct {
	Date         string // YYYY-MM-DD
	Day          int
	DayStatus    DayStatus
	Availability AvailabilityStatus
	Slots        []SlotInfo
}

// Selectable reports whether the cell can be picked in the date step. Past
// days are never interactive; availability must leave room to book.
func (c *Cell) Selectable() bool {
	if c == nil || c.DayStatus == DayPast {
		return false
	}
	return c.Availability == StatusAvailable || c.Availability == StatusLimited
}

// Grid is a month of Sunday-first week rows, each exactly seven entries long.
type Grid struct {
	Year  int
	Month time.Month
	Weeks [][]*Cell
}

// BuildMonthGrid lays out the given month. today classifies each cell as
// past, today or future by date-only comparison.
func BuildMonthGrid(year int, month time.Month, today time.Time) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayKey := today.Format(time.DateOnly)

	grid := Grid{Year: year, Month: month}
	week := make([]*Cell, 7)
	col := int(first.Weekday())

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		key := date.Format(time.DateOnly)

		status := DayFuture
		if key == todayKey {
			status = DayToday
		} else if key < todayKey {
			status = DayPast
		}

		week[col] = &Cell{
			Date:         key,
			Day:          day,
			DayStatus:    status,
			Availability: StatusLoading,
		}
		col++
		if col == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = make([]*Cell, 7)
			col = 0
		}
	}
	if col > 0 {
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// Cells returns the real day cells in order.
func (g Grid) Cells() []*Cell {
	var cells []*Cell
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell != nil {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// CellFor returns the cell carrying the given date, if any.
func (g Grid) CellFor(date string) *Cell {
	for _, cell := range g.Cells() {
		if cell.Date == date {
			return cell
		}
	}
	return nil
}

// Title renders the grid's "June 2024" heading.
func (g Grid) Title() string {
	return fmt.Sprintf("%s %d", g.Month.String(), g.Year)
}
