package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"museum-booking-cli/model"
)

// limitedThreshold is the day-level remaining-seat count at or below which a
// day renders as limited rather than available.
const limitedThreshold = 10

// ApplyAvailability merges a monthly availability response onto the grid.
// Cells with no entry in the response become unavailable; the previous
// overlay, if any, is discarded wholesale. now drives the "slot already
// passed today" adjustment.
func ApplyAvailability(grid *Grid, month model.MonthAvailability, now time.Time) {
	today := now.Format(time.DateOnly)
	for _, cell := range grid.Cells() {
		day, ok := month[cell.Date]
		if !ok || len(day.Slots) == 0 {
			cell.Availability = StatusUnavailable
			cell.Slots = nil
			continue
		}
		cell.Slots = buildSlotInfos(day.Slots, cell.Date == today, now.Hour())
		cell.Availability = dayStatus(day.Slots, cell.Date == today, now.Hour())
	}
}

// MarkError flips every cell into the error state after a failed availability
// fetch. The calendar stays navigable.
func MarkError(grid *Grid) {
	for _, cell := range grid.Cells() {
		cell.Availability = StatusError
		cell.Slots = nil
	}
}

// dayStatus derives the day-level status in priority order: unavailable
// (no capacity, or everything already passed today), then full, then limited,
// then available.
func dayStatus(slots []model.SlotAvailability, isToday bool, currentHour int) AvailabilityStatus {
	totalAvailable := 0
	totalCapacity := 0
	allPassed := isToday
	for _, slot := range slots {
		totalAvailable += slot.Available
		totalCapacity += slot.Capacity
		if isToday && !SlotPassed(slot.Time, currentHour) {
			allPassed = false
		}
	}
	switch {
	case totalCapacity == 0 || allPassed:
		return StatusUnavailable
	case totalAvailable == 0:
		return StatusFull
	case totalAvailable <= limitedThreshold:
		return StatusLimited
	default:
		return StatusAvailable
	}
}

func buildSlotInfos(slots []model.SlotAvailability, isToday bool, currentHour int) []SlotInfo {
	infos := make([]SlotInfo, 0, len(slots))
	for _, slot := range slots {
		infos = append(infos, SlotInfo{
			Time:      slot.Time,
			Capacity:  slot.Capacity,
			Available: slot.Available,
			Past:      isToday && SlotPassed(slot.Time, currentHour),
		})
	}
	return infos
}

// Tooltip renders one line per slot: "Past" for slots that have elapsed today,
// "available/capacity" otherwise.
func Tooltip(slots []SlotInfo) string {
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.Past {
			lines = append(lines, fmt.Sprintf("%s: Past", slot.Time))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %d/%d", slot.Time, slot.Available, slot.Capacity))
	}
	return strings.Join(lines, "\n")
}

// SlotPassed reports whether a 12-hour "H:MM AM/PM" slot has elapsed given
// the current hour. Comparison is at hour granularity; the venue runs a
// coarse two-slot schedule, so minutes do not matter here.
func SlotPassed(slotTime string, currentHour int) bool {
	hour, ok := SlotHour(slotTime)
	if !ok {
		return false
	}
	return hour <= currentHour
}

// SlotHour parses "H:MM AM/PM" into a 24-hour hour value.
func SlotHour(slotTime string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(slotTime))
	if len(fields) != 2 {
		return 0, false
	}
	clock, meridiem := fields[0], strings.ToUpper(fields[1])
	hourPart, _, found := strings.Cut(clock, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}
	switch meridiem {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, false
	}
	return hour, true
}
