package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"museum-booking-cli/model"
)

func futureNow() time.Time {
	return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
}

func TestApplyAvailability_LimitedDay(t *testing.T) {
	grid := BuildMonthGrid(2024, time.June, futureNow())
	month := model.MonthAvailability{
		"2024-06-10": {Slots: []model.SlotAvailability{
			{Time: "10:00 AM", Capacity: 20, Available: 0},
			{Time: "2:00 PM", Capacity: 20, Available: 5},
		}},
	}

	ApplyAvailability(&grid, month, futureNow())

	cell := grid.CellFor("2024-06-10")
	require.Equal(t, StatusLimited, cell.Availability)
	assert.Equal(t, "10:00 AM: 0/20\n2:00 PM: 5/20", Tooltip(cell.Slots))
}

func TestApplyAvailability_ZeroCapacityIsUnavailable(t *testing.T) {
	grid := BuildMonthGrid(2024, time.June, futureNow())
	month := model.MonthAvailability{
		"2024-06-10": {Slots: []model.SlotAvailability{
			{Time: "10:00 AM", Capacity: 0, Available: 3},
			{Time: "2:00 PM", Capacity: 0, Available: 7},
		}},
	}

	ApplyAvailability(&grid, month, futureNow())
	require.Equal(t, StatusUnavailable, grid.CellFor("2024-06-10").Availability)
}

func TestApplyAvailability_FullAndAvailable(t *testing.T) {
	grid := BuildMonthGrid(2024, time.June, futureNow())
	month := model.MonthAvailability{
		"2024-06-10": {Slots: []model.SlotAvailability{
			{Time: "10:00 AM", Capacity: 50, Available: 0},
			{Time: "2:00 PM", Capacity: 50, Available: 0},
		}},
		"2024-06-11": {Slots: []model.SlotAvailability{
			{Time: "10:00 AM", Capacity: 50, Available: 30},
			{Time: "2:00 PM", Capacity: 50, Available: 25},
		}},
	}

	ApplyAvailability(&grid, month, futureNow())
	assert.Equal(t, StatusFull, grid.CellFor("2024-06-10").Availability)
	assert.Equal(t, StatusAvailable, grid.CellFor("2024-06-11").Availability)
}

func TestApplyAvailability_MissingDatesUnavailable(t *testing.T) {
	grid := BuildMonthGrid(2024, time.June, futureNow())
	ApplyAvailability(&grid, model.MonthAvailability{}, futureNow())

	for _, cell := range grid.Cells() {
		assert.Equal(t, StatusUnavailable, cell.Availability, cell.Date)
	}
}

func TestApplyAvailability_TodayPassedSlots(t *testing.T) {
	// 3 PM: the 2:00 PM slot (hour 14) has passed, the whole day is not over.
	now := time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)
	grid := BuildMonthGrid(2024, time.June, now)
	month := model.MonthAvailability{
		"2024-06-15": {Slots: []model.SlotAvailability{
			{Time: "10:00 AM", Capacity: 50, Available: 10},
			{Time: "2:00 PM", Capacity: 50, Available: 10},
		}},
	}

	ApplyAvailability(&grid, month, now)

	cell := grid.CellFor("2024-06-15")
	require.Equal(t, StatusUnavailable, cell.Availability)
	assert.Equal(t, "10:00 AM: Past\n2:00 PM: Past", Tooltip(cell.Slots))
}

func TestApplyAvailability_TodayMorningSlotsStillOpen(t *testing.T) {
	// 9 AM: neither slot has passed yet.
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	grid := BuildMonthGrid(2024, time.June, now)
	month := model.MonthAvailability{
		"2024-06-15": {Slots: []model.SlotAvailability{
			{Time: "10:00 AM", Capacity: 50, Available: 40},
			{Time: "2:00 PM", Capacity: 50, Available: 40},
		}},
	}

	ApplyAvailability(&grid, month, now)

	cell := grid.CellFor("2024-06-15")
	require.Equal(t, StatusAvailable, cell.Availability)
	for _, slot := range cell.Slots {
		assert.False(t, slot.Past, slot.Time)
	}
}

func TestApplyAvailability_ReplacesPreviousOverlay(t *testing.T) {
	grid := BuildMonthGrid(2024, time.June, futureNow())
	first := model.MonthAvailability{
		"2024-06-10": {Slots: []model.SlotAvailability{
			{Time: "10:00 AM", Capacity: 50, Available: 40},
		}},
	}
	ApplyAvailability(&grid, first, futureNow())
	require.Equal(t, StatusAvailable, grid.CellFor("2024-06-10").Availability)

	// A re-fetch with the date missing discards the old overlay entirely.
	ApplyAvailability(&grid, model.MonthAvailability{}, futureNow())
	require.Equal(t, StatusUnavailable, grid.CellFor("2024-06-10").Availability)
	require.Nil(t, grid.CellFor("2024-06-10").Slots)
}

func TestMarkError(t *testing.T) {
	grid := BuildMonthGrid(2024, time.June, futureNow())
	MarkError(&grid)
	for _, cell := range grid.Cells() {
		assert.Equal(t, StatusError, cell.Availability)
	}
}

func TestSlotHour(t *testing.T) {
	cases := []struct {
		in   string
		hour int
		ok   bool
	}{
		{"10:00 AM", 10, true},
		{"2:00 PM", 14, true},
		{"12:00 PM", 12, true},
		{"12:30 AM", 0, true},
		{"11:59 PM", 23, true},
		{"2:00", 0, false},
		{"garbage", 0, false},
		{"13:00 PM", 0, false},
	}
	for _, tc := range cases {
		hour, ok := SlotHour(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.hour, hour, tc.in)
		}
	}
}

func TestSlotPassed(t *testing.T) {
	assert.True(t, SlotPassed("2:00 PM", 15))
	assert.True(t, SlotPassed("2:00 PM", 14)) // hour equality counts as passed
	assert.False(t, SlotPassed("2:00 PM", 13))
	assert.False(t, SlotPassed("not a time", 23))
}
