package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"museum-booking-cli/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)
}

func TestAvailabilityCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	availability := model.MonthAvailability{
		"2024-06-10": {
			Status: "available",
			Slots: []model.SlotAvailability{
				{Time: "10:00 AM", Available: 45, Capacity: 50, Booked: 5},
				{Time: "2:00 PM", Available: 50, Capacity: 50, Booked: 0},
			},
			TotalAvailable: 95,
			TotalCapacity:  100,
		},
	}
	require.NoError(t, SaveAvailabilityCache(2024, 6, availability))

	loaded, fresh, err := LoadAvailabilityCache(2024, 6)
	require.NoError(t, err)
	assert.True(t, fresh)
	require.Contains(t, loaded, "2024-06-10")
	assert.Equal(t, 95, loaded["2024-06-10"].TotalAvailable)
}

func TestAvailabilityCache_MissingFileIsNotAnError(t *testing.T) {
	setTestDirs(t)

	loaded, fresh, err := LoadAvailabilityCache(2031, 1)
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Empty(t, loaded)
}

func TestAvailabilityCache_MonthsAreIndependent(t *testing.T) {
	setTestDirs(t)

	june := model.MonthAvailability{"2024-06-01": {Status: "full"}}
	july := model.MonthAvailability{"2024-07-01": {Status: "available"}}
	require.NoError(t, SaveAvailabilityCache(2024, 6, june))
	require.NoError(t, SaveAvailabilityCache(2024, 7, july))

	loaded, _, err := LoadAvailabilityCache(2024, 6)
	require.NoError(t, err)
	assert.Contains(t, loaded, "2024-06-01")
	assert.NotContains(t, loaded, "2024-07-01")
}

func TestRememberBooking_NewestFirst(t *testing.T) {
	setTestDirs(t)

	require.NoError(t, RememberBooking(RecentBooking{ID: "B1", Date: "2024-06-10"}))
	require.NoError(t, RememberBooking(RecentBooking{ID: "B2", Date: "2024-06-11"}))

	history, err := LoadRecentBookings()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "B2", history[0].ID)
	assert.Equal(t, "B1", history[1].ID)
}

func TestRememberBooking_DeduplicatesByID(t *testing.T) {
	setTestDirs(t)

	require.NoError(t, RememberBooking(RecentBooking{ID: "B1", Date: "2024-06-10"}))
	require.NoError(t, RememberBooking(RecentBooking{ID: "B2", Date: "2024-06-11"}))
	require.NoError(t, RememberBooking(RecentBooking{ID: "b1", Date: "2024-06-12"}))

	history, err := LoadRecentBookings()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "b1", history[0].ID)
	assert.Equal(t, "2024-06-12", history[0].Date)
	assert.Equal(t, "B2", history[1].ID)
}

func TestRememberBooking_CapsHistory(t *testing.T) {
	setTestDirs(t)

	for i := 0; i < maxRecentBookings+4; i++ {
		require.NoError(t, RememberBooking(RecentBooking{ID: string(rune('A' + i)), Date: "2024-06-10"}))
	}

	history, err := LoadRecentBookings()
	require.NoError(t, err)
	assert.Len(t, history, maxRecentBookings)
	assert.Equal(t, string(rune('A'+maxRecentBookings+3)), history[0].ID)
}

func TestRememberBooking_RejectsEmptyID(t *testing.T) {
	setTestDirs(t)
	assert.Error(t, RememberBooking(RecentBooking{ID: "  "}))
}

func TestLoadRecentBookings_EmptyHistory(t *testing.T) {
	setTestDirs(t)

	history, err := LoadRecentBookings()
	require.NoError(t, err)
	assert.Empty(t, history)
}
