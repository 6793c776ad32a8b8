package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"museum-booking-cli/model"
)

const (
	availabilityCacheTTL = 5 * time.Minute
	maxRecentBookings    = 8
	appDirName           = "museum-booking-cli"
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// RecentBooking is a locally remembered booking reference, offered as a
// shortcut in the status-lookup step.
type RecentBooking struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type bookingHistory struct {
	Bookings []RecentBooking `json:"bookings"`
}

// LoadAvailabilityCache returns cached monthly availability and whether it is
// still fresh. A missing cache file is not an error.
func LoadAvailabilityCache(year int, month int) (model.MonthAvailability, bool, error) {
	path, err := cachePath(fmt.Sprintf("availability_%04d_%02d.json", year, month))
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[model.MonthAvailability](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= availabilityCacheTTL, nil
}

func SaveAvailabilityCache(year int, month int, availability model.MonthAvailability) error {
	path, err := cachePath(fmt.Sprintf("availability_%04d_%02d.json", year, month))
	if err != nil {
		return err
	}
	return saveCache(path, availability)
}

func LoadRecentBookings() ([]RecentBooking, error) {
	path, err := configPath("bookings.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history bookingHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid booking history format")
	}
	return history.Bookings, nil
}

// RememberBooking puts the reference at the head of the history, dropping
// duplicates and anything past the cap.
func RememberBooking(booking RecentBooking) error {
	if strings.TrimSpace(booking.ID) == "" {
		return errors.New("booking id is required")
	}
	history, _ := LoadRecentBookings()
	next := []RecentBooking{booking}

	for _, existing := range history {
		if strings.EqualFold(existing.ID, booking.ID) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentBookings {
			break
		}
	}

	return saveRecentBookings(next)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func saveRecentBookings(bookings []RecentBooking) error {
	path, err := configPath("bookings.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := bookingHistory{Bookings: bookings}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
