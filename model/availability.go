package model

// SlotAvailability is one bookable time window on one date.
type SlotAvailability struct {
	Time      string `json:"time"`
	Available int    `json:"available"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
}

// DayAvailability is the per-date entry of the monthly calendar response.
type DayAvailability struct {
	Status         string             `json:"status"`
	Slots          []SlotAvailability `json:"slots"`
	TotalAvailable int                `json:"total_available"`
	TotalCapacity  int                `json:"total_capacity"`
}

// MonthAvailability maps YYYY-MM-DD date strings to their slot availability.
// Dates absent from the map are treated as unavailable.
type MonthAvailability map[string]DayAvailability

// ChatReply is the gateway's answer to a chat message.
type ChatReply struct {
	Message    string `json:"message"`
	Intent     string `json:"intent"`
	NextAction string `json:"next_action"`
}

// ChatEvent is an inbound push event. Action, when set, names the booking
// step whose entry action should run again.
type ChatEvent struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// Closed set of actions the push channel may carry.
const (
	ActionShowCalendar      = "show_calendar"
	ActionSelectNationality = "select_nationality"
	ActionSelectVisitors    = "select_visitors"
	ActionSelectTime        = "select_time"
	ActionShowSummary       = "show_summary"
)
