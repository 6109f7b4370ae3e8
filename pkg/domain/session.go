package domain

import "time"

// TripState identifies which answer the dialogue is waiting for.
type TripState string

const (
	StateStartDate       TripState = "awaiting_start_date"
	StateEndDate         TripState = "awaiting_end_date"
	StateOriginCity      TripState = "awaiting_origin_city"
	StateDestinationCity TripState = "awaiting_destination_city"
	StateTerminated      TripState = "terminated"
)

// ActiveStates lists every state that expects user input, in interview order.
// The dialogue engine uses it to verify its transition table is exhaustive.
func ActiveStates() []TripState {
	return []TripState{StateStartDate, StateEndDate, StateOriginCity, StateDestinationCity}
}

// Session is the per-user record of trip-planning progress.
//
// Field population follows the state: StateEndDate implies StartDate is set,
// StateOriginCity implies both dates are set, and so on. EndDate is never
// earlier than StartDate once stored.
type Session struct {
	UserID int64
	State  TripState

	// Collected answers. Zero values mean "not yet validated".
	StartDate       time.Time
	EndDate         time.Time
	OriginCity      string
	DestinationCity string

	StartedAt time.Time
}

// NewSession creates a fresh session waiting for the start date.
func NewSession(userID int64, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		State:     StateStartDate,
		StartedAt: now,
	}
}

// Terminated reports whether the session has reached its sink state.
func (s *Session) Terminated() bool {
	return s.State == StateTerminated
}
