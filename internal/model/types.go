package model

import "time"

// User represents an account in the system.
type User struct {
	UserID         string     `json:"userId"`
	Email          string     `json:"email"`
	DisplayName    *string    `json:"displayName,omitempty"`
	TimeZone       string     `json:"timeZone"`
	Status         string     `json:"status"`
	CreationTime   time.Time  `json:"creationTime"`
	LastActiveTime *time.Time `json:"lastActiveTime,omitempty"`
}

// TimeEntry is a single logged work shift. StartTime and EndTime are wall
// clock values in HH:MM form; an end before the start means the shift
// crossed midnight. GrossMinutes and NetMinutes are derived from the clock
// pair and the lunch deduction when the entry is written and are never
// edited on their own.
type TimeEntry struct {
	EntryID      string    `json:"entryId"`
	OwnerID      string    `json:"ownerId"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	LunchMinutes int       `json:"lunchDuration"`
	GrossMinutes int       `json:"grossDuration"`
	NetMinutes   int       `json:"netDuration"`
	Notes        *string   `json:"notes,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// ListEntriesRequest captures filters used when listing time entries.
type ListEntriesRequest struct {
	OwnerID string
	From    *time.Time
	To      *time.Time
	Limit   int
}
