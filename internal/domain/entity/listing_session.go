package entity

import (
	"time"

	"github.com/google/uuid"
)

// ListingState is everything the doctor listing exposes to presentation.
// Filtered and Location are always derived from Doctors and Criteria in the
// same transition.
type ListingState struct {
	Doctors     []Doctor `json:"doctors"`
	Specialties []string `json:"specialties"`
	Filtered    []Doctor `json:"filtered"`
	Criteria    Criteria `json:"criteria"`
	Location    string   `json:"location"`
	Loading     bool     `json:"loading"`
	Error       string   `json:"error,omitempty"`

	Mounted bool      `json:"mounted"`
	Closed  bool      `json:"closed"`
	LoadID  uuid.UUID `json:"load_id"`
}

// ListingSession is one open doctor listing, the server-side counterpart of a
// browser page.
type ListingSession struct {
	ID        uuid.UUID    `json:"id"`
	State     ListingState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
