package dto

import (
	"time"

	"github.com/google/uuid"
)

// Listing event types accepted by POST /listings/{id}/events.
const (
	ListingEventSearch             = "search"
	ListingEventToggleSpecialty    = "toggle_specialty"
	ListingEventSelectConsultation = "select_consultation"
	ListingEventSelectSort         = "select_sort"
	ListingEventNavigate           = "navigate"
)

// Request DTOs

type OpenListingRequest struct {
	Location string `json:"location" validate:"omitempty,max=4096"`
}

type ListingEventRequest struct {
	Type  string `json:"type" validate:"required,oneof=search toggle_specialty select_consultation select_sort navigate"`
	Value string `json:"value" validate:"max=4096"`
}

// Response DTOs

type CriteriaResponse struct {
	Search              string   `json:"search"`
	SelectedSpecialties []string `json:"selected_specialties"`
	ConsultationType    string   `json:"consultation_type,omitempty"`
	SortBy              string   `json:"sort_by,omitempty"`
}

type ListingResponse struct {
	ID          uuid.UUID        `json:"id"`
	Doctors     []DoctorResponse `json:"doctors"`
	AllDoctors  []DoctorResponse `json:"all_doctors"`
	Specialties []string         `json:"specialties"`
	Criteria    CriteriaResponse `json:"criteria"`
	Location    string           `json:"location"`
	Loading     bool             `json:"loading"`
	Error       string           `json:"error,omitempty"`
	Total       int              `json:"total"`
	TotalAll    int              `json:"total_all"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
