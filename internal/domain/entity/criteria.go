package entity

import "slices"

// ConsultationType is the single-select consultation mode filter.
type ConsultationType string

const (
	ConsultationNone   ConsultationType = ""
	ConsultationVideo  ConsultationType = "Video Consult"
	ConsultationClinic ConsultationType = "In Clinic"
)

// ParseConsultationType maps a location value onto a known consultation type.
// Unknown values report false.
func ParseConsultationType(s string) (ConsultationType, bool) {
	switch ConsultationType(s) {
	case ConsultationVideo, ConsultationClinic:
		return ConsultationType(s), true
	case ConsultationNone:
		return ConsultationNone, true
	}
	return ConsultationNone, false
}

// SortKey is the single-select ordering of the listing.
type SortKey string

const (
	SortNone       SortKey = ""
	SortFees       SortKey = "fees"
	SortExperience SortKey = "experience"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortFees, SortExperience:
		return SortKey(s), true
	case SortNone:
		return SortNone, true
	}
	return SortNone, false
}

// Criteria is the search, filter and sort selection of a listing. Zero values
// mean "no constraint".
type Criteria struct {
	SearchTerm          string           `json:"search_term"`
	SelectedSpecialties []string         `json:"selected_specialties"`
	ConsultationType    ConsultationType `json:"consultation_type"`
	SortBy              SortKey          `json:"sort_by"`
}

// HasSpecialty reports whether name is selected.
func (c Criteria) HasSpecialty(name string) bool {
	return slices.Contains(c.SelectedSpecialties, name)
}

// ToggleSpecialty returns a copy of c with name removed when selected, or
// appended when not.
func (c Criteria) ToggleSpecialty(name string) Criteria {
	next := c
	if c.HasSpecialty(name) {
		next.SelectedSpecialties = make([]string, 0, len(c.SelectedSpecialties))
		for _, s := range c.SelectedSpecialties {
			if s != name {
				next.SelectedSpecialties = append(next.SelectedSpecialties, s)
			}
		}
		return next
	}
	next.SelectedSpecialties = append(slices.Clone(c.SelectedSpecialties), name)
	return next
}

// Equal compares criteria field by field. A nil and an empty specialty
// selection are equal.
func (c Criteria) Equal(other Criteria) bool {
	return c.SearchTerm == other.SearchTerm &&
		c.ConsultationType == other.ConsultationType &&
		c.SortBy == other.SortBy &&
		slices.Equal(c.SelectedSpecialties, other.SelectedSpecialties)
}
