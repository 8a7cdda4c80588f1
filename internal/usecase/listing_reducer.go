package usecase

import (
	"doctor-directory/internal/converter"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/service"

	"github.com/google/uuid"
)

const loadFailedMessage = "Failed to load doctor data"

// ListingEvent is anything that can change a doctor listing. Reduce is the
// only place events are interpreted.
type ListingEvent interface {
	listingEvent()
}

// Mounted opens the listing at Location and starts the load identified by
// LoadID. Only the first Mounted of a listing has an effect.
type Mounted struct {
	Location string
	LoadID   uuid.UUID
}

type LoadSucceeded struct {
	LoadID  uuid.UUID
	Doctors []entity.Doctor
}

type LoadFailed struct {
	LoadID uuid.UUID
	Err    error
}

type SearchSubmitted struct {
	Term string
}

type SpecialtyToggled struct {
	Name string
}

type ConsultationSelected struct {
	Type entity.ConsultationType
}

type SortSelected struct {
	Key entity.SortKey
}

// LocationChanged reports the location as currently shown to the user. It is
// decoded only when it differs from the listing's own last encoding.
type LocationChanged struct {
	Location string
}

type TornDown struct{}

func (Mounted) listingEvent()              {}
func (LoadSucceeded) listingEvent()        {}
func (LoadFailed) listingEvent()           {}
func (SearchSubmitted) listingEvent()      {}
func (SpecialtyToggled) listingEvent()     {}
func (ConsultationSelected) listingEvent() {}
func (SortSelected) listingEvent()         {}
func (LocationChanged) listingEvent()      {}
func (TornDown) listingEvent()             {}

// Reduce applies event to prev and returns the next listing state. It is pure:
// prev is not modified and nothing outside the returned value changes.
//
// Every transition that touches the collection or the criteria recomputes
// Filtered and Location together, so a state never pairs a view with a
// location that encodes different criteria.
func Reduce(prev entity.ListingState, event ListingEvent) entity.ListingState {
	if prev.Closed {
		return prev
	}

	next := prev
	switch ev := event.(type) {
	case Mounted:
		if prev.Mounted {
			return prev
		}
		next.Mounted = true
		next.Loading = true
		next.LoadID = ev.LoadID
		next.Criteria = converter.DecodeLocation(ev.Location)

	case LoadSucceeded:
		if !prev.Loading || ev.LoadID != prev.LoadID {
			return prev
		}
		next.Loading = false
		next.Error = ""
		next.Doctors = ev.Doctors
		next.Specialties = service.BuildSpecialtyIndex(ev.Doctors)

	case LoadFailed:
		if !prev.Loading || ev.LoadID != prev.LoadID {
			return prev
		}
		next.Loading = false
		next.Error = loadFailedMessage

	case SearchSubmitted:
		next.Criteria.SearchTerm = ev.Term

	case SpecialtyToggled:
		// an empty name has no location encoding
		if ev.Name == "" {
			return prev
		}
		next.Criteria = prev.Criteria.ToggleSpecialty(ev.Name)

	case ConsultationSelected:
		if prev.Criteria.ConsultationType == ev.Type {
			next.Criteria.ConsultationType = entity.ConsultationNone
		} else {
			next.Criteria.ConsultationType = ev.Type
		}

	case SortSelected:
		if prev.Criteria.SortBy == ev.Key {
			next.Criteria.SortBy = entity.SortNone
		} else {
			next.Criteria.SortBy = ev.Key
		}

	case LocationChanged:
		if ev.Location == prev.Location {
			return prev
		}
		next.Criteria = converter.DecodeLocation(ev.Location)

	case TornDown:
		next.Closed = true
		return next

	default:
		return prev
	}

	return derive(next)
}

func derive(state entity.ListingState) entity.ListingState {
	if state.Error != "" {
		state.Filtered = nil
	} else {
		state.Filtered = service.ApplyCriteria(state.Doctors, state.Criteria)
	}
	state.Location = converter.EncodeLocation(state.Criteria)
	return state
}
