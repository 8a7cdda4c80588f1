package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
)

// ListingSessionToResponse converts a ListingSession entity to ListingResponse DTO
func ListingSessionToResponse(session *entity.ListingSession) *dto.ListingResponse {
	if session == nil {
		return nil
	}

	state := session.State
	specialties := state.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	return &dto.ListingResponse{
		ID:          session.ID,
		Doctors:     DoctorsToResponses(state.Filtered),
		AllDoctors:  DoctorsToResponses(state.Doctors),
		Specialties: specialties,
		Criteria:    CriteriaToResponse(state.Criteria),
		Location:    state.Location,
		Loading:     state.Loading,
		Error:       state.Error,
		Total:       len(state.Filtered),
		TotalAll:    len(state.Doctors),
		UpdatedAt:   session.UpdatedAt,
	}
}

func CriteriaToResponse(criteria entity.Criteria) dto.CriteriaResponse {
	selected := criteria.SelectedSpecialties
	if selected == nil {
		selected = []string{}
	}
	return dto.CriteriaResponse{
		Search:              criteria.SearchTerm,
		SelectedSpecialties: selected,
		ConsultationType:    string(criteria.ConsultationType),
		SortBy:              string(criteria.SortBy),
	}
}
