package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor entity.Doctor) dto.DoctorResponse {
	specialities := make([]string, len(doctor.Specialities))
	for i, s := range doctor.Specialities {
		specialities[i] = s.Name
	}

	return dto.DoctorResponse{
		ID:                 doctor.ID,
		Name:               doctor.Name,
		NameInitials:       doctor.NameInitials,
		Photo:              doctor.Photo,
		DoctorIntroduction: doctor.DoctorIntroduction,
		Specialities:       specialities,
		Fees:               doctor.Fees,
		Experience:         doctor.Experience,
		Languages:          doctor.Languages,
		Clinic: dto.ClinicResponse{
			Name:         doctor.Clinic.Name,
			LogoURL:      doctor.Clinic.LogoURL,
			Locality:     doctor.Clinic.Address.Locality,
			City:         doctor.Clinic.Address.City,
			AddressLine1: doctor.Clinic.Address.AddressLine1,
		},
		VideoConsult: doctor.VideoConsult,
		InClinic:     doctor.InClinic,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = DoctorToResponse(doctor)
	}
	return responses
}

func DoctorsToSuggestions(doctors []entity.Doctor) *dto.DoctorSuggestionListResponse {
	suggestions := make([]dto.DoctorSuggestionResponse, len(doctors))
	for i, doctor := range doctors {
		suggestions[i] = dto.DoctorSuggestionResponse{
			ID:   doctor.ID,
			Name: doctor.Name,
		}
	}
	return &dto.DoctorSuggestionListResponse{
		Suggestions: suggestions,
		Total:       len(suggestions),
	}
}
