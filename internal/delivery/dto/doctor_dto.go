package dto

// Response DTOs

type DoctorResponse struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	NameInitials       string         `json:"name_initials,omitempty"`
	Photo              string         `json:"photo,omitempty"`
	DoctorIntroduction string         `json:"doctor_introduction,omitempty"`
	Specialities       []string       `json:"specialities"`
	Fees               string         `json:"fees"`
	Experience         string         `json:"experience"`
	Languages          []string       `json:"languages,omitempty"`
	Clinic             ClinicResponse `json:"clinic"`
	VideoConsult       bool           `json:"video_consult"`
	InClinic           bool           `json:"in_clinic"`
}

type ClinicResponse struct {
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url,omitempty"`
	Locality     string `json:"locality"`
	City         string `json:"city"`
	AddressLine1 string `json:"address_line1,omitempty"`
}

type DoctorSuggestionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DoctorSuggestionListResponse struct {
	Suggestions []DoctorSuggestionResponse `json:"suggestions"`
	Total       int                        `json:"total"`
}
