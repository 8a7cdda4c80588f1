package entity

// Doctor is a single record of the remote doctor feed. Records are treated as
// read-only once loaded.
type Doctor struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	NameInitials       string       `json:"name_initials,omitempty"`
	Photo              string       `json:"photo,omitempty"`
	DoctorIntroduction string       `json:"doctor_introduction,omitempty"`
	Specialities       []Speciality `json:"specialities"`
	Fees               string       `json:"fees"`
	Experience         string       `json:"experience"`
	Languages          []string     `json:"languages,omitempty"`
	Clinic             Clinic       `json:"clinic"`
	VideoConsult       bool         `json:"video_consult"`
	InClinic           bool         `json:"in_clinic"`
}

type Speciality struct {
	Name string `json:"name"`
}

type Clinic struct {
	Name    string        `json:"name"`
	LogoURL string        `json:"logo_url,omitempty"`
	Address ClinicAddress `json:"address"`
}

type ClinicAddress struct {
	Locality     string `json:"locality"`
	City         string `json:"city"`
	AddressLine1 string `json:"address_line1,omitempty"`
	Location     string `json:"location,omitempty"`
}

// HasSpeciality reports whether any of the doctor's specialities is in names.
func (d Doctor) HasSpeciality(names []string) bool {
	for _, s := range d.Specialities {
		for _, name := range names {
			if s.Name == name {
				return true
			}
		}
	}
	return false
}
