package service

import (
	"slices"

	"doctor-directory/internal/domain/entity"
)

// BuildSpecialtyIndex returns every non-empty speciality name held by any
// doctor, once, in ascending byte order. Empty names cannot be encoded in a
// location and are left out.
func BuildSpecialtyIndex(doctors []entity.Doctor) []string {
	seen := make(map[string]struct{})
	index := make([]string, 0)
	for _, doctor := range doctors {
		for _, s := range doctor.Specialities {
			if s.Name == "" {
				continue
			}
			if _, ok := seen[s.Name]; ok {
				continue
			}
			seen[s.Name] = struct{}{}
			index = append(index, s.Name)
		}
	}
	slices.Sort(index)
	return index
}
