package service

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"doctor-directory/internal/domain/entity"
)

// ApplyCriteria narrows doctors by search term, specialities and consultation
// mode, then orders the result by criteria.SortBy. The input slice is never
// modified and the result never aliases it.
func ApplyCriteria(doctors []entity.Doctor, criteria entity.Criteria) []entity.Doctor {
	filtered := make([]entity.Doctor, 0, len(doctors))
	term := strings.ToLower(criteria.SearchTerm)

	for _, doctor := range doctors {
		if term != "" && !strings.Contains(strings.ToLower(doctor.Name), term) {
			continue
		}
		if len(criteria.SelectedSpecialties) > 0 && !doctor.HasSpeciality(criteria.SelectedSpecialties) {
			continue
		}
		switch criteria.ConsultationType {
		case entity.ConsultationVideo:
			if !doctor.VideoConsult {
				continue
			}
		case entity.ConsultationClinic:
			if !doctor.InClinic {
				continue
			}
		}
		filtered = append(filtered, doctor)
	}

	switch criteria.SortBy {
	case entity.SortFees:
		slices.SortStableFunc(filtered, func(a, b entity.Doctor) int {
			return cmp.Compare(FeeAmount(a.Fees), FeeAmount(b.Fees))
		})
	case entity.SortExperience:
		slices.SortStableFunc(filtered, func(a, b entity.Doctor) int {
			return cmp.Compare(ExperienceYears(b.Experience), ExperienceYears(a.Experience))
		})
	}

	return filtered
}

// FeeAmount keeps only the ASCII digits of fees and reads them as an integer.
// No digits reads as 0; amounts beyond int64 saturate.
func FeeAmount(fees string) int64 {
	var digits strings.Builder
	for i := 0; i < len(fees); i++ {
		if fees[i] >= '0' && fees[i] <= '9' {
			digits.WriteByte(fees[i])
		}
	}
	return parseDigits(digits.String())
}

// ExperienceYears reads the leading run of ASCII digits of experience, after
// any leading white space. "12 Years of experience" reads as 12.
func ExperienceYears(experience string) int64 {
	s := strings.TrimLeftFunc(experience, unicode.IsSpace)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return parseDigits(s[:end])
}

func parseDigits(digits string) int64 {
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}

// SuggestDoctors returns at most limit doctors whose name contains term,
// case-insensitively, in collection order.
func SuggestDoctors(doctors []entity.Doctor, term string, limit int) []entity.Doctor {
	suggestions := make([]entity.Doctor, 0, limit)
	if term == "" || limit <= 0 {
		return suggestions
	}
	term = strings.ToLower(term)
	for _, doctor := range doctors {
		if strings.Contains(strings.ToLower(doctor.Name), term) {
			suggestions = append(suggestions, doctor)
			if len(suggestions) == limit {
				break
			}
		}
	}
	return suggestions
}
