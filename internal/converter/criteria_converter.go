package converter

import (
	"net/url"
	"strings"

	"doctor-directory/internal/domain/entity"
)

// Location query parameters of a doctor listing.
const (
	QueryParamSpecialty    = "specialty"
	QueryParamConsultation = "consultation"
	QueryParamSort         = "sort"
	QueryParamSearch       = "search"
)

// CriteriaFromQuery decodes listing criteria from location query values.
// Absent parameters leave the matching field unconstrained, repeated specialty
// values keep their first-seen order, and unknown parameters or values are
// ignored.
func CriteriaFromQuery(query url.Values) entity.Criteria {
	var criteria entity.Criteria

	for _, specialty := range query[QueryParamSpecialty] {
		if specialty == "" || criteria.HasSpecialty(specialty) {
			continue
		}
		criteria.SelectedSpecialties = append(criteria.SelectedSpecialties, specialty)
	}

	if consultation, ok := entity.ParseConsultationType(query.Get(QueryParamConsultation)); ok {
		criteria.ConsultationType = consultation
	}

	if sortBy, ok := entity.ParseSortKey(query.Get(QueryParamSort)); ok {
		criteria.SortBy = sortBy
	}

	criteria.SearchTerm = query.Get(QueryParamSearch)

	return criteria
}

// CriteriaToQuery is the inverse of CriteriaFromQuery. Unconstrained fields
// are omitted.
func CriteriaToQuery(criteria entity.Criteria) url.Values {
	query := url.Values{}

	for _, specialty := range criteria.SelectedSpecialties {
		query.Add(QueryParamSpecialty, specialty)
	}

	if criteria.ConsultationType != entity.ConsultationNone {
		query.Set(QueryParamConsultation, string(criteria.ConsultationType))
	}

	if criteria.SortBy != entity.SortNone {
		query.Set(QueryParamSort, string(criteria.SortBy))
	}

	if criteria.SearchTerm != "" {
		query.Set(QueryParamSearch, criteria.SearchTerm)
	}

	return query
}

// DecodeLocation accepts a raw query string with or without its leading "?".
// A ";" is part of the value, as in browser URLSearchParams. Malformed pairs
// are skipped.
func DecodeLocation(location string) entity.Criteria {
	location = strings.ReplaceAll(strings.TrimPrefix(location, "?"), ";", "%3B")
	query, _ := url.ParseQuery(location)
	return CriteriaFromQuery(query)
}

func EncodeLocation(criteria entity.Criteria) string {
	return CriteriaToQuery(criteria).Encode()
}
