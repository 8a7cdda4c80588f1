package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorListingHandler struct {
	listingUsecase usecase.DoctorListingUsecase
	validator      *validator.CustomValidator
}

func NewDoctorListingHandler(listingUsecase usecase.DoctorListingUsecase, validator *validator.CustomValidator) *DoctorListingHandler {
	return &DoctorListingHandler{
		listingUsecase: listingUsecase,
		validator:      validator,
	}
}

func (h *DoctorListingHandler) OpenListing(w http.ResponseWriter, r *http.Request) {
	// the body is optional; an empty one opens a listing with no criteria
	var req dto.OpenListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	listing, err := h.listingUsecase.OpenListing(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to open listing")
		return
	}

	response.Success(w, http.StatusCreated, "Listing opened successfully", listing)
}

func (h *DoctorListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDFromRequest(w, r)
	if !ok {
		return
	}

	listing, err := h.listingUsecase.GetListing(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, usecase.ErrListingNotFound) {
			response.NotFound(w, "Listing not found")
			return
		}
		response.InternalServerError(w, "Failed to get listing")
		return
	}

	response.Success(w, http.StatusOK, "Listing retrieved successfully", listing)
}

func (h *DoctorListingHandler) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.ListingEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	listing, err := h.listingUsecase.DispatchEvent(r.Context(), listingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrListingNotFound):
			response.NotFound(w, "Listing not found")
		case errors.Is(err, usecase.ErrInvalidEvent):
			response.Error(w, http.StatusBadRequest, "Invalid listing event", nil)
		case errors.Is(err, usecase.ErrInvalidConsultationType):
			response.Error(w, http.StatusBadRequest, "Invalid consultation type, use 'Video Consult' or 'In Clinic'", nil)
		case errors.Is(err, usecase.ErrInvalidSortKey):
			response.Error(w, http.StatusBadRequest, "Invalid sort key, use 'fees' or 'experience'", nil)
		default:
			response.InternalServerError(w, "Failed to apply listing event")
		}
		return
	}

	response.Success(w, http.StatusOK, "Listing updated successfully", listing)
}

func (h *DoctorListingHandler) SuggestDoctors(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDFromRequest(w, r)
	if !ok {
		return
	}

	suggestions, err := h.listingUsecase.SuggestDoctors(r.Context(), listingID, r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, usecase.ErrListingNotFound) {
			response.NotFound(w, "Listing not found")
			return
		}
		response.InternalServerError(w, "Failed to suggest doctors")
		return
	}

	response.Success(w, http.StatusOK, "Suggestions retrieved successfully", suggestions)
}

func (h *DoctorListingHandler) CloseListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.listingUsecase.CloseListing(r.Context(), listingID); err != nil {
		if errors.Is(err, usecase.ErrListingNotFound) {
			response.NotFound(w, "Listing not found")
			return
		}
		response.InternalServerError(w, "Failed to close listing")
		return
	}

	response.Success(w, http.StatusOK, "Listing closed successfully", nil)
}

func listingIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	listingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid listing ID", nil)
		return uuid.Nil, false
	}
	return listingID, true
}
