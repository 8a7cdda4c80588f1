package http

import (
	"net/http"

	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	listingHandler    *handler.DoctorListingHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	listingHandler *handler.DoctorListingHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		listingHandler:    listingHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctor listings; OPTIONS is listed so CORS preflight reaches the middleware
	listings := api.PathPrefix("/listings").Subrouter()
	listings.HandleFunc("", r.listingHandler.OpenListing).Methods(http.MethodPost, http.MethodOptions)
	listings.HandleFunc("/{id}", r.listingHandler.GetListing).Methods(http.MethodGet, http.MethodOptions)
	listings.HandleFunc("/{id}", r.listingHandler.CloseListing).Methods(http.MethodDelete, http.MethodOptions)
	listings.HandleFunc("/{id}/events", r.listingHandler.DispatchEvent).Methods(http.MethodPost, http.MethodOptions)
	listings.HandleFunc("/{id}/suggestions", r.listingHandler.SuggestDoctors).Methods(http.MethodGet, http.MethodOptions)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
