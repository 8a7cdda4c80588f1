package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"
)

type doctorFeedRepository struct {
	url        string
	httpClient *http.Client
}

func NewDoctorFeedRepository(url string, timeout time.Duration) domainRepo.DoctorRepository {
	return &doctorFeedRepository{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (r *doctorFeedRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, &domainRepo.NetworkError{URL: r.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &domainRepo.NetworkError{URL: r.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domainRepo.NetworkError{URL: r.url, StatusCode: resp.StatusCode}
	}

	var doctors []entity.Doctor
	if err := json.NewDecoder(resp.Body).Decode(&doctors); err != nil {
		return nil, &domainRepo.NetworkError{URL: r.url, Err: err}
	}

	return doctors, nil
}
