package repository

import (
	"context"
	"errors"
	"fmt"

	"doctor-directory/internal/domain/entity"
)

// ErrNetwork is matched by every NetworkError.
var ErrNetwork = errors.New("network error")

// NetworkError reports a failed doctor feed retrieval: transport failure,
// non-2xx status or an undecodable body.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// DoctorRepository loads the full doctor collection. Implementations perform a
// single retrieval per call and neither retry nor cache.
type DoctorRepository interface {
	FindAll(ctx context.Context) ([]entity.Doctor, error)
}
