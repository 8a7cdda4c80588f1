package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"
	"doctor-directory/internal/repository"
	"doctor-directory/internal/service"
	"doctor-directory/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeDoctorRepository serves a fixed collection, optionally holding every
// call until release is closed.
type fakeDoctorRepository struct {
	mu      sync.Mutex
	doctors []entity.Doctor
	err     error
	release chan struct{}
	calls   int
}

func (r *fakeDoctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	r.mu.Lock()
	r.calls++
	release := r.release
	r.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, &domainRepo.NetworkError{URL: "fake", Err: ctx.Err()}
		}
	}
	return r.doctors, r.err
}

func (r *fakeDoctorRepository) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// recordingSessionRepository records every write that reaches the store.
type recordingSessionRepository struct {
	domainRepo.ListingSessionRepository

	mu     sync.Mutex
	writes []string
}

func (r *recordingSessionRepository) Save(ctx context.Context, session *entity.ListingSession) error {
	r.mu.Lock()
	if session.State.Closed {
		r.writes = append(r.writes, "save closed")
	} else {
		r.writes = append(r.writes, "save")
	}
	r.mu.Unlock()
	return r.ListingSessionRepository.Save(ctx, session)
}

func (r *recordingSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	r.writes = append(r.writes, "delete")
	r.mu.Unlock()
	return r.ListingSessionRepository.Delete(ctx, id)
}

func (r *recordingSessionRepository) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

type listingFixture struct {
	usecase     usecase.DoctorListingUsecase
	sessionRepo *recordingSessionRepository
	locks       *service.SessionLockService
}

func newListingFixture(t *testing.T, doctorRepo domainRepo.DoctorRepository) *listingFixture {
	t.Helper()
	// registered first so it runs after the use case and locks are stopped
	t.Cleanup(func() { goleak.VerifyNone(t) })

	log := newTestLogger()
	locks := service.NewSessionLockService(log)
	sessionRepo := &recordingSessionRepository{ListingSessionRepository: repository.NewListingSessionRepository(time.Hour)}
	uc := usecase.NewDoctorListingUsecase(log, doctorRepo, sessionRepo, locks, time.Second)
	t.Cleanup(func() {
		uc.Stop()
		locks.Stop()
	})
	return &listingFixture{usecase: uc, sessionRepo: sessionRepo, locks: locks}
}

func waitLoaded(t *testing.T, uc usecase.DoctorListingUsecase, id uuid.UUID) *dto.ListingResponse {
	t.Helper()
	var listing *dto.ListingResponse
	require.Eventually(t, func() bool {
		var err error
		listing, err = uc.GetListing(context.Background(), id)
		return err == nil && !listing.Loading
	}, 2*time.Second, 5*time.Millisecond)
	return listing
}

func responseIDs(doctors []dto.DoctorResponse) []string {
	out := make([]string, len(doctors))
	for i, d := range doctors {
		out[i] = d.ID
	}
	return out
}

func TestDoctorListingUsecase_OpenLoadsOnceAndAppliesLocation(t *testing.T) {
	doctorRepo := &fakeDoctorRepository{doctors: sampleDoctors()}
	f := newListingFixture(t, doctorRepo)
	ctx := context.Background()

	opened, err := f.usecase.OpenListing(ctx, &dto.OpenListingRequest{Location: "specialty=Dentist&sort=fees"})
	require.NoError(t, err)
	assert.Equal(t, "sort=fees&specialty=Dentist", opened.Location)

	listing := waitLoaded(t, f.usecase, opened.ID)
	assert.Empty(t, listing.Error)
	assert.Equal(t, []string{"1", "3"}, responseIDs(listing.Doctors))
	assert.Equal(t, []string{"Cardiologist", "Dentist", "General Physician"}, listing.Specialties)
	assert.Equal(t, 3, listing.TotalAll)
	assert.Equal(t, 2, listing.Total)
	assert.Equal(t, []string{"1", "2", "3"}, responseIDs(listing.AllDoctors))

	_, err = f.usecase.DispatchEvent(ctx, opened.ID, &dto.ListingEventRequest{Type: dto.ListingEventSearch, Value: "raoul"})
	require.NoError(t, err)
	assert.Equal(t, 1, doctorRepo.Calls())
}

func TestDoctorListingUsecase_LoadFailureSurfacesError(t *testing.T) {
	doctorRepo := &fakeDoctorRepository{err: &domainRepo.NetworkError{URL: "fake", StatusCode: 503}}
	f := newListingFixture(t, doctorRepo)

	opened, err := f.usecase.OpenListing(context.Background(), &dto.OpenListingRequest{})
	require.NoError(t, err)

	listing := waitLoaded(t, f.usecase, opened.ID)
	assert.Equal(t, "Failed to load doctor data", listing.Error)
	assert.Empty(t, listing.Doctors)
	assert.Equal(t, 1, doctorRepo.Calls())
}

func TestDoctorListingUsecase_DispatchEvents(t *testing.T) {
	f := newListingFixture(t, &fakeDoctorRepository{doctors: sampleDoctors()})
	ctx := context.Background()

	opened, err := f.usecase.OpenListing(ctx, &dto.OpenListingRequest{})
	require.NoError(t, err)
	waitLoaded(t, f.usecase, opened.ID)

	steps := []struct {
		req          dto.ListingEventRequest
		wantIDs      []string
		wantLocation string
	}{
		{
			req:          dto.ListingEventRequest{Type: dto.ListingEventToggleSpecialty, Value: "Cardiologist"},
			wantIDs:      []string{"2", "3"},
			wantLocation: "specialty=Cardiologist",
		},
		{
			req:          dto.ListingEventRequest{Type: dto.ListingEventSelectConsultation, Value: "Video Consult"},
			wantIDs:      []string{"3"},
			wantLocation: "consultation=Video+Consult&specialty=Cardiologist",
		},
		{
			req:          dto.ListingEventRequest{Type: dto.ListingEventSelectConsultation, Value: "Video Consult"},
			wantIDs:      []string{"2", "3"},
			wantLocation: "specialty=Cardiologist",
		},
		{
			req:          dto.ListingEventRequest{Type: dto.ListingEventSelectSort, Value: "experience"},
			wantIDs:      []string{"2", "3"},
			wantLocation: "sort=experience&specialty=Cardiologist",
		},
		{
			req:          dto.ListingEventRequest{Type: dto.ListingEventSelectSort, Value: "fees"},
			wantIDs:      []string{"2", "3"},
			wantLocation: "sort=fees&specialty=Cardiologist",
		},
		{
			req:          dto.ListingEventRequest{Type: dto.ListingEventNavigate, Value: "search=anil"},
			wantIDs:      []string{"1"},
			wantLocation: "search=anil",
		},
	}

	for _, step := range steps {
		listing, err := f.usecase.DispatchEvent(ctx, opened.ID, &step.req)
		require.NoError(t, err)
		assert.Equal(t, step.wantIDs, responseIDs(listing.Doctors), "after %+v", step.req)
		assert.Equal(t, step.wantLocation, listing.Location, "after %+v", step.req)
	}
}

func TestDoctorListingUsecase_DispatchRejectsInvalidValues(t *testing.T) {
	f := newListingFixture(t, &fakeDoctorRepository{doctors: sampleDoctors()})
	ctx := context.Background()

	opened, err := f.usecase.OpenListing(ctx, &dto.OpenListingRequest{})
	require.NoError(t, err)

	tests := []struct {
		req  dto.ListingEventRequest
		want error
	}{
		{req: dto.ListingEventRequest{Type: dto.ListingEventSelectConsultation, Value: "Home Visit"}, want: usecase.ErrInvalidConsultationType},
		{req: dto.ListingEventRequest{Type: dto.ListingEventSelectConsultation}, want: usecase.ErrInvalidConsultationType},
		{req: dto.ListingEventRequest{Type: dto.ListingEventSelectSort, Value: "rating"}, want: usecase.ErrInvalidSortKey},
		{req: dto.ListingEventRequest{Type: dto.ListingEventToggleSpecialty}, want: usecase.ErrInvalidEvent},
		{req: dto.ListingEventRequest{Type: "reload"}, want: usecase.ErrInvalidEvent},
	}

	for _, tt := range tests {
		_, err := f.usecase.DispatchEvent(ctx, opened.ID, &tt.req)
		assert.ErrorIs(t, err, tt.want)
	}
}

func TestDoctorListingUsecase_UnknownListing(t *testing.T) {
	f := newListingFixture(t, &fakeDoctorRepository{})
	ctx := context.Background()
	id := uuid.New()

	_, err := f.usecase.GetListing(ctx, id)
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)

	_, err = f.usecase.DispatchEvent(ctx, id, &dto.ListingEventRequest{Type: dto.ListingEventSearch, Value: "x"})
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)

	_, err = f.usecase.SuggestDoctors(ctx, id, "x")
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)

	assert.ErrorIs(t, f.usecase.CloseListing(ctx, id), usecase.ErrListingNotFound)
}

func TestDoctorListingUsecase_LoadCompletingAfterCloseIsDropped(t *testing.T) {
	doctorRepo := &fakeDoctorRepository{doctors: sampleDoctors(), release: make(chan struct{})}
	f := newListingFixture(t, doctorRepo)
	ctx := context.Background()

	opened, err := f.usecase.OpenListing(ctx, &dto.OpenListingRequest{})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return doctorRepo.Calls() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, f.usecase.CloseListing(ctx, opened.ID))
	close(doctorRepo.release)
	f.usecase.Stop()

	session, err := f.sessionRepo.FindByID(ctx, opened.ID)
	require.NoError(t, err)
	assert.Nil(t, session)

	// teardown is stored before the delete and the late load writes nothing
	assert.Equal(t, []string{"save", "save closed", "delete"}, f.sessionRepo.Writes())

	assert.ErrorIs(t, f.usecase.CloseListing(ctx, opened.ID), usecase.ErrListingNotFound)
}

func TestDoctorListingUsecase_ClosedListingIsNotFound(t *testing.T) {
	log := newTestLogger()
	locks := service.NewSessionLockService(log)
	store := repository.NewListingSessionRepository(time.Hour)
	sessionRepo := &undeletableSessionRepository{ListingSessionRepository: store}
	uc := usecase.NewDoctorListingUsecase(log, &fakeDoctorRepository{doctors: sampleDoctors()}, sessionRepo, locks, time.Second)
	defer goleak.VerifyNone(t)
	defer locks.Stop()
	defer uc.Stop()
	ctx := context.Background()

	opened, err := uc.OpenListing(ctx, &dto.OpenListingRequest{})
	require.NoError(t, err)
	waitLoaded(t, uc, opened.ID)

	assert.ErrorIs(t, uc.CloseListing(ctx, opened.ID), errStoreDown)

	session, err := store.FindByID(ctx, opened.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.True(t, session.State.Closed)

	_, err = uc.GetListing(ctx, opened.ID)
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)
	_, err = uc.DispatchEvent(ctx, opened.ID, &dto.ListingEventRequest{Type: dto.ListingEventSearch, Value: "rao"})
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)
	_, err = uc.SuggestDoctors(ctx, opened.ID, "rao")
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)
}

// undeletableSessionRepository fails every delete.
type undeletableSessionRepository struct {
	domainRepo.ListingSessionRepository
}

func (undeletableSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return errStoreDown
}

func TestDoctorListingUsecase_StopCancelsInFlightLoad(t *testing.T) {
	doctorRepo := &fakeDoctorRepository{doctors: sampleDoctors(), release: make(chan struct{})}
	f := newListingFixture(t, doctorRepo)
	ctx := context.Background()

	opened, err := f.usecase.OpenListing(ctx, &dto.OpenListingRequest{})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return doctorRepo.Calls() == 1 }, time.Second, time.Millisecond)

	f.usecase.Stop()

	listing, err := f.usecase.GetListing(ctx, opened.ID)
	require.NoError(t, err)
	assert.False(t, listing.Loading)
	assert.Equal(t, "Failed to load doctor data", listing.Error)
}

func TestDoctorListingUsecase_SuggestDoctors(t *testing.T) {
	f := newListingFixture(t, &fakeDoctorRepository{doctors: sampleDoctors()})
	ctx := context.Background()

	opened, err := f.usecase.OpenListing(ctx, &dto.OpenListingRequest{Location: "specialty=Cardiologist"})
	require.NoError(t, err)
	waitLoaded(t, f.usecase, opened.ID)

	// suggestions come from the full collection, not the filtered view
	suggestions, err := f.usecase.SuggestDoctors(ctx, opened.ID, "RAO")
	require.NoError(t, err)
	require.Equal(t, 2, suggestions.Total)
	assert.Equal(t, "Dr. Anil Rao", suggestions.Suggestions[0].Name)
	assert.Equal(t, "Dr. Raoul Iyer", suggestions.Suggestions[1].Name)
}

func TestDoctorListingUsecase_ConcurrentTogglesAreSerialized(t *testing.T) {
	f := newListingFixture(t, &fakeDoctorRepository{doctors: sampleDoctors()})
	ctx := context.Background()

	opened, err := f.usecase.OpenListing(ctx, &dto.OpenListingRequest{})
	require.NoError(t, err)
	waitLoaded(t, f.usecase, opened.ID)

	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := f.usecase.DispatchEvent(ctx, opened.ID, &dto.ListingEventRequest{Type: dto.ListingEventToggleSpecialty, Value: name})
			assert.NoError(t, err)
		}(name)
	}
	wg.Wait()

	listing, err := f.usecase.GetListing(ctx, opened.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, names, listing.Criteria.SelectedSpecialties)
}

func TestDoctorListingUsecase_SaveErrorIsReturned(t *testing.T) {
	defer goleak.VerifyNone(t)

	log := newTestLogger()
	locks := service.NewSessionLockService(log)
	defer locks.Stop()
	uc := usecase.NewDoctorListingUsecase(log, &fakeDoctorRepository{}, failingSessionRepository{}, locks, time.Second)
	defer uc.Stop()

	_, err := uc.OpenListing(context.Background(), &dto.OpenListingRequest{})
	assert.ErrorIs(t, err, errStoreDown)
}

var errStoreDown = errors.New("store down")

type failingSessionRepository struct{}

func (failingSessionRepository) Save(ctx context.Context, session *entity.ListingSession) error {
	return errStoreDown
}

func (failingSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ListingSession, error) {
	return nil, errStoreDown
}

func (failingSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return errStoreDown
}
