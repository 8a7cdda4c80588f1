package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"
	"doctor-directory/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const suggestionLimit = 3

var (
	ErrListingNotFound         = errors.New("listing not found")
	ErrInvalidEvent            = errors.New("invalid listing event")
	ErrInvalidConsultationType = errors.New("invalid consultation type, use 'Video Consult' or 'In Clinic'")
	ErrInvalidSortKey          = errors.New("invalid sort key, use 'fees' or 'experience'")
)

type DoctorListingUsecase interface {
	OpenListing(ctx context.Context, req *dto.OpenListingRequest) (*dto.ListingResponse, error)
	GetListing(ctx context.Context, listingID uuid.UUID) (*dto.ListingResponse, error)
	DispatchEvent(ctx context.Context, listingID uuid.UUID, req *dto.ListingEventRequest) (*dto.ListingResponse, error)
	SuggestDoctors(ctx context.Context, listingID uuid.UUID, term string) (*dto.DoctorSuggestionListResponse, error)
	CloseListing(ctx context.Context, listingID uuid.UUID) error
	// Stop cancels in-flight loads and waits for them to finish.
	Stop()
}

type doctorListingUsecase struct {
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	sessionRepo repository.ListingSessionRepository
	locks       *service.SessionLockService
	loadTimeout time.Duration

	// loads run on baseCtx so they outlive the request that opened the listing
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	now     func() time.Time
}

func NewDoctorListingUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	sessionRepo repository.ListingSessionRepository,
	locks *service.SessionLockService,
	loadTimeout time.Duration,
) DoctorListingUsecase {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &doctorListingUsecase{
		log:         log,
		doctorRepo:  doctorRepo,
		sessionRepo: sessionRepo,
		locks:       locks,
		loadTimeout: loadTimeout,
		baseCtx:     baseCtx,
		cancel:      cancel,
		now:         time.Now,
	}
}

func (u *doctorListingUsecase) OpenListing(ctx context.Context, req *dto.OpenListingRequest) (*dto.ListingResponse, error) {
	now := u.now()
	session := &entity.ListingSession{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	loadID := uuid.New()
	session.State = Reduce(session.State, Mounted{Location: req.Location, LoadID: loadID})

	unlock := u.locks.Lock(session.ID)
	defer unlock()

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save listing session: %+v", err)
		return nil, err
	}

	u.wg.Add(1)
	go u.loadDoctors(session.ID, loadID)

	u.log.WithFields(logrus.Fields{
		"listing_id": session.ID,
		"location":   session.State.Location,
	}).Info("Listing opened")

	return converter.ListingSessionToResponse(session), nil
}

func (u *doctorListingUsecase) GetListing(ctx context.Context, listingID uuid.UUID) (*dto.ListingResponse, error) {
	session, err := u.sessionRepo.FindByID(ctx, listingID)
	if err != nil {
		u.log.Warnf("Failed to find listing session: %+v", err)
		return nil, err
	}
	if session == nil || session.State.Closed {
		return nil, ErrListingNotFound
	}

	return converter.ListingSessionToResponse(session), nil
}

func (u *doctorListingUsecase) DispatchEvent(ctx context.Context, listingID uuid.UUID, req *dto.ListingEventRequest) (*dto.ListingResponse, error) {
	event, err := eventFromRequest(req)
	if err != nil {
		return nil, err
	}

	session, err := u.apply(ctx, listingID, event)
	if err != nil {
		return nil, err
	}

	return converter.ListingSessionToResponse(session), nil
}

func (u *doctorListingUsecase) SuggestDoctors(ctx context.Context, listingID uuid.UUID, term string) (*dto.DoctorSuggestionListResponse, error) {
	session, err := u.sessionRepo.FindByID(ctx, listingID)
	if err != nil {
		u.log.Warnf("Failed to find listing session: %+v", err)
		return nil, err
	}
	if session == nil || session.State.Closed {
		return nil, ErrListingNotFound
	}

	suggestions := service.SuggestDoctors(session.State.Doctors, term, suggestionLimit)
	return converter.DoctorsToSuggestions(suggestions), nil
}

// CloseListing tears the listing down and then deletes it. Once the lock is
// released its mutex is dropped; a cycle still queued on the old mutex and one
// on a fresh mutex may then overlap, which is safe only because both find the
// session gone.
func (u *doctorListingUsecase) CloseListing(ctx context.Context, listingID uuid.UUID) error {
	unlock := u.locks.Lock(listingID)
	defer func() {
		unlock()
		u.locks.Forget(listingID)
	}()

	// a closed state makes any load completing from here on a no-op
	if _, err := u.applyLocked(ctx, listingID, TornDown{}); err != nil {
		return err
	}

	if err := u.sessionRepo.Delete(ctx, listingID); err != nil {
		u.log.Warnf("Failed to delete listing session: %+v", err)
		return err
	}

	u.log.WithField("listing_id", listingID).Info("Listing closed")
	return nil
}

func (u *doctorListingUsecase) Stop() {
	u.cancel()
	u.wg.Wait()
}

// apply runs one read-reduce-save cycle under the listing's lock.
func (u *doctorListingUsecase) apply(ctx context.Context, listingID uuid.UUID, event ListingEvent) (*entity.ListingSession, error) {
	unlock := u.locks.Lock(listingID)
	defer unlock()

	return u.applyLocked(ctx, listingID, event)
}

// applyLocked is apply for callers already holding the listing's lock.
func (u *doctorListingUsecase) applyLocked(ctx context.Context, listingID uuid.UUID, event ListingEvent) (*entity.ListingSession, error) {
	session, err := u.sessionRepo.FindByID(ctx, listingID)
	if err != nil {
		u.log.Warnf("Failed to find listing session: %+v", err)
		return nil, err
	}
	if session == nil || session.State.Closed {
		return nil, ErrListingNotFound
	}

	session.State = Reduce(session.State, event)
	session.UpdatedAt = u.now()

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save listing session: %+v", err)
		return nil, err
	}

	return session, nil
}

// loadDoctors fetches the collection for one listing and reports the outcome
// as an event. A listing closed in the meantime makes the outcome a no-op.
func (u *doctorListingUsecase) loadDoctors(listingID, loadID uuid.UUID) {
	defer u.wg.Done()

	ctx, cancel := context.WithTimeout(u.baseCtx, u.loadTimeout)
	defer cancel()

	log := u.log.WithFields(logrus.Fields{"listing_id": listingID, "load_id": loadID})

	var event ListingEvent
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		log.Warnf("Failed to load doctors: %+v", err)
		event = LoadFailed{LoadID: loadID, Err: err}
	} else {
		log.Infof("Loaded %d doctors", len(doctors))
		event = LoadSucceeded{LoadID: loadID, Doctors: doctors}
	}

	// the load may have been cancelled by Stop; saving still needs a live context
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer saveCancel()

	if _, err := u.apply(saveCtx, listingID, event); err != nil {
		if errors.Is(err, ErrListingNotFound) {
			log.Debug("Listing deleted before load completed")
			return
		}
		log.Warnf("Failed to store load result: %+v", err)
	}
}

func eventFromRequest(req *dto.ListingEventRequest) (ListingEvent, error) {
	switch req.Type {
	case dto.ListingEventSearch:
		return SearchSubmitted{Term: req.Value}, nil
	case dto.ListingEventToggleSpecialty:
		if req.Value == "" {
			return nil, ErrInvalidEvent
		}
		return SpecialtyToggled{Name: req.Value}, nil
	case dto.ListingEventSelectConsultation:
		consultation, ok := entity.ParseConsultationType(req.Value)
		if !ok || consultation == entity.ConsultationNone {
			return nil, ErrInvalidConsultationType
		}
		return ConsultationSelected{Type: consultation}, nil
	case dto.ListingEventSelectSort:
		sortBy, ok := entity.ParseSortKey(req.Value)
		if !ok || sortBy == entity.SortNone {
			return nil, ErrInvalidSortKey
		}
		return SortSelected{Key: sortBy}, nil
	case dto.ListingEventNavigate:
		return LocationChanged{Location: req.Value}, nil
	}
	return nil, ErrInvalidEvent
}
