// Package service applies validation, reference checks and derived values
// on top of a Store. It holds no connection state of its own.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"vessels/internal/apperror"
	"vessels/internal/validation"
	"vessels/models"

	"github.com/sirupsen/logrus"
)

// Entity names used in errors, logs and metric labels.
const (
	EntityCompany = "Company"
	EntityPerson  = "Person"
	EntityShip    = "Ship"
	EntityHarbour = "Harbour"
	EntityVisit   = "Visit"
)

// Store is the persistence contract. db.Storage and db.MemoryStorage
// implement it.
type Store interface {
	CreateCompany(ctx context.Context, c *models.Company) error
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	DeleteCompany(ctx context.Context, id int64) error

	CreatePerson(ctx context.Context, p *models.Person) error
	ListPersons(ctx context.Context) ([]models.Person, error)
	DeletePerson(ctx context.Context, id int64) error

	CreateShip(ctx context.Context, s *models.Ship) error
	GetShip(ctx context.Context, id int64) (*models.Ship, error)
	UpdateShip(ctx context.Context, s *models.Ship) error
	ListShips(ctx context.Context, f models.ShipFilter) ([]models.Ship, error)
	DeleteShip(ctx context.Context, id int64) error
	ListShipVisits(ctx context.Context, shipID int64) ([]models.ShipVisit, error)
	ShipsDockedAt(ctx context.Context, harbourID int64, at time.Time) ([]models.Ship, error)

	CreateHarbour(ctx context.Context, h *models.Harbour) error
	GetHarbour(ctx context.Context, id int64) (*models.Harbour, error)
	ListHarbours(ctx context.Context) ([]models.HarbourSummary, error)
	DeleteHarbour(ctx context.Context, id int64) error

	CreateVisit(ctx context.Context, v *models.Visit) error
	ListVisits(ctx context.Context) ([]models.Visit, error)
	DeleteVisit(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}

// Recorder counts domain events. metrics.Metrics implements it.
type Recorder interface {
	RecordCreated(entity string)
	RecordDeleted(entity string)
	RecordValidationFailure(entity string)
}

type nopRecorder struct{}

func (nopRecorder) RecordCreated(string)           {}
func (nopRecorder) RecordDeleted(string)           {}
func (nopRecorder) RecordValidationFailure(string) {}

type Service struct {
	store    Store
	validate *validation.Validator
	now      func() time.Time
	loc      *time.Location
	log      logrus.FieldLogger
	metrics  Recorder
}

type Option func(*Service)

// WithClock overrides the time source used for ages and docked queries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone in which "the current year" is evaluated.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

func New(store Store, opts ...Option) *Service {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Service{
		store:    store,
		validate: validation.New(),
		now:      time.Now,
		loc:      time.UTC,
		log:      discard,
		metrics:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

// invalid counts a validation failure and passes err through.
func (s *Service) invalid(entity string, err error) error {
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		s.metrics.RecordValidationFailure(entity)
	}
	return err
}

// requireParent checks that the row a reference field points at exists.
func (s *Service) requireParent(ctx context.Context, entity, field, parent string, id int64, get func(context.Context, int64) error) error {
	err := get(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return s.invalid(entity, apperror.Reference(field, parent, id))
	}
	if err != nil {
		return fmt.Errorf("load %s %d: %w", parent, id, err)
	}
	return nil
}

func (s *Service) companyExists(ctx context.Context, id int64) error {
	_, err := s.store.GetCompany(ctx, id)
	return err
}

func (s *Service) shipExists(ctx context.Context, id int64) error {
	_, err := s.store.GetShip(ctx, id)
	return err
}

func (s *Service) harbourExists(ctx context.Context, id int64) error {
	_, err := s.store.GetHarbour(ctx, id)
	return err
}

// storeErr maps store sentinels for an operation addressing entity/id. A
// foreign key violation that slipped past the pre-checks (a concurrent
// delete) is still reported as a reference failure on field.
func (s *Service) storeErr(entity string, id int64, field, parent string, parentID int64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperror.ErrNotFound):
		return apperror.NotFound(entity, id)
	case errors.Is(err, apperror.ErrReference) && field != "":
		return s.invalid(entity, apperror.Reference(field, parent, parentID))
	}
	return err
}

func (s *Service) created(entity string, id int64) {
	s.metrics.RecordCreated(entity)
	s.log.WithFields(logrus.Fields{"entity": entity, "id": id}).Debug("record created")
}

func (s *Service) deleted(entity string, id int64) {
	s.metrics.RecordDeleted(entity)
	s.log.WithFields(logrus.Fields{"entity": entity, "id": id}).Info("record deleted")
}
