package handlers

import (
	"context"
	"time"

	"vessels/models"
)

// Service is the application layer the handlers call. *service.Service
// implements it.
type Service interface {
	Ping(ctx context.Context) error

	CreateCompany(ctx context.Context, c *models.Company) error
	ListCompanies(ctx context.Context) ([]models.Company, error)
	DeleteCompany(ctx context.Context, id int64) error

	CreatePerson(ctx context.Context, p *models.Person) error
	ListPersons(ctx context.Context) ([]models.Person, error)
	DeletePerson(ctx context.Context, id int64) error

	CreateShip(ctx context.Context, s *models.Ship) (models.ShipView, error)
	ListShips(ctx context.Context, f models.ShipFilter) ([]models.ShipView, error)
	GetShip(ctx context.Context, id int64) (models.ShipView, error)
	UpdateShip(ctx context.Context, id int64, s *models.Ship) (models.ShipView, error)
	PatchShip(ctx context.Context, id int64, patch []byte) (models.ShipView, error)
	DeleteShip(ctx context.Context, id int64) error
	ShipVisits(ctx context.Context, id int64) ([]models.ShipVisit, error)

	CreateHarbour(ctx context.Context, h *models.Harbour) error
	ListHarbours(ctx context.Context) ([]models.HarbourSummary, error)
	HarbourDetails(ctx context.Context, id int64, at time.Time) (*models.HarbourDetails, error)
	DeleteHarbour(ctx context.Context, id int64) error

	CreateVisit(ctx context.Context, v *models.Visit) error
	ListVisits(ctx context.Context) ([]models.Visit, error)
	DeleteVisit(ctx context.Context, id int64) error
}
