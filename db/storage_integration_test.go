//go:build integration

package db_test

import (
	"context"
	"io"
	"testing"
	"time"

	"vessels/db"
	"vessels/db/migrations"
	"vessels/internal/apperror"
	"vessels/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type StorageSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	conn      *sqlx.DB
	store     *db.Storage
}

func TestStorageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("vessels"),
		tcpostgres.WithUsername("vessels"),
		tcpostgres.WithPassword("vessels"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.conn, err = sqlx.ConnectContext(ctx, "postgres", dsn)
	s.Require().NoError(err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	s.Require().NoError(migrations.Run(ctx, s.conn.DB, log))

	s.store = db.NewStorage(s.conn)
}

func (s *StorageSuite) TearDownSuite() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *StorageSuite) SetupTest() {
	_, err := s.conn.Exec(`TRUNCATE visit, ship, person, harbour, company RESTART IDENTITY`)
	s.Require().NoError(err)
}

func (s *StorageSuite) seedShip(ctx context.Context, name string, typ models.ShipType, year string) *models.Ship {
	c := &models.Company{Name: strPtr("Stark Industries")}
	s.Require().NoError(s.store.CreateCompany(ctx, c))
	sh := &models.Ship{CompanyID: c.ID, Name: strPtr(name), Type: shipTypePtr(typ), YearBuilt: strPtr(year)}
	s.Require().NoError(s.store.CreateShip(ctx, sh))
	return sh
}

func (s *StorageSuite) TestBlankAndNullRoundTrip() {
	ctx := context.Background()

	blank := &models.Company{Name: strPtr("")}
	null := &models.Company{}
	s.Require().NoError(s.store.CreateCompany(ctx, blank))
	s.Require().NoError(s.store.CreateCompany(ctx, null))

	got, err := s.store.GetCompany(ctx, blank.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Name)
	s.Equal("", *got.Name)

	got, err = s.store.GetCompany(ctx, null.ID)
	s.Require().NoError(err)
	s.Nil(got.Name)
}

func (s *StorageSuite) TestForeignKeyViolationIsReference() {
	ctx := context.Background()

	err := s.store.CreatePerson(ctx, &models.Person{CompanyID: 999})
	s.ErrorIs(err, apperror.ErrReference)

	err = s.store.CreateVisit(ctx, &models.Visit{ShipID: 999, HarbourID: 999})
	s.ErrorIs(err, apperror.ErrReference)
}

func (s *StorageSuite) TestShipRoundTripAndUpdate() {
	ctx := context.Background()
	sh := s.seedShip(ctx, "USS Quinjet", models.ShipTypeSubmarine, "1998")
	sh.Tonnage = int64Ptr(1200)

	s.Require().NoError(s.store.UpdateShip(ctx, sh))
	got, err := s.store.GetShip(ctx, sh.ID)
	s.Require().NoError(err)
	s.Equal("USS Quinjet", *got.Name)
	s.Equal(models.ShipTypeSubmarine, *got.Type)
	s.Equal(int64(1200), *got.Tonnage)
	s.Nil(got.Beam)

	s.ErrorIs(s.store.UpdateShip(ctx, &models.Ship{ID: 999, CompanyID: sh.CompanyID}), apperror.ErrNotFound)
	_, err = s.store.GetShip(ctx, 999)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *StorageSuite) TestListShipsFilter() {
	ctx := context.Background()
	s.seedShip(ctx, "Queen Mary 2", models.ShipTypeCruiseShip, "2003")
	s.seedShip(ctx, "Exxon Valdez", models.ShipTypeTanker, "1986")
	s.seedShip(ctx, "100%_Pure", models.ShipTypeFishing, "2010")

	ships, err := s.store.ListShips(ctx, models.ShipFilter{Type: shipTypePtr(models.ShipTypeTanker)})
	s.Require().NoError(err)
	s.Require().Len(ships, 1)
	s.Equal("Exxon Valdez", *ships[0].Name)

	ships, err = s.store.ListShips(ctx, models.ShipFilter{Search: "queen"})
	s.Require().NoError(err)
	s.Require().Len(ships, 1)

	ships, err = s.store.ListShips(ctx, models.ShipFilter{Search: "%_"})
	s.Require().NoError(err)
	s.Require().Len(ships, 1)
	s.Equal("100%_Pure", *ships[0].Name)

	ships, err = s.store.ListShips(ctx, models.ShipFilter{Search: "cruise", Type: shipTypePtr(models.ShipTypeTanker)})
	s.Require().NoError(err)
	s.NotNil(ships)
	s.Empty(ships)
}

func (s *StorageSuite) TestShipsDockedAt() {
	ctx := context.Background()
	ref := time.Date(2026, time.May, 26, 10, 0, 0, 0, time.UTC)
	sh := s.seedShip(ctx, "USS Quinjet", models.ShipTypeSubmarine, "1998")
	h := &models.Harbour{Name: strPtr("Sydney Harbour")}
	s.Require().NoError(s.store.CreateHarbour(ctx, h))

	for _, v := range []*models.Visit{
		{ShipID: sh.ID, HarbourID: h.ID, EntryTime: timePtr(ref.Add(-time.Hour)), ExitTime: timePtr(ref)},
		{ShipID: sh.ID, HarbourID: h.ID, EntryTime: timePtr(ref), ExitTime: timePtr(ref.Add(time.Hour))},
		{ShipID: sh.ID, HarbourID: h.ID, EntryTime: timePtr(ref.Add(-time.Hour))},
	} {
		s.Require().NoError(s.store.CreateVisit(ctx, v))
	}

	ships, err := s.store.ShipsDockedAt(ctx, h.ID, ref)
	s.Require().NoError(err)
	s.Require().Len(ships, 1)
	s.Equal(sh.ID, ships[0].ID)

	ships, err = s.store.ShipsDockedAt(ctx, h.ID, ref.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Empty(ships)

	visits, err := s.store.ListShipVisits(ctx, sh.ID)
	s.Require().NoError(err)
	s.Len(visits, 3)
	s.Equal("Sydney Harbour", *visits[0].HarbourName)
}

func (s *StorageSuite) TestCascadeDeletes() {
	ctx := context.Background()
	sh := s.seedShip(ctx, "USS Quinjet", models.ShipTypeSubmarine, "1998")
	s.Require().NoError(s.store.CreatePerson(ctx, &models.Person{CompanyID: sh.CompanyID, Email: strPtr("tony@stark.com")}))
	h := &models.Harbour{}
	s.Require().NoError(s.store.CreateHarbour(ctx, h))
	s.Require().NoError(s.store.CreateVisit(ctx, &models.Visit{ShipID: sh.ID, HarbourID: h.ID}))

	s.Require().NoError(s.store.DeleteCompany(ctx, sh.CompanyID))

	persons, err := s.store.ListPersons(ctx)
	s.Require().NoError(err)
	s.Empty(persons)
	visits, err := s.store.ListVisits(ctx)
	s.Require().NoError(err)
	s.Empty(visits)
	harbours, err := s.store.ListHarbours(ctx)
	s.Require().NoError(err)
	s.Len(harbours, 1)

	s.ErrorIs(s.store.DeleteCompany(ctx, sh.CompanyID), apperror.ErrNotFound)
	s.ErrorIs(s.store.DeleteHarbour(ctx, 999), apperror.ErrNotFound)
}
