package service

import (
	"context"
	"time"

	"vessels/internal/fleet"
	"vessels/models"
)

func (s *Service) CreateHarbour(ctx context.Context, h *models.Harbour) error {
	if err := s.validate.Harbour(h); err != nil {
		return s.invalid(EntityHarbour, err)
	}
	if err := s.store.CreateHarbour(ctx, h); err != nil {
		return err
	}
	s.created(EntityHarbour, h.ID)
	return nil
}

func (s *Service) ListHarbours(ctx context.Context) ([]models.HarbourSummary, error) {
	return s.store.ListHarbours(ctx)
}

// HarbourDetails returns harbour id with the ships docked there at the given
// instant. A zero at means now.
func (s *Service) HarbourDetails(ctx context.Context, id int64, at time.Time) (*models.HarbourDetails, error) {
	h, err := s.store.GetHarbour(ctx, id)
	if err != nil {
		return nil, s.storeErr(EntityHarbour, id, "", "", 0, err)
	}
	now := s.clock()
	if at.IsZero() {
		at = now
	}
	ships, err := s.store.ShipsDockedAt(ctx, id, at)
	if err != nil {
		return nil, err
	}
	return &models.HarbourDetails{Harbour: *h, CurrentShips: fleet.Views(ships, now)}, nil
}

// DeleteHarbour removes the harbour and every visit to it.
func (s *Service) DeleteHarbour(ctx context.Context, id int64) error {
	if err := s.storeErr(EntityHarbour, id, "", "", 0, s.store.DeleteHarbour(ctx, id)); err != nil {
		return err
	}
	s.deleted(EntityHarbour, id)
	return nil
}
