package service

import (
	"context"

	"vessels/models"
)

func (s *Service) CreateVisit(ctx context.Context, v *models.Visit) error {
	if err := s.validate.Visit(v); err != nil {
		return s.invalid(EntityVisit, err)
	}
	if err := s.requireParent(ctx, EntityVisit, "ship", EntityShip, v.ShipID, s.shipExists); err != nil {
		return err
	}
	if err := s.requireParent(ctx, EntityVisit, "harbour", EntityHarbour, v.HarbourID, s.harbourExists); err != nil {
		return err
	}
	if err := s.store.CreateVisit(ctx, v); err != nil {
		return s.storeErr(EntityVisit, 0, "ship", EntityShip, v.ShipID, err)
	}
	s.created(EntityVisit, v.ID)
	return nil
}

func (s *Service) ListVisits(ctx context.Context) ([]models.Visit, error) {
	return s.store.ListVisits(ctx)
}

func (s *Service) DeleteVisit(ctx context.Context, id int64) error {
	if err := s.storeErr(EntityVisit, id, "", "", 0, s.store.DeleteVisit(ctx, id)); err != nil {
		return err
	}
	s.deleted(EntityVisit, id)
	return nil
}
