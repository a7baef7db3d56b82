package service

import (
	"context"
	"encoding/json"
	"fmt"

	"vessels/internal/apperror"
	"vessels/internal/fleet"
	"vessels/models"
)

func (s *Service) CreateShip(ctx context.Context, sh *models.Ship) (models.ShipView, error) {
	if err := s.validate.Ship(sh); err != nil {
		return models.ShipView{}, s.invalid(EntityShip, err)
	}
	if err := s.requireParent(ctx, EntityShip, "company", EntityCompany, sh.CompanyID, s.companyExists); err != nil {
		return models.ShipView{}, err
	}
	err := s.store.CreateShip(ctx, sh)
	if err := s.storeErr(EntityShip, 0, "company", EntityCompany, sh.CompanyID, err); err != nil {
		return models.ShipView{}, err
	}
	s.created(EntityShip, sh.ID)
	return fleet.View(*sh, s.clock()), nil
}

func (s *Service) ListShips(ctx context.Context, f models.ShipFilter) ([]models.ShipView, error) {
	ships, err := s.store.ListShips(ctx, f)
	if err != nil {
		return nil, err
	}
	return fleet.Views(ships, s.clock()), nil
}

func (s *Service) GetShip(ctx context.Context, id int64) (models.ShipView, error) {
	sh, err := s.store.GetShip(ctx, id)
	if err != nil {
		return models.ShipView{}, s.storeErr(EntityShip, id, "", "", 0, err)
	}
	return fleet.View(*sh, s.clock()), nil
}

// UpdateShip replaces every column of ship id with sh.
func (s *Service) UpdateShip(ctx context.Context, id int64, sh *models.Ship) (models.ShipView, error) {
	if _, err := s.store.GetShip(ctx, id); err != nil {
		return models.ShipView{}, s.storeErr(EntityShip, id, "", "", 0, err)
	}
	sh.ID = id
	return s.saveShip(ctx, sh)
}

// PatchShip merges the JSON object patch onto ship id. Fields absent from
// patch keep their stored values; an explicit null clears a field.
func (s *Service) PatchShip(ctx context.Context, id int64, patch []byte) (models.ShipView, error) {
	current, err := s.store.GetShip(ctx, id)
	if err != nil {
		return models.ShipView{}, s.storeErr(EntityShip, id, "", "", 0, err)
	}
	if err := json.Unmarshal(patch, current); err != nil {
		return models.ShipView{}, apperror.Invalid("body", fmt.Sprintf("Invalid JSON: %v", err))
	}
	current.ID = id
	return s.saveShip(ctx, current)
}

func (s *Service) saveShip(ctx context.Context, sh *models.Ship) (models.ShipView, error) {
	if err := s.validate.Ship(sh); err != nil {
		return models.ShipView{}, s.invalid(EntityShip, err)
	}
	if err := s.requireParent(ctx, EntityShip, "company", EntityCompany, sh.CompanyID, s.companyExists); err != nil {
		return models.ShipView{}, err
	}
	err := s.store.UpdateShip(ctx, sh)
	if err := s.storeErr(EntityShip, sh.ID, "company", EntityCompany, sh.CompanyID, err); err != nil {
		return models.ShipView{}, err
	}
	return fleet.View(*sh, s.clock()), nil
}

// DeleteShip removes the ship and its visits.
func (s *Service) DeleteShip(ctx context.Context, id int64) error {
	if err := s.storeErr(EntityShip, id, "", "", 0, s.store.DeleteShip(ctx, id)); err != nil {
		return err
	}
	s.deleted(EntityShip, id)
	return nil
}

// ShipVisits lists every visit of ship id with the harbour name.
func (s *Service) ShipVisits(ctx context.Context, id int64) ([]models.ShipVisit, error) {
	if _, err := s.store.GetShip(ctx, id); err != nil {
		return nil, s.storeErr(EntityShip, id, "", "", 0, err)
	}
	return s.store.ListShipVisits(ctx, id)
}
