package service

import (
	"context"

	"vessels/models"
)

func (s *Service) CreateCompany(ctx context.Context, c *models.Company) error {
	if err := s.validate.Company(c); err != nil {
		return s.invalid(EntityCompany, err)
	}
	if err := s.store.CreateCompany(ctx, c); err != nil {
		return err
	}
	s.created(EntityCompany, c.ID)
	return nil
}

func (s *Service) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.store.ListCompanies(ctx)
}

// DeleteCompany removes the company, its persons, its ships and their visits.
func (s *Service) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.storeErr(EntityCompany, id, "", "", 0, s.store.DeleteCompany(ctx, id)); err != nil {
		return err
	}
	s.deleted(EntityCompany, id)
	return nil
}

func (s *Service) CreatePerson(ctx context.Context, p *models.Person) error {
	if err := s.validate.Person(p); err != nil {
		return s.invalid(EntityPerson, err)
	}
	if err := s.requireParent(ctx, EntityPerson, "company", EntityCompany, p.CompanyID, s.companyExists); err != nil {
		return err
	}
	err := s.store.CreatePerson(ctx, p)
	if err := s.storeErr(EntityPerson, 0, "company", EntityCompany, p.CompanyID, err); err != nil {
		return err
	}
	s.created(EntityPerson, p.ID)
	return nil
}

func (s *Service) ListPersons(ctx context.Context) ([]models.Person, error) {
	return s.store.ListPersons(ctx)
}

func (s *Service) DeletePerson(ctx context.Context, id int64) error {
	if err := s.storeErr(EntityPerson, id, "", "", 0, s.store.DeletePerson(ctx, id)); err != nil {
		return err
	}
	s.deleted(EntityPerson, id)
	return nil
}
