package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

type CompanyService struct {
	Store    repositories.Store
	Activity *ActivityService
}

func NewCompanyService(store repositories.Store, activity *ActivityService) *CompanyService {
	return &CompanyService{Store: store, Activity: activity}
}

// getCompanyFor is the single resolution point for company access: a
// company that is absent and a company owned by someone else are the same
// ErrNotFound.
func (s *CompanyService) getCompanyFor(ctx context.Context, principal models.User, id int64) (models.Company, error) {
	company, err := s.Store.GetCompany(ctx, id)
	if err != nil {
		return models.Company{}, err
	}
	if company.CreatedBy != principal.ID {
		return models.Company{}, apperrors.ErrNotFound
	}
	return company, nil
}

func (s *CompanyService) Create(ctx context.Context, principal models.User, name, country, notes string) (models.Company, error) {
	if strings.TrimSpace(name) == "" {
		return models.Company{}, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	var created models.Company
	err := s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Store.CreateCompany(ctx, models.Company{
			Name:      name,
			Country:   country,
			Notes:     notes,
			CreatedBy: principal.ID,
		})
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "created", models.ObjectCompany, created.ID, nil)
	})
	if err != nil {
		return models.Company{}, err
	}
	return created, nil
}

func (s *CompanyService) Get(ctx context.Context, principal models.User, id int64) (models.Company, error) {
	return s.getCompanyFor(ctx, principal, id)
}

func (s *CompanyService) List(ctx context.Context, principal models.User) ([]models.Company, error) {
	return s.Store.ListCompaniesByOwner(ctx, principal.ID)
}

func (s *CompanyService) Update(ctx context.Context, principal models.User, id int64, patch models.CompanyPatch) (models.Company, error) {
	company, err := s.getCompanyFor(ctx, principal, id)
	if err != nil {
		return models.Company{}, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Company{}, fmt.Errorf("%w: company name cannot be empty", apperrors.ErrValidation)
	}
	patch.Apply(&company)

	var updated models.Company
	err = s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Store.UpdateCompany(ctx, company)
		if err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "updated", models.ObjectCompany, company.ID, nil)
	})
	if err != nil {
		return models.Company{}, err
	}
	return updated, nil
}

func (s *CompanyService) Delete(ctx context.Context, principal models.User, id int64) error {
	company, err := s.getCompanyFor(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.Store.DeleteCompany(ctx, company.ID); err != nil {
			return err
		}
		return s.Activity.Record(ctx, principal.ID, "deleted", models.ObjectCompany, company.ID, nil)
	})
}
