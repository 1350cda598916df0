package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/store"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

var ErrInvalidCompanyInput = errors.New("invalid company")

// CompanyService owns hiring-organization CRUD.
type CompanyService struct {
	Store store.Store
}

type CreateCompanyInput struct {
	Name          string
	Email         string
	PhoneNumber   string
	Industry      string
	WorkforceSize string
	Location      string
	Roles         []string
	Specification string
}

func (s *CompanyService) CreateCompany(ctx context.Context, in CreateCompanyInput) (domain.Company, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(in.Name) == "" {
		return domain.Company{}, ErrInvalidCompanyInput
	}

	c := domain.Company{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PhoneNumber:   in.PhoneNumber,
		Industry:      in.Industry,
		WorkforceSize: in.WorkforceSize,
		Location:      in.Location,
		Roles:         in.Roles,
		Specification: in.Specification,
		Status:        "active",
	}

	id, err := s.Store.Companies().CreateCompany(ctx, c)
	if err != nil {
		log.Error("failed to create company", slog.Any("error", err))
		return domain.Company{}, err
	}

	created, err := s.Store.Companies().GetCompanyByID(ctx, id)
	if err != nil {
		return domain.Company{}, err
	}

	log.Info("company created",
		slog.Int64("company_id", created.ID),
		slog.String("name", created.Name))
	return created, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, companyID int64) (domain.Company, error) {
	c, err := s.Store.Companies().GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		return domain.Company{}, err
	}
	return c, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.Store.Companies().ListCompanies(ctx)
}
