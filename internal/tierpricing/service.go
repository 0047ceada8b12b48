package tierpricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/internal/pricing"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

// Service manages tier pricing tables and resolves the table in scope for the
// quoting path. It satisfies pricing.TierLookup.
type Service interface {
	ByProductID(ctx context.Context, productID uuid.UUID) (*models.TierPricing, error)
	BySKU(ctx context.Context, sku string) (*models.TierPricing, error)

	Get(ctx context.Context, id uuid.UUID) (*models.TierPricing, error)
	List(ctx context.Context) ([]models.TierPricing, error)
	Create(ctx context.Context, table models.TierPricing) (*models.TierPricing, error)
	Update(ctx context.Context, table models.TierPricing) (*models.TierPricing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Validate(tiers []models.Tier) pricing.TiersValidation
}

type service struct {
	repo Repository
}

// NewService builds the tier pricing service.
func NewService(repository Repository) (Service, error) {
	if repository == nil {
		return nil, fmt.Errorf("tier pricing repository required")
	}
	return &service{repo: repository}, nil
}

func (s *service) ByProductID(ctx context.Context, productID uuid.UUID) (*models.TierPricing, error) {
	return s.repo.ActiveByProductID(ctx, productID)
}

func (s *service) BySKU(ctx context.Context, sku string) (*models.TierPricing, error) {
	return s.repo.ActiveBySKU(ctx, sku)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.TierPricing, error) {
	table, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tier pricing not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tier pricing")
	}
	return table, nil
}

func (s *service) List(ctx context.Context) ([]models.TierPricing, error) {
	tables, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tier pricing")
	}
	return tables, nil
}

func (s *service) Create(ctx context.Context, table models.TierPricing) (*models.TierPricing, error) {
	if err := s.checkTable(table); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &table)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tier pricing")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, table models.TierPricing) (*models.TierPricing, error) {
	if err := s.checkTable(table); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, table.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &table)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update tier pricing")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete tier pricing")
	}
	return nil
}

func (s *service) Validate(tiers []models.Tier) pricing.TiersValidation {
	return pricing.ValidateTiers(tiers)
}

// checkTable rejects ambiguous scope and structurally invalid tiers before
// anything reaches storage.
func (s *service) checkTable(table models.TierPricing) error {
	if table.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "tier pricing name is required")
	}

	scopes := 0
	if table.ProductID != nil && *table.ProductID != uuid.Nil {
		scopes++
	}
	if table.SKU != nil && *table.SKU != "" {
		scopes++
	}
	if table.Category != nil {
		if !table.Category.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
		}
		scopes++
	}
	if scopes > 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "tier pricing may target at most one of product, sku, or category")
	}

	if validation := pricing.ValidateTiers(table.Tiers); !validation.Valid {
		return pkgerrors.New(pkgerrors.CodeValidation, "tier table is invalid").WithDetails(validation.Errors)
	}
	return nil
}
