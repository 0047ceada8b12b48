package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/internal/repo"
	"github.com/filtercore/pricing-backend/pkg/db/models"
)

// Repository resolves catalog products. Missing products return (nil, nil)
// rather than an error: callers in the pricing path treat unknown references
// as "skip", and that decision should be explicit in the control flow.
type Repository interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	BySKU(ctx context.Context, sku string) (*models.Product, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs a product repository backed by the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) ByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) BySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
