package tierpricing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/internal/repo"
	"github.com/filtercore/pricing-backend/pkg/db/models"
)

// Repository persists tier tables. The active-scope lookups return (nil, nil)
// when no table is in scope so callers can fall through to the base price.
type Repository interface {
	ActiveByProductID(ctx context.Context, productID uuid.UUID) (*models.TierPricing, error)
	ActiveBySKU(ctx context.Context, sku string) (*models.TierPricing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TierPricing, error)
	List(ctx context.Context) ([]models.TierPricing, error)
	Create(ctx context.Context, table *models.TierPricing) (*models.TierPricing, error)
	Update(ctx context.Context, table *models.TierPricing) (*models.TierPricing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	repo.Base
}

// NewRepository constructs a tier pricing repository backed by the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) ActiveByProductID(ctx context.Context, productID uuid.UUID) (*models.TierPricing, error) {
	var table models.TierPricing
	err := r.DB(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("min_quantity ASC") }).
		Where("product_id = ? AND is_active = ?", productID, true).
		First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) ActiveBySKU(ctx context.Context, sku string) (*models.TierPricing, error) {
	var table models.TierPricing
	err := r.DB(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("min_quantity ASC") }).
		Where("sku = ? AND is_active = ?", sku, true).
		First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.TierPricing, error) {
	var table models.TierPricing
	if err := r.DB(ctx).Preload("Tiers").First(&table, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) List(ctx context.Context) ([]models.TierPricing, error) {
	var out []models.TierPricing
	if err := r.DB(ctx).Preload("Tiers").Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, table *models.TierPricing) (*models.TierPricing, error) {
	if err := r.DB(ctx).Create(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

func (r *repository) Update(ctx context.Context, table *models.TierPricing) (*models.TierPricing, error) {
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		// replace the tier set wholesale so removed bands do not linger
		if err := tx.Delete(&models.Tier{}, "tier_pricing_id = ?", table.ID).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(table).Error
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.TierPricing{}, "id = ?", id).Error
}
