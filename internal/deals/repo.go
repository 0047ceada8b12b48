package deals

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/internal/repo"
	"github.com/filtercore/pricing-backend/pkg/db/models"
)

// Repository exposes deal persistence and the applicability lookup consumed
// by the rewards resolver.
type Repository interface {
	FindApplicable(ctx context.Context, subtotal decimal.Decimal) (*models.Deal, error)
	GetByID(ctx context.Context, id int64) (*models.Deal, error)
	List(ctx context.Context) ([]models.Deal, error)
	Create(ctx context.Context, deal *models.Deal) (*models.Deal, error)
	Update(ctx context.Context, deal *models.Deal) (*models.Deal, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	repo.Base
	now func() time.Time
}

// NewRepository constructs a deal repository backed by the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db), now: time.Now}
}

// FindApplicable loads active deals with their rewards and applies the
// highest-start-price selection in memory. The tie-break lives here, not in
// the resolver, so every caller observes the same rule.
func (r *repository) FindApplicable(ctx context.Context, subtotal decimal.Decimal) (*models.Deal, error) {
	var candidates []models.Deal
	if err := r.DB(ctx).
		Preload("Rewards").
		Where("active = ?", true).
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	return SelectApplicable(candidates, subtotal, r.now()), nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*models.Deal, error) {
	var deal models.Deal
	if err := r.DB(ctx).Preload("Rewards").First(&deal, "iddeal = ?", id).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *repository) List(ctx context.Context) ([]models.Deal, error) {
	var out []models.Deal
	if err := r.DB(ctx).Preload("Rewards").Order("startprice ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	if err := r.DB(ctx).Create(deal).Error; err != nil {
		return nil, err
	}
	return deal, nil
}

func (r *repository) Update(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	if err := r.DB(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(deal).Error; err != nil {
		return nil, err
	}
	return deal, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Deal{}, "iddeal = ?", id).Error
}
