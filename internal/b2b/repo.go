package b2b

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/internal/repo"
	"github.com/filtercore/pricing-backend/pkg/db/models"
)

// Repository persists business accounts.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.B2BAccount, error)
	List(ctx context.Context) ([]models.B2BAccount, error)
	Create(ctx context.Context, account *models.B2BAccount) (*models.B2BAccount, error)
	Update(ctx context.Context, account *models.B2BAccount) (*models.B2BAccount, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs a B2B account repository backed by the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.B2BAccount, error) {
	var account models.B2BAccount
	if err := r.DB(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) List(ctx context.Context) ([]models.B2BAccount, error) {
	var out []models.B2BAccount
	if err := r.DB(ctx).Order("company_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, account *models.B2BAccount) (*models.B2BAccount, error) {
	if err := r.DB(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (r *repository) Update(ctx context.Context, account *models.B2BAccount) (*models.B2BAccount, error) {
	if err := r.DB(ctx).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}
