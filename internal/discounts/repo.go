package discounts

import (
	"context"

	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/internal/repo"
	"github.com/filtercore/pricing-backend/pkg/db/models"
)

// Repository persists order-level and product-level discount rules.
type Repository interface {
	CreateOrder(ctx context.Context, rule *models.OrderDiscount) (*models.OrderDiscount, error)
	UpdateOrder(ctx context.Context, rule *models.OrderDiscount) (*models.OrderDiscount, error)
	GetOrderByID(ctx context.Context, id int64) (*models.OrderDiscount, error)
	GetOrderByCode(ctx context.Context, code string) (*models.OrderDiscount, error)
	ListOrder(ctx context.Context) ([]models.OrderDiscount, error)
	DeleteOrder(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, rule *models.ProductDiscount) (*models.ProductDiscount, error)
	UpdateProduct(ctx context.Context, rule *models.ProductDiscount) (*models.ProductDiscount, error)
	GetProductByID(ctx context.Context, id int64) (*models.ProductDiscount, error)
	GetProductByCode(ctx context.Context, code string) (*models.ProductDiscount, error)
	ListProduct(ctx context.Context) ([]models.ProductDiscount, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type repository struct {
	repo.Base
}

// NewRepository constructs a discount repository backed by the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) CreateOrder(ctx context.Context, rule *models.OrderDiscount) (*models.OrderDiscount, error) {
	if err := r.DB(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *repository) UpdateOrder(ctx context.Context, rule *models.OrderDiscount) (*models.OrderDiscount, error) {
	if err := r.DB(ctx).Save(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *repository) GetOrderByID(ctx context.Context, id int64) (*models.OrderDiscount, error) {
	var rule models.OrderDiscount
	if err := r.DB(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) GetOrderByCode(ctx context.Context, code string) (*models.OrderDiscount, error) {
	var rule models.OrderDiscount
	if err := r.DB(ctx).First(&rule, "disc_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) ListOrder(ctx context.Context) ([]models.OrderDiscount, error) {
	var out []models.OrderDiscount
	if err := r.DB(ctx).Order("disc_code ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) DeleteOrder(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.OrderDiscount{}, "id = ?", id).Error
}

func (r *repository) CreateProduct(ctx context.Context, rule *models.ProductDiscount) (*models.ProductDiscount, error) {
	if err := r.DB(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *repository) UpdateProduct(ctx context.Context, rule *models.ProductDiscount) (*models.ProductDiscount, error) {
	if err := r.DB(ctx).Save(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *repository) GetProductByID(ctx context.Context, id int64) (*models.ProductDiscount, error) {
	var rule models.ProductDiscount
	if err := r.DB(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) GetProductByCode(ctx context.Context, code string) (*models.ProductDiscount, error) {
	var rule models.ProductDiscount
	if err := r.DB(ctx).First(&rule, "disc_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) ListProduct(ctx context.Context) ([]models.ProductDiscount, error) {
	var out []models.ProductDiscount
	if err := r.DB(ctx).Order("disc_code ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.ProductDiscount{}, "id = ?", id).Error
}
