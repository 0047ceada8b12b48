package discounts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/pkg/db"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

// Service manages discount rule CRUD with validation and code normalization.
type Service interface {
	CreateOrderDiscount(ctx context.Context, rule models.OrderDiscount) (*models.OrderDiscount, error)
	UpdateOrderDiscount(ctx context.Context, rule models.OrderDiscount) (*models.OrderDiscount, error)
	GetOrderDiscount(ctx context.Context, id int64) (*models.OrderDiscount, error)
	GetOrderDiscountByCode(ctx context.Context, code string) (*models.OrderDiscount, error)
	ListOrderDiscounts(ctx context.Context) ([]models.OrderDiscount, error)
	DeleteOrderDiscount(ctx context.Context, id int64) error

	CreateProductDiscount(ctx context.Context, rule models.ProductDiscount) (*models.ProductDiscount, error)
	UpdateProductDiscount(ctx context.Context, rule models.ProductDiscount) (*models.ProductDiscount, error)
	GetProductDiscount(ctx context.Context, id int64) (*models.ProductDiscount, error)
	GetProductDiscountByCode(ctx context.Context, code string) (*models.ProductDiscount, error)
	ListProductDiscounts(ctx context.Context) ([]models.ProductDiscount, error)
	DeleteProductDiscount(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the discount rule service.
func NewService(repository Repository) (Service, error) {
	if repository == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	return &service{repo: repository}, nil
}

func orderRule(d models.OrderDiscount) Rule {
	return Rule{
		Code:          d.Code,
		Type:          d.Type,
		Percentage:    d.Percentage,
		Amount:        d.Amount,
		FromAmount:    d.FromAmount,
		ToAmount:      d.ToAmount,
		Status:        d.Status,
		ValidFrom:     d.ValidFrom,
		ValidTo:       d.ValidTo,
		OnceOnly:      d.OnceOnly,
		Compoundable:  d.Compoundable,
		FreeShipping:  d.FreeShipping,
		MultiplyByQty: d.MultiplyByQty,
		AllowOnForms:  d.AllowOnForms,
	}
}

func productRule(d models.ProductDiscount) Rule {
	return Rule{
		Code:              d.Code,
		Type:              d.Type,
		Percentage:        d.Percentage,
		Amount:            d.Amount,
		FromAmount:        d.FromAmount,
		ToAmount:          d.ToAmount,
		Status:            d.Status,
		ValidFrom:         d.ValidFrom,
		ValidTo:           d.ValidTo,
		OnceOnly:          d.OnceOnly,
		Compoundable:      d.Compoundable,
		FreeShipping:      d.FreeShipping,
		MultiplyByQty:     d.MultiplyByQty,
		AllowOnForms:      d.AllowOnForms,
		TargetProductType: d.TargetProductType,
	}
}

func (s *service) CreateOrderDiscount(ctx context.Context, rule models.OrderDiscount) (*models.OrderDiscount, error) {
	rule.Code = NormalizeCode(rule.Code)
	if err := ValidateRule(orderRule(rule)); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateOrder(ctx, &rule)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_order_discounts_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order discount")
	}
	return created, nil
}

func (s *service) UpdateOrderDiscount(ctx context.Context, rule models.OrderDiscount) (*models.OrderDiscount, error) {
	rule.Code = NormalizeCode(rule.Code)
	if err := ValidateRule(orderRule(rule)); err != nil {
		return nil, err
	}
	if _, err := s.GetOrderDiscount(ctx, rule.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOrder(ctx, &rule)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_order_discounts_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order discount")
	}
	return updated, nil
}

func (s *service) GetOrderDiscount(ctx context.Context, id int64) (*models.OrderDiscount, error) {
	rule, err := s.repo.GetOrderByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order discount not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order discount")
	}
	return rule, nil
}

func (s *service) GetOrderDiscountByCode(ctx context.Context, code string) (*models.OrderDiscount, error) {
	rule, err := s.repo.GetOrderByCode(ctx, NormalizeCode(code))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order discount not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order discount by code")
	}
	return rule, nil
}

func (s *service) ListOrderDiscounts(ctx context.Context) ([]models.OrderDiscount, error) {
	rules, err := s.repo.ListOrder(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order discounts")
	}
	return rules, nil
}

func (s *service) DeleteOrderDiscount(ctx context.Context, id int64) error {
	if _, err := s.GetOrderDiscount(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order discount")
	}
	return nil
}

func (s *service) CreateProductDiscount(ctx context.Context, rule models.ProductDiscount) (*models.ProductDiscount, error) {
	rule.Code = NormalizeCode(rule.Code)
	if err := ValidateRule(productRule(rule)); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateProduct(ctx, &rule)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_product_discounts_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product discount")
	}
	return created, nil
}

func (s *service) UpdateProductDiscount(ctx context.Context, rule models.ProductDiscount) (*models.ProductDiscount, error) {
	rule.Code = NormalizeCode(rule.Code)
	if err := ValidateRule(productRule(rule)); err != nil {
		return nil, err
	}
	if _, err := s.GetProductDiscount(ctx, rule.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProduct(ctx, &rule)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_product_discounts_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product discount")
	}
	return updated, nil
}

func (s *service) GetProductDiscount(ctx context.Context, id int64) (*models.ProductDiscount, error) {
	rule, err := s.repo.GetProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product discount not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product discount")
	}
	return rule, nil
}

func (s *service) GetProductDiscountByCode(ctx context.Context, code string) (*models.ProductDiscount, error) {
	rule, err := s.repo.GetProductByCode(ctx, NormalizeCode(code))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product discount not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product discount by code")
	}
	return rule, nil
}

func (s *service) ListProductDiscounts(ctx context.Context) ([]models.ProductDiscount, error) {
	rules, err := s.repo.ListProduct(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list product discounts")
	}
	return rules, nil
}

func (s *service) DeleteProductDiscount(ctx context.Context, id int64) error {
	if _, err := s.GetProductDiscount(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product discount")
	}
	return nil
}
