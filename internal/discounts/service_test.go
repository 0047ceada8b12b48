package discounts

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

type stubRepo struct {
	Repository

	createOrderErr error
	gotOrder       *models.OrderDiscount
	orderByID      *models.OrderDiscount
	orderByIDErr   error
}

func (s *stubRepo) CreateOrder(_ context.Context, rule *models.OrderDiscount) (*models.OrderDiscount, error) {
	s.gotOrder = rule
	if s.createOrderErr != nil {
		return nil, s.createOrderErr
	}
	return rule, nil
}

func (s *stubRepo) GetOrderByID(_ context.Context, _ int64) (*models.OrderDiscount, error) {
	return s.orderByID, s.orderByIDErr
}

func validOrderDiscount() models.OrderDiscount {
	return models.OrderDiscount{
		Code:          "save10",
		Type:          enums.DiscountTypePercentage,
		Percentage:    decPtr("10"),
		Status:        enums.DiscountStatusActive,
		OnceOnly:      enums.No,
		Compoundable:  enums.No,
		FreeShipping:  enums.No,
		MultiplyByQty: enums.No,
		AllowOnForms:  enums.No,
	}
}

func TestCreateOrderDiscountNormalizesCode(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.CreateOrderDiscount(context.Background(), validOrderDiscount())
	if err != nil {
		t.Fatalf("CreateOrderDiscount: %v", err)
	}
	if created.Code != "SAVE10" {
		t.Fatalf("expected normalized code SAVE10, got %q", created.Code)
	}
}

func TestCreateOrderDiscountRejectsInvalid(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc, _ := NewService(repo)

	rule := validOrderDiscount()
	rule.Percentage = decPtr("150")
	_, err := svc.CreateOrderDiscount(context.Background(), rule)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.gotOrder != nil {
		t.Fatal("invalid rule must not reach the repository")
	}
}

func TestCreateOrderDiscountDuplicateCode(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{createOrderErr: &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uq_order_discounts_code",
	}}
	svc, _ := NewService(repo)

	_, err := svc.CreateOrderDiscount(context.Background(), validOrderDiscount())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetOrderDiscountNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{orderByIDErr: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	_, err := svc.GetOrderDiscount(context.Background(), 42)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestNewServiceRequiresRepository(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
