package b2b

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

type stubRepo struct {
	Repository

	account *models.B2BAccount
	err     error
}

func (s *stubRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.B2BAccount, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func TestCheckOrderAllowsWithinCredit(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{account: &models.B2BAccount{
		Status:       enums.AccountStatusApproved,
		PaymentTerms: enums.PaymentTermsNet30,
		CreditLimit:  decPtr("1000"),
		CreditUsed:   dec("200"),
	}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	decision, err := svc.CheckOrder(context.Background(), uuid.New(), dec("500"))
	if err != nil {
		t.Fatalf("CheckOrder: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected order allowed, got %+v", decision)
	}
}

func TestCheckOrderMissingAccountDenied(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{err: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	decision, err := svc.CheckOrder(context.Background(), uuid.New(), dec("10"))
	if err != nil {
		t.Fatalf("CheckOrder: %v", err)
	}
	if decision.Allowed || decision.Reason != "Account not found" {
		t.Fatalf("expected account-not-found denial, got %+v", decision)
	}
}

func TestCheckOrderNegativeTotalRejected(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubRepo{})

	_, err := svc.CheckOrder(context.Background(), uuid.New(), dec("-1"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{err: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	_, err := svc.GetAccount(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubRepo{})

	account := models.B2BAccount{
		Status:             enums.AccountStatusApproved,
		PaymentTerms:       enums.PaymentTermsPrepay,
		DiscountPercentage: dec("150"),
	}

	_, err := svc.CreateAccount(context.Background(), account)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	if _, found := details["company_name"]; !found {
		t.Fatalf("expected company_name violation, got %v", details)
	}
	if _, found := details["discount_percentage"]; !found {
		t.Fatalf("expected discount_percentage violation, got %v", details)
	}
}
