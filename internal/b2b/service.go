package b2b

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/internal/pricing"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

// Service exposes account lookups and the credit gate for order placement.
type Service interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*models.B2BAccount, error)
	ListAccounts(ctx context.Context) ([]models.B2BAccount, error)
	CreateAccount(ctx context.Context, account models.B2BAccount) (*models.B2BAccount, error)
	UpdateAccount(ctx context.Context, account models.B2BAccount) (*models.B2BAccount, error)
	CheckOrder(ctx context.Context, accountID uuid.UUID, orderTotal decimal.Decimal) (pricing.OrderDecision, error)
}

type service struct {
	repo Repository
}

// NewService builds the account service.
func NewService(repository Repository) (Service, error) {
	if repository == nil {
		return nil, fmt.Errorf("account repository required")
	}
	return &service{repo: repository}, nil
}

func (s *service) GetAccount(ctx context.Context, id uuid.UUID) (*models.B2BAccount, error) {
	account, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	return account, nil
}

func (s *service) ListAccounts(ctx context.Context) ([]models.B2BAccount, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list accounts")
	}
	return accounts, nil
}

func (s *service) CreateAccount(ctx context.Context, account models.B2BAccount) (*models.B2BAccount, error) {
	if err := validateAccount(account); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &account)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}
	return created, nil
}

func (s *service) UpdateAccount(ctx context.Context, account models.B2BAccount) (*models.B2BAccount, error) {
	if err := validateAccount(account); err != nil {
		return nil, err
	}
	if _, err := s.GetAccount(ctx, account.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &account)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update account")
	}
	return updated, nil
}

// CheckOrder runs the credit gate against the account's stored credit state.
// A missing account yields a denial, not an error, matching the gate's
// treatment of nil accounts.
func (s *service) CheckOrder(ctx context.Context, accountID uuid.UUID, orderTotal decimal.Decimal) (pricing.OrderDecision, error) {
	if orderTotal.IsNegative() {
		return pricing.OrderDecision{}, pkgerrors.New(pkgerrors.CodeValidation, "order total must not be negative")
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return pricing.OrderDecision{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	return pricing.CanPlaceOrder(account, orderTotal), nil
}

func validateAccount(account models.B2BAccount) error {
	details := map[string]string{}
	if account.CompanyName == "" {
		details["company_name"] = "company name is required"
	}
	if !account.Status.IsValid() {
		details["status"] = "unknown account status"
	}
	if !account.PaymentTerms.IsValid() {
		details["payment_terms"] = "unknown payment terms"
	}
	if account.DiscountPercentage.IsNegative() || account.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		details["discount_percentage"] = "discount percentage must be between 0 and 100"
	}
	if account.CreditLimit != nil && account.CreditLimit.IsNegative() {
		details["credit_limit"] = "credit limit must not be negative"
	}
	if account.CreditUsed.IsNegative() {
		details["credit_used"] = "credit used must not be negative"
	}
	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "account validation failed").WithDetails(details)
}
