package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/api/responses"
	"github.com/filtercore/pricing-backend/api/validators"
	"github.com/filtercore/pricing-backend/internal/b2b"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
	"github.com/filtercore/pricing-backend/pkg/logger"
)

// AccountPayload is the admin create/update body for a business account.
type AccountPayload struct {
	CompanyName        string           `json:"company_name" validate:"required"`
	Status             string           `json:"status"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	CreditLimit        *decimal.Decimal `json:"credit_limit"`
	CreditUsed         decimal.Decimal  `json:"credit_used"`
	PaymentTerms       string           `json:"payment_terms"`
}

func (p AccountPayload) toModel() models.B2BAccount {
	out := models.B2BAccount{
		CompanyName:        p.CompanyName,
		Status:             enums.AccountStatusPending,
		DiscountPercentage: p.DiscountPercentage,
		CreditLimit:        p.CreditLimit,
		CreditUsed:         p.CreditUsed,
		PaymentTerms:       enums.PaymentTermsPrepay,
	}
	if p.Status != "" {
		out.Status = enums.AccountStatus(p.Status)
	}
	if p.PaymentTerms != "" {
		out.PaymentTerms = enums.PaymentTerms(p.PaymentTerms)
	}
	return out
}

func AdminAccountCreate(svc b2b.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var payload AccountPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateAccount(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminAccountUpdate(svc b2b.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AccountPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account := payload.toModel()
		account.ID = id
		updated, err := svc.UpdateAccount(r.Context(), account)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminAccountList(svc b2b.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.ListAccounts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, accounts)
	}
}

func AdminAccountGet(svc b2b.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.GetAccount(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}
