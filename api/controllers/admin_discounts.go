package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/api/responses"
	"github.com/filtercore/pricing-backend/api/validators"
	"github.com/filtercore/pricing-backend/internal/discounts"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
	"github.com/filtercore/pricing-backend/pkg/logger"
)

// OrderDiscountPayload is the admin create/update body for an order-level rule.
type OrderDiscountPayload struct {
	Code          string           `json:"code" validate:"required"`
	Type          string           `json:"type" validate:"required"`
	Percentage    *decimal.Decimal `json:"percentage"`
	Amount        *decimal.Decimal `json:"amount"`
	FromAmount    *decimal.Decimal `json:"from_amount"`
	ToAmount      *decimal.Decimal `json:"to_amount"`
	Status        string           `json:"status"`
	ValidFrom     *string          `json:"valid_from"`
	ValidTo       *string          `json:"valid_to"`
	OnceOnly      string           `json:"once_only"`
	Compoundable  string           `json:"compoundable"`
	FreeShipping  string           `json:"free_shipping"`
	MultiplyByQty string           `json:"multiply_by_qty"`
	AllowOnForms  string           `json:"allow_on_forms"`
}

// ProductDiscountPayload adds the product-type target to the shared shape.
type ProductDiscountPayload struct {
	OrderDiscountPayload
	TargetProductType *string `json:"target_product_type"`
}

func flagOrDefault(value string) enums.YesNo {
	if value == "" {
		return enums.No
	}
	return enums.YesNo(value)
}

func statusOrDefault(value string) enums.DiscountStatus {
	if value == "" {
		return enums.DiscountStatusActive
	}
	return enums.DiscountStatus(value)
}

func (p OrderDiscountPayload) toModel() models.OrderDiscount {
	return models.OrderDiscount{
		Code:          p.Code,
		Type:          enums.DiscountType(p.Type),
		Percentage:    p.Percentage,
		Amount:        p.Amount,
		FromAmount:    p.FromAmount,
		ToAmount:      p.ToAmount,
		Status:        statusOrDefault(p.Status),
		ValidFrom:     p.ValidFrom,
		ValidTo:       p.ValidTo,
		OnceOnly:      flagOrDefault(p.OnceOnly),
		Compoundable:  flagOrDefault(p.Compoundable),
		FreeShipping:  flagOrDefault(p.FreeShipping),
		MultiplyByQty: flagOrDefault(p.MultiplyByQty),
		AllowOnForms:  flagOrDefault(p.AllowOnForms),
	}
}

func (p ProductDiscountPayload) toModel() models.ProductDiscount {
	base := p.OrderDiscountPayload.toModel()
	out := models.ProductDiscount{
		Code:          base.Code,
		Type:          base.Type,
		Percentage:    base.Percentage,
		Amount:        base.Amount,
		FromAmount:    base.FromAmount,
		ToAmount:      base.ToAmount,
		Status:        base.Status,
		ValidFrom:     base.ValidFrom,
		ValidTo:       base.ValidTo,
		OnceOnly:      base.OnceOnly,
		Compoundable:  base.Compoundable,
		FreeShipping:  base.FreeShipping,
		MultiplyByQty: base.MultiplyByQty,
		AllowOnForms:  base.AllowOnForms,
	}
	if p.TargetProductType != nil {
		target := enums.ProductType(*p.TargetProductType)
		out.TargetProductType = &target
	}
	return out
}

func AdminOrderDiscountCreate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload OrderDiscountPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateOrderDiscount(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminOrderDiscountUpdate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		id, err := validators.ParseInt64Param(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload OrderDiscountPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule := payload.toModel()
		rule.ID = id
		updated, err := svc.UpdateOrderDiscount(r.Context(), rule)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminOrderDiscountList(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := svc.ListOrderDiscounts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rules)
	}
}

func AdminOrderDiscountGet(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.GetOrderDiscount(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rule)
	}
}

func AdminOrderDiscountDelete(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOrderDiscount(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminProductDiscountCreate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload ProductDiscountPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProductDiscount(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminProductDiscountUpdate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ProductDiscountPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule := payload.toModel()
		rule.ID = id
		updated, err := svc.UpdateProductDiscount(r.Context(), rule)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminProductDiscountList(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := svc.ListProductDiscounts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rules)
	}
}

func AdminProductDiscountGet(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.GetProductDiscount(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rule)
	}
}

func AdminProductDiscountDelete(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProductDiscount(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
