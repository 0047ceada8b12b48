package discounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
)

func setupDiscountTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orderDiscounts := `
CREATE TABLE IF NOT EXISTS order_discounts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  disc_code TEXT NOT NULL UNIQUE,
  disc_type TEXT NOT NULL,
  disc_perc TEXT,
  disc_amt TEXT,
  disc_from_amt TEXT,
  disc_to_amt TEXT,
  disc_status TEXT NOT NULL DEFAULT 'A',
  disc_valid_from TEXT,
  disc_valid_to TEXT,
  disc_once_only TEXT NOT NULL DEFAULT 'N',
  disc_compoundable TEXT NOT NULL DEFAULT 'N',
  disc_free_shipping TEXT NOT NULL DEFAULT 'N',
  disc_multi_by_qty TEXT NOT NULL DEFAULT 'N',
  disc_allow_on_forms TEXT NOT NULL DEFAULT 'N',
  created_at DATETIME,
  updated_at DATETIME
);`
	productDiscounts := `
CREATE TABLE IF NOT EXISTS product_discounts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  disc_code TEXT NOT NULL UNIQUE,
  disc_type TEXT NOT NULL,
  disc_perc TEXT,
  disc_amt TEXT,
  disc_from_amt TEXT,
  disc_to_amt TEXT,
  disc_status TEXT NOT NULL DEFAULT 'A',
  disc_valid_from TEXT,
  disc_valid_to TEXT,
  disc_once_only TEXT NOT NULL DEFAULT 'N',
  disc_compoundable TEXT NOT NULL DEFAULT 'N',
  disc_free_shipping TEXT NOT NULL DEFAULT 'N',
  disc_multi_by_qty TEXT NOT NULL DEFAULT 'N',
  disc_allow_on_forms TEXT NOT NULL DEFAULT 'N',
  target_product_type TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orderDiscounts).Error)
	require.NoError(t, db.Exec(productDiscounts).Error)
	return db
}

func TestRepositoryOrderDiscountRoundTrip(t *testing.T) {
	db := setupDiscountTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, &models.OrderDiscount{
		Code:          "ROUNDTRIP10",
		Type:          enums.DiscountTypePercentage,
		Percentage:    decPtr("10"),
		FromAmount:    decPtr("25"),
		ToAmount:      decPtr("500"),
		Status:        enums.DiscountStatusActive,
		ValidFrom:     strPtr("20260101"),
		ValidTo:       strPtr("20261231"),
		OnceOnly:      enums.No,
		Compoundable:  enums.No,
		FreeShipping:  enums.Yes,
		MultiplyByQty: enums.No,
		AllowOnForms:  enums.No,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byCode, err := repo.GetOrderByCode(ctx, "ROUNDTRIP10")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)
	assert.Equal(t, enums.DiscountTypePercentage, byCode.Type)
	require.NotNil(t, byCode.Percentage)
	assert.True(t, byCode.Percentage.Equal(*decPtr("10")))
	assert.Equal(t, enums.Yes, byCode.FreeShipping)
	require.NotNil(t, byCode.ValidFrom)
	assert.Equal(t, "20260101", *byCode.ValidFrom)

	byCode.Status = enums.DiscountStatusInactive
	_, err = repo.UpdateOrder(ctx, byCode)
	require.NoError(t, err)

	byID, err := repo.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.DiscountStatusInactive, byID.Status)
}

func TestRepositoryListOrderSortsByCode(t *testing.T) {
	db := setupDiscountTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, code := range []string{"ZEBRA5", "ALPHA5", "MIDDLE5"} {
		_, err := repo.CreateOrder(ctx, &models.OrderDiscount{
			Code:         code,
			Type:         enums.DiscountTypeAmount,
			Amount:       decPtr("5"),
			Status:       enums.DiscountStatusActive,
			OnceOnly:     enums.No,
			FreeShipping: enums.No,
		})
		require.NoError(t, err)
	}

	rules, err := repo.ListOrder(ctx)
	require.NoError(t, err)

	// The shared in-memory database may hold rows from sibling tests, so
	// only the relative order of this test's codes is asserted.
	mine := map[string]bool{"ZEBRA5": true, "ALPHA5": true, "MIDDLE5": true}
	var codes []string
	for _, rule := range rules {
		if mine[rule.Code] {
			codes = append(codes, rule.Code)
		}
	}
	assert.Equal(t, []string{"ALPHA5", "MIDDLE5", "ZEBRA5"}, codes)
}

func TestRepositoryDeleteOrderRemovesRow(t *testing.T) {
	db := setupDiscountTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, &models.OrderDiscount{
		Code:   "DELETEME",
		Type:   enums.DiscountTypeAmount,
		Amount: decPtr("2.50"),
		Status: enums.DiscountStatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(ctx, created.ID))

	_, err = repo.GetOrderByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryProductDiscountKeepsTargetType(t *testing.T) {
	db := setupDiscountTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	target := enums.ProductTypeFridge
	created, err := repo.CreateProduct(ctx, &models.ProductDiscount{
		Code:              "FRIDGE15",
		Type:              enums.DiscountTypePercentage,
		Percentage:        decPtr("15"),
		Status:            enums.DiscountStatusActive,
		TargetProductType: &target,
	})
	require.NoError(t, err)

	fetched, err := repo.GetProductByCode(ctx, "FRIDGE15")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	require.NotNil(t, fetched.TargetProductType)
	assert.Equal(t, enums.ProductTypeFridge, *fetched.TargetProductType)
}
