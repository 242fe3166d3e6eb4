package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kartbay/kartbay/internal/config"
	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(newTestDB(t))
}

func seedCustomer(t *testing.T, r *repo.GormRepo, email string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		Name:         "Test Customer",
		Email:        email,
		PasswordHash: "x",
		IsActive:     true,
	}
	addr := &models.Address{
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Country:      "India",
		Pincode:      "560001",
		IsDefault:    true,
	}
	require.NoError(t, r.CreateCustomer(context.Background(), customer, addr))
	return customer
}

func seedProduct(t *testing.T, r *repo.GormRepo, sku, price string) *models.Product {
	t.Helper()

	brand := &models.Brand{Name: "Brand " + sku, IsActive: true}
	require.NoError(t, r.CreateBrand(context.Background(), brand))

	p, err := decimal.NewFromString(price)
	require.NoError(t, err)

	product := &models.Product{
		Name:    "Product " + sku,
		SKU:     sku,
		Price:   p,
		Status:  models.ProductStatusActive,
		BrandID: brand.ID,
	}
	require.NoError(t, r.CreateProduct(context.Background(), product))
	return product
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func defaultAddressID(t *testing.T, r *repo.GormRepo, customerID uint) uint {
	t.Helper()

	addrs, err := r.ListAddresses(context.Background(), customerID)
	require.NoError(t, err)
	require.NotEmpty(t, addrs)
	return addrs[0].ID
}
