package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartbay/kartbay/internal/events"
	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: newTestRepo(t), Events: events.Noop{}}
}

func TestCatalogService_Brands(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, &models.Brand{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	brand, err := svc.CreateBrand(ctx, &models.Brand{Name: "Acme", Description: "tools"})
	require.NoError(t, err)
	assert.True(t, brand.IsActive)

	_, err = svc.CreateBrand(ctx, &models.Brand{Name: "Acme"})
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.GetBrand(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	_, err = svc.GetBrand(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	total, brands, err := svc.ListBrands(ctx, repo.ListFilter{Search: "Acm"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, brands, 1)
}

func TestCatalogService_Categories(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &models.Category{Name: "Electronics"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, &models.Category{Name: "Electronics"})
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestCatalogService_NearbyStores(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	// Bengaluru center, a close store at ~1 km, one at ~5.2 km, a far
	// store in another city and an inactive close one.
	close1, err := svc.CreateStore(ctx, &models.Store{Name: "MG Road", Latitude: 12.9757, Longitude: 77.6050})
	require.NoError(t, err)
	mid, err := svc.CreateStore(ctx, &models.Store{Name: "Koramangala", Latitude: 12.9352, Longitude: 77.6245})
	require.NoError(t, err)
	_, err = svc.CreateStore(ctx, &models.Store{Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777})
	require.NoError(t, err)
	inactive, err := svc.CreateStore(ctx, &models.Store{Name: "Closed", Latitude: 12.9757, Longitude: 77.6050})
	require.NoError(t, err)
	inactive.IsActive = false
	require.NoError(t, svc.Repo.DB.Save(inactive).Error)

	nearby, err := svc.NearbyStores(ctx, 12.9716, 77.5946, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, close1.ID, nearby[0].ID)
	assert.Equal(t, mid.ID, nearby[1].ID)
	assert.Greater(t, nearby[0].DistanceKm, 0.0)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)

	// Zero and negative values fall back to the 5 km default, which
	// excludes the Koramangala store just outside it.
	nearby, err = svc.NearbyStores(ctx, 12.9716, 77.5946, 0)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, close1.ID, nearby[0].ID)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	brand, err := svc.CreateBrand(ctx, &models.Brand{Name: "Acme"})
	require.NoError(t, err)
	category, err := svc.CreateCategory(ctx, &models.Category{Name: "Tools"})
	require.NoError(t, err)
	store, err := svc.CreateStore(ctx, &models.Store{Name: "Main"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Hammer", SKU: "HAM-1", BrandID: brand.ID})
	assert.ErrorIs(t, err, ErrInvalidArgument) // zero price

	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Name: "Hammer", SKU: "HAM-1", Price: mustDecimal(t, "9.99"), BrandID: 999,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Name: "Hammer", SKU: "HAM-1", Price: mustDecimal(t, "9.99"),
		BrandID: brand.ID, CategoryIDs: []uint{999},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:        "Hammer",
		SKU:         "HAM-1",
		Price:       mustDecimal(t, "9.999"),
		BrandID:     brand.ID,
		CategoryIDs: []uint{category.ID},
		StoreIDs:    []uint{store.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", product.Price.StringFixed(2))
	assert.Equal(t, models.ProductStatusActive, product.Status)
	require.NotNil(t, product.Brand)
	require.Len(t, product.Categories, 1)

	stocks, err := svc.ProductStocks(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, store.ID, stocks[0].StoreID)
}

func TestCatalogService_UpdateProduct_ReplacesCategories(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	brand, err := svc.CreateBrand(ctx, &models.Brand{Name: "Acme"})
	require.NoError(t, err)
	cat1, err := svc.CreateCategory(ctx, &models.Category{Name: "Tools"})
	require.NoError(t, err)
	cat2, err := svc.CreateCategory(ctx, &models.Category{Name: "Hardware"})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name: "Hammer", SKU: "HAM-2", Price: mustDecimal(t, "9.99"),
		BrandID: brand.ID, CategoryIDs: []uint{cat1.ID},
	})
	require.NoError(t, err)

	newName := "Sledgehammer"
	newPrice := mustDecimal(t, "19.99")
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{
		Name:        &newName,
		Price:       &newPrice,
		CategoryIDs: []uint{cat2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sledgehammer", updated.Name)
	assert.Equal(t, "19.99", updated.Price.StringFixed(2))
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, cat2.ID, updated.Categories[0].ID)

	_, err = svc.UpdateProduct(ctx, 999, UpdateProductInput{Name: &newName})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	brand, err := svc.CreateBrand(ctx, &models.Brand{Name: "Acme"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name: "Hammer", SKU: "HAM-3", Price: mustDecimal(t, "9.99"), BrandID: brand.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_ListProducts_Filters(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	brand1, err := svc.CreateBrand(ctx, &models.Brand{Name: "Acme"})
	require.NoError(t, err)
	brand2, err := svc.CreateBrand(ctx, &models.Brand{Name: "Globex"})
	require.NoError(t, err)
	category, err := svc.CreateCategory(ctx, &models.Category{Name: "Tools"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Name: "Hammer", SKU: "F-1", Price: mustDecimal(t, "10.00"),
		BrandID: brand1.ID, CategoryIDs: []uint{category.ID},
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Name: "Drill", SKU: "F-2", Price: mustDecimal(t, "80.00"), BrandID: brand2.ID,
	})
	require.NoError(t, err)

	products, pg, err := svc.ListProducts(ctx, repo.ProductFilter{BrandID: brand1.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Hammer", products[0].Name)
	assert.EqualValues(t, 1, pg.Total)

	products, _, err = svc.ListProducts(ctx, repo.ProductFilter{CategoryID: category.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Hammer", products[0].Name)

	min := mustDecimal(t, "50")
	products, _, err = svc.ListProducts(ctx, repo.ProductFilter{MinPrice: &min, Limit: 10})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Drill", products[0].Name)
}

func TestCatalogService_LinkProductToStores(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	ctx := context.Background()

	brand, err := svc.CreateBrand(ctx, &models.Brand{Name: "Acme"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name: "Hammer", SKU: "L-1", Price: mustDecimal(t, "9.99"), BrandID: brand.ID,
	})
	require.NoError(t, err)
	store, err := svc.CreateStore(ctx, &models.Store{Name: "Main"})
	require.NoError(t, err)

	_, err = svc.LinkProductToStores(ctx, product.ID, nil, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.LinkProductToStores(ctx, product.ID, []uint{store.ID, 999}, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	links, err := svc.LinkProductToStores(ctx, product.ID, []uint{store.ID}, 5)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 5, links[0].Stock)

	// Re-linking updates stock in place.
	links, err = svc.LinkProductToStores(ctx, product.ID, []uint{store.ID}, 12)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 12, links[0].Stock)
}
