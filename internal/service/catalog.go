package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/kartbay/kartbay/internal/es"
	"github.com/kartbay/kartbay/internal/events"
	"github.com/kartbay/kartbay/internal/logging"
	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/util"
)

type CatalogService struct {
	Repo    *repo.GormRepo
	Indexer *es.Indexer
	Events  events.Publisher
}

func (s *CatalogService) CreateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	if brand.Name == "" {
		return nil, fmt.Errorf("%w: brand name is required", ErrInvalidArgument)
	}
	if _, err := s.Repo.BrandByName(ctx, brand.Name); err == nil {
		return nil, fmt.Errorf("%w: brand with this name already exists", ErrConflict)
	} else if !repo.IsNotFound(err) {
		return nil, err
	}
	brand.IsActive = true
	if err := s.Repo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	brand, err := s.Repo.BrandByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: brand", ErrNotFound)
		}
		return nil, err
	}
	return brand, nil
}

func (s *CatalogService) ListBrands(ctx context.Context, f repo.ListFilter) (int64, []models.Brand, error) {
	return s.Repo.ListBrands(ctx, f)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidArgument)
	}
	if _, err := s.Repo.CategoryByName(ctx, category.Name); err == nil {
		return nil, fmt.Errorf("%w: category with this name already exists", ErrConflict)
	} else if !repo.IsNotFound(err) {
		return nil, err
	}
	category.IsActive = true
	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.CategoryByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, f repo.ListFilter) (int64, []models.Category, error) {
	return s.Repo.ListCategories(ctx, f)
}

func (s *CatalogService) CreateStore(ctx context.Context, store *models.Store) (*models.Store, error) {
	if store.Name == "" {
		return nil, fmt.Errorf("%w: store name is required", ErrInvalidArgument)
	}
	store.IsActive = true
	if err := s.Repo.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *CatalogService) GetStore(ctx context.Context, id uint) (*models.Store, error) {
	store, err := s.Repo.StoreByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: store", ErrNotFound)
		}
		return nil, err
	}
	return store, nil
}

func (s *CatalogService) ListStores(ctx context.Context, f repo.ListFilter) (int64, []models.Store, error) {
	return s.Repo.ListStores(ctx, f)
}

type NearbyStore struct {
	models.Store
	DistanceKm float64 `json:"distanceKm"`
}

// NearbyStores returns active stores within radiusKm of (lat, lng), closest
// first. The haversine pass runs in memory; store counts are small.
func (s *CatalogService) NearbyStores(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyStore, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	active := true
	_, stores, err := s.Repo.ListStores(ctx, repo.ListFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyStore, 0)
	for _, st := range stores {
		d := haversineKm(lat, lng, st.Latitude, st.Longitude)
		if d <= radiusKm {
			nearby = append(nearby, NearbyStore{Store: st, DistanceKm: math.Round(d*100) / 100})
		}
	}
	for i := 1; i < len(nearby); i++ {
		for j := i; j > 0 && nearby[j].DistanceKm < nearby[j-1].DistanceKm; j-- {
			nearby[j], nearby[j-1] = nearby[j-1], nearby[j]
		}
	}
	return nearby, nil
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

type CreateProductInput struct {
	Name        string
	SKU         string
	Description string
	Price       decimal.Decimal
	Status      string
	Images      []string
	BrandID     uint
	CategoryIDs []uint
	StoreIDs    []uint
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.Name == "" || in.SKU == "" || in.BrandID == 0 {
		return nil, fmt.Errorf("%w: name, sku, price and brandId are required", ErrInvalidArgument)
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidArgument)
	}

	if _, err := s.Repo.BrandByID(ctx, in.BrandID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: brand", ErrNotFound)
		}
		return nil, err
	}
	if err := s.checkCategories(ctx, in.CategoryIDs); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ProductStatusActive
	}
	product := &models.Product{
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Status:      status,
		Images:      in.Images,
		BrandID:     in.BrandID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.Repo.ReplaceProductCategories(ctx, product.ID, in.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if len(in.StoreIDs) > 0 {
		if err := s.Repo.UpsertProductStores(ctx, product.ID, in.StoreIDs, 0); err != nil {
			return nil, err
		}
	}

	created, err := s.Repo.ProductByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	s.afterProductChange(ctx, created, "product_created")
	return created, nil
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Status      *string
	Images      []string
	CategoryIDs []uint
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() || in.Price.IsZero() {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidArgument)
		}
		product.Price = in.Price.Round(2)
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	if in.Images != nil {
		product.Images = in.Images
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	if in.CategoryIDs != nil {
		if err := s.checkCategories(ctx, in.CategoryIDs); err != nil {
			return nil, err
		}
		if err := s.Repo.ReplaceProductCategories(ctx, id, in.CategoryIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterProductChange(ctx, updated, "product_updated")
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Indexer.DeleteProduct(ctx, id); err != nil {
		l.Error("search_deindex_failed", "product_id", id, "error", err)
	}
	if err := s.Events.Publish(ctx, events.TopicProducts, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	}); err != nil {
		l.Error("event_publish_failed", "type", "product_deleted", "error", err)
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter) ([]models.Product, util.Pagination, error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	total, products, err := s.Repo.ListProducts(ctx, f)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	return products, util.NewPagination(total, f.Offset/f.Limit+1, f.Limit), nil
}

func (s *CatalogService) ProductStocks(ctx context.Context, productID uint) ([]models.ProductStore, error) {
	return s.Repo.ProductStores(ctx, productID)
}

// LinkProductToStores sets per-store stock on the product-store link.
// Stock set here is informational only; order creation never decrements it.
func (s *CatalogService) LinkProductToStores(ctx context.Context, productID uint, storeIDs []uint, stock int) ([]models.ProductStore, error) {
	if len(storeIDs) == 0 {
		return nil, fmt.Errorf("%w: storeIds array is required", ErrInvalidArgument)
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	count, err := s.Repo.CountStores(ctx, storeIDs)
	if err != nil {
		return nil, err
	}
	if count != int64(len(storeIDs)) {
		return nil, fmt.Errorf("%w: one or more stores", ErrNotFound)
	}

	if err := s.Repo.UpsertProductStores(ctx, productID, storeIDs, stock); err != nil {
		return nil, err
	}
	return s.Repo.ProductStores(ctx, productID)
}

func (s *CatalogService) checkCategories(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.Repo.CountCategories(ctx, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("%w: one or more categories", ErrNotFound)
	}
	return nil
}

func (s *CatalogService) afterProductChange(ctx context.Context, p *models.Product, eventType string) {
	l := logging.FromContext(ctx)
	if err := s.Indexer.IndexProduct(ctx, p); err != nil {
		l.Error("search_index_failed", "product_id", p.ID, "error", err)
	}
	if err := s.Events.Publish(ctx, events.TopicProducts, fmt.Sprint(p.ID), map[string]any{
		"type":      eventType,
		"productID": p.ID,
		"name":      p.Name,
	}); err != nil {
		l.Error("event_publish_failed", "type", eventType, "error", err)
	}
}
