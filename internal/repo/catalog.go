package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kartbay/kartbay/internal/models"
)

func (r *GormRepo) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return r.DB.WithContext(ctx).Create(brand).Error
}

func (r *GormRepo) BrandByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormRepo) BrandByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

type ListFilter struct {
	Search   string
	IsActive *bool
	Offset   int
	Limit    int
}

func (r *GormRepo) ListBrands(ctx context.Context, f ListFilter) (int64, []models.Brand, error) {
	q := r.DB.WithContext(ctx).Model(&models.Brand{})
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var brands []models.Brand
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Order("created_at DESC").Find(&brands).Error; err != nil {
		return 0, nil, err
	}
	return total, brands, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) ListCategories(ctx context.Context, f ListFilter) (int64, []models.Category, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{})
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var categories []models.Category
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Order("created_at DESC").Find(&categories).Error; err != nil {
		return 0, nil, err
	}
	return total, categories, nil
}

func (r *GormRepo) CountCategories(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

func (r *GormRepo) CreateStore(ctx context.Context, store *models.Store) error {
	return r.DB.WithContext(ctx).Create(store).Error
}

func (r *GormRepo) StoreByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *GormRepo) ListStores(ctx context.Context, f ListFilter) (int64, []models.Store, error) {
	q := r.DB.WithContext(ctx).Model(&models.Store{})
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var stores []models.Store
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Order("created_at DESC").Find(&stores).Error; err != nil {
		return 0, nil, err
	}
	return total, stores, nil
}

func (r *GormRepo) CountStores(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Store{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

type ProductFilter struct {
	Search     string
	BrandID    uint
	CategoryID uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Offset     int
	Limit      int
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Categories").Create(product).Error
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Brand").
		Preload("Categories").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Categories", "Brand").Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductStore{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR sku LIKE ?", pattern, pattern, pattern)
	}
	if f.BrandID != 0 {
		q = q.Where("brand_id = ?", f.BrandID)
	}
	if f.CategoryID != 0 {
		q = q.Where("id IN (?)", r.DB.Model(&models.ProductCategory{}).
			Select("product_id").Where("category_id = ?", f.CategoryID))
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var products []models.Product
	err := q.Preload("Brand").Preload("Categories").
		Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).
		Find(&products).Error
	if err != nil {
		return 0, nil, err
	}
	return total, products, nil
}

// ReplaceProductCategories swaps the product-category link set for the
// given keyset in one transaction: delete what is gone, upsert the rest.
func (r *GormRepo) ReplaceProductCategories(ctx context.Context, productID uint, categoryIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("product_id = ?", productID)
		if len(categoryIDs) > 0 {
			del = del.Where("category_id NOT IN ?", categoryIDs)
		}
		if err := del.Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		links := make([]models.ProductCategory, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			links = append(links, models.ProductCategory{ProductID: productID, CategoryID: id})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

// UpsertProductStores links the product to the given stores, setting the
// stock column on each link. Existing links keep their identity, stock is
// overwritten.
func (r *GormRepo) UpsertProductStores(ctx context.Context, productID uint, storeIDs []uint, stock int) error {
	links := make([]models.ProductStore, 0, len(storeIDs))
	for _, id := range storeIDs {
		links = append(links, models.ProductStore{ProductID: productID, StoreID: id, Stock: stock})
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "updated_at"}),
	}).Create(&links).Error
}

func (r *GormRepo) ProductStores(ctx context.Context, productID uint) ([]models.ProductStore, error) {
	var links []models.ProductStore
	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Find(&links).Error
	return links, err
}
