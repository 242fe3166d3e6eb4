package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kartbay/kartbay/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *GormRepo) ListUsers(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var users []models.User
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return 0, nil, err
	}
	return total, users, nil
}

// CreateCustomer inserts the customer and the default address together.
func (r *GormRepo) CreateCustomer(ctx context.Context, customer *models.Customer, addr *models.Address) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		addr.CustomerID = customer.ID
		addr.IsDefault = true
		return tx.Create(addr).Error
	})
}

func (r *GormRepo) CustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB.WithContext(ctx).
		Preload("Addresses").
		Where("email = ?", email).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) CustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Preload("Addresses").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Save(customer).Error
}

func (r *GormRepo) AddressByID(ctx context.Context, customerID, addressID uint) (*models.Address, error) {
	var addr models.Address
	err := r.DB.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, customerID uint) ([]models.Address, error) {
	var addrs []models.Address
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").
		Find(&addrs).Error
	return addrs, err
}

// SaveAddress persists an address; when it is flagged default, the
// customer's other defaults are unset in the same transaction so readers
// never observe two defaults.
func (r *GormRepo) SaveAddress(ctx context.Context, addr *models.Address) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			err := tx.Model(&models.Address{}).
				Where("customer_id = ? AND id <> ?", addr.CustomerID, addr.ID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Save(addr).Error
	})
}

func (r *GormRepo) DeleteAddress(ctx context.Context, customerID, addressID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountAddresses(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
