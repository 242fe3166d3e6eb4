package service

import (
	"context"
	"fmt"

	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
)

type CustomerService struct {
	Repo *repo.GormRepo
}

func (s *CustomerService) Profile(ctx context.Context, customerID uint) (*models.Customer, error) {
	customer, err := s.Repo.CustomerByID(ctx, customerID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: customer", ErrNotFound)
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) UpdateProfile(ctx context.Context, customerID uint, name, phone string) (*models.Customer, error) {
	customer, err := s.Profile(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		customer.Name = name
	}
	if phone != "" {
		customer.Phone = phone
	}
	if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return s.Profile(ctx, customerID)
}

func (s *CustomerService) AddAddress(ctx context.Context, customerID uint, in AddressInput) (*models.Address, error) {
	if in.AddressLine1 == "" || in.City == "" || in.State == "" || in.Pincode == "" {
		return nil, fmt.Errorf("%w: addressLine1, city, state and pincode are required", ErrInvalidArgument)
	}

	country := in.Country
	if country == "" {
		country = "India"
	}
	addr := &models.Address{
		CustomerID:   customerID,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		Country:      country,
		Pincode:      in.Pincode,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		IsDefault:    in.IsDefault,
	}
	if err := s.Repo.SaveAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *CustomerService) ListAddresses(ctx context.Context, customerID uint) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, customerID)
}

type UpdateAddressInput struct {
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	Country      string
	Pincode      string
	Latitude     *float64
	Longitude    *float64
	IsDefault    *bool
}

func (s *CustomerService) UpdateAddress(ctx context.Context, customerID, addressID uint, in UpdateAddressInput) (*models.Address, error) {
	addr, err := s.Repo.AddressByID(ctx, customerID, addressID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: address", ErrNotFound)
		}
		return nil, err
	}

	if in.AddressLine1 != "" {
		addr.AddressLine1 = in.AddressLine1
	}
	if in.AddressLine2 != nil {
		addr.AddressLine2 = *in.AddressLine2
	}
	if in.City != "" {
		addr.City = in.City
	}
	if in.State != "" {
		addr.State = in.State
	}
	if in.Country != "" {
		addr.Country = in.Country
	}
	if in.Pincode != "" {
		addr.Pincode = in.Pincode
	}
	if in.Latitude != nil {
		addr.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		addr.Longitude = *in.Longitude
	}
	if in.IsDefault != nil {
		addr.IsDefault = *in.IsDefault
	}

	if err := s.Repo.SaveAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *CustomerService) DeleteAddress(ctx context.Context, customerID, addressID uint) error {
	addr, err := s.Repo.AddressByID(ctx, customerID, addressID)
	if err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: address", ErrNotFound)
		}
		return err
	}

	if addr.IsDefault {
		count, err := s.Repo.CountAddresses(ctx, customerID)
		if err != nil {
			return err
		}
		if count == 1 {
			return fmt.Errorf("%w: cannot delete the only address", ErrInvalidArgument)
		}
	}
	return s.Repo.DeleteAddress(ctx, customerID, addressID)
}

func (s *CustomerService) SetDefaultAddress(ctx context.Context, customerID, addressID uint) (*models.Address, error) {
	addr, err := s.Repo.AddressByID(ctx, customerID, addressID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: address", ErrNotFound)
		}
		return nil, err
	}
	addr.IsDefault = true
	if err := s.Repo.SaveAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}
