package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kartbay/kartbay/internal/hash"
	"github.com/kartbay/kartbay/internal/logging"
	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	Hasher    hash.Hasher
	JWTSecret []byte
	TokenTTL  time.Duration
}

type RegisterAdminInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type RegisterCustomerInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  *AddressInput
}

type AddressInput struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Country      string
	Pincode      string
	Latitude     float64
	Longitude    float64
	IsDefault    bool
}

func (s *AuthService) RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*models.User, string, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", ErrInvalidArgument)
	}

	if _, err := s.Repo.UserByEmail(ctx, in.Email); err == nil {
		return nil, "", fmt.Errorf("%w: user already exists with this email", ErrConflict)
	} else if !repo.IsNotFound(err) {
		return nil, "", err
	}

	pwHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = "admin"
	}
	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := tokens.Issue(s.JWTSecret, user.ID, tokens.PrincipalAdmin, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	logging.FromContext(ctx).Info("admin_registered", "user_id", user.ID)
	return user, token, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, "", err
	}
	if !user.IsActive || !s.Hasher.Check(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := tokens.Issue(s.JWTSecret, user.ID, tokens.PrincipalAdmin, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RegisterCustomer creates the customer together with a default address in
// one transaction. Missing address fields fall back to placeholders the
// customer is expected to edit later.
func (s *AuthService) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*models.Customer, string, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", ErrInvalidArgument)
	}

	if _, err := s.Repo.CustomerByEmail(ctx, in.Email); err == nil {
		return nil, "", fmt.Errorf("%w: customer already exists with this email", ErrConflict)
	} else if !repo.IsNotFound(err) {
		return nil, "", err
	}

	pwHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	customer := &models.Customer{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Phone:        in.Phone,
		IsActive:     true,
	}
	addr := defaultAddress(in.Address)
	if err := s.Repo.CreateCustomer(ctx, customer, addr); err != nil {
		return nil, "", err
	}

	token, err := tokens.Issue(s.JWTSecret, customer.ID, tokens.PrincipalCustomer, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}

	created, err := s.Repo.CustomerByID(ctx, customer.ID)
	if err != nil {
		return nil, "", err
	}
	logging.FromContext(ctx).Info("customer_registered", "customer_id", customer.ID)
	return created, token, nil
}

func (s *AuthService) LoginCustomer(ctx context.Context, email, password string) (*models.Customer, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	customer, err := s.Repo.CustomerByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, "", err
	}
	if !customer.IsActive || !s.Hasher.Check(customer.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := tokens.Issue(s.JWTSecret, customer.ID, tokens.PrincipalCustomer, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return customer, token, nil
}

func defaultAddress(in *AddressInput) *models.Address {
	addr := &models.Address{
		AddressLine1: "Default Address",
		City:         "Default City",
		State:        "Default State",
		Country:      "India",
		Pincode:      "000000",
		IsDefault:    true,
	}
	if in == nil {
		return addr
	}
	if in.AddressLine1 != "" {
		addr.AddressLine1 = in.AddressLine1
	}
	addr.AddressLine2 = in.AddressLine2
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
	addr.Latitude = in.Latitude
	addr.Longitude = in.Longitude
	return addr
}
