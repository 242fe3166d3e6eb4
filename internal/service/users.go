package service

import (
	"context"
	"fmt"

	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/util"
)

// UserService is the admin-side user management surface.
type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) List(ctx context.Context, page, limit int) ([]models.User, util.Pagination, error) {
	offset, limit := util.Calculate(page, limit)
	total, users, err := s.Repo.ListUsers(ctx, offset, limit)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	return users, util.NewPagination(total, offset/limit+1, limit), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

type UpdateUserInput struct {
	Name     string
	Email    string
	Role     string
	IsActive *bool
}

func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		if _, err := s.Repo.UserByEmail(ctx, in.Email); err == nil {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		} else if !repo.IsNotFound(err) {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
