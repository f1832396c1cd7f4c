package service

import (
	"context"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
)

type UserService interface {
	CurrentUser(ctx context.Context, id int64) (*models.CurrentUser, error)
	RemoveUser(ctx context.Context, userID int64) error
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) CurrentUser(ctx context.Context, id int64) (*models.CurrentUser, error) {
	if id == 0 {
		return nil, errUnauthenticated
	}

	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Error getting user info", err)
	}

	if !isExist {
		return nil, apperror.New(apperror.Unauthenticated, "User doesn't exist")
	}

	current := user.Current()
	return &current, nil
}

func (s *userService) RemoveUser(ctx context.Context, userID int64) error {
	if userID == 0 {
		return errUnauthenticated
	}
	if err := s.u.Remove(ctx, userID); err != nil {
		return internalError("Error removing user", err)
	}
	return nil
}
