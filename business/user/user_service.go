package user

import (
	"context"
	"fmt"

	"jewelryhub/domain"
)

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// userService is the identity collaborator consumed by the auth middleware:
// it resolves authenticated ids to users and their role/active flag.
type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *userService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	if id == 0 {
		return domain.User{}, fmt.Errorf("invalid user id: %w", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
