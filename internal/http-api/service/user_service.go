package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
)

type UserService interface {
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, in dto.CreateUserDTO) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, username string, in dto.UpdateUserDTO) (*models.User, error)
	// UpdateSelf applies a partial update to the caller's own record but
	// always preserves their stored role, whatever the payload says.
	UpdateSelf(ctx context.Context, id string, in dto.UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, page, pageSize)
}

func (s *userService) Create(ctx context.Context, in dto.CreateUserDTO) (*models.User, error) {
	if in.Role != nil && !models.ValidRole(*in.Role) {
		return nil, ErrUnknownRole
	}

	user := in.ToModel()
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, in dto.UpdateUserDTO) (*models.User, error) {
	if in.Role != nil && !models.ValidRole(*in.Role) {
		return nil, ErrUnknownRole
	}

	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateSelf(ctx context.Context, id string, in dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role := user.Role
	in.ApplyTo(user)
	user.Role = role // the submitted role, if any, is silently dropped

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
