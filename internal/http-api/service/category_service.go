package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
)

type CategoryService interface {
	GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.GetAll(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.TrimSpace(c.Slug)
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
