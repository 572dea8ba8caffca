package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
)

type GenreService interface {
	GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, g *models.Genre) error
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.GetAll(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, g *models.Genre) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Slug = strings.TrimSpace(g.Slug)
	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
