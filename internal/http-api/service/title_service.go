package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
)

type TitleService interface {
	GetAll(ctx context.Context, filters dto.TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, in dto.CreateTitleDTO) (*models.Title, error)
	Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	genreRepo    repository.GenreRepository
	categoryRepo repository.CategoryRepository
	now          func() time.Time
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	genreRepo repository.GenreRepository,
	categoryRepo repository.CategoryRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		genreRepo:    genreRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

func (s *titleService) GetAll(ctx context.Context, filters dto.TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.GetAll(ctx, filters, page, pageSize)
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return title, nil
}

// resolveGenres maps genre slugs to rows; any unknown slug is a validation
// error.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(uniqueStrings(slugs)) {
		return nil, ErrUnknownGenre
	}
	return genres, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) Create(ctx context.Context, in dto.CreateTitleDTO) (*models.Title, error) {
	if in.Year > s.now().Year() {
		return nil, ErrYearInFuture
	}

	title := in.ToModel()

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, in.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, &title); err != nil {
		return nil, err
	}

	// reload to pick up the rating annotation and preloaded associations
	return s.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*models.Title, error) {
	title, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(title)
	if title.Year > s.now().Year() {
		return nil, ErrYearInFuture
	}

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	if in.Genre != nil {
		genres, err := s.resolveGenres(ctx, in.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
