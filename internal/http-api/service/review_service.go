package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
)

type ReviewService interface {
	GetByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	// Create injects the author and parent title server-side; the payload
	// carries only text and score.
	Create(ctx context.Context, titleID int64, authorID string, in dto.CreateReviewDTO) (*models.Review, error)
	Update(ctx context.Context, titleID, reviewID int64, in dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// requireTitle resolves the parent or reports ErrNotFound.
func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) GetByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, titleID int64, authorID string, in dto.CreateReviewDTO) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(ctx, authorID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		Text:     in.Text,
		Score:    in.Score,
		AuthorID: authorID,
		TitleID:  titleID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// unique index catches the race between the exists check and insert
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// reload with the author preloaded
	return s.GetByID(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, in dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(review)
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64) error {
	review, err := s.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, review)
}
