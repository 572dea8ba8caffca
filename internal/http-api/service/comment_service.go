package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
)

type CommentService interface {
	GetByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	// Create injects the author and parent review server-side.
	Create(ctx context.Context, titleID, reviewID int64, authorID string, in dto.CreateCommentDTO) (*models.Comment, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// requireReview resolves the parent review within its title or reports
// ErrNotFound.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) GetByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, authorID string, in dto.CreateCommentDTO) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     in.Text,
		AuthorID: authorID,
		ReviewID: reviewID,
		TitleID:  &titleID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, titleID, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(comment)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64) error {
	comment, err := s.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, comment)
}
