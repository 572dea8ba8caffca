package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
	"titlehub/internal/http-api/service"
)

func TestCreateReview(t *testing.T) {
	reviewRepo := new(MockReviewRepo)
	titleRepo := new(MockTitleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", mock.Anything, "u-1", int64(1)).Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.AuthorID == "u-1" && r.TitleID == 1 && r.Score == 8
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Review).ID = 11
	}).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(11)).Return(&models.Review{
		ID: 11, Text: "great", Score: 8, AuthorID: "u-1", TitleID: 1,
		Author: models.User{ID: "u-1", Username: "reader"},
	}, nil)

	svc := service.NewReviewService(reviewRepo, titleRepo)
	review, err := svc.Create(context.Background(), 1, "u-1", dto.CreateReviewDTO{Text: "great", Score: 8})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), review.ID)
	assert.Equal(t, "reader", review.Author.Username)
}

func TestCreateReview_SecondReviewRejected(t *testing.T) {
	reviewRepo := new(MockReviewRepo)
	titleRepo := new(MockTitleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", mock.Anything, "u-1", int64(1)).Return(true, nil)

	svc := service.NewReviewService(reviewRepo, titleRepo)
	_, err := svc.Create(context.Background(), 1, "u-1", dto.CreateReviewDTO{Text: "again", Score: 5})

	assert.ErrorIs(t, err, service.ErrReviewExists)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_RaceCaughtByUniqueIndex(t *testing.T) {
	reviewRepo := new(MockReviewRepo)
	titleRepo := new(MockTitleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", mock.Anything, "u-1", int64(1)).Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := service.NewReviewService(reviewRepo, titleRepo)
	_, err := svc.Create(context.Background(), 1, "u-1", dto.CreateReviewDTO{Text: "racy", Score: 5})

	assert.ErrorIs(t, err, service.ErrReviewExists)
}

func TestCreateReview_SameUserOtherTitle(t *testing.T) {
	reviewRepo := new(MockReviewRepo)
	titleRepo := new(MockTitleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.Title{ID: 2}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", mock.Anything, "u-1", int64(2)).Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Review).ID = 12
	}).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, int64(2), int64(12)).Return(&models.Review{ID: 12, TitleID: 2}, nil)

	svc := service.NewReviewService(reviewRepo, titleRepo)
	review, err := svc.Create(context.Background(), 2, "u-1", dto.CreateReviewDTO{Text: "other", Score: 7})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), review.TitleID)
}

func TestCreateReview_TitleMissing(t *testing.T) {
	reviewRepo := new(MockReviewRepo)
	titleRepo := new(MockTitleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := service.NewReviewService(reviewRepo, titleRepo)
	_, err := svc.Create(context.Background(), 404, "u-1", dto.CreateReviewDTO{Text: "ghost", Score: 5})

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateReview(t *testing.T) {
	reviewRepo := new(MockReviewRepo)
	titleRepo := new(MockTitleRepo)

	existing := &models.Review{ID: 11, Text: "old", Score: 4, TitleID: 1}
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(11)).Return(existing, nil)
	reviewRepo.On("Update", mock.Anything, existing).Return(nil)

	svc := service.NewReviewService(reviewRepo, titleRepo)
	review, err := svc.Update(context.Background(), 1, 11, dto.UpdateReviewDTO{Score: intPtr(9)})

	assert.NoError(t, err)
	assert.Equal(t, 9, review.Score)
	assert.Equal(t, "old", review.Text, "text untouched by a partial update")
}

func TestGetReview_WrongTitleScope(t *testing.T) {
	reviewRepo := new(MockReviewRepo)

	// review 11 belongs to title 1; asking for it under title 2 is a miss
	reviewRepo.On("GetByID", mock.Anything, int64(2), int64(11)).Return(nil, gorm.ErrRecordNotFound)

	svc := service.NewReviewService(reviewRepo, new(MockTitleRepo))
	_, err := svc.GetByID(context.Background(), 2, 11)

	assert.ErrorIs(t, err, service.ErrNotFound)
}
