package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/models"
)

// ratingSelect annotates every title row with the average review score.
// Derived at query time, never persisted.
const ratingSelect = "titles.*, (SELECT AVG(r.score) FROM reviews r WHERE r.title_id = titles.id) AS rating"

type TitleRepository interface {
	GetAll(ctx context.Context, filters dto.TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) applyFilters(q *gorm.DB, filters dto.TitleFilters) *gorm.DB {
	if filters.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filters.Category)
	}
	if filters.Genre != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filters.Genre)
	}
	if filters.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		q = q.Where("titles.year = ?", *filters.Year)
	}
	return q
}

func (r *titleRepository) GetAll(ctx context.Context, filters dto.TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	var total int64
	countQ := r.applyFilters(r.db.WithContext(ctx).Model(&models.Title{}), filters)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	var list []models.Title
	offset := (page - 1) * pageSize
	q := r.applyFilters(r.db.WithContext(ctx).Model(&models.Title{}), filters).
		Select(ratingSelect).
		Preload("Genres").
		Preload("Category").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset)
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("get titles: %w", err)
	}
	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Select(ratingSelect).
		Preload("Genres").
		Preload("Category").
		First(&t, "titles.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	if err := translateError(r.db.WithContext(ctx).Create(t).Error); err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, t *models.Title) error {
	// Save would try to upsert associations; update scalar columns only
	err := r.db.WithContext(ctx).Model(t).
		Select("Name", "Year", "Description", "CategoryID").
		Updates(map[string]interface{}{
			"name":        t.Name,
			"year":        t.Year,
			"description": t.Description,
			"category_id": t.CategoryID,
		}).Error
	if err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(t).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace title genres: %w", err)
	}
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	// reviews cascade, and their comments cascade in turn
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
