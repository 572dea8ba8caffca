package dto

import "titlehub/internal/http-api/models"

// CreateCategoryDTO used for POST /v1/categories
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=200"`
	Slug string `json:"slug" binding:"required,max=100"`
}

// CategoryResponse excludes the internal id; categories are addressed by slug
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreateCategoryDTO) ToModel() models.Category {
	return models.Category{Name: d.Name, Slug: d.Slug}
}

func FromModelToCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
