package dto

import (
	"titlehub/internal/http-api/models"
)

// CreateTitleDTO used for POST /v1/titles. Genre and category are referenced
// by slug; unknown slugs are a validation error resolved in the service.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// UpdateTitleDTO used for PATCH /v1/titles/:title_id (partial updates
// allowed). A nil Genre leaves the association untouched; a non-nil slice
// replaces it.
type UpdateTitleDTO struct {
	Name        *string  `json:"name,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// TitleResponse is the read representation: genres and category expanded to
// {name, slug}, rating computed from reviews (absent when there are none).
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description,omitempty"`
	Rating      *float64          `json:"rating"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// TitleFilters carries the list query parameters: category and genre by
// slug, name as a partial match, year as an exact match.
type TitleFilters struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}

// Converters
func (d CreateTitleDTO) ToModel() models.Title {
	return models.Title{
		Name:        d.Name,
		Year:        d.Year,
		Description: d.Description,
	}
}

func (d UpdateTitleDTO) ApplyTo(t *models.Title) {
	if d.Name != nil {
		t.Name = *d.Name
	}
	if d.Year != nil {
		t.Year = *d.Year
	}
	if d.Description != nil {
		t.Description = d.Description
	}
}

func FromModelToTitleResponse(t models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Rating:      t.Rating,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, FromModelToGenreResponse(g))
	}
	if t.Category != nil {
		c := FromModelToCategoryResponse(*t.Category)
		resp.Category = &c
	}
	return resp
}
