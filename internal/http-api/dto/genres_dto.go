package dto

import "titlehub/internal/http-api/models"

// CreateGenreDTO used for POST /v1/genres
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=200"`
	Slug string `json:"slug" binding:"required,max=100"`
}

// GenreResponse excludes the internal id; genres are addressed by slug
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreateGenreDTO) ToModel() models.Genre {
	return models.Genre{Name: d.Name, Slug: d.Slug}
}

func FromModelToGenreResponse(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
