package dto

import (
	"time"

	"titlehub/internal/http-api/models"
)

// CreateReviewDTO for posting a review. Author and title come from the
// request context, never from the payload.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO for PATCH (partial updates allowed)
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse exposes the author as a username; id, author and pub_date
// are read-only.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func (d UpdateReviewDTO) ApplyTo(r *models.Review) {
	if d.Text != nil {
		r.Text = *d.Text
	}
	if d.Score != nil {
		r.Score = *d.Score
	}
}

func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.CreatedAt,
	}
}
