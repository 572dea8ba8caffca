package dto

import (
	"time"

	"titlehub/internal/http-api/models"
)

// CreateCommentDTO for posting a comment. Author and review come from the
// request context, never from the payload.
type CreateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentDTO for PATCH
type UpdateCommentDTO struct {
	Text *string `json:"text,omitempty"`
}

// CommentResponse exposes the author as a username; id, author and pub_date
// are read-only.
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func (d UpdateCommentDTO) ApplyTo(c *models.Comment) {
	if d.Text != nil {
		c.Text = *d.Text
	}
}

func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author.Username,
		PubDate: c.CreatedAt,
	}
}
