package models

import "time"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Text      string    `json:"text" gorm:"not null;type:text"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;index"`
	ReviewID  int64     `json:"review_id" gorm:"not null;index"`
	TitleID   *int64    `json:"title_id,omitempty" gorm:"index"` // denormalized for lookups by title
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Review Review `json:"review,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
