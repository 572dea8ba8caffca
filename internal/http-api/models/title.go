package models

import "time"

type Title struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"not null;size:200"`
	Year        int        `json:"year" gorm:"not null;index"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	CategoryID  *int64     `json:"category_id,omitempty" gorm:"index"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// Rating is annotated at query time as the average review score.
	// It is never stored; the column is excluded from migration.
	Rating *float64 `json:"rating,omitempty" gorm:"->;-:migration"`

	// associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
