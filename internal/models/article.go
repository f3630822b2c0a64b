package models

import "time"

type Article struct {
	ID            uint      `gorm:"primaryKey" json:"id" example:"1"`
	Title         string    `gorm:"not null;index" json:"title" example:"Ten essential noirs"`
	Content       string    `gorm:"type:text" json:"content"`
	AuthorID      uint      `gorm:"index;not null" json:"author_id"`
	Author        *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags          []string  `gorm:"serializer:json" json:"tags"`
	Views         int64     `gorm:"index" json:"views"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}

// ArticleDetail resolves the author and the most recent other articles.
type ArticleDetail struct {
	Article        Article   `json:"article"`
	AuthorUsername string    `json:"author_username"`
	AuthorPic      string    `json:"author_pic,omitempty"`
	Related        []Article `json:"related"`
}
