package models

import (
	"time"
)

type Film struct {
	ID            uint       `gorm:"primaryKey" json:"id" example:"1"`
	IMDBID        *string    `gorm:"uniqueIndex" json:"imdb_id,omitempty" example:"tt0137523"`
	Title         string     `gorm:"not null;index" json:"title" example:"Fight Club"`
	Year          string     `json:"year" example:"1999"`
	Genres        []Genre    `gorm:"many2many:film_genres;" json:"genres,omitempty"`
	LanguageID    *uint      `gorm:"index" json:"language_id,omitempty"`
	Language      *Language  `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	PosterURL     string     `json:"poster_url"`
	ReleaseDate   *time.Time `gorm:"index" json:"release_date,omitempty"`
	Plot          string     `gorm:"type:text" json:"plot"`
	AverageRating float64    `gorm:"index" json:"average_rating" example:"8.5"`
	Views         int64      `gorm:"index" json:"views" example:"120"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Film) TableName() string {
	return "films"
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name" example:"Drama"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name" example:"English"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Language) TableName() string {
	return "languages"
}

// OMDb wire formats. The API reports success through the "Response" field
// and uses "N/A" for absent values.
type OMDBFilmResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error,omitempty"`
	IMDBID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Genre    string `json:"Genre"`
	Poster   string `json:"Poster"`
	Released string `json:"Released"`
	Plot     string `json:"Plot"`
	Language string `json:"Language"`
}

type OMDBSearchItem struct {
	IMDBID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

type OMDBSearchResponse struct {
	Response     string           `json:"Response"`
	Error        string           `json:"Error,omitempty"`
	Search       []OMDBSearchItem `json:"Search"`
	TotalResults string           `json:"totalResults"`
}
