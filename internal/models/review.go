package models

import "time"

// Vote values stored in review_votes. A user has at most one vote per
// review, so liker and disliker sets are mutually exclusive by construction.
const (
	VoteLike    = 1
	VoteDislike = -1
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	FilmID    uint      `gorm:"index;not null" json:"film_id"`
	Film      *Film     `gorm:"foreignKey:FilmID" json:"film,omitempty"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    float64   `gorm:"not null" json:"rating" example:"8.5"`
	Text      string    `gorm:"type:text" json:"text"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Dislikes  int       `gorm:"not null;default:0" json:"dislikes"`
	Spoiler   bool      `gorm:"not null;default:false" json:"spoiler"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

type ReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"uniqueIndex:idx_review_votes_review_user;not null" json:"review_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_review_votes_review_user;not null" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReviewVote) TableName() string {
	return "review_votes"
}
