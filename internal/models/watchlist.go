package models

import "time"

// Watchlist is a named custom list. Names are matched case-insensitively
// per owner; the default watchlist lives on User.Watchlist instead.
type Watchlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Name      string    `gorm:"not null" json:"name" example:"Classics"`
	Films     []Film    `gorm:"many2many:watchlist_films;" json:"films,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Watchlist) TableName() string {
	return "watchlists"
}
