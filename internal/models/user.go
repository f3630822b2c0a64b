package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id" example:"1"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username" example:"alice"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email" example:"alice@example.com"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role" example:"user"`
	Bio          string    `gorm:"type:text" json:"bio"`
	ProfilePic   string    `json:"profile_pic"`
	Watchlist    []Film    `gorm:"many2many:user_watchlist_films;" json:"watchlist,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
