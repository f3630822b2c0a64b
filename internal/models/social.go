package models

import "time"

// Follow is a directed edge: presence means follower follows following.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"uniqueIndex:idx_follows_pair;not null" json:"follower_id"`
	FollowingID uint      `gorm:"uniqueIndex:idx_follows_pair;not null" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

// FeedReview is a recent review joined with its author and the viewer's
// follow relationship to that author.
type FeedReview struct {
	Review      Review `json:"review"`
	Author      User   `json:"author"`
	IsFollowing bool   `json:"is_following"`
}

// Feed is the per-request "for you" page payload.
type Feed struct {
	Highlight        *Film             `json:"highlight,omitempty"`
	Trending         []Film            `json:"trending"`
	RecentReviews    []FeedReview      `json:"recent_reviews"`
	GenreWatchlist   map[string][]Film `json:"genre_watchlist"`
	CustomWatchlists []Watchlist       `json:"custom_watchlists"`
}

// Home is the public landing page payload for anonymous visitors.
type Home struct {
	Popular        []Film    `json:"popular"`
	NewReleases    []Film    `json:"new_releases"`
	RecentArticles []Article `json:"recent_articles"`
}

// UserPage is the public profile payload.
type UserPage struct {
	User           User     `json:"user"`
	Reviews        []Review `json:"reviews"`
	FollowersCount int64    `json:"followers_count"`
	FollowingCount int64    `json:"following_count"`
	IsFollowing    bool     `json:"is_following"`
}

// DashboardStats backs the admin dashboard counters.
type DashboardStats struct {
	FilmCount          int64 `json:"film_count" example:"100"`
	ReviewCount        int64 `json:"review_count" example:"420"`
	UserCount          int64 `json:"user_count" example:"37"`
	ArticleCount       int64 `json:"article_count" example:"12"`
	PendingReportCount int64 `json:"pending_report_count" example:"3"`
}
