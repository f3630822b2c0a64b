package models

import "time"

const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

// Moderation actions accepted by the admin report handler.
const (
	ReportActionMarkSpoiler = "mark_spoiler"
	ReportActionDelete      = "delete"
)

type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id" example:"1"`
	ReviewID   uint      `gorm:"uniqueIndex:idx_reports_review_reporter;not null" json:"review_id"`
	ReporterID uint      `gorm:"uniqueIndex:idx_reports_review_reporter;not null" json:"reporter_id"`
	Reason     string    `gorm:"type:text" json:"reason"`
	Status     string    `gorm:"not null;default:pending;index" json:"status" example:"pending"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}

// ReportDetail is the admin triage view of a pending report with its review,
// film, and reporter resolved.
type ReportDetail struct {
	ReportID         uint      `json:"report_id"`
	ReviewID         uint      `json:"review_id"`
	ReviewText       string    `json:"review_text"`
	FilmTitle        string    `json:"film_title"`
	ReporterUsername string    `json:"reporter_username"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"created_at"`
}
