package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Bio        string `json:"bio" validate:"max=2000"`
	ProfilePic string `json:"profile_pic"`
}

type ImportFilmRequest struct {
	IMDBID string `json:"imdb_id" validate:"required"`
}

type SubmitReviewRequest struct {
	Rating float64 `json:"rating" validate:"required"`
	Text   string  `json:"text" validate:"max=10000"`
}

type ReportReviewRequest struct {
	Reason string `json:"reason"`
}

type CustomWatchlistRequest struct {
	Name string `json:"name"`
}

type HandleReportRequest struct {
	ReportID uint   `json:"report_id" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=mark_spoiler delete"`
}

type ArticleRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Content       string `json:"content" validate:"required"`
	Tags          string `json:"tags"`
	FeaturedImage string `json:"featured_image"`
}

// validationMessage renders the first failed field as a user-visible
// message.
func validationMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "email":
			return fmt.Sprintf("%s must be a valid email address", fe.Field())
		case "min":
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		case "max":
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		case "oneof":
			return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
		default:
			return fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return err.Error()
}
