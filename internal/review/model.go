// Package review reads and writes product reviews on the configured data source.
package review

import (
	"strings"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/validate"
)

var ErrNotFound = apperr.New(apperr.NotFound, "review not found")

type Review struct {
	ID           int       `json:"id"`
	ProductID    int       `json:"productId"`
	UserName     string    `json:"userName"`
	UserAvatar   string    `json:"userAvatar"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"date"`
	HelpfulVotes int       `json:"helpfulVotes"`
}

// NewReview is a review submission. The source assigns id, date and helpful votes.
type NewReview struct {
	ProductID  int    `json:"productId" validate:"gt=0"`
	Rating     int    `json:"rating" validate:"min=1,max=5"`
	Comment    string `json:"comment" validate:"required"`
	UserName   string `json:"userName" validate:"required"`
	UserAvatar string `json:"userAvatar"`
}

// check trims the text fields and validates the result.
func (n NewReview) check() (NewReview, error) {
	n.UserName = strings.TrimSpace(n.UserName)
	n.Comment = strings.TrimSpace(n.Comment)
	n.UserAvatar = strings.TrimSpace(n.UserAvatar)
	return n, validate.Struct(n)
}
