package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

const Table = "review"

const (
	FieldID           = "Id"
	FieldName         = "Name"
	FieldProductID    = "product_id"
	FieldUserName     = "user_name"
	FieldUserAvatar   = "user_avatar"
	FieldRating       = "rating"
	FieldComment      = "comment"
	FieldDate         = "date"
	FieldHelpfulVotes = "helpful_votes"
)

var Fields = []string{
	FieldName, FieldProductID, FieldUserName, FieldUserAvatar,
	FieldRating, FieldComment, FieldDate, FieldHelpfulVotes,
}

var ErrMalformedRecord = errors.New("malformed review record")

// Record is a review in external naming.
type Record struct {
	ID           *int       `json:"Id,omitempty"`
	Name         *string    `json:"Name,omitempty"`
	ProductID    *int       `json:"product_id,omitempty"`
	UserName     *string    `json:"user_name,omitempty"`
	UserAvatar   *string    `json:"user_avatar,omitempty"`
	Rating       *int       `json:"rating,omitempty"`
	Comment      *string    `json:"comment,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	HelpfulVotes *int       `json:"helpful_votes,omitempty"`
}

func malformed(format string, args ...any) error {
	return apperr.Wrap(apperr.ExternalSource, fmt.Sprintf(format, args...), ErrMalformedRecord)
}

// Normalize maps an external record to a Review.
func Normalize(r Record) (Review, error) {
	switch {
	case r.ID == nil:
		return Review{}, malformed("review record: missing %s", FieldID)
	case r.ProductID == nil:
		return Review{}, malformed("review %d: missing %s", *r.ID, FieldProductID)
	case r.Rating == nil:
		return Review{}, malformed("review %d: missing %s", *r.ID, FieldRating)
	case *r.Rating < 1 || *r.Rating > 5:
		return Review{}, malformed("review %d: %s %d out of range", *r.ID, FieldRating, *r.Rating)
	}
	rv := Review{
		ID:         *r.ID,
		ProductID:  *r.ProductID,
		UserName:   deref(r.UserName),
		UserAvatar: deref(r.UserAvatar),
		Rating:     *r.Rating,
		Comment:    deref(r.Comment),
		CreatedAt:  deref(r.Date),
	}
	if r.HelpfulVotes != nil && *r.HelpfulVotes > 0 {
		rv.HelpfulVotes = *r.HelpfulVotes
	}
	return rv, nil
}

// ToRecord renders a submission in external naming, stamped with at.
func ToRecord(n NewReview, at time.Time) Record {
	name := n.UserName + " - Review"
	zero := 0
	return Record{
		Name:         &name,
		ProductID:    &n.ProductID,
		UserName:     &n.UserName,
		UserAvatar:   &n.UserAvatar,
		Rating:       &n.Rating,
		Comment:      &n.Comment,
		Date:         &at,
		HelpfulVotes: &zero,
	}
}

func DecodeRecords(raw []byte) ([]Review, error) {
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, malformed("decode review records: %v", err)
	}
	out := make([]Review, 0, len(recs))
	for _, r := range recs {
		rv, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, nil
}

func DecodeRecord(raw []byte) (Review, error) {
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Review{}, malformed("decode review record: %v", err)
	}
	return Normalize(r)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
