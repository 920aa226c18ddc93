package product

import (
	"errors"
	"fmt"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

var (
	ErrNotFound        = apperr.New(apperr.NotFound, "product not found")
	ErrMalformedRecord = errors.New("malformed product record")
	ErrSuperseded      = errors.New("listing superseded by a newer request")
)

func malformed(format string, args ...any) error {
	return apperr.Wrap(apperr.ExternalSource, fmt.Sprintf(format, args...), ErrMalformedRecord)
}
