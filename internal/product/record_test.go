package product

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

func TestDecodeRecord_NormalizesExternalNames(t *testing.T) {
	raw := `{"Id": 3, "Name": "Tee", "brand": "TrendWear", "category": "Kids",
		"price": 599, "discount_price": "399.50", "images": ["a.jpg", " ", "b.jpg"],
		"sizes": "S, M ,L", "colors": null, "rating": 4, "review_count": 12}`

	p, err := DecodeRecord([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "Tee", p.Name)
	assert.Equal(t, "399.5", p.DiscountPrice.String())
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
	assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)
	assert.Equal(t, []string{}, p.Colors)
	assert.Equal(t, 12, p.ReviewCount)
	assert.True(t, p.InStock, "in_stock defaults to true")
}

func TestDecodeRecord_MissingRequiredField(t *testing.T) {
	cases := map[string]string{
		FieldID:            `{"Name": "x", "price": 1, "discount_price": 1}`,
		FieldName:          `{"Id": 1, "price": 1, "discount_price": 1}`,
		FieldPrice:         `{"Id": 1, "Name": "x", "discount_price": 1}`,
		FieldDiscountPrice: `{"Id": 1, "Name": "x", "price": 1}`,
	}
	for field, raw := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := DecodeRecord([]byte(raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
			assert.True(t, apperr.Is(err, apperr.ExternalSource))
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestDecodeRecord_RatingOutOfRange(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"Id": 1, "Name": "x", "price": 1, "discount_price": 1, "rating": 7}`))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestDecodeRecords_Dataset(t *testing.T) {
	repo, err := NewStaticRepo(0)
	require.NoError(t, err)
	require.Len(t, repo.products, 16)

	shirt := repo.products[1]
	assert.Equal(t, "Slim Fit Oxford Shirt", shirt.Name)
	assert.NotEmpty(t, shirt.Sizes, "comma separated sizes are split")
	assert.False(t, repo.products[7].InStock)
	assert.Equal(t, 0, repo.products[7].DiscountPercent())
}

func TestProduct_DiscountPercentNeverNegative(t *testing.T) {
	p, err := DecodeRecord([]byte(`{"Id": 1, "Name": "x", "price": 100, "discount_price": 120}`))
	require.NoError(t, err)
	assert.Equal(t, 0, p.DiscountPercent())
	assert.Equal(t, "", p.FirstImage())
	assert.Equal(t, 0, NewView(p).DiscountPercent)
}
