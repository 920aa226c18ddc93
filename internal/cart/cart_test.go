package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/stylehub-storefront/internal/kvstore"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
)

func item(id int, price int64) product.Product {
	return product.Product{
		ID: id, Name: "Item", Brand: "StyleHub",
		Price: decimal.NewFromInt(price * 2), DiscountPrice: decimal.NewFromInt(price),
		Images: []string{"front.jpg", "back.jpg"},
	}
}

func open(t *testing.T, kv kvstore.Store) *Store {
	t.Helper()
	s, err := Open(kv, Key)
	require.NoError(t, err)
	return s
}

func TestCart_EndToEnd(t *testing.T) {
	s := open(t, kvstore.NewMemory())
	p := item(7, 500)

	require.NoError(t, s.Add(p, "M", "Red", 1))
	assert.True(t, s.Total().Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, s.Count())

	require.NoError(t, s.UpdateQuantity(7, "M", "Red", 3))
	assert.True(t, s.Total().Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 3, s.Count())

	require.NoError(t, s.Remove(7, "M", "Red"))
	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 0, s.Count())
}

func TestCart_AddMergesOnCompositeKey(t *testing.T) {
	s := open(t, kvstore.NewMemory())
	p := item(1, 100)

	require.NoError(t, s.Add(p, "S", "Blue", 1))
	require.NoError(t, s.Add(p, "S", "Blue", 2))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 3, s.Items()[0].Quantity)

	require.NoError(t, s.Add(p, "M", "Blue", 1))
	require.NoError(t, s.Add(p, "S", "Green", 1))
	assert.Len(t, s.Items(), 3)
}

func TestCart_SnapshotsProductAtAdd(t *testing.T) {
	s := open(t, kvstore.NewMemory())
	p := item(1, 100)
	require.NoError(t, s.Add(p, "S", "Blue", 1))

	p.DiscountPrice = decimal.NewFromInt(10)
	require.NoError(t, s.Add(p, "S", "Blue", 1))

	li := s.Items()[0]
	assert.True(t, li.Price.Equal(decimal.NewFromInt(100)), "unit price is not repriced")
	assert.Equal(t, "front.jpg", li.Image)
	assert.Equal(t, "StyleHub", li.Brand)

	noImages := item(2, 50)
	noImages.Images = nil
	require.NoError(t, s.Add(noImages, "", "", 1))
	assert.Equal(t, "", s.Items()[1].Image)
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	s := open(t, kvstore.NewMemory())
	assert.ErrorIs(t, s.Add(item(1, 100), "M", "Red", 0), ErrInvalidQuantity)
	assert.Empty(t, s.Items())

	require.NoError(t, s.Add(item(1, 100), "L", "Red", 1))
	assert.ErrorIs(t, s.Add(item(1, 100), "L", "Red", -3), ErrInvalidQuantity)
	assert.Equal(t, 1, s.Count())
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, "100", s.Total().String())
}

func TestCart_UpdateQuantity(t *testing.T) {
	for _, q := range []int{0, -1, -10} {
		s := open(t, kvstore.NewMemory())
		require.NoError(t, s.Add(item(1, 100), "S", "Blue", 2))
		require.NoError(t, s.UpdateQuantity(1, "S", "Blue", q))
		assert.Empty(t, s.Items(), "quantity %d removes the line", q)
	}

	s := open(t, kvstore.NewMemory())
	require.NoError(t, s.Add(item(1, 100), "S", "Blue", 2))
	require.NoError(t, s.UpdateQuantity(9, "S", "Blue", 5))
	require.NoError(t, s.Remove(9, "S", "Blue"))
	assert.Equal(t, 2, s.Count(), "unknown keys are no-ops")
}

func TestCart_TotalsIgnoreInsertionOrder(t *testing.T) {
	a, b := open(t, kvstore.NewMemory()), open(t, kvstore.NewMemory())
	assert.True(t, a.Total().IsZero())
	assert.Equal(t, 0, a.Count())

	require.NoError(t, a.Add(item(1, 100), "S", "", 2))
	require.NoError(t, a.Add(item(2, 250), "M", "", 1))
	require.NoError(t, b.Add(item(2, 250), "M", "", 1))
	require.NoError(t, b.Add(item(1, 100), "S", "", 2))

	assert.True(t, a.Total().Equal(b.Total()))
	assert.Equal(t, a.Count(), b.Count())
	assert.Equal(t, "450", a.Total().String())
}

func TestCart_PersistsAcrossOpen(t *testing.T) {
	kv := kvstore.NewMemory()
	s := open(t, kv)
	require.NoError(t, s.Add(item(3, 399), "L", "Black", 2))

	again := open(t, kv)
	require.Len(t, again.Items(), 1)
	assert.Equal(t, 2, again.Count())
	assert.True(t, again.Total().Equal(decimal.NewFromInt(798)))

	require.NoError(t, again.Clear())
	assert.Empty(t, open(t, kv).Items())
}

func TestCart_CorruptStateStartsEmpty(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(Key, "{not json"))

	s := open(t, kv)
	assert.Empty(t, s.Items())
	require.NoError(t, s.Add(item(1, 10), "", "", 1))
	assert.Len(t, open(t, kv).Items(), 1)
}

func TestCart_SaveFailureIsReturned(t *testing.T) {
	kv := kvstore.NewMemory()
	s := open(t, kv)
	require.NoError(t, kv.Close())

	assert.ErrorIs(t, s.Add(item(1, 10), "", "", 1), kvstore.ErrClosed)
}

func TestCart_ConcurrentAdds(t *testing.T) {
	s := open(t, kvstore.NewMemory())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Add(item(1, 10), "M", "Red", 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.Count())
	assert.Len(t, s.Items(), 1)
}
