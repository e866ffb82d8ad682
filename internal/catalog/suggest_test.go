package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nadscollection/storefront/internal/cart"
)

func products(ids ...int) []cart.Line {
	out := make([]cart.Line, 0, len(ids))
	for _, id := range ids {
		out = append(out, cart.Line{ID: cart.FlexInt(id)})
	}
	return out
}

func TestSuggest_ExcludesViewedProduct(t *testing.T) {
	pool := products(1, 2, 3, 4, 5)

	for i := 0; i < 20; i++ {
		for _, p := range Suggest(pool, 4, 3) {
			assert.NotEqual(t, cart.FlexInt(3), p.ID)
		}
	}
}

func TestSuggest_ReturnsRequestedCount(t *testing.T) {
	assert.Len(t, Suggest(products(1, 2, 3, 4, 5, 6), 4, 1), 4)
}

func TestSuggest_SmallPoolReturnsAll(t *testing.T) {
	assert.Len(t, Suggest(products(1, 2), 4, 99), 2)
}

func TestSuggest_EmptyPool(t *testing.T) {
	assert.Empty(t, Suggest(nil, 4, 1))
	assert.Empty(t, Suggest(products(3), 4, 3))
}

func TestSuggest_DoesNotMutateInput(t *testing.T) {
	pool := products(1, 2, 3, 4)

	Suggest(pool, 2, 0)

	assert.Equal(t, products(1, 2, 3, 4), pool)
}
