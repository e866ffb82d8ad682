package catalog

import (
	"math/rand"

	"github.com/nadscollection/storefront/internal/cart"
)

// Suggest picks up to n random products, excluding the one being viewed.
// Order is random; the caller renders them as-is.
func Suggest(products []cart.Line, n, excludeID int) []cart.Line {
	pool := make([]cart.Line, 0, len(products))
	for _, p := range products {
		if int(p.ID) != excludeID {
			pool = append(pool, p)
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
