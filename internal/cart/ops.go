package cart

// Pure operations over an explicit line list. Each returns the next list
// without mutating its input; callers decide what to do with the result.
// Insertion order is preserved and is what clients render.

// Add appends a normalized line unless a line with the same key already
// exists. The bool reports whether the line was added; a duplicate leaves
// the cart untouched. This is the single place line-key uniqueness is
// enforced.
func Add(lines []Line, l Line) ([]Line, bool) {
	l = Normalize(l)
	for _, existing := range lines {
		if existing.Key() == l.CartID {
			return lines, false
		}
	}
	next := make([]Line, 0, len(lines)+1)
	next = append(next, lines...)
	next = append(next, l)
	return next, true
}

// RemoveByKey returns the list without the line matching key. Removing an
// absent key is a no-op.
func RemoveByKey(lines []Line, key string) []Line {
	next := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Key() != key {
			next = append(next, l)
		}
	}
	return next
}

// RemoveLine removes the line with the same identity as l.
func RemoveLine(lines []Line, l Line) []Line {
	return RemoveByKey(lines, l.Key())
}

// RemoveAllVariants removes every size variant of a product.
func RemoveAllVariants(lines []Line, productID int) []Line {
	next := make([]Line, 0, len(lines))
	for _, l := range lines {
		if int(l.ID) != productID {
			next = append(next, l)
		}
	}
	return next
}

// Total sums line prices. Missing or unparsable prices already coerced to
// zero at decode time, so this is a plain fold.
func Total(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += float64(l.Price)
	}
	return sum
}

// Count reports the number of lines. Lines carry no quantity; a duplicate
// add is rejected rather than incremented.
func Count(lines []Line) int {
	return len(lines)
}

// Find looks up the line for a product in a given size.
func Find(lines []Line, productID int, selectedSize string) (Line, bool) {
	key := LineKey(productID, selectedSize)
	for _, l := range lines {
		if l.Key() == key {
			return l, true
		}
	}
	return Line{}, false
}

// Variants returns every line for a product across all sizes.
func Variants(lines []Line, productID int) []Line {
	var out []Line
	for _, l := range lines {
		if int(l.ID) == productID {
			out = append(out, l)
		}
	}
	return out
}
