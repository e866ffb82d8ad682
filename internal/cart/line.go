package cart

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// DefaultSizeLabel is assigned to a line whenever no size was selected.
const DefaultSizeLabel = "Medium"

// FlexInt decodes from either a JSON number or a numeric string. Upstream
// payloads and older stored carts encode numeric fields inconsistently, so
// every decode boundary coerces. Unparsable values coerce to zero.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	v, err := strconv.Atoi(string(unquote(data)))
	if err != nil {
		// Try float ("7.0") before giving up.
		if f, ferr := strconv.ParseFloat(string(unquote(data)), 64); ferr == nil {
			*n = FlexInt(int(f))
			return nil
		}
		*n = 0
		return nil
	}
	*n = FlexInt(v)
	return nil
}

// FlexFloat decodes from either a JSON number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(unquote(data)), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func unquote(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return data[1 : len(data)-1]
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return data
}

// SizeList decodes from a JSON array of labels or from a JSON-encoded string
// holding such an array. Some catalog rows store sizes as a serialized
// string; a string that does not parse becomes a single-element list.
type SizeList []string

func (s *SizeList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var labels []string
		if err := json.Unmarshal(data, &labels); err != nil {
			return err
		}
		*s = labels
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		*s = SizeList{raw}
		return nil
	}
	*s = labels
	return nil
}

// Category is the optional catalog grouping attached to a product snapshot.
type Category struct {
	ID   FlexInt `json:"id"`
	Name string  `json:"name"`
}

// Line is one (product, size) entry in the shopping cart. It carries a
// denormalized snapshot of the product taken at add time; the cart never
// revalidates these fields against the catalog. The same shape is what the
// upstream catalog endpoints return, so catalog results decode into it
// directly.
type Line struct {
	ID           FlexInt   `json:"id"`
	Title        string    `json:"title"`
	CategoryID   FlexInt   `json:"category_id"`
	Price        FlexFloat `json:"price"`
	Stock        FlexInt   `json:"stock"`
	Image        string    `json:"image,omitempty"`
	Category     *Category `json:"category,omitempty"`
	Sizes        SizeList  `json:"sizes,omitempty"`
	SelectedSize string    `json:"selectedSize,omitempty"`
	CartID       string    `json:"cartId,omitempty"`
}

// LineKey derives the unique identity of a cart line from the product ID and
// the selected size. An empty size normalizes to the default.
func LineKey(productID int, selectedSize string) string {
	if selectedSize == "" {
		selectedSize = DefaultSizeLabel
	}
	return strconv.Itoa(productID) + "-" + selectedSize
}

// Key returns the line's identity, deriving it when unset.
func (l Line) Key() string {
	if l.CartID != "" {
		return l.CartID
	}
	return LineKey(int(l.ID), l.SelectedSize)
}

// Normalize defaults the selected size and backfills the derived cart ID.
// Older stored carts predate the cartId field, so hydration runs every line
// through this.
func Normalize(l Line) Line {
	if l.SelectedSize == "" {
		l.SelectedSize = DefaultSizeLabel
	}
	if l.CartID == "" {
		l.CartID = LineKey(int(l.ID), l.SelectedSize)
	}
	return l
}

// DefaultSize picks the size to preselect for a product: Medium when the
// product lists no sizes or includes Medium, otherwise the first listed size.
func DefaultSize(sizes []string) string {
	if len(sizes) == 0 {
		return DefaultSizeLabel
	}
	for _, s := range sizes {
		if s == DefaultSizeLabel {
			return DefaultSizeLabel
		}
	}
	return sizes[0]
}
