package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nadscollection/storefront/internal/cart"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBannerNotFound  = errors.New("banner not found")
)

// DefaultSizes is assumed for catalog rows that list no sizes.
var DefaultSizes = []string{"Small", "Medium", "Large"}

// Client talks to the remote retail API. Calls are single request-response
// cycles with no retry; a failure surfaces as an error for the caller to
// render.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// listEnvelope tolerates both shapes the list endpoint has been seen to
// return: {"products": {"data": [...]}} and {"products": [...]}.
type listEnvelope struct {
	Products json.RawMessage `json:"products"`
}

// List fetches the full catalog, normalizing numeric fields and defaulting
// absent size lists.
func (c *Client) List(ctx context.Context) ([]cart.Line, error) {
	var env listEnvelope
	if err := c.getJSON(ctx, "/api/list", &env); err != nil {
		return nil, err
	}

	var products []cart.Line
	if len(env.Products) > 0 {
		var paged struct {
			Data []cart.Line `json:"data"`
		}
		if err := json.Unmarshal(env.Products, &paged); err == nil && paged.Data != nil {
			products = paged.Data
		} else if err := json.Unmarshal(env.Products, &products); err != nil {
			return nil, fmt.Errorf("unexpected product list payload: %w", err)
		}
	}

	for i := range products {
		if len(products[i].Sizes) == 0 {
			products[i].Sizes = DefaultSizes
		}
	}
	return products, nil
}

// Get fetches one product. The detail endpoint wraps the product in a
// {"product": {...}} envelope or returns it bare.
func (c *Client) Get(ctx context.Context, id int) (cart.Line, error) {
	var env struct {
		Product *cart.Line `json:"product"`
		cart.Line
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/products/%d", id), &env); err != nil {
		return cart.Line{}, err
	}

	p := env.Line
	if env.Product != nil {
		p = *env.Product
	}
	if int(p.ID) == 0 {
		return cart.Line{}, ErrProductNotFound
	}
	if len(p.Sizes) == 0 {
		p.Sizes = DefaultSizes
	}
	return p, nil
}

// Banner is a promotional collection slot, addressed by position.
type Banner struct {
	Position  cart.FlexInt   `json:"position"`
	ImageURL  string         `json:"image_url"`
	ImagePath string         `json:"image_path"`
	Price     cart.FlexFloat `json:"price,omitempty"`
	Sizes     cart.SizeList  `json:"sizes,omitempty"`
}

// Banner fetches the banner at a position.
func (c *Client) Banner(ctx context.Context, position int) (Banner, error) {
	var env struct {
		Success bool   `json:"success"`
		Data    Banner `json:"data"`
		Message string `json:"message,omitempty"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/banner/%d", position), &env); err != nil {
		return Banner{}, err
	}
	if !env.Success {
		return Banner{}, ErrBannerNotFound
	}
	return env.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
