package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nadscollection/storefront/internal/cart"
)

// OrderRequest is the outbound order submission body. The upstream contact
// endpoint accepts the customer details plus the full cart snapshot.
type OrderRequest struct {
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Contact string      `json:"contact"`
	Address string      `json:"address,omitempty"`
	Message string      `json:"message"`
	Orders  []cart.Line `json:"orders"`
}

// MessageRequest is the outbound contact-form body.
type MessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Client submits orders and contact messages to the remote retail API.
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

// SubmitOrder posts the order. On success the caller is responsible for
// clearing the cart.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) error {
	if req.Orders == nil {
		req.Orders = []cart.Line{}
	}
	return c.postJSON(ctx, "/api/contact", req)
}

// SubmitMessage posts a contact-form message.
func (c *Client) SubmitMessage(ctx context.Context, req MessageRequest) error {
	return c.postJSON(ctx, "/api/message", req)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The upstream reports failures as {"message": "..."}.
		var upstream struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&upstream); err == nil && upstream.Message != "" {
			return fmt.Errorf("upstream rejected submission: %s", upstream.Message)
		}
		return fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, path)
	}
	return nil
}
