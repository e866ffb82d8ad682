package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/nadscollection/storefront/internal/api/middleware"
	"github.com/nadscollection/storefront/internal/cart"
	"github.com/nadscollection/storefront/internal/catalog"
	"github.com/nadscollection/storefront/internal/events"
	"github.com/nadscollection/storefront/internal/order"
)

const suggestionCount = 4

type Handlers struct {
	catalog *catalog.Client
	orders  *order.Client
	carts   *Carts
	events  *events.Publisher
}

// NewHandlers wires the handler set. pub may be nil.
func NewHandlers(catalogClient *catalog.Client, orderClient *order.Client, carts *Carts, pub *events.Publisher) *Handlers {
	return &Handlers{
		catalog: catalogClient,
		orders:  orderClient,
		carts:   carts,
		events:  pub,
	}
}

// Catalog Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondError(w, "Failed to load products. Please try again later.", http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r.URL.Path, "/products/")
	if err != nil {
		respondError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, "Product not found", http.StatusNotFound)
			return
		}
		respondError(w, "Failed to load product. Please try again later.", http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/products/"), "/suggestions")
	id, err := strconv.Atoi(rest)
	if err != nil {
		respondError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondError(w, "Failed to load products. Please try again later.", http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, catalog.Suggest(products, suggestionCount, id))
}

func (h *Handlers) GetBanner(w http.ResponseWriter, r *http.Request) {
	position, err := pathInt(r.URL.Path, "/banner/")
	if err != nil {
		respondError(w, "invalid banner position", http.StatusBadRequest)
		return
	}

	banner, err := h.catalog.Banner(r.Context(), position)
	if err != nil {
		if errors.Is(err, catalog.ErrBannerNotFound) {
			respondError(w, "Banner not found", http.StatusNotFound)
			return
		}
		respondError(w, "Failed to load banner. Please try again later.", http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, banner)
}

// cartView is what every cart endpoint returns: the full line list plus the
// derived values clients render.
type cartView struct {
	Items   []cart.Line `json:"items"`
	Total   float64     `json:"total"`
	Count   int         `json:"count"`
	Visible bool        `json:"visible"`
}

func viewOf(store *cart.Store) cartView {
	lines := store.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Items:   lines,
		Total:   cart.Total(lines),
		Count:   cart.Count(lines),
		Visible: store.Visible(),
	}
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.For(r.Context(), middleware.GetSessionID(r.Context()))
	respondJSON(w, http.StatusOK, viewOf(store))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var line cart.Line
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if line.ID == 0 {
		respondError(w, "product id is required", http.StatusBadRequest)
		return
	}

	store := h.carts.For(r.Context(), middleware.GetSessionID(r.Context()))
	if !store.Add(r.Context(), line) {
		respondError(w, "item already in cart", http.StatusConflict)
		return
	}
	respondJSON(w, http.StatusCreated, viewOf(store))
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/cart/items/")
	if key == "" {
		respondError(w, "line key is required", http.StatusBadRequest)
		return
	}

	store := h.carts.For(r.Context(), middleware.GetSessionID(r.Context()))
	store.RemoveByKey(r.Context(), key)
	respondJSON(w, http.StatusOK, viewOf(store))
}

func (h *Handlers) RemoveProductVariants(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r.URL.Path, "/cart/products/")
	if err != nil {
		respondError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	store := h.carts.For(r.Context(), middleware.GetSessionID(r.Context()))
	store.RemoveAllVariants(r.Context(), id)
	respondJSON(w, http.StatusOK, viewOf(store))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.For(r.Context(), middleware.GetSessionID(r.Context()))
	store.Clear(r.Context())
	respondJSON(w, http.StatusOK, viewOf(store))
}

func (h *Handlers) SetCartVisibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	store := h.carts.For(r.Context(), middleware.GetSessionID(r.Context()))
	store.SetVisible(req.Visible)
	respondJSON(w, http.StatusOK, viewOf(store))
}

// Order Handlers

func (h *Handlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Contact string `json:"contact"`
		Address string `json:"address"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessionID := middleware.GetSessionID(r.Context())
	store := h.carts.For(r.Context(), sessionID)
	lines := store.Lines()
	if len(lines) == 0 {
		respondError(w, "cart is empty", http.StatusBadRequest)
		return
	}
	total := cart.Total(lines)

	err := h.orders.SubmitOrder(r.Context(), order.OrderRequest{
		Name:    req.Name,
		Email:   req.Email,
		Contact: req.Contact,
		Address: req.Address,
		Message: req.Message,
		Orders:  lines,
	})
	if err != nil {
		respondError(w, err.Error(), http.StatusBadGateway)
		return
	}

	// The order is upstream now; the cart and its durable slot go away.
	store.Clear(r.Context())
	if h.events != nil {
		h.events.ForSession(sessionID).OrderSubmitted(r.Context(), total)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Your order has been received. We'll contact you shortly.",
	})
}

func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req order.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.orders.SubmitMessage(r.Context(), req); err != nil {
		respondError(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Your message has been sent successfully. We'll contact you shortly.",
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

func pathInt(path, prefix string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(path, prefix))
}
