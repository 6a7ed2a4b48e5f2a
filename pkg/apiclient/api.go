package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Cart quantity bounds, mirrored from the server so obviously bad requests
// fail before a round trip
const (
	MinQuantity = 1
	MaxQuantity = 99
)

var ErrQuantityOutOfRange = errors.New("quantity must be between 1 and 99")

type authResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ==================== Auth ====================

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.SetTokens(resp.AccessToken, resp.RefreshToken)
	return &resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.SetTokens(resp.AccessToken, resp.RefreshToken)
	return &resp.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	c.mu.RLock()
	refreshToken := c.refreshToken
	c.mu.RUnlock()

	err := c.do(ctx, http.MethodPost, "/api/auth/logout", map[string]string{"refresh_token": refreshToken}, nil)
	c.ClearTokens()
	return err
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ==================== Storefront ====================

func (c *Client) Products(ctx context.Context, page, limit int, search string, categoryID *uint) (*ProductList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if search != "" {
		query.Set("search", search)
	}
	if categoryID != nil {
		query.Set("category_id", strconv.FormatUint(uint64(*categoryID), 10))
	}

	var resp ProductList
	if err := c.do(ctx, http.MethodGet, "/api/products?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Product(ctx context.Context, id uint) (*Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) Reviews(ctx context.Context, page, limit int) (*ReviewList, error) {
	path := fmt.Sprintf("/api/reviews?page=%d&limit=%d", page, limit)
	var resp ReviewList
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ==================== Cart ====================

func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, req AddItemRequest) (*Cart, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < MinQuantity || req.Quantity > MaxQuantity {
		return nil, ErrQuantityOutOfRange
	}

	var cart Cart
	if err := c.do(ctx, http.MethodPost, "/api/cart/items", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID uint, quantity int) (*Cart, error) {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return nil, ErrQuantityOutOfRange
	}

	var cart Cart
	path := fmt.Sprintf("/api/cart/items/%d", itemID)
	if err := c.do(ctx, http.MethodPut, path, map[string]int{"quantity": quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID uint) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", itemID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) ClearCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodDelete, "/api/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ApplyDiscount applies a code to the cart, replacing any current one
func (c *Client) ApplyDiscount(ctx context.Context, code string) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodPost, "/api/cart/discount", map[string]string{"code": code}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveDiscount(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodDelete, "/api/cart/discount", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ==================== Orders ====================

type orderResponse struct {
	Order       Order  `json:"order"`
	StatusLabel string `json:"status_label"`
}

// Checkout places the order from the current cart. For guests the returned
// order carries the public hash for later lookup.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) Orders(ctx context.Context, page, limit int) (*OrderList, error) {
	path := fmt.Sprintf("/api/orders?page=%d&limit=%d", page, limit)
	var resp OrderList
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Order(ctx context.Context, id uint) (*Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// OrderByHash fetches a guest order; the hash is the only credential needed
func (c *Client) OrderByHash(ctx context.Context, hash string) (*Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders/hash/"+url.PathEscape(hash), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}
