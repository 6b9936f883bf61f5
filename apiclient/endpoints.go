package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// Login posts credentials. A response body that is not JSON decodes to an
// empty AuthResponse, which callers treat as invalid credentials.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	return c.authenticate(ctx, PathLogin, creds)
}

// Register creates an account and returns its token
func (c *Client) Register(ctx context.Context, reg Registration) (AuthResponse, error) {
	return c.authenticate(ctx, PathRegister, reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (AuthResponse, error) {
	res := c.DoAnonymous(ctx, http.MethodPost, path, body)
	if res.Err != nil {
		return AuthResponse{}, res.Err
	}

	var ar AuthResponse
	_ = json.Unmarshal(res.Body, &ar)
	return ar, nil
}

// ListProducts fetches the caller's products
func (c *Client) ListProducts(ctx context.Context) ([]RemoteProduct, Result) {
	res := c.Do(ctx, http.MethodGet, PathProducts, nil)
	if !res.OK() {
		return nil, res
	}

	var products []RemoteProduct
	if err := res.Decode(&products); err != nil {
		return nil, failed(res.StatusCode, err)
	}
	return products, res
}

// CreateProduct stores a new product. The API does not echo the created record.
func (c *Client) CreateProduct(ctx context.Context, p NewProduct) Result {
	return c.Do(ctx, http.MethodPost, PathProducts, p)
}

// GenerateInvoice returns the rendered PDF for the caller's products
func (c *Client) GenerateInvoice(ctx context.Context) ([]byte, Result) {
	res := c.Do(ctx, http.MethodGet, PathGenerateInvoice, nil)
	if !res.OK() {
		return nil, res
	}
	return res.Body, res
}
