package apiclient

// Credentials is the body of POST /api/login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /api/register
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register. A response without a token
// is a failed attempt whatever the error text says.
type AuthResponse struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

// RemoteProduct is a product record as the API stores it
type RemoteProduct struct {
	ProductName string  `json:"productname"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	ID          string  `json:"_id"`
}

// NewProduct is the body of POST /api/products
type NewProduct struct {
	ProductName string  `json:"productname"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
}

// ErrorResponse is the JSON error body the API sends with non-2xx statuses
type ErrorResponse struct {
	Error string `json:"error"`
}
