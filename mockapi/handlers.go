package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	"github.com/jrsteele09/go-invoice-client/forms"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiclient.ErrorResponse{Error: message})
}

// LoginHandler checks the credentials and returns a token (POST /api/login)
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds apiclient.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := s.repos.Users.GetByEmail(strings.TrimSpace(creds.Email))
		if err != nil || !CheckPasswordHash(creds.Password, user.PasswordHash) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		s.respondWithToken(w, http.StatusOK, user)
	}
}

// RegisterHandler creates a user and returns a token (POST /api/register)
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg apiclient.Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := (forms.RegisterForm{Name: reg.Name, Email: reg.Email, Password: reg.Password}).Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		hash, err := HashPassword(reg.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := &User{
			Name:         strings.TrimSpace(reg.Name),
			Email:        strings.TrimSpace(reg.Email),
			PasswordHash: hash,
		}
		if err := s.repos.Users.Create(user); err != nil {
			if errors.Is(err, ErrUserExists) {
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		s.respondWithToken(w, http.StatusCreated, user)
	}
}

func (s *Server) respondWithToken(w http.ResponseWriter, status int, user *User) {
	token, err := s.tokens.Create(user)
	if err != nil {
		log.Err(err).Str("user", user.ID).Msg("failed to create token")
		writeError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}
	writeJSON(w, status, apiclient.AuthResponse{Token: token})
}

// ListProductsHandler returns the caller's products (GET /api/products)
func (s *Server) ListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.repos.Products.List(userIDFromContext(r.Context())))
	}
}

// CreateProductHandler stores a product for the caller (POST /api/products)
func (s *Server) CreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var np apiclient.NewProduct
		if err := json.NewDecoder(r.Body).Decode(&np); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(np.ProductName) == "" {
			writeError(w, http.StatusBadRequest, "productname is required")
			return
		}

		rp := s.repos.Products.Add(userIDFromContext(r.Context()), np)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Product added", "_id": rp.ID})
	}
}

// GenerateInvoiceHandler renders the caller's products as a PDF (GET /api/generate-invoice)
func (s *Server) GenerateInvoiceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r.Context())
		user, err := s.repos.Users.GetByID(userID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unknown user")
			return
		}

		pdf, err := RenderInvoice(user, s.repos.Products.List(userID), NowTimeFunc())
		if err != nil {
			log.Err(err).Str("userId", userID).Msg("failed to render invoice")
			writeError(w, http.StatusInternalServerError, "Failed to render invoice")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="invoice.pdf"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdf); err != nil {
			log.Err(err).Msg("failed to write invoice")
		}
	}
}
