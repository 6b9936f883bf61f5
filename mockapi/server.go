package mockapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-invoice-client/apiclient"
	"github.com/jrsteele09/go-invoice-client/internal/config"
	"github.com/rs/zerolog/log"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users    UserRepo
	Products ProductRepo
}

// Server is a local stand-in for the remote invoice API
type Server struct {
	env    string
	router *mux.Router
	routes []string
	repos  Repos
	tokens *TokenIssuer
}

// ServerOption defines a function type to modify the Server instance.
type ServerOption func(*Server)

// WithRepos replaces the in-memory repositories
func WithRepos(repos Repos) ServerOption {
	return func(s *Server) {
		s.repos = repos
	}
}

func New(cfg config.Config, options ...ServerOption) *Server {
	s := &Server{
		env:    cfg.GetEnv(),
		router: mux.NewRouter(),
		repos: Repos{
			Users:    NewInMemoryUserRepo(),
			Products: NewInMemoryProductRepo(),
		},
		tokens: NewTokenIssuer(cfg.GetJWTSecret(), cfg.GetTokenExpiry()),
	}
	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(method, path string, handler http.HandlerFunc) {
	s.routes = append(s.routes, method+" "+path)
	s.router.HandleFunc(path, handler).Methods(method)
}

func (s *Server) initRoutes() {
	mw := []func(http.HandlerFunc) http.HandlerFunc{s.LoggingMiddleware, s.RecoverMiddleware}
	authed := append(mw[:len(mw):len(mw)], s.RequireAuth)

	s.RegisterRouteFunc(http.MethodPost, apiclient.PathLogin, ChainMiddleware(s.LoginHandler(), mw...))
	s.RegisterRouteFunc(http.MethodPost, apiclient.PathRegister, ChainMiddleware(s.RegisterHandler(), mw...))
	s.RegisterRouteFunc(http.MethodGet, apiclient.PathProducts, ChainMiddleware(s.ListProductsHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPost, apiclient.PathProducts, ChainMiddleware(s.CreateProductHandler(), authed...))
	s.RegisterRouteFunc(http.MethodGet, apiclient.PathGenerateInvoice, ChainMiddleware(s.GenerateInvoiceHandler(), authed...))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		logRoute(parts[0], parts[1])
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
