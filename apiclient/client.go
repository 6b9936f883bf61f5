package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-invoice-client/internal/errors"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// Client issues requests to the remote API. Authenticated calls read the
// bearer token from the session store on every request, so a login or a
// cleared session takes effect immediately. Each call is a single attempt.
type Client struct {
	baseURL    string
	session    sessions.Store
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying http client (primarily for testing)
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. The timeout is applied to a copy
// so a client passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, session sessions.Store, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[apiclient New] baseURL is required")
	}
	if session == nil {
		return nil, errors.New("[apiclient New] session store is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends an authenticated request.
//   - No token: returns OutcomeUnauthorized without touching the network.
//   - 401: clears the session and returns OutcomeUnauthorized.
//   - Other non-2xx or transport failure: OutcomeError.
func (c *Client) Do(ctx context.Context, method, path string, body any) Result {
	token, ok := c.session.GetToken()
	if !ok {
		log.Debug().Str("method", method).Str("path", path).Msg("no session token, request not sent")
		return unauthorized(0, apperrors.ErrNoToken)
	}

	hc := &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}

	res := c.send(ctx, hc, method, path, body)
	if res.StatusCode == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			log.Err(err).Msg("failed to clear session after 401")
		}
		return unauthorized(res.StatusCode, apperrors.Wrapf(apperrors.ErrUnauthorized, "%s %s", method, path))
	}
	return res
}

// DoAnonymous sends a request without credentials. The body of a non-2xx
// response is still returned so callers can read an error payload; only
// transport failures, including a body cut short, are reported as OutcomeError.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body any) Result {
	res := c.send(ctx, c.httpClient, method, path, body)
	var apiErr *APIError
	if apperrors.As(res.Err, &apiErr) {
		res.Outcome = OutcomeOK
		res.Err = nil
	}
	return res
}

func (c *Client) send(ctx context.Context, hc *http.Client, method, path string, body any) Result {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return failed(0, errors.Wrap(err, "failed to encode request body"))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return failed(0, errors.Wrap(err, "failed to build request"))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return failed(0, fmt.Errorf("%w: %v", apperrors.ErrTransport, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed(resp.StatusCode, fmt.Errorf("%w: reading body: %v", apperrors.ErrTransport, err))
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Outcome:    OutcomeError,
			StatusCode: resp.StatusCode,
			Body:       data,
			Err:        &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)},
		}
	}
	return Result{Outcome: OutcomeOK, StatusCode: resp.StatusCode, Body: data}
}

func errorMessage(body []byte) string {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return er.Error
	}
	return ""
}
