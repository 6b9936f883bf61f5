package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-invoice-client/internal/errors"
)

// Outcome tags the result of an authenticated call. The client never
// navigates; callers decide what an Unauthorized outcome means for them.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeUnauthorized
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeError:
		return "error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the outcome of a single request attempt
type Result struct {
	Outcome    Outcome
	StatusCode int // zero when no response was received
	Body       []byte
	Err        error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

func (r Result) Unauthorized() bool {
	return r.Outcome == OutcomeUnauthorized
}

// Decode unmarshals the response body into v
func (r Result) Decode(v any) error {
	if !r.OK() {
		return r.Err
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBadResponse, err)
	}
	return nil
}

// APIError is a non-2xx, non-401 response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

func unauthorized(statusCode int, err error) Result {
	return Result{Outcome: OutcomeUnauthorized, StatusCode: statusCode, Err: err}
}

func failed(statusCode int, err error) Result {
	return Result{Outcome: OutcomeError, StatusCode: statusCode, Err: err}
}
