package forms

import (
	"context"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	apperrors "github.com/jrsteele09/go-invoice-client/internal/errors"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/jrsteele09/go-invoice-client/status"
	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Authenticator is the part of the API client the forms need
type Authenticator interface {
	Login(ctx context.Context, creds apiclient.Credentials) (apiclient.AuthResponse, error)
	Register(ctx context.Context, reg apiclient.Registration) (apiclient.AuthResponse, error)
}

// Deps holds the collaborators of a Submitter
type Deps struct {
	API       Authenticator
	Session   sessions.Store
	Tracker   *status.Tracker
	Navigator ui.Navigator
	Notifier  ui.Notifier
}

// Submitter validates and submits the login and register forms
type Submitter struct {
	deps Deps
}

func NewSubmitter(deps Deps) (*Submitter, error) {
	if deps.API == nil {
		return nil, errors.New("[NewSubmitter] API is required")
	}
	if deps.Session == nil {
		return nil, errors.New("[NewSubmitter] Session is required")
	}
	if deps.Tracker == nil {
		return nil, errors.New("[NewSubmitter] Tracker is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[NewSubmitter] Navigator is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("[NewSubmitter] Notifier is required")
	}
	return &Submitter{deps: deps}, nil
}

// Login validates the form, posts the credentials and stores the returned
// token. Validation failures are returned as *ValidationError before any
// request is made.
func (s *Submitter) Login(ctx context.Context, form LoginForm) error {
	form = form.normalised()
	if err := form.Validate(); err != nil {
		return err
	}

	done := s.deps.Tracker.Begin(status.OpLogin)
	defer done()

	resp, err := s.deps.API.Login(ctx, apiclient.Credentials{
		Email:    form.Email,
		Password: form.Password,
	})
	return s.complete(resp, err, "Login")
}

// Register validates the form, creates the account and stores the returned token
func (s *Submitter) Register(ctx context.Context, form RegisterForm) error {
	form = form.normalised()
	if err := form.Validate(); err != nil {
		return err
	}

	done := s.deps.Tracker.Begin(status.OpRegister)
	defer done()

	resp, err := s.deps.API.Register(ctx, apiclient.Registration{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	return s.complete(resp, err, "Registration")
}

func (s *Submitter) complete(resp apiclient.AuthResponse, err error, action string) error {
	if err != nil {
		log.Err(err).Str("action", action).Msg("auth request failed")
		s.deps.Notifier.Notify(ui.Notification{Title: action + " Failed", Description: err.Error()})
		return err
	}

	// Every tokenless answer is reported the same way
	if resp.Token == "" {
		log.Info().Str("action", action).Str("apiError", resp.Error).Msg("auth rejected")
		s.deps.Notifier.Notify(ui.Notification{Title: action + " Failed", Description: "Invalid credentials."})
		return apperrors.ErrInvalidCredentials
	}

	if err := s.deps.Session.SetToken(resp.Token); err != nil {
		s.deps.Notifier.Notify(ui.Notification{Title: action + " Failed", Description: err.Error()})
		return errors.Wrap(err, "failed to store session token")
	}

	s.deps.Notifier.Notify(ui.Notification{
		Title:       action + " Successful",
		Description: "You have been successfully logged in.",
	})
	s.deps.Navigator.Navigate(ui.ViewProducts)
	return nil
}

// ShowRegister switches from the login form to the register form
func (s *Submitter) ShowRegister() {
	s.deps.Navigator.Navigate(ui.ViewRegister)
}

// ShowLogin switches from the register form to the login form
func (s *Submitter) ShowLogin() {
	s.deps.Navigator.Navigate(ui.ViewLogin)
}
