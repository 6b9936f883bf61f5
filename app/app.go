package app

import (
	"net/http"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	"github.com/jrsteele09/go-invoice-client/forms"
	"github.com/jrsteele09/go-invoice-client/internal/config"
	"github.com/jrsteele09/go-invoice-client/invoice"
	"github.com/jrsteele09/go-invoice-client/products"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/jrsteele09/go-invoice-client/status"
	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// App is the explicit state object shared by the views: session, API client,
// per-operation status, navigation and notifications. Nothing here is global.
type App struct {
	Session  sessions.Store
	Client   *apiclient.Client
	Tracker  *status.Tracker
	Router   *ui.Router
	Notifier ui.Notifier

	Auth     *forms.Submitter
	Products *products.Table
	Invoices *invoice.Exporter

	httpClient *http.Client
}

// AppOption defines a function type to modify the App before its components are built.
type AppOption func(*App)

// WithSession replaces the file-backed session store
func WithSession(store sessions.Store) AppOption {
	return func(a *App) {
		a.Session = store
	}
}

// WithNotifier replaces the default notifier
func WithNotifier(n ui.Notifier) AppOption {
	return func(a *App) {
		a.Notifier = n
	}
}

// WithHTTPClient sets the http client used for API calls
func WithHTTPClient(hc *http.Client) AppOption {
	return func(a *App) {
		a.httpClient = hc
	}
}

// New wires the components. Without a WithSession option the session is
// persisted under the configured data folder.
func New(cfg config.Config, notifier ui.Notifier, options ...AppOption) (*App, error) {
	a := &App{
		Tracker:  status.NewTracker(),
		Notifier: notifier,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.Notifier == nil {
		return nil, errors.New("[app New] notifier is required")
	}
	if a.Session == nil {
		a.Session = sessions.NewFileStore(cfg.GetDataFolder())
	}

	start := ui.ViewLogin
	if _, ok := a.Session.GetToken(); ok {
		start = ui.ViewProducts
	}
	a.Router = ui.NewRouter(start)

	clientOptions := []apiclient.ClientOption{}
	if a.httpClient != nil {
		clientOptions = append(clientOptions, apiclient.WithHTTPClient(a.httpClient))
	}
	clientOptions = append(clientOptions, apiclient.WithTimeout(cfg.GetHTTPTimeout()))

	client, err := apiclient.New(cfg.GetAPIBaseURL(), a.Session, clientOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "[app New] failed to create api client")
	}
	a.Client = client

	if a.Auth, err = forms.NewSubmitter(forms.Deps{
		API:       client,
		Session:   a.Session,
		Tracker:   a.Tracker,
		Navigator: a.Router,
		Notifier:  a.Notifier,
	}); err != nil {
		return nil, errors.Wrap(err, "[app New] failed to create form submitter")
	}

	if a.Products, err = products.NewTable(products.Deps{
		API:       client,
		Session:   a.Session,
		Tracker:   a.Tracker,
		Navigator: a.Router,
		Notifier:  a.Notifier,
	}); err != nil {
		return nil, errors.Wrap(err, "[app New] failed to create product table")
	}

	if a.Invoices, err = invoice.NewExporter(invoice.Deps{
		API:       client,
		Session:   a.Session,
		Tracker:   a.Tracker,
		Navigator: a.Router,
		Notifier:  a.Notifier,
	}, cfg.GetDownloadFolder()); err != nil {
		return nil, errors.Wrap(err, "[app New] failed to create invoice exporter")
	}

	return a, nil
}

// Current is the view the user is currently on
func (a *App) Current() ui.View {
	return a.Router.Current()
}

// Authenticated reports whether a session token is held
func (a *App) Authenticated() bool {
	_, ok := a.Session.GetToken()
	return ok
}

// Logout drops the session and returns to the login view
func (a *App) Logout() error {
	if err := a.Session.Clear(); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}
	log.Info().Msg("logged out")
	a.Router.Navigate(ui.ViewLogin)
	return nil
}
