package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	apperrors "github.com/jrsteele09/go-invoice-client/internal/errors"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/jrsteele09/go-invoice-client/status"
	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// API is the part of the API client the exporter needs
type API interface {
	GenerateInvoice(ctx context.Context) ([]byte, apiclient.Result)
}

// Deps holds the collaborators of an Exporter
type Deps struct {
	API       API
	Session   sessions.Store
	Tracker   *status.Tracker
	Navigator ui.Navigator
	Notifier  ui.Notifier
}

// Exporter downloads the rendered invoice into a folder
type Exporter struct {
	deps    Deps
	folder  string
	nowTime func() time.Time
}

// ExporterOption defines a function type to modify the Exporter instance.
type ExporterOption func(*Exporter)

// WithNowTime sets the clock used for file names (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ExporterOption {
	return func(e *Exporter) {
		e.nowTime = nowFunc
	}
}

func NewExporter(deps Deps, folder string, options ...ExporterOption) (*Exporter, error) {
	if deps.API == nil {
		return nil, errors.New("[NewExporter] API is required")
	}
	if deps.Session == nil {
		return nil, errors.New("[NewExporter] Session is required")
	}
	if deps.Tracker == nil {
		return nil, errors.New("[NewExporter] Tracker is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[NewExporter] Navigator is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("[NewExporter] Notifier is required")
	}
	if folder == "" {
		folder = "."
	}

	e := &Exporter{deps: deps, folder: folder, nowTime: time.Now}
	for _, opt := range options {
		opt(e)
	}
	return e, nil
}

// FileName is invoice_<unix millis>.pdf
func FileName(t time.Time) string {
	return fmt.Sprintf("invoice_%d.pdf", t.UnixMilli())
}

// Generate requests the invoice and saves it, returning the written path
func (e *Exporter) Generate(ctx context.Context) (string, error) {
	if _, ok := e.deps.Session.GetToken(); !ok {
		e.deps.Navigator.Navigate(ui.ViewLogin)
		return "", apperrors.ErrNoToken
	}

	done := e.deps.Tracker.Begin(status.OpGenerateInvoice)
	defer done()

	pdf, res := e.deps.API.GenerateInvoice(ctx)
	switch res.Outcome {
	case apiclient.OutcomeUnauthorized:
		e.deps.Navigator.Navigate(ui.ViewLogin)
		return "", res.Err
	case apiclient.OutcomeError:
		log.Err(res.Err).Msg("error generating invoice")
		e.deps.Notifier.Notify(ui.Notification{
			Title:       "Error",
			Description: "There was an issue generating the PDF. Please try again later.",
		})
		return "", res.Err
	}

	if len(pdf) == 0 {
		e.deps.Notifier.Notify(ui.Notification{Title: "Unable to generate invoice", Description: "Try again later."})
		return "", apperrors.ErrEmptyInvoice
	}

	path, err := e.save(pdf)
	if err != nil {
		log.Err(err).Msg("error saving invoice")
		e.deps.Notifier.Notify(ui.Notification{Title: "Error", Description: err.Error()})
		return "", err
	}

	log.Info().Str("path", path).Int("bytes", len(pdf)).Msg("invoice saved")
	return path, nil
}

func (e *Exporter) save(pdf []byte) (string, error) {
	if err := os.MkdirAll(e.folder, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create download folder")
	}
	path := filepath.Join(e.folder, FileName(e.nowTime()))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write invoice")
	}
	return path, nil
}
