package invoice_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	apperrors "github.com/jrsteele09/go-invoice-client/internal/errors"
	"github.com/jrsteele09/go-invoice-client/invoice"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/jrsteele09/go-invoice-client/status"
	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/jrsteele09/go-invoice-client/ui/uifake"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceAPI struct {
	tracker    *status.Tracker
	pdf        []byte
	res        apiclient.Result
	calls      int
	busyInCall bool
}

func (f *fakeInvoiceAPI) GenerateInvoice(context.Context) ([]byte, apiclient.Result) {
	f.calls++
	f.busyInCall = f.tracker.Busy(status.OpGenerateInvoice)
	return f.pdf, f.res
}

type fixture struct {
	api      *fakeInvoiceAPI
	session  sessions.Store
	tracker  *status.Tracker
	nav      *uifake.FakeNavigator
	notifier *uifake.FakeNotifier
	folder   string
	exporter *invoice.Exporter
}

var fixedNow = time.UnixMilli(1700000000000)

func setupFixture(t *testing.T, withToken bool) *fixture {
	t.Helper()
	tracker := status.NewTracker()
	f := &fixture{
		api:      &fakeInvoiceAPI{tracker: tracker},
		session:  sessions.NewInMemoryStore(),
		tracker:  tracker,
		nav:      uifake.NewFakeNavigator(),
		notifier: uifake.NewFakeNotifier(),
		folder:   filepath.Join(t.TempDir(), "downloads"),
	}
	if withToken {
		require.NoError(t, f.session.SetToken("tok"))
	}
	e, err := invoice.NewExporter(invoice.Deps{
		API:       f.api,
		Session:   f.session,
		Tracker:   tracker,
		Navigator: f.nav,
		Notifier:  f.notifier,
	}, f.folder, invoice.WithNowTime(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	f.exporter = e
	return f
}

func TestFileName(t *testing.T) {
	require.Equal(t, "invoice_1700000000000.pdf", invoice.FileName(fixedNow))
}

func TestExporter_Generate(t *testing.T) {
	t.Run("saves the payload", func(t *testing.T) {
		f := setupFixture(t, true)
		f.api.pdf = []byte("%PDF-1.4 test")

		path, err := f.exporter.Generate(context.Background())
		require.NoError(t, err)
		require.Equal(t, filepath.Join(f.folder, "invoice_1700000000000.pdf"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, f.api.pdf, data)
		require.True(t, f.api.busyInCall)
		require.False(t, f.tracker.Busy(status.OpGenerateInvoice))
	})

	t.Run("no token", func(t *testing.T) {
		f := setupFixture(t, false)
		_, err := f.exporter.Generate(context.Background())
		require.ErrorIs(t, err, apperrors.ErrNoToken)
		require.Equal(t, ui.ViewLogin, f.nav.Last())
		require.Zero(t, f.api.calls)
	})

	t.Run("empty payload", func(t *testing.T) {
		f := setupFixture(t, true)
		_, err := f.exporter.Generate(context.Background())
		require.ErrorIs(t, err, apperrors.ErrEmptyInvoice)
		require.Equal(t, "Unable to generate invoice", f.notifier.Notifications()[0].Title)
		require.NoDirExists(t, f.folder)
		require.False(t, f.tracker.Busy(status.OpGenerateInvoice))
	})

	t.Run("transport error", func(t *testing.T) {
		f := setupFixture(t, true)
		f.api.res = apiclient.Result{Outcome: apiclient.OutcomeError, Err: errors.New("reset by peer")}

		_, err := f.exporter.Generate(context.Background())
		require.Error(t, err)
		require.Equal(t, "Error", f.notifier.Notifications()[0].Title)
		require.False(t, f.tracker.Busy(status.OpGenerateInvoice))
	})

	t.Run("unauthorized", func(t *testing.T) {
		f := setupFixture(t, true)
		f.api.res = apiclient.Result{Outcome: apiclient.OutcomeUnauthorized, StatusCode: 401, Err: apperrors.ErrUnauthorized}

		_, err := f.exporter.Generate(context.Background())
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		require.Equal(t, ui.ViewLogin, f.nav.Last())
		require.Empty(t, f.notifier.Notifications())
	})
}
