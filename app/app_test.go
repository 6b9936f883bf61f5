package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jrsteele09/go-invoice-client/app"
	"github.com/jrsteele09/go-invoice-client/forms"
	"github.com/jrsteele09/go-invoice-client/internal/config"
	"github.com/jrsteele09/go-invoice-client/mockapi"
	"github.com/jrsteele09/go-invoice-client/products"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/jrsteele09/go-invoice-client/status"
	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/jrsteele09/go-invoice-client/ui/uifake"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "john.doe@example.com"
	testPassword = "Passw0rdOK"
)

func newApp(t *testing.T, store sessions.Store) (*app.App, *uifake.FakeNotifier) {
	t.Helper()
	t.Setenv("ENV", "TEST")

	srv := httptest.NewServer(mockapi.New(config.New()))
	t.Cleanup(srv.Close)

	notifier := uifake.NewFakeNotifier()
	cfg := config.New(
		config.WithAPIBaseURL(srv.URL),
		config.WithDataFolder(t.TempDir()),
		config.WithDownloadFolder(t.TempDir()),
	)

	var options []app.AppOption
	if store != nil {
		options = append(options, app.WithSession(store))
	}
	a, err := app.New(cfg, notifier, options...)
	require.NoError(t, err)
	return a, notifier
}

func TestNew_RequiresNotifier(t *testing.T) {
	_, err := app.New(config.New(), nil)
	require.Error(t, err)
}

func TestApp_EndToEnd(t *testing.T) {
	ctx := context.Background()
	a, notifier := newApp(t, nil)
	require.Equal(t, ui.ViewLogin, a.Current())

	require.NoError(t, a.Auth.Register(ctx, forms.RegisterForm{Name: "John", Email: testEmail, Password: testPassword}))
	require.Equal(t, ui.ViewProducts, a.Current())
	require.True(t, a.Authenticated())
	require.NotEmpty(t, a.Session.UserID())

	require.NoError(t, a.Products.Load(ctx))
	require.Empty(t, a.Products.Products())

	require.NoError(t, a.Products.Add(ctx, products.Draft{Name: "Pen", Price: "10", Quantity: "2"}))
	require.NoError(t, a.Products.Add(ctx, products.Draft{Name: "Ink", Price: "5", Quantity: "3"}))
	require.False(t, a.Tracker.Any())

	totals := a.Products.Totals()
	require.InDelta(t, 35, totals.Subtotal, 1e-9)
	require.InDelta(t, 41.3, totals.Total, 1e-9)

	a.Products.Sort(products.SortByUnitPrice)
	require.Equal(t, "Ink", a.Products.Products()[0].Name)

	// reload replaces the temporary ids with server ids
	require.NoError(t, a.Products.Load(ctx))
	require.Len(t, a.Products.Products(), 2)

	path, err := a.Invoices.Generate(ctx)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "INR 41.3")
	require.False(t, a.Tracker.Busy(status.OpGenerateInvoice))

	require.Empty(t, filterTitles(notifier.Notifications(), "Error"))

	require.NoError(t, a.Logout())
	require.Equal(t, ui.ViewLogin, a.Current())
	require.False(t, a.Authenticated())
}

func TestApp_UnauthorizedFromAnyCall(t *testing.T) {
	ctx := context.Background()

	ops := map[string]func(a *app.App) error{
		"load": func(a *app.App) error { return a.Products.Load(ctx) },
		"add": func(a *app.App) error {
			return a.Products.Add(ctx, products.Draft{Name: "Pen", Price: "1", Quantity: "1"})
		},
		"invoice": func(a *app.App) error { _, err := a.Invoices.Generate(ctx); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			store := sessions.NewInMemoryStore()
			require.NoError(t, store.SetToken("revoked-or-expired"))
			a, _ := newApp(t, store)
			require.Equal(t, ui.ViewProducts, a.Current())

			require.Error(t, op(a))
			require.False(t, a.Authenticated())
			require.Equal(t, ui.ViewLogin, a.Current())
			require.False(t, a.Tracker.Any())
		})
	}
}

func TestApp_LoginWithWrongPassword(t *testing.T) {
	ctx := context.Background()
	a, notifier := newApp(t, nil)
	require.NoError(t, a.Auth.Register(ctx, forms.RegisterForm{Name: "John", Email: testEmail, Password: testPassword}))
	require.NoError(t, a.Logout())

	err := a.Auth.Login(ctx, forms.LoginForm{Email: testEmail, Password: "Wr0ngPassword"})
	require.Error(t, err)
	require.False(t, a.Authenticated())
	require.Equal(t, ui.ViewLogin, a.Current())
	require.NotEmpty(t, filterTitles(notifier.Notifications(), "Login Failed"))

	require.NoError(t, a.Auth.Login(ctx, forms.LoginForm{Email: testEmail, Password: testPassword}))
	require.Equal(t, ui.ViewProducts, a.Current())
}

func filterTitles(ns []ui.Notification, title string) []ui.Notification {
	var out []ui.Notification
	for _, n := range ns {
		if n.Title == title {
			out = append(out, n)
		}
	}
	return out
}

func TestNew_WithHTTPClientKeepsCallerTimeout(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("HTTP_TIMEOUT", "7s")
	srv := httptest.NewServer(mockapi.New(config.New()))
	t.Cleanup(srv.Close)

	hc := &http.Client{}
	a, err := app.New(config.New(config.WithAPIBaseURL(srv.URL)), uifake.NewFakeNotifier(),
		app.WithSession(sessions.NewInMemoryStore()),
		app.WithHTTPClient(hc),
	)
	require.NoError(t, err)
	require.Zero(t, hc.Timeout)

	require.NoError(t, a.Auth.Register(context.Background(), forms.RegisterForm{Name: "John", Email: testEmail, Password: testPassword}))
	require.True(t, a.Authenticated())
}
