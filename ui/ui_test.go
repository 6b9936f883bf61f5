package ui_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := ui.NewRouter(ui.ViewLogin)
	require.Equal(t, ui.ViewLogin, r.Current())
	r.Navigate(ui.ViewProducts)
	require.Equal(t, ui.ViewProducts, r.Current())
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := ui.NewWriterNotifier(&buf)
	n.Notify(ui.Notification{Title: "Login Failed", Description: "Invalid credentials."})
	n.Notify(ui.Notification{Title: "Saved"})
	require.Equal(t, "Login Failed: Invalid credentials.\nSaved\n", buf.String())
}
