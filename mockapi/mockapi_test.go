package mockapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	"github.com/jrsteele09/go-invoice-client/internal/config"
	"github.com/jrsteele09/go-invoice-client/mockapi"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/stretchr/testify/require"
)

const (
	testName     = "John Doe"
	testEmail    = "john.doe@example.com"
	testPassword = "Passw0rdOK"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("ENV", "TEST")
	srv := httptest.NewServer(mockapi.New(config.New()))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func register(t *testing.T, baseURL string) string {
	t.Helper()
	resp, data := call(t, http.MethodPost, baseURL+apiclient.PathRegister, "",
		apiclient.Registration{Name: testName, Email: testEmail, Password: testPassword})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ar apiclient.AuthResponse
	require.NoError(t, json.Unmarshal(data, &ar))
	require.NotEmpty(t, ar.Token)
	return ar.Token
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newServer(t)
	token := register(t, srv.URL)
	require.NotEmpty(t, sessions.UserIDFromToken(token))

	t.Run("duplicate email", func(t *testing.T) {
		resp, _ := call(t, http.MethodPost, srv.URL+apiclient.PathRegister, "",
			apiclient.Registration{Name: testName, Email: "JOHN.DOE@example.com", Password: testPassword})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password", func(t *testing.T) {
		resp, data := call(t, http.MethodPost, srv.URL+apiclient.PathRegister, "",
			apiclient.Registration{Name: "Jane", Email: "jane@example.com", Password: "weak"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(data), "Password must be at least 8 characters")
	})

	t.Run("login", func(t *testing.T) {
		resp, data := call(t, http.MethodPost, srv.URL+apiclient.PathLogin, "",
			apiclient.Credentials{Email: testEmail, Password: testPassword})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ar apiclient.AuthResponse
		require.NoError(t, json.Unmarshal(data, &ar))
		require.NotEmpty(t, ar.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, data := call(t, http.MethodPost, srv.URL+apiclient.PathLogin, "",
			apiclient.Credentials{Email: testEmail, Password: "Wr0ngPassword"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var ar apiclient.AuthResponse
		require.NoError(t, json.Unmarshal(data, &ar))
		require.Empty(t, ar.Token)
		require.NotEmpty(t, ar.Error)
	})
}

func TestProducts(t *testing.T) {
	srv := newServer(t)
	token := register(t, srv.URL)

	t.Run("requires a token", func(t *testing.T) {
		resp, _ := call(t, http.MethodGet, srv.URL+apiclient.PathProducts, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, _ = call(t, http.MethodGet, srv.URL+apiclient.PathProducts, "not-a-jwt", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	resp, _ := call(t, http.MethodPost, srv.URL+apiclient.PathProducts, token,
		apiclient.NewProduct{ProductName: "Pen", Price: 10, Quantity: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, http.MethodPost, srv.URL+apiclient.PathProducts, token,
		apiclient.NewProduct{ProductName: " ", Price: 1, Quantity: 1})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data := call(t, http.MethodGet, srv.URL+apiclient.PathProducts, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []apiclient.RemoteProduct
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Pen", list[0].ProductName)
	require.NotEmpty(t, list[0].ID)

	t.Run("invoice", func(t *testing.T) {
		resp, data := call(t, http.MethodGet, srv.URL+apiclient.PathGenerateInvoice, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		require.Contains(t, string(data), "INR 23.6")
	})
}

func TestExpiredToken(t *testing.T) {
	srv := newServer(t)
	token := register(t, srv.URL)

	t.Cleanup(func() { mockapi.NowTimeFunc = time.Now })
	mockapi.NowTimeFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }

	resp, _ := call(t, http.MethodGet, srv.URL+apiclient.PathProducts, token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenIssuer(t *testing.T) {
	ti := mockapi.NewTokenIssuer("secret", time.Hour)
	token, err := ti.Create(&mockapi.User{ID: "u1", Email: testEmail})
	require.NoError(t, err)

	sub, err := ti.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "u1", sub)

	_, err = mockapi.NewTokenIssuer("other", time.Hour).Verify(token)
	require.ErrorIs(t, err, mockapi.ErrInvalidToken)
}

func TestRenderInvoice(t *testing.T) {
	pdf, err := mockapi.RenderInvoice(&mockapi.User{Name: "A (b)", Email: testEmail}, []apiclient.RemoteProduct{
		{ProductName: "x", Price: 10, Quantity: 2},
		{ProductName: "y", Price: 5, Quantity: 3},
	}, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	s := string(pdf)
	require.True(t, strings.HasPrefix(s, "%PDF-"))
	require.Contains(t, s, "A \\(b\\)")
	require.Contains(t, s, "INR 35.0")
	require.Contains(t, s, "INR 6.3")
	require.Contains(t, s, "INR 41.3")
	require.Contains(t, s, "%%EOF")
}

func TestRenderInvoice_LongListContinuesOnNextPage(t *testing.T) {
	items := make([]apiclient.RemoteProduct, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, apiclient.RemoteProduct{ProductName: fmt.Sprintf("Item %d", i), Price: 1, Quantity: 1})
	}

	pdf, err := mockapi.RenderInvoice(&mockapi.User{Name: testName, Email: testEmail}, items, time.Now())
	require.NoError(t, err)

	s := string(pdf)
	require.Contains(t, s, "(Item 0)")
	require.Contains(t, s, "(Item 59)")
	require.Contains(t, s, "(INR 60.0)")
	require.Contains(t, s, "(INR 10.8)")
	require.Contains(t, s, "(INR 70.8)")
	require.Regexp(t, `/Count [2-9]`, s)
}

func TestWithRepos(t *testing.T) {
	t.Setenv("ENV", "TEST")

	hash, err := mockapi.HashPassword(testPassword)
	require.NoError(t, err)
	users := mockapi.NewInMemoryUserRepo()
	require.NoError(t, users.Create(&mockapi.User{ID: "seeded-user", Name: testName, Email: testEmail, PasswordHash: hash}))
	productRepo := mockapi.NewInMemoryProductRepo()
	productRepo.Add("seeded-user", apiclient.NewProduct{ProductName: "Seeded", Price: 3, Quantity: 4})

	srv := httptest.NewServer(mockapi.New(config.New(), mockapi.WithRepos(mockapi.Repos{Users: users, Products: productRepo})))
	t.Cleanup(srv.Close)

	resp, data := call(t, http.MethodPost, srv.URL+apiclient.PathLogin, "",
		apiclient.Credentials{Email: testEmail, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ar apiclient.AuthResponse
	require.NoError(t, json.Unmarshal(data, &ar))
	require.Equal(t, "seeded-user", sessions.UserIDFromToken(ar.Token))

	resp, data = call(t, http.MethodGet, srv.URL+apiclient.PathProducts, ar.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []apiclient.RemoteProduct
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Seeded", list[0].ProductName)
}
