// Copyright (c) 2026 TrendHive. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendhive/trendhive/internal/auth"
	"github.com/trendhive/trendhive/internal/commerce"
	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/constants"
	"github.com/trendhive/trendhive/internal/platform/mail"
	"github.com/trendhive/trendhive/internal/platform/middleware"
	"github.com/trendhive/trendhive/internal/platform/sec"
)

// # In-Memory Stores
//
// Just enough persistence to run full HTTP flows through the real services
// and the session gate.

type memoryUserStore struct {
	users map[string]*auth.User
}

func (store *memoryUserStore) Create(_ context.Context, user *auth.User) error {
	for _, existing := range store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Email is already registered")
		}
	}
	clone := *user
	store.users[user.ID] = &clone
	return nil
}

func (store *memoryUserStore) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := store.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (store *memoryUserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range store.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryUserStore) Search(_ context.Context, _ string, limit, _ int) ([]auth.User, int, error) {
	var all []auth.User
	for _, user := range store.users {
		if len(all) < limit {
			all = append(all, *user)
		}
	}
	return all, len(store.users), nil
}

func (store *memoryUserStore) Update(_ context.Context, user *auth.User) error {
	if _, ok := store.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	store.users[user.ID] = &clone
	return nil
}

func (store *memoryUserStore) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := store.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return nil
}

func (store *memoryUserStore) SetResetToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	user, ok := store.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.ResetTokenHash = tokenHash
	user.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (store *memoryUserStore) MarkActive(_ context.Context, userID string) error {
	user, ok := store.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Active = true
	return nil
}

func (store *memoryUserStore) Delete(_ context.Context, userID string) error {
	if _, ok := store.users[userID]; !ok {
		return apperr.NotFound("User")
	}
	delete(store.users, userID)
	return nil
}

type memoryProductStore struct {
	products map[string]*commerce.Product
}

func (store *memoryProductStore) Create(_ context.Context, product *commerce.Product) error {
	clone := *product
	store.products[product.ID] = &clone
	return nil
}

func (store *memoryProductStore) FindByID(_ context.Context, id string) (*commerce.Product, error) {
	product, ok := store.products[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	clone := *product
	return &clone, nil
}

func (store *memoryProductStore) List(_ context.Context, _, _ string, limit, _ int) ([]commerce.Product, int, error) {
	var all []commerce.Product
	for _, product := range store.products {
		if len(all) < limit {
			all = append(all, *product)
		}
	}
	return all, len(store.products), nil
}

func (store *memoryProductStore) Update(_ context.Context, product *commerce.Product) error {
	if _, ok := store.products[product.ID]; !ok {
		return apperr.NotFound("Product")
	}
	clone := *product
	store.products[product.ID] = &clone
	return nil
}

func (store *memoryProductStore) Delete(_ context.Context, id string) error {
	if _, ok := store.products[id]; !ok {
		return apperr.NotFound("Product")
	}
	delete(store.products, id)
	return nil
}

type memoryBagStore struct {
	bags map[string][]commerce.BagItem
}

func (store *memoryBagStore) Get(_ context.Context, userID string) ([]commerce.BagItem, error) {
	return append([]commerce.BagItem{}, store.bags[userID]...), nil
}

func (store *memoryBagStore) Replace(_ context.Context, userID string, items []commerce.BagItem) error {
	store.bags[userID] = append([]commerce.BagItem{}, items...)
	return nil
}

type memoryWishlistStore struct {
	lists map[string][]string
}

func (store *memoryWishlistStore) Get(_ context.Context, userID string) ([]string, error) {
	return append([]string{}, store.lists[userID]...), nil
}

func (store *memoryWishlistStore) Replace(_ context.Context, userID string, productIDs []string) error {
	store.lists[userID] = append([]string{}, productIDs...)
	return nil
}

type missCache struct{}

func (missCache) Get(_ context.Context, _ string) (*commerce.Product, error) { return nil, nil }

func (missCache) Set(_ context.Context, _ *commerce.Product, _ time.Duration) error { return nil }

func (missCache) Invalidate(_ context.Context, _ string) error { return nil }

// newCheckoutRig wires the real auth and commerce services behind the real
// session gate, mounted the way the server mounts them.
func newCheckoutRig(t *testing.T) (http.Handler, *commerce.Service) {
	t.Helper()

	tokenService, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", constants.AuthIssuer)
	require.NoError(t, err)

	authService := auth.NewService(
		&memoryUserStore{users: make(map[string]*auth.User)},
		tokenService,
		mail.NewNoopSender(testLogger()),
		"http://localhost:3000",
		true,
	)
	authenticator := middleware.NewAuthenticator(tokenService, authService, false)

	commerceService := commerce.NewService(
		&memoryProductStore{products: make(map[string]*commerce.Product)},
		&memoryBagStore{bags: make(map[string][]commerce.BagItem)},
		&memoryWishlistStore{lists: make(map[string][]string)},
		missCache{},
	)

	router := chi.NewRouter()
	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", auth.NewHandler(authService, authenticator, false).Routes())
		api.Mount("/products", commerce.NewHandler(commerceService, authenticator).Routes())
	})

	return router, commerceService
}

// TestCheckoutFlow drives an entire customer round trip over HTTP:
// register, login, add the same product twice, then read the bag snapshot.
func TestCheckoutFlow(t *testing.T) {
	router, commerceService := newCheckoutRig(t)

	product, err := commerceService.CreateProduct(context.Background(), commerce.ProductInput{
		Name:  "Linen Shirt",
		Price: 49.90,
		Stock: 10,
	})
	require.NoError(t, err)

	// Register.
	recorder := serve(t, router, nil, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"Sup3r$ecret"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Login on a fresh cookie jar; the session cookie carries the JWT.
	recorder = serve(t, router, nil, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"Sup3r$ecret"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	session := findSessionCookie(t, recorder)

	// Add the same product twice; the bag merges into one row.
	recorder = serve(t, router, session, http.MethodPost, "/api/products/cart/"+product.ID, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = serve(t, router, session, http.MethodPost, "/api/products/cart/"+product.ID, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	// Snapshot.
	recorder = serve(t, router, session, http.MethodGet, "/api/products/cart", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			Items []struct {
				Product struct {
					ID string `json:"id"`
				} `json:"product"`
				Quantity int `json:"quantity"`
			} `json:"items"`
			Quantity int     `json:"quantity"`
			Discount float64 `json:"discount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, product.ID, envelope.Data.Items[0].Product.ID)
	assert.Equal(t, 2, envelope.Data.Items[0].Quantity)
	assert.Equal(t, 2, envelope.Data.Quantity)
	assert.Zero(t, envelope.Data.Discount)
}

// TestCheckoutFlow_NoSession verifies the gate blocks the bag without a cookie.
func TestCheckoutFlow_NoSession(t *testing.T) {
	router, _ := newCheckoutRig(t)

	recorder := serve(t, router, nil, http.MethodGet, "/api/products/cart", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func serve(t *testing.T, router http.Handler, session *http.Cookie, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		request.AddCookie(session)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func findSessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("no %q cookie in response", constants.SessionCookieName)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
