package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	return client, server
}

func TestClient_SendsAuthHeaders(t *testing.T) {
	var gotAuth, gotSession string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSession = r.Header.Get("X-Session-ID")
		json.NewEncoder(w).Encode(Cart{SessionID: "abc"})
	}))
	defer server.Close()

	client.SetTokens("access-123", "refresh-123")
	client.SetSessionID("session-abc")

	_, err := client.Cart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-123", gotAuth)
	assert.Equal(t, "session-abc", gotSession)
}

func TestClient_CapturesSessionIDFromResponse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Session-ID", "server-issued")
		json.NewEncoder(w).Encode(Cart{SessionID: "server-issued"})
	}))
	defer server.Close()

	require.Empty(t, client.SessionID())
	_, err := client.Cart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "server-issued", client.SessionID())
}

func TestClient_RefreshesOnceOn401(t *testing.T) {
	var cartCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		cartCalls++
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
			return
		}
		json.NewEncoder(w).Encode(Cart{SessionID: "abc"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refresh_token"] != "stale-refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "fresh-access",
			"refresh_token": "fresh-refresh",
		})
	})

	client, server := newTestClient(mux)
	defer server.Close()
	client.SetTokens("stale-access", "stale-refresh")

	cart, err := client.Cart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", cart.SessionID)
	assert.Equal(t, 2, cartCalls)
	assert.Equal(t, 1, refreshCalls)
	assert.True(t, client.Authenticated())
}

func TestClient_NoRefreshOnAuthEndpoints(t *testing.T) {
	var loginCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		loginCalls++
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "fresh-access",
			"refresh_token": "fresh-refresh",
		})
	})

	client, server := newTestClient(mux)
	defer server.Close()
	client.SetTokens("valid-access", "valid-refresh")

	_, err := client.Login(context.Background(), "anna@example.com", "wrong-password")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, 1, loginCalls)
	assert.Equal(t, 0, refreshCalls)
	assert.True(t, client.Authenticated())
}

func TestClient_RefreshFailureClearsTokens(t *testing.T) {
	var cartCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		cartCalls++
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, server := newTestClient(mux)
	defer server.Close()
	client.SetTokens("stale-access", "stale-refresh")

	_, err := client.Cart(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, cartCalls)
	assert.False(t, client.Authenticated())
}

func TestClient_NoRefreshWithoutToken(t *testing.T) {
	var cartCalls int
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartCalls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := client.Cart(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, cartCalls)
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "email already registered",
			"code":  "AUTH_EMAIL_TAKEN",
		})
	}))
	defer server.Close()

	_, err := client.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "AUTH_EMAIL_TAKEN", apiErr.Code)
	assert.Equal(t, "email already registered", apiErr.Message)
	assert.Equal(t, "email already registered", apiErr.Error())
}

func TestClient_LoginStoresTokens(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":          User{ID: 1, Email: "anna@example.com"},
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
		})
	}))
	defer server.Close()

	user, err := client.Login(context.Background(), "anna@example.com", "sekretne-haslo")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.True(t, client.Authenticated())
}

func TestClient_LogoutClearsTokens(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
	}))
	defer server.Close()

	client.SetTokens("access-1", "refresh-1")
	require.NoError(t, client.Logout(context.Background()))
	assert.False(t, client.Authenticated())
}

func TestClient_AddToCart_QuantityGuard(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("out-of-range quantity must not reach the server")
	}))
	defer server.Close()

	_, err := client.AddToCart(context.Background(), AddItemRequest{ProductID: 1, Quantity: 100})
	assert.ErrorIs(t, err, ErrQuantityOutOfRange)

	_, err = client.UpdateCartItem(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrQuantityOutOfRange)
}

func TestClient_AddToCart_DefaultsQuantity(t *testing.T) {
	var got AddItemRequest
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(Cart{})
	}))
	defer server.Close()

	_, err := client.AddToCart(context.Background(), AddItemRequest{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

func TestClient_OrderByHash_EscapesPath(t *testing.T) {
	var gotPath string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]interface{}{"order": Order{ID: 7}})
	}))
	defer server.Close()

	order, err := client.OrderByHash(context.Background(), "abc/def")
	require.NoError(t, err)
	assert.Equal(t, uint(7), order.ID)
	assert.Equal(t, "/api/orders/hash/abc%2Fdef", gotPath)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}
