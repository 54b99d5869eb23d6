package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Memory) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.NewMemory()
	client, err := NewClient(Config{BaseURL: server.URL}, sess)
	require.NoError(t, err)
	return client, sess
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid URL", baseURL: "https://api.example.com/api"},
		{name: "missing URL", baseURL: "", wantErr: true},
		{name: "not a URL", baseURL: "::not-a-url", wantErr: true},
		{name: "no scheme", baseURL: "api.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{BaseURL: tt.baseURL}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_AttachesIdentityHeader(t *testing.T) {
	var gotHeader string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Email")
		_ = json.NewEncoder(w).Encode([]model.Category{})
	}))

	require.NoError(t, sess.Establish("user@example.com"))
	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", gotHeader)
}

func TestClient_OmitsIdentityHeaderWhenUnauthenticated(t *testing.T) {
	var present bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Email"]
		_ = json.NewEncoder(w).Encode([]model.Category{})
	}))

	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.False(t, present, "request without a session must not carry the identity header")
}

func TestClient_UnauthorizedTearsDownSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	sess := session.NewMemory()
	require.NoError(t, sess.Establish("user@example.com"))

	var expired int
	client, err := NewClient(Config{
		BaseURL:          server.URL,
		OnSessionExpired: func() { expired++ },
	}, sess)
	require.NoError(t, err)

	_, err = client.ListExpenses(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, sess.IsAuthenticated(), "401 must clear the session")
	assert.Equal(t, 1, expired)
}

func TestClient_LoginRejectedLeavesSessionUnestablished(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
	}))

	_, err := client.Login(context.Background(), model.Credentials{Email: "user@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "invalid email or password", MessageOf(err))
	assert.False(t, sess.IsAuthenticated())
}

func TestClient_TransportFailureIsServerUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // nothing listening anymore

	client, err := NewClient(Config{BaseURL: server.URL}, session.NewMemory())
	require.NoError(t, err)

	_, err = client.ListCategories(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestClient_CheckHealth(t *testing.T) {
	t.Run("healthy backend", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		assert.True(t, client.CheckHealth(context.Background()))
	})

	t.Run("failing backend", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		assert.False(t, client.CheckHealth(context.Background()))
	})

	t.Run("unreachable backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		client, err := NewClient(Config{BaseURL: server.URL}, session.NewMemory())
		require.NoError(t, err)
		assert.False(t, client.CheckHealth(context.Background()))
	})
}

func TestClient_LogoutWithoutIdentityRefusesLocally(t *testing.T) {
	var requests int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))

	err := client.Logout(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, requests, "local refusal must not touch the network")
}

func TestClient_LogoutSendsIdentityAsQuery(t *testing.T) {
	var gotEmail string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/logout", r.URL.Path)
		gotEmail = r.URL.Query().Get("email")
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, sess.Establish("user@example.com"))
	require.NoError(t, client.Logout(context.Background()))
	assert.Equal(t, "user@example.com", gotEmail)
}

func TestClient_CreateCategoryDecodesServerEntity(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/categories", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Food", body["name"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Category{ID: 1, Name: "Food"})
	}))

	require.NoError(t, sess.Establish("user@example.com"))
	category, err := client.CreateCategory(context.Background(), "Food")
	require.NoError(t, err)
	assert.Equal(t, int64(1), category.ID)
	assert.Equal(t, "Food", category.Name)
}

func TestClient_DeleteExpenseAcceptsNoContent(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/expenses/100", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, sess.Establish("user@example.com"))
	assert.NoError(t, client.DeleteExpense(context.Background(), 100))
}

func TestClient_ClientErrorCarriesServerMessage(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "category already exists"})
	}))

	require.NoError(t, sess.Establish("user@example.com"))
	_, err := client.CreateCategory(context.Background(), "Food")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, "category already exists", MessageOf(err))
	assert.True(t, sess.IsAuthenticated(), "only 401 may touch the session")
}

func TestClient_ExpensesByDateRangeSendsInclusiveBounds(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)

	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/expenses/date-range", r.URL.Path)
		assert.Equal(t, start.Format(time.RFC3339), r.URL.Query().Get("start"))
		assert.Equal(t, end.Format(time.RFC3339), r.URL.Query().Get("end"))
		_ = json.NewEncoder(w).Encode([]model.Expense{})
	}))

	require.NoError(t, sess.Establish("user@example.com"))
	_, err := client.ExpensesByDateRange(context.Background(), start, end)
	require.NoError(t, err)
}

func TestClient_ListExpensesDecodesAmounts(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":100,"amount":12.50,"description":"lunch","categoryId":1,"date":"2024-03-05T12:30:00Z"}]`))
	}))

	require.NoError(t, sess.Establish("user@example.com"))
	expenses, err := client.ListExpenses(context.Background())
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.True(t, expenses[0].Amount.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, int64(1), expenses[0].CategoryID)
	assert.Equal(t, "lunch", expenses[0].Description)
}
