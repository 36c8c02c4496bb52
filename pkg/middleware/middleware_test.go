package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"storefront/pkg/auth"
	"storefront/pkg/claims"
	"storefront/pkg/middleware"
	sessionmocks "storefront/pkg/session/mocks"
	"storefront/pkg/user"
	usermocks "storefront/pkg/user/mocks"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var subject = auth.Subject{UserID: 9, Email: "ana@example.com", FirstName: "Ana", LastName: "Lima"}

// echoClaims answers 200 with the user id found in the context, or 204 when
// there is none.
func echoClaims(w http.ResponseWriter, r *http.Request) {
	c, ok := claims.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, c.Email)
}

func newRouter(tokens *auth.TokenManager, sessions *sessionmocks.Repository) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CheckJWT(tokens, sessions, discard))
	api.HandleFunc("/products", echoClaims).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/products/{id}", echoClaims).Methods(http.MethodGet, http.MethodDelete)
	api.HandleFunc("/cart", echoClaims).Methods(http.MethodGet)
	return r
}

func TestCheckJWT(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	valid, err := tokens.Issue(subject, "sess-ok")
	require.NoError(t, err)
	dead, err := tokens.Issue(subject, "sess-dead")
	require.NoError(t, err)
	broken, err := tokens.Issue(subject, "sess-broken")
	require.NoError(t, err)
	foreign, err := auth.NewTokenManager("other", time.Hour).Issue(subject, "sess-ok")
	require.NoError(t, err)

	sessions := new(sessionmocks.Repository)
	sessions.On("IsValid", mock.Anything, "sess-ok").Return(true, nil)
	sessions.On("IsValid", mock.Anything, "sess-dead").Return(false, nil)
	sessions.On("IsValid", mock.Anything, "sess-broken").Return(false, errors.New("db down"))

	router := newRouter(tokens, sessions)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		body   string
	}{
		{"public list", http.MethodGet, "/api/products", "", http.StatusNoContent, ""},
		{"public item", http.MethodGet, "/api/products/3", "", http.StatusNoContent, ""},
		{"create needs token", http.MethodPost, "/api/products", "", http.StatusUnauthorized, "Access token is required"},
		{"delete needs token", http.MethodDelete, "/api/products/3", "", http.StatusUnauthorized, "Access token is required"},
		{"cart with token", http.MethodGet, "/api/cart", valid, http.StatusOK, "ana@example.com"},
		{"foreign signature", http.MethodGet, "/api/cart", foreign, http.StatusUnauthorized, "Invalid or expired token"},
		{"garbage token", http.MethodGet, "/api/cart", "abc", http.StatusUnauthorized, "Invalid or expired token"},
		{"session gone", http.MethodGet, "/api/cart", dead, http.StatusUnauthorized, "Session expired"},
		{"session store error", http.MethodGet, "/api/cart", broken, http.StatusInternalServerError, "Authentication failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.body != "" {
				assert.Contains(t, rr.Body.String(), tt.body)
			}
		})
	}
}

func adminRequest(id int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	if id == 0 {
		return req
	}
	return req.WithContext(claims.NewContext(req.Context(), &claims.Claims{UserID: id}))
}

func TestRequireAdmin(t *testing.T) {
	users := new(usermocks.ServiceInterface)
	users.On("GetByID", mock.Anything, int64(1)).Return(&user.User{ID: 1, Role: user.RoleAdmin}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&user.User{ID: 2, Role: user.RoleUser}, nil)
	users.On("GetByID", mock.Anything, int64(3)).Return(nil, user.ErrNotFound)
	users.On("GetByID", mock.Anything, int64(4)).Return(nil, errors.New("mongo down"))

	handler := middleware.RequireAdmin(users, discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	tests := []struct {
		id     int64
		status int
		body   string
	}{
		{1, http.StatusCreated, ""},
		{2, http.StatusForbidden, "Admin access required"},
		{3, http.StatusUnauthorized, "User not found"},
		{4, http.StatusInternalServerError, "Authentication failed"},
		{0, http.StatusUnauthorized, "Access token is required"},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, adminRequest(tt.id))

		assert.Equal(t, tt.status, rr.Code, "user %d", tt.id)
		assert.Contains(t, rr.Body.String(), tt.body)
	}
}

func TestPanic(t *testing.T) {
	handler := middleware.Panic(discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rr.Body.String())
}

func TestMetrics(t *testing.T) {
	obs := middleware.RequestObserver{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "requests"}, []string{"route", "method", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "duration"}, []string{"route", "method"}),
	}

	r := mux.NewRouter()
	r.Use(middleware.Metrics(obs))
	r.HandleFunc("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(obs.Requests.WithLabelValues("/api/products/{id}", http.MethodGet, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(obs.Duration))
}
