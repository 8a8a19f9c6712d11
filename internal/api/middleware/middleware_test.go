package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())
	_, _ = w.Write([]byte(userID))
}

func TestAuth(t *testing.T) {
	h := Auth(http.HandlerFunc(echoUser))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "alice")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	h := Auth(AdminOnly(http.HandlerFunc(echoUser)))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "alice")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r.Header.Set(HeaderUserRole, "Admin")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetRequestID(r.Context())))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	existing := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, existing)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, existing, w.Header().Get(HeaderRequestID))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("test")

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/rooms/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/rooms/1", "/rooms/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/rooms/{id}", "404")))
}
