package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"postcraft/internal/http/handlers"
	"postcraft/internal/middleware"
)

func newTestRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	app := handlers.NewApp(handlers.Options{Logger: &logger})
	return NewRouter(app, logger, []string{"http://localhost:3000"}), &logs
}

func TestRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/v1/healthz", http.StatusOK},
		{http.MethodGet, "/v1/openapi.json", http.StatusOK},
		{http.MethodGet, "/v1/docs", http.StatusOK},
		{http.MethodGet, "/api/templates", http.StatusOK},
		{http.MethodPost, "/api/analyze", http.StatusServiceUnavailable},
		{http.MethodPost, "/api/prompt", http.StatusBadRequest},
		{http.MethodPost, "/api/templates/missing/apply", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if rr.Header().Get(middleware.RequestIDHeader) == "" {
				t.Fatal("response has no request id")
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestAccessLog(t *testing.T) {
	router, logs := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	if !bytes.Contains(logs.Bytes(), []byte(`"path":"/v1/healthz"`)) {
		t.Fatalf("access log missing path: %s", logs.String())
	}
}
