package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dentalia/clinic-registry/internal/blobstore"
	"github.com/dentalia/clinic-registry/internal/clinic"
	"github.com/dentalia/clinic-registry/internal/http/handlers"
	"github.com/dentalia/clinic-registry/pkg/logging"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.NewWithWriter("error", io.Discard)
	registry, err := clinic.NewRegistry(context.Background(), clinic.Options{
		Store:  blobstore.NewMemory(),
		Seed:   clinic.DefaultSeed(time.Now()),
		Logger: logger,
	})
	if err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	return New(&Config{
		Logger:             logger,
		ProviderHandler:    handlers.NewProviderHandler(registry, logger),
		PatientHandler:     handlers.NewPatientHandler(registry, logger),
		AppointmentHandler: handlers.NewAppointmentHandler(registry, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthRoute(t *testing.T) {
	h := newTestHandler(t)
	if rec := get(t, h, "/health"); rec.Code != http.StatusOK {
		t.Errorf("GET /health = %d", rec.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	h := newTestHandler(t)
	if rec := get(t, h, "/metrics"); rec.Code != http.StatusOK {
		t.Errorf("GET /metrics = %d", rec.Code)
	}
}

func TestEntityRoutesMounted(t *testing.T) {
	h := newTestHandler(t)
	for _, target := range []string{"/providers", "/patients", "/appointments"} {
		if rec := get(t, h, target); rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d", target, rec.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(t)
	if rec := get(t, h, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d", rec.Code)
	}
}
