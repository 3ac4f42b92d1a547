package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-records/internal/events"
)

func TestEventSinkCountsByType(t *testing.T) {
	m := New()
	sink := m.EventSink()

	for _, typ := range []string{"appointment.scheduled", "appointment.scheduled", "patient.registered"} {
		require.NoError(t, sink.Write(context.Background(), events.Event{Type: typ}))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events.WithLabelValues("appointment.scheduled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events.WithLabelValues("patient.registered")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/patients/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/patients/{id}", "404")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveDomainError("slot_taken")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `clinic_domain_errors_total{code="slot_taken"} 1`)
}
