package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-records/internal/clinic"
	"github.com/hackgods/clinic-records/internal/metrics"
)

type RouterConfig struct {
	Clinic       *clinic.Clinic
	Metrics      *metrics.Metrics // optional
	Logger       *zap.Logger
	Dependencies map[string]Pinger
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	h := &handlers{
		clinic:   cfg.Clinic,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))
	if cfg.Metrics != nil {
		h.errors = cfg.Metrics
		r.Use(cfg.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	health := NewHealthHandler(cfg.Dependencies, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/patients", func(r chi.Router) {
		r.Post("/", h.registerPatient)
		r.Get("/", h.listPatients)
		r.Get("/{id}", h.getPatient)
		r.Get("/{id}/history", h.getHistory)
	})

	r.Route("/doctors", func(r chi.Router) {
		r.Post("/", h.registerDoctor)
		r.Get("/", h.listDoctors)
		r.Get("/{license}", h.getDoctor)
		r.Post("/{license}/specialties", h.addSpecialty)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", h.scheduleAppointment)
		r.Get("/{id}", h.getAppointment)
		r.Post("/{id}/cancel", h.cancelAppointment)
		r.Post("/{id}/complete", h.completeAppointment)
	})

	r.Post("/prescriptions", h.issuePrescription)

	return r
}
