// Package httptransport is the thin HTTP layer. It delegates to the services
// without embedding business logic so transport concerns remain isolated.
package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clinicore/internal/auth/service"
	patientservice "clinicore/internal/patient/service"
	dErrors "clinicore/pkg/domain-errors"
	httpErrors "clinicore/pkg/http-errors"
)

// PatientService is the patient use case surface consumed by the handlers.
type PatientService interface {
	RegisterPatient(ctx context.Context, req patientservice.RegisterPatientRequest) (*patientservice.RegisterPatientResult, error)
	GetPatient(ctx context.Context, id string) (*patientservice.PatientView, error)
	ListPatients(ctx context.Context) ([]patientservice.PatientView, error)
}

// AuthService is the auth use case surface consumed by the handlers.
type AuthService interface {
	RegisterUser(ctx context.Context, req service.RegisterUserRequest) (*service.RegisterUserResult, error)
	Authenticate(ctx context.Context, req service.AuthenticateRequest) (*service.AuthenticateResult, error)
	Refresh(ctx context.Context, req service.RefreshRequest) (*service.AuthenticateResult, error)
}

// NewRouter wires all public endpoints.
func NewRouter(patients PatientService, auth AuthService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(withRequestContext)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	patientHandler := NewPatientHandler(patients)
	r.Route("/patients", func(r chi.Router) {
		r.Post("/", patientHandler.handleRegister)
		r.Get("/", patientHandler.handleList)
		r.Get("/{id}", patientHandler.handleGet)
	})

	authHandler := NewAuthHandler(auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.handleRegister)
		r.Post("/login", authHandler.handleLogin)
		r.Post("/refresh", authHandler.handleRefresh)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses. Keeping
// it here ensures consistent JSON error envelopes.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	writeJSON(w, httpErrors.ToHTTPStatus(code), map[string]string{
		"error": string(code),
	})
}
