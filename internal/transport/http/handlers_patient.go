package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	patientservice "clinicore/internal/patient/service"
	dErrors "clinicore/pkg/domain-errors"
)

//go:generate mockgen -source=router.go -destination=mocks/mocks.go -package=mocks PatientService,AuthService

// PatientHandler serves the patient endpoints.
type PatientHandler struct {
	patients PatientService
}

// NewPatientHandler constructs a PatientHandler.
func NewPatientHandler(patients PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

func (h *PatientHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}
	dateOfBirth, err := req.validate()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.patients.RegisterPatient(r.Context(), patientservice.RegisterPatientRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DNI:         req.DNI,
		DateOfBirth: dateOfBirth,
		Email:       req.Email,
		Phone:       req.Phone,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *PatientHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.patients.GetPatient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *PatientHandler) handleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.patients.ListPatients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patients": views})
}
