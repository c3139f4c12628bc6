// Package service orchestrates patient registration use cases. Input comes
// in as primitives, is promoted to value objects, and leaves as primitives
// again; domain types never cross the transport boundary.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"clinicore/internal/audit"
	"clinicore/internal/events"
	"clinicore/internal/patient/domain"
	"clinicore/internal/platform/metrics"
	"clinicore/pkg/attrs"
	dErrors "clinicore/pkg/domain-errors"
	"clinicore/pkg/platform/sentinel"
	"clinicore/pkg/requestcontext"
)

// PatientStore is the persistence seam consumed by the service.
type PatientStore interface {
	FindByID(ctx context.Context, id domain.PatientID) (*domain.Patient, error)
	FindByDNI(ctx context.Context, dni domain.DNI) (*domain.Patient, error)
	FindAll(ctx context.Context) ([]*domain.Patient, error)
	Exists(ctx context.Context, dni domain.DNI) (bool, error)
	Save(ctx context.Context, patient *domain.Patient) error
}

// AuditPublisher receives audit events emitted by the service.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates patient registration and lookup.
type Service struct {
	patients       PatientStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	eventPublisher events.Publisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

// Option configures a Service.
type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithEventPublisher(publisher events.Publisher) Option {
	return func(s *Service) {
		s.eventPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(patients PatientStore, opts ...Option) *Service {
	s := &Service{
		patients: patients,
		tracer:   otel.Tracer("clinicore/patient"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterPatientRequest carries the raw registration input.
type RegisterPatientRequest struct {
	FirstName   string
	LastName    string
	DNI         string
	DateOfBirth time.Time
	Email       string
	Phone       string
	Street      string
	City        string
	State       string
	PostalCode  string
	Country     string
}

// RegisterPatientResult is returned on successful registration.
type RegisterPatientResult struct {
	PatientID string `json:"patient_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// PatientView is the read model returned by lookups.
type PatientView struct {
	PatientID   string    `json:"patient_id"`
	FullName    string    `json:"full_name"`
	DNI         string    `json:"dni"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Age         int       `json:"age"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterPatient validates the input, enforces DNI uniqueness, and persists
// a new patient. The DNI check runs before any other validation so a
// duplicate registration never reaches the store.
func (s *Service) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*RegisterPatientResult, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterPatient")
	defer span.End()

	dni, err := domain.NewDNI(req.DNI)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid DNI")
	}

	exists, err := s.patients.Exists(ctx, dni)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check DNI")
	}
	if exists {
		return nil, dErrors.New(dErrors.CodeConflict, "a patient with this DNI already exists")
	}

	fullName, err := domain.NewFullName(req.FirstName, req.LastName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid full name")
	}
	now := requestcontext.Now(ctx)
	dateOfBirth, err := domain.NewDateOfBirth(req.DateOfBirth, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid date of birth")
	}
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid email")
	}
	phone, err := domain.NewPhoneNumber(req.Phone)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid phone number")
	}
	address, err := domain.NewAddress(req.Street, req.City, req.State, req.PostalCode, req.Country)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid address")
	}
	contact, err := domain.NewContactInfo(email, phone, address)
	if err != nil {
		return nil, err
	}

	patient, err := domain.RegisterPatient(domain.NewPatientID(), fullName, dni, dateOfBirth, contact, now)
	if err != nil {
		return nil, err
	}

	if err := s.patients.Save(ctx, patient); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a patient with this DNI already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save patient")
	}

	if err := s.publishEvent(ctx, domain.NewPatientRegisteredEvent(patient, now)); err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.ActionPatientRegistered,
		"subject", patient.ID().String(), "email", email.Value())
	s.incrementRegistered()

	return &RegisterPatientResult{
		PatientID: patient.ID().String(),
		FullName:  patient.FullName().Value(),
		Email:     email.Value(),
		Message:   "patient registered successfully",
	}, nil
}

// GetPatient fetches a single patient by id.
func (s *Service) GetPatient(ctx context.Context, rawID string) (*PatientView, error) {
	ctx, span := s.tracer.Start(ctx, "GetPatient")
	defer span.End()

	id, err := domain.ParsePatientID(rawID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid patient id")
	}

	patient, err := s.patients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "patient not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load patient")
	}
	view := s.toView(ctx, patient)
	return &view, nil
}

// ListPatients returns all registered patients ordered by registration time.
func (s *Service) ListPatients(ctx context.Context) ([]PatientView, error) {
	ctx, span := s.tracer.Start(ctx, "ListPatients")
	defer span.End()

	patients, err := s.patients.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list patients")
	}
	views := make([]PatientView, 0, len(patients))
	for _, patient := range patients {
		views = append(views, s.toView(ctx, patient))
	}
	return views, nil
}

func (s *Service) toView(ctx context.Context, patient *domain.Patient) PatientView {
	contact := patient.ContactInfo()
	return PatientView{
		PatientID:   patient.ID().String(),
		FullName:    patient.FullName().Value(),
		DNI:         patient.DNI().Value(),
		DateOfBirth: patient.DateOfBirth().Value(),
		Age:         patient.Age(requestcontext.Now(ctx)),
		Email:       contact.Email().Value(),
		Phone:       contact.Phone().Value(),
		Address:     contact.Address().String(),
		CreatedAt:   patient.CreatedAt(),
		UpdatedAt:   patient.UpdatedAt(),
	}
}

// publishEvent awaits the publisher; a failure surfaces to the caller even
// though the preceding save is not rolled back.
func (s *Service) publishEvent(ctx context.Context, event events.Event) error {
	if s.eventPublisher == nil {
		return nil
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to publish event",
				"event", event.EventName(), "error", err)
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to publish event")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if s.logger != nil {
		args := append(attributes, "event", string(action), "log_type", "audit")
		s.logger.InfoContext(ctx, string(action), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    action,
		Subject:   attrs.ExtractString(attributes, "subject"),
		Email:     attrs.ExtractString(attributes, "email"),
		RequestID: requestID,
	})
}

func (s *Service) incrementRegistered() {
	if s.metrics != nil {
		s.metrics.PatientsRegistered.Inc()
	}
}
