package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clinicore/internal/audit"
	"clinicore/internal/events"
	"clinicore/internal/patient/domain"
	"clinicore/internal/patient/service"
	"clinicore/internal/patient/store"
	dErrors "clinicore/pkg/domain-errors"
	"clinicore/pkg/requestcontext"
)

// countingStore wraps the memory store to observe writes.
type countingStore struct {
	*store.MemoryStore
	saves int
}

func (c *countingStore) Save(ctx context.Context, patient *domain.Patient) error {
	c.saves++
	return c.MemoryStore.Save(ctx, patient)
}

type PatientServiceSuite struct {
	suite.Suite
	ctx      context.Context
	patients *countingStore
	auditor  *audit.Publisher
	store    *audit.InMemoryStore
	events   *events.InMemoryPublisher
	svc      *service.Service
	now      time.Time
}

func TestPatientServiceSuite(t *testing.T) {
	suite.Run(t, new(PatientServiceSuite))
}

func (s *PatientServiceSuite) SetupTest() {
	s.now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.patients = &countingStore{MemoryStore: store.NewMemoryStore()}
	s.store = audit.NewInMemoryStore()
	s.auditor = audit.NewPublisher(s.store)
	s.events = events.NewInMemoryPublisher()
	s.svc = service.New(s.patients,
		service.WithAuditPublisher(s.auditor),
		service.WithEventPublisher(s.events),
	)
}

func (s *PatientServiceSuite) validRequest() service.RegisterPatientRequest {
	return service.RegisterPatientRequest{
		FirstName:   "Ana",
		LastName:    "Muñoz",
		DNI:         "12345678Z",
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Email:       " Ana@Example.com ",
		Phone:       "+34 612 345 678",
		Street:      "Calle Mayor 1",
		City:        "Madrid",
		State:       "Madrid",
		PostalCode:  "28001",
		Country:     "España",
	}
}

func (s *PatientServiceSuite) TestRegisterPatient() {
	s.Run("registers a valid patient", func() {
		result, err := s.svc.RegisterPatient(s.ctx, s.validRequest())
		s.Require().NoError(err)
		s.NotEmpty(result.PatientID)
		s.Equal("Ana Muñoz", result.FullName)
		s.Equal("ana@example.com", result.Email)
		s.NotEmpty(result.Message)

		stored, err := s.patients.FindByDNI(s.ctx, domain.MustDNI("12345678Z"))
		s.Require().NoError(err)
		s.Equal(s.now, stored.CreatedAt())
	})

	s.Run("publishes a registration event", func() {
		published := s.events.Named(domain.EventPatientRegistered)
		s.Require().Len(published, 1)
		evt, ok := published[0].(domain.PatientRegisteredEvent)
		s.Require().True(ok)
		s.Equal("12345678Z", evt.DNI)
		s.Equal("ana@example.com", evt.Email)
	})

	s.Run("emits an audit event", func() {
		recent, err := s.store.ListRecent(s.ctx, 0)
		s.Require().NoError(err)
		s.Require().Len(recent, 1)
		s.Equal(audit.ActionPatientRegistered, recent[0].Action)
	})
}

func (s *PatientServiceSuite) TestRegisterPatientDuplicateDNI() {
	s.Run("second registration with the same DNI writes nothing", func() {
		_, err := s.svc.RegisterPatient(s.ctx, s.validRequest())
		s.Require().NoError(err)
		savesAfterFirst := s.patients.saves

		duplicate := s.validRequest()
		duplicate.FirstName, duplicate.LastName = "Otra", "Persona"
		duplicate.Email = "otra@example.com"
		_, err = s.svc.RegisterPatient(s.ctx, duplicate)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal(savesAfterFirst, s.patients.saves, "duplicate must not reach the store")
	})

	s.Run("lowercase dni still collides", func() {
		duplicate := s.validRequest()
		duplicate.DNI = "12345678z"
		_, err := s.svc.RegisterPatient(s.ctx, duplicate)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *PatientServiceSuite) TestRegisterPatientValidation() {
	s.Run("invalid DNI is rejected before any store access", func() {
		req := s.validRequest()
		req.DNI = "not-a-dni"
		_, err := s.svc.RegisterPatient(s.ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Zero(s.patients.saves)
	})

	s.Run("invalid email is rejected", func() {
		req := s.validRequest()
		req.Email = "not-an-email"
		_, err := s.svc.RegisterPatient(s.ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("future date of birth is rejected", func() {
		req := s.validRequest()
		req.DateOfBirth = s.now.Add(48 * time.Hour)
		_, err := s.svc.RegisterPatient(s.ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("missing address is rejected without a write", func() {
		req := s.validRequest()
		req.DNI = "87654321X"
		req.Street, req.City, req.State, req.PostalCode, req.Country = "", "", "", "", ""
		_, err := s.svc.RegisterPatient(s.ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Zero(s.patients.saves)
	})

	s.Run("partial address is rejected", func() {
		req := s.validRequest()
		req.DNI = "11111111A"
		req.PostalCode = ""
		_, err := s.svc.RegisterPatient(s.ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// failingPublisher simulates a broker outage.
type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error {
	return errors.New("broker down")
}

func (s *PatientServiceSuite) TestRegisterPatientPublisherDown() {
	svc := service.New(s.patients, service.WithEventPublisher(failingPublisher{}))

	_, err := svc.RegisterPatient(s.ctx, s.validRequest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

	stored, err := s.patients.FindByDNI(s.ctx, domain.MustDNI("12345678Z"))
	s.Require().NoError(err, "the write must survive a publish failure")
	s.Equal("Ana Muñoz", stored.FullName().Value())
}

func (s *PatientServiceSuite) TestGetPatient() {
	s.Run("unknown id maps to not found", func() {
		_, err := s.svc.GetPatient(s.ctx, "no-such-patient")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("blank id is a validation error", func() {
		_, err := s.svc.GetPatient(s.ctx, "  ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("returns a registered patient with computed age", func() {
		result, err := s.svc.RegisterPatient(s.ctx, s.validRequest())
		s.Require().NoError(err)

		view, err := s.svc.GetPatient(s.ctx, result.PatientID)
		s.Require().NoError(err)
		s.Equal("Ana Muñoz", view.FullName)
		s.Equal("12345678Z", view.DNI)
		s.Equal(36, view.Age)
		s.Contains(view.Address, "Madrid")
	})
}

func (s *PatientServiceSuite) TestListPatients() {
	s.Run("empty store lists nothing", func() {
		views, err := s.svc.ListPatients(s.ctx)
		s.Require().NoError(err)
		s.Empty(views)
	})

	s.Run("lists registered patients", func() {
		_, err := s.svc.RegisterPatient(s.ctx, s.validRequest())
		s.Require().NoError(err)

		second := s.validRequest()
		second.DNI = "87654321X"
		second.Email = "second@example.com"
		_, err = s.svc.RegisterPatient(s.ctx, second)
		s.Require().NoError(err)

		views, err := s.svc.ListPatients(s.ctx)
		s.Require().NoError(err)
		s.Len(views, 2)
	})
}
