// Package store persists Patient aggregates. Implementations must keep the
// DNI unique across stored patients; Save is an upsert keyed by PatientID.
package store

import (
	"context"

	"clinicore/internal/patient/domain"
)

// PatientStore is the persistence contract consumed by the patient service.
// Lookups return sentinel.ErrNotFound when no patient matches.
type PatientStore interface {
	FindByID(ctx context.Context, id domain.PatientID) (*domain.Patient, error)
	FindByDNI(ctx context.Context, dni domain.DNI) (*domain.Patient, error)
	FindAll(ctx context.Context) ([]*domain.Patient, error)
	Exists(ctx context.Context, dni domain.DNI) (bool, error)
	Save(ctx context.Context, patient *domain.Patient) error
	Delete(ctx context.Context, id domain.PatientID) error
}
