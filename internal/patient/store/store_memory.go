package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"clinicore/internal/patient/domain"
	"clinicore/pkg/platform/sentinel"
)

// MemoryStore keeps patients in process memory. Suitable for tests and local
// development; state is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	patients map[string]*domain.Patient
}

// NewMemoryStore creates an empty in-memory patient store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{patients: make(map[string]*domain.Patient)}
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.PatientID) (*domain.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patient, ok := s.patients[id.String()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return patient, nil
}

func (s *MemoryStore) FindByDNI(_ context.Context, dni domain.DNI) (*domain.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, patient := range s.patients {
		if patient.DNI().Equals(dni) {
			return patient, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindAll returns all patients ordered by registration time so listings are
// stable across calls.
func (s *MemoryStore) FindAll(_ context.Context) ([]*domain.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*domain.Patient, 0, len(s.patients))
	for _, patient := range s.patients {
		all = append(all, patient)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt().Equal(all[j].CreatedAt()) {
			return all[i].ID().String() < all[j].ID().String()
		}
		return all[i].CreatedAt().Before(all[j].CreatedAt())
	})
	return all, nil
}

func (s *MemoryStore) Exists(_ context.Context, dni domain.DNI) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, patient := range s.patients {
		if patient.DNI().Equals(dni) {
			return true, nil
		}
	}
	return false, nil
}

// Save upserts by PatientID. Saving a patient whose DNI belongs to a
// different stored patient fails with sentinel.ErrConflict.
func (s *MemoryStore) Save(_ context.Context, patient *domain.Patient) error {
	if patient == nil {
		return fmt.Errorf("patient is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.patients {
		if existing.DNI().Equals(patient.DNI()) && !existing.Equals(patient) {
			return sentinel.ErrConflict
		}
	}
	s.patients[patient.ID().String()] = patient
	return nil
}

// Delete removes a patient. Deleting an absent ID is a no-op.
func (s *MemoryStore) Delete(_ context.Context, id domain.PatientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.patients, id.String())
	return nil
}
