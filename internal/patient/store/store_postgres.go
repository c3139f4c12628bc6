package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"clinicore/internal/patient/domain"
	"clinicore/pkg/platform/sentinel"
)

// PostgresStore persists patients in PostgreSQL. The patients table carries a
// unique index on dni; violations surface as sentinel.ErrConflict.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed patient store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const patientColumns = `id, first_name, last_name, dni, date_of_birth, email, phone, street, city, state, postal_code, country, created_at, updated_at`

func (s *PostgresStore) FindByID(ctx context.Context, id domain.PatientID) (*domain.Patient, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id.String())
	patient, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find patient by id: %w", err)
	}
	return patient, nil
}

func (s *PostgresStore) FindByDNI(ctx context.Context, dni domain.DNI) (*domain.Patient, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+patientColumns+` FROM patients WHERE dni = $1`, dni.Value())
	patient, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find patient by dni: %w", err)
	}
	return patient, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*domain.Patient, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []*domain.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (s *PostgresStore) Exists(ctx context.Context, dni domain.DNI) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE dni = $1)`, dni.Value()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check patient dni: %w", err)
	}
	return exists, nil
}

// Save upserts by id. A dni unique violation from another patient maps to
// sentinel.ErrConflict.
func (s *PostgresStore) Save(ctx context.Context, patient *domain.Patient) error {
	if patient == nil {
		return fmt.Errorf("patient is required")
	}
	contact := patient.ContactInfo()
	address := contact.Address()
	query := `
		INSERT INTO patients (` + patientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			dni = EXCLUDED.dni,
			date_of_birth = EXCLUDED.date_of_birth,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			postal_code = EXCLUDED.postal_code,
			country = EXCLUDED.country,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		patient.ID().String(),
		patient.FullName().FirstName(),
		patient.FullName().LastName(),
		patient.DNI().Value(),
		patient.DateOfBirth().Value(),
		contact.Email().Value(),
		contact.Phone().Value(),
		address.Street(),
		address.City(),
		address.State(),
		address.PostalCode(),
		address.Country(),
		patient.CreatedAt(),
		patient.UpdatedAt(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save patient: %w", err)
	}
	return nil
}

// Delete removes a patient. Deleting an absent id is a no-op.
func (s *PostgresStore) Delete(ctx context.Context, id domain.PatientID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id.String()); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*domain.Patient, error) {
	var (
		rawID, rawFirstName, rawLastName, rawDNI string
		rawEmail, rawPhone                       string
		street, city, state, postalCode, country string
		dateOfBirth, createdAt, updatedAt        time.Time
	)
	err := row.Scan(&rawID, &rawFirstName, &rawLastName, &rawDNI, &dateOfBirth, &rawEmail, &rawPhone,
		&street, &city, &state, &postalCode, &country, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	id, err := domain.ParsePatientID(rawID)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewFullName(rawFirstName, rawLastName)
	if err != nil {
		return nil, err
	}
	dni, err := domain.NewDNI(rawDNI)
	if err != nil {
		return nil, err
	}
	dob, err := domain.NewDateOfBirth(dateOfBirth, createdAt)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	phone, err := domain.NewPhoneNumber(rawPhone)
	if err != nil {
		return nil, err
	}
	address, err := domain.NewAddress(street, city, state, postalCode, country)
	if err != nil {
		return nil, err
	}
	contact, err := domain.NewContactInfo(email, phone, address)
	if err != nil {
		return nil, err
	}
	return domain.RehydratePatient(id, name, dni, dob, contact, createdAt, updatedAt), nil
}
