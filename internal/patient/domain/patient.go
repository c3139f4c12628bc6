package domain

import (
	"time"

	dErrors "clinicore/pkg/domain-errors"
)

// Patient is the registration aggregate. Identity is the PatientID; the DNI
// is a natural key enforced by the store, not by the entity. Mutators follow
// one discipline: no-op when the new value equals the current one, otherwise
// replace and bump updatedAt.
type Patient struct {
	id          PatientID
	fullName    FullName
	dni         DNI
	dateOfBirth DateOfBirth
	contactInfo ContactInfo
	createdAt   time.Time
	updatedAt   time.Time
}

// RegisterPatient creates a freshly registered Patient. Both timestamps start
// at now.
func RegisterPatient(id PatientID, fullName FullName, dni DNI, dateOfBirth DateOfBirth, contactInfo ContactInfo, now time.Time) (*Patient, error) {
	if id.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "patient ID is required")
	}
	if fullName.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "full name is required")
	}
	if dni.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "DNI is required")
	}
	if dateOfBirth.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "date of birth is required")
	}
	if contactInfo.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact info is required")
	}
	return &Patient{
		id:          id,
		fullName:    fullName,
		dni:         dni,
		dateOfBirth: dateOfBirth,
		contactInfo: contactInfo,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RehydratePatient reconstructs a Patient from persisted state. No invariant
// checks beyond the value objects themselves; stored state is trusted.
func RehydratePatient(id PatientID, fullName FullName, dni DNI, dateOfBirth DateOfBirth, contactInfo ContactInfo, createdAt, updatedAt time.Time) *Patient {
	return &Patient{
		id:          id,
		fullName:    fullName,
		dni:         dni,
		dateOfBirth: dateOfBirth,
		contactInfo: contactInfo,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ChangeFullName replaces the name unless it is unchanged.
func (p *Patient) ChangeFullName(fullName FullName, now time.Time) {
	if p.fullName.Equals(fullName) {
		return
	}
	p.fullName = fullName
	p.updatedAt = now
}

// ChangeDNI replaces the document number unless it is unchanged.
func (p *Patient) ChangeDNI(dni DNI, now time.Time) {
	if p.dni.Equals(dni) {
		return
	}
	p.dni = dni
	p.updatedAt = now
}

// ChangeDateOfBirth replaces the birth date unless it is unchanged.
func (p *Patient) ChangeDateOfBirth(dateOfBirth DateOfBirth, now time.Time) {
	if p.dateOfBirth.Equals(dateOfBirth) {
		return
	}
	p.dateOfBirth = dateOfBirth
	p.updatedAt = now
}

// ChangeContactInfo replaces the contact details unless they are unchanged.
func (p *Patient) ChangeContactInfo(contactInfo ContactInfo, now time.Time) {
	if p.contactInfo.Equals(contactInfo) {
		return
	}
	p.contactInfo = contactInfo
	p.updatedAt = now
}

// ChangeAddress replaces the postal address, keeping email and phone.
func (p *Patient) ChangeAddress(address Address, now time.Time) {
	if p.contactInfo.Address() == address {
		return
	}
	p.contactInfo.address = address
	p.updatedAt = now
}

// Age returns the patient's age in completed years at now.
func (p *Patient) Age(now time.Time) int {
	return p.dateOfBirth.Age(now)
}

// Equals is identity-based: two Patients are equal iff their IDs are equal.
func (p *Patient) Equals(other *Patient) bool {
	if other == nil {
		return false
	}
	return p.id.Equals(other.id)
}

func (p *Patient) ID() PatientID            { return p.id }
func (p *Patient) FullName() FullName       { return p.fullName }
func (p *Patient) DNI() DNI                 { return p.dni }
func (p *Patient) DateOfBirth() DateOfBirth { return p.dateOfBirth }
func (p *Patient) ContactInfo() ContactInfo { return p.contactInfo }
func (p *Patient) CreatedAt() time.Time     { return p.createdAt }
func (p *Patient) UpdatedAt() time.Time     { return p.updatedAt }
