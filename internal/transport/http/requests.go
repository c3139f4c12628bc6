package httptransport

import (
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"

	dErrors "clinicore/pkg/domain-errors"
)

// dateLayout is the wire format for dates.
const dateLayout = "2006-01-02"

// registerPatientRequest is the JSON body for POST /patients. Transport
// validation rejects structurally broken input early; the domain enforces
// the real rules.
type registerPatientRequest struct {
	FirstName   string `json:"first_name" valid:"required"`
	LastName    string `json:"last_name" valid:"required"`
	DNI         string `json:"dni" valid:"required"`
	DateOfBirth string `json:"date_of_birth" valid:"required"`
	Email       string `json:"email" valid:"required,email"`
	Phone       string `json:"phone" valid:"required"`
	Street      string `json:"street" valid:"required"`
	City        string `json:"city" valid:"required"`
	State       string `json:"state" valid:"required"`
	PostalCode  string `json:"postal_code" valid:"required"`
	Country     string `json:"country" valid:"required"`
}

func (r registerPatientRequest) validate() (time.Time, error) {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
	}
	dateOfBirth, err := time.Parse(dateLayout, r.DateOfBirth)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("date_of_birth must be in %s format", dateLayout))
	}
	return dateOfBirth, nil
}

// registerUserRequest is the JSON body for POST /auth/register.
type registerUserRequest struct {
	Username string `json:"username" valid:"required"`
	Email    string `json:"email" valid:"required,email"`
	Password string `json:"password" valid:"required"`
}

func (r registerUserRequest) validate() error {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
	}
	return nil
}

// loginRequest is the JSON body for POST /auth/login. No shape validation
// beyond presence: malformed credentials must fail exactly like wrong ones,
// so the service decides.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest is the JSON body for POST /auth/refresh. Unvalidated for
// the same reason as loginRequest.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
