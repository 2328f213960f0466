package records

import (
	"errors"
	"net/http"
)

// DomainError is a request-local failure with the status and message
// returned to the client verbatim.
type DomainError struct {
	Status  int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrMissingIdentity      = &DomainError{http.StatusBadRequest, "DOB, firstname, and lastname are required"}
	ErrPatientNotFound      = &DomainError{http.StatusNotFound, "Patient not found"}
	ErrIdentityMismatch     = &DomainError{http.StatusUnauthorized, "First or last name did not match the DOB"}
	ErrRecordNotFound       = &DomainError{http.StatusNotFound, "Medical record not found"}
	ErrDuplicateDOB         = &DomainError{http.StatusConflict, "Patient with this DOB already exists"}
	ErrPrescriptionNotFound = &DomainError{http.StatusNotFound, "Prescription not found"}

	ErrMissingFields              = &DomainError{http.StatusBadRequest, "DOB, firstname, lastname, phone, and insurance validity are required"}
	ErrPhoneRequired              = &DomainError{http.StatusBadRequest, "Phone number is required"}
	ErrInsuranceRequired          = &DomainError{http.StatusBadRequest, "Insurance validity status is required"}
	ErrPrescriptionFieldsRequired = &DomainError{http.StatusBadRequest, "Prescription ID, fill status, and refills are required"}
	ErrInvalidBody                = &DomainError{http.StatusBadRequest, "Invalid request body"}
)

// StatusOf returns the HTTP status for err, or 500 for anything that is not
// a DomainError.
func StatusOf(err error) int {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Status
	}
	return http.StatusInternalServerError
}
