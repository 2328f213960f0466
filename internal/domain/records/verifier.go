package records

import (
	"context"
	"errors"
)

// IdentityVerifier resolves the patient a request is acting as.
type IdentityVerifier interface {
	Verify(ctx context.Context, id Identity) (*Patient, error)
}

// NameMatchVerifier accepts a request when the supplied first and last name
// exactly match the patient stored under the supplied DOB. It is not a
// credential check.
type NameMatchVerifier struct {
	patients PatientRepository
}

func NewNameMatchVerifier(patients PatientRepository) *NameMatchVerifier {
	return &NameMatchVerifier{patients: patients}
}

// Verify checks presence, then existence, then the name match. The order
// decides which error a malformed request receives.
func (v *NameMatchVerifier) Verify(ctx context.Context, id Identity) (*Patient, error) {
	if !id.Complete() {
		return nil, ErrMissingIdentity
	}
	p, err := v.patients.GetByDOB(ctx, id.DOB)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.FirstName != id.FirstName || p.LastName != id.LastName {
		return nil, ErrIdentityMismatch
	}
	return p, nil
}
