package records

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when no entry exists for a DOB.
var ErrNotFound = errors.New("not found")

// ErrExists is returned by PatientRepository.Create when the DOB is taken.
var ErrExists = errors.New("already exists")

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByDOB(ctx context.Context, dob string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, dob string) error
	List(ctx context.Context) ([]*Patient, error)
}

type RecordRepository interface {
	Put(ctx context.Context, dob string, r *MedicalRecord) error
	GetByDOB(ctx context.Context, dob string) (*MedicalRecord, error)
	// Delete removes the record for dob. Deleting a missing key is not an error.
	Delete(ctx context.Context, dob string) error
	List(ctx context.Context) (map[string]*MedicalRecord, error)
}
