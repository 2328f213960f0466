package records

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Service implements the patient endpoints on top of the two repositories.
// Every method runs under one mutex, so verification, lookup and mutation of
// a request are never interleaved with another request's mutation.
type Service struct {
	mu       sync.Mutex
	patients PatientRepository
	records  RecordRepository
	verifier IdentityVerifier
	logger   zerolog.Logger
}

// NewService wires a Service. A nil verifier defaults to name matching
// against patients.
func NewService(patients PatientRepository, records RecordRepository, verifier IdentityVerifier, logger zerolog.Logger) *Service {
	if verifier == nil {
		verifier = NewNameMatchVerifier(patients)
	}
	return &Service{
		patients: patients,
		records:  records,
		verifier: verifier,
		logger:   logger.With().Str("component", "records").Logger(),
	}
}

func (s *Service) GetRecord(ctx context.Context, id Identity) (*MedicalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.verifier.Verify(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordFor(ctx, p.DOB)
}

func (s *Service) GetDetails(ctx context.Context, id Identity) (*PatientDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.verifier.Verify(ctx, id)
	if err != nil {
		return nil, err
	}
	rec, err := s.recordFor(ctx, p.DOB)
	if err != nil {
		return nil, err
	}
	return &PatientDetails{Patient: *p, MedicalRecord: *rec}, nil
}

// CreatePatient registers a new patient. No medical record is created.
func (s *Service) CreatePatient(ctx context.Context, in CreatePatientInput) (*Patient, error) {
	if in.DOB == "" || in.FirstName == "" || in.LastName == "" || in.Phone == "" || in.InsuranceValid == nil {
		return nil, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Patient{
		DOB:            in.DOB,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		InsuranceValid: *in.InsuranceValid,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		if errors.Is(err, ErrExists) {
			return nil, ErrDuplicateDOB
		}
		return nil, fmt.Errorf("create patient: %w", err)
	}
	s.logger.Info().Msg("patient created")
	return p, nil
}

func (s *Service) UpdatePhone(ctx context.Context, id Identity, phone *string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.verifier.Verify(ctx, id)
	if err != nil {
		return nil, err
	}
	if phone == nil || *phone == "" {
		return nil, ErrPhoneRequired
	}

	p.Phone = *phone
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update phone: %w", err)
	}
	s.logger.Info().Msg("patient phone updated")
	return p, nil
}

func (s *Service) UpdateInsurance(ctx context.Context, id Identity, valid *bool) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.verifier.Verify(ctx, id)
	if err != nil {
		return nil, err
	}
	if valid == nil {
		return nil, ErrInsuranceRequired
	}

	p.InsuranceValid = *valid
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update insurance: %w", err)
	}
	s.logger.Info().Bool("insurance_valid", *valid).Msg("patient insurance updated")
	return p, nil
}

// UpdatePrescription overwrites the fill status and refill count of the
// prescription whose id equals upd.PrescriptionID.
func (s *Service) UpdatePrescription(ctx context.Context, id Identity, upd PrescriptionUpdate) (*Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.verifier.Verify(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.PrescriptionID == nil || upd.FillStatus == nil || upd.Refills == nil {
		return nil, ErrPrescriptionFieldsRequired
	}

	rec, err := s.recordFor(ctx, p.DOB)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range rec.Prescriptions {
		if upd.PrescriptionID.Matches(rec.Prescriptions[i].ID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrPrescriptionNotFound
	}

	rx := &rec.Prescriptions[idx]
	rx.FillStatus = *upd.FillStatus
	rx.Refills = *upd.Refills
	if err := s.records.Put(ctx, p.DOB, rec); err != nil {
		return nil, fmt.Errorf("update prescription: %w", err)
	}
	s.logger.Info().Int64("prescription_id", rx.ID).Str("fill_status", rx.FillStatus).Msg("prescription updated")

	out := *rx
	return &out, nil
}

// DeletePatient removes the patient and, when present, its medical record.
func (s *Service) DeletePatient(ctx context.Context, id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.verifier.Verify(ctx, id)
	if err != nil {
		return err
	}
	if err := s.patients.Delete(ctx, p.DOB); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if err := s.records.Delete(ctx, p.DOB); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.logger.Info().Msg("patient and record deleted")
	return nil
}

func (s *Service) recordFor(ctx context.Context, dob string) (*MedicalRecord, error) {
	rec, err := s.records.GetByDOB(ctx, dob)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}
