package records

import (
	"context"
	"fmt"
)

// SeedEntry pairs a patient with the medical record stored under the same DOB.
type SeedEntry struct {
	DOB     string         `json:"dob"`
	Patient Patient        `json:"patient"`
	Record  *MedicalRecord `json:"record,omitempty"`
}

// DefaultSeed returns the two patients the service starts with.
func DefaultSeed() []SeedEntry {
	return []SeedEntry{
		{
			DOB:     "2000-01-01",
			Patient: Patient{FirstName: "Mohammed Kashif", LastName: "Ahmed", Phone: "506-787-7171", InsuranceValid: true},
			Record: &MedicalRecord{
				Status: "Healthy",
				Prescriptions: []Prescription{
					{ID: 123456, Name: "Medicine A", ValidTill: "2024-12-31", FillStatus: "Filled", Refills: 2},
					{ID: 223311, Name: "Medicine B", ValidTill: "2023-06-30", FillStatus: "Not Filled", Refills: 0},
				},
			},
		},
		{
			DOB:     "1995-05-05",
			Patient: Patient{FirstName: "Spartans", LastName: "Taj Hydrabad", Phone: "506-282-0001", InsuranceValid: false},
			Record: &MedicalRecord{
				Status: "Sick",
				Prescriptions: []Prescription{
					{ID: 213213, Name: "Medicine C", ValidTill: "2023-09-30", FillStatus: "Filled", Refills: 1},
				},
			},
		},
	}
}

// Seed loads entries into the repositories. It fails if a DOB is already taken.
func Seed(ctx context.Context, patients PatientRepository, recs RecordRepository, entries []SeedEntry) error {
	for _, e := range entries {
		p := e.Patient
		p.DOB = e.DOB
		if err := patients.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed patient %s: %w", p.DOB, err)
		}
		if e.Record == nil {
			continue
		}
		if err := recs.Put(ctx, p.DOB, e.Record); err != nil {
			return fmt.Errorf("seed record %s: %w", p.DOB, err)
		}
	}
	return nil
}
