package records

import (
	"context"
	"sort"
	"sync"
)

// MemoryPatientRepo keeps patients in a map for the life of the process.
type MemoryPatientRepo struct {
	mu       sync.RWMutex
	patients map[string]*Patient // dob -> patient
}

func NewMemoryPatientRepo() *MemoryPatientRepo {
	return &MemoryPatientRepo{patients: map[string]*Patient{}}
}

func (r *MemoryPatientRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[p.DOB]; ok {
		return ErrExists
	}
	r.patients[p.DOB] = p.clone()
	return nil
}

func (r *MemoryPatientRepo) GetByDOB(_ context.Context, dob string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[dob]
	if !ok {
		return nil, ErrNotFound
	}
	return p.clone(), nil
}

func (r *MemoryPatientRepo) Update(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[p.DOB]; !ok {
		return ErrNotFound
	}
	r.patients[p.DOB] = p.clone()
	return nil
}

func (r *MemoryPatientRepo) Delete(_ context.Context, dob string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.patients, dob)
	return nil
}

// List returns every patient ordered by DOB.
func (r *MemoryPatientRepo) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Patient, 0, len(r.patients))
	for _, p := range r.patients {
		all = append(all, p.clone())
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].DOB < all[j].DOB
	})
	return all, nil
}

// MemoryRecordRepo keeps medical records in a map for the life of the process.
type MemoryRecordRepo struct {
	mu      sync.RWMutex
	records map[string]*MedicalRecord // dob -> record
}

func NewMemoryRecordRepo() *MemoryRecordRepo {
	return &MemoryRecordRepo{records: map[string]*MedicalRecord{}}
}

func (r *MemoryRecordRepo) Put(_ context.Context, dob string, rec *MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[dob] = rec.clone()
	return nil
}

func (r *MemoryRecordRepo) GetByDOB(_ context.Context, dob string) (*MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[dob]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.clone(), nil
}

func (r *MemoryRecordRepo) Delete(_ context.Context, dob string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, dob)
	return nil
}

func (r *MemoryRecordRepo) List(_ context.Context) (map[string]*MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*MedicalRecord, len(r.records))
	for dob, rec := range r.records {
		out[dob] = rec.clone()
	}
	return out, nil
}
