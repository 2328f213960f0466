package records

import "encoding/json"

// Patient is an identity record keyed by date of birth.
type Patient struct {
	DOB            string `json:"-"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	InsuranceValid bool   `json:"insuranceValid"`
}

// MedicalRecord is the clinical record sharing its DOB key with a Patient.
type MedicalRecord struct {
	Status        string         `json:"status"`
	Prescriptions []Prescription `json:"prescriptions"`
}

// Prescription is one entry of a MedicalRecord, matched by ID on update.
type Prescription struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ValidTill  string `json:"validTill"`
	FillStatus string `json:"fillStatus"`
	Refills    int    `json:"refills"`
}

// PatientDetails flattens a Patient and its MedicalRecord into one JSON
// object. Record fields are embedded last so they take precedence.
type PatientDetails struct {
	Patient
	MedicalRecord
}

// Identity is the caller-supplied name/DOB triple checked before every
// operation except patient creation.
type Identity struct {
	DOB       string
	FirstName string
	LastName  string
}

// Complete reports whether all three identity attributes were supplied.
func (i Identity) Complete() bool {
	return i.DOB != "" && i.FirstName != "" && i.LastName != ""
}

// CreatePatientInput is the POST /patients body. InsuranceValid is a pointer
// so an explicit false can be told apart from an omitted field. A JSON null
// counts as supplied and is stored as false.
type CreatePatientInput struct {
	DOB            string `json:"dob"`
	FirstName      string `json:"firstname"`
	LastName       string `json:"lastname"`
	Phone          string `json:"phone"`
	InsuranceValid *bool  `json:"insuranceValid"`
}

// UpdatePhoneInput is the PUT /patients/phone body. A null phone is missing.
type UpdatePhoneInput struct {
	Phone *string `json:"phone"`
}

// UpdateInsuranceInput is the PUT /patients/insurance body. A JSON null
// counts as supplied and is stored as false.
type UpdateInsuranceInput struct {
	InsuranceValid *bool `json:"insuranceValid"`
}

// PrescriptionUpdate is the PUT /patients/prescriptions body. Every key must
// be supplied but any may be null: a null id matches nothing, a null
// fillStatus is stored as "" and a null refills as 0.
type PrescriptionUpdate struct {
	PrescriptionID *PrescriptionID `json:"prescriptionId"`
	FillStatus     *string         `json:"fillStatus"`
	Refills        *int            `json:"refills"`
}

func (in *CreatePatientInput) UnmarshalJSON(data []byte) error {
	type plain CreatePatientInput
	nulls, err := decodeWithNulls(data, (*plain)(in))
	if err != nil {
		return err
	}
	if nulls["insuranceValid"] {
		in.InsuranceValid = new(bool)
	}
	return nil
}

func (in *UpdateInsuranceInput) UnmarshalJSON(data []byte) error {
	type plain UpdateInsuranceInput
	nulls, err := decodeWithNulls(data, (*plain)(in))
	if err != nil {
		return err
	}
	if nulls["insuranceValid"] {
		in.InsuranceValid = new(bool)
	}
	return nil
}

func (in *PrescriptionUpdate) UnmarshalJSON(data []byte) error {
	type plain PrescriptionUpdate
	nulls, err := decodeWithNulls(data, (*plain)(in))
	if err != nil {
		return err
	}
	if nulls["prescriptionId"] {
		in.PrescriptionID = &PrescriptionID{raw: "null"}
	}
	if nulls["fillStatus"] {
		in.FillStatus = new(string)
	}
	if nulls["refills"] {
		in.Refills = new(int)
	}
	return nil
}

// decodeWithNulls decodes data into v and reports which top-level keys were
// explicitly null. encoding/json leaves those pointers nil, same as a
// missing key.
func decodeWithNulls(data []byte, v interface{}) (map[string]bool, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	nulls := make(map[string]bool)
	for k, val := range fields {
		if val == nil {
			nulls[k] = true
		}
	}
	return nulls, nil
}

func (p *Patient) clone() *Patient {
	cp := *p
	return &cp
}

func (r *MedicalRecord) clone() *MedicalRecord {
	cp := MedicalRecord{Status: r.Status}
	if r.Prescriptions != nil {
		cp.Prescriptions = make([]Prescription, len(r.Prescriptions))
		copy(cp.Prescriptions, r.Prescriptions)
	}
	return &cp
}
