package records

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// PrescriptionID is a prescriptionId as supplied by a client. Only a JSON
// number can match a stored id: the string "123456" decodes fine but never
// matches 123456.
type PrescriptionID struct {
	value   int64
	numeric bool
	raw     string
}

// NewPrescriptionID builds a numeric id, as a client would send it.
func NewPrescriptionID(v int64) *PrescriptionID {
	return &PrescriptionID{value: v, numeric: true, raw: strconv.FormatInt(v, 10)}
}

func (p *PrescriptionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	p.raw = string(data)
	p.numeric = false

	if len(data) == 0 || data[0] == '"' || data[0] == '{' || data[0] == '[' {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// true/false and other literals are present but can never match.
		return nil
	}
	if v, err := n.Int64(); err == nil {
		p.value, p.numeric = v, true
		return nil
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		p.value, p.numeric = int64(f), true
	}
	return nil
}

func (p PrescriptionID) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(strconv.FormatInt(p.value, 10)), nil
	}
	if p.raw == "" {
		return []byte("null"), nil
	}
	return []byte(p.raw), nil
}

// Matches reports whether this id is a number equal to id.
func (p *PrescriptionID) Matches(id int64) bool {
	return p != nil && p.numeric && p.value == id
}

func (p *PrescriptionID) String() string {
	if p == nil {
		return ""
	}
	return p.raw
}
