// Package client is a Go client for the patient records API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ehr/records/internal/domain/records"
)

type (
	Identity       = records.Identity
	Patient        = records.Patient
	MedicalRecord  = records.MedicalRecord
	Prescription   = records.Prescription
	PatientDetails = records.PatientDetails
)

// APIError is a non-2xx response. Message is the server's "error" field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("records api: %d %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Client calls the records API. It is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// Option configures the underlying resty client.
type Option func(*resty.Client)

// WithTimeout overrides the default 10s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithRetries retries failed requests on transport errors and 429/5xx.
func WithRetries(n int) Option {
	return func(c *resty.Client) {
		c.SetRetryCount(n).
			SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
			})
	}
}

// New returns a Client for the API at baseURL, e.g. "http://localhost:2004".
func New(baseURL string, opts ...Option) *Client {
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(hc)
	}
	return &Client{http: hc}
}

func (c *Client) GetRecord(ctx context.Context, id Identity) (*MedicalRecord, error) {
	var out MedicalRecord
	if err := c.do(ctx, http.MethodGet, "/patients/records", &id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDetails(ctx context.Context, id Identity) (*PatientDetails, error) {
	var out PatientDetails
	if err := c.do(ctx, http.MethodGet, "/patients/details", &id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, dob, firstName, lastName, phone string, insuranceValid bool) (*Patient, error) {
	body := records.CreatePatientInput{
		DOB:            dob,
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		InsuranceValid: &insuranceValid,
	}
	var out Patient
	if err := c.do(ctx, http.MethodPost, "/patients", nil, body, &out); err != nil {
		return nil, err
	}
	out.DOB = dob
	return &out, nil
}

func (c *Client) UpdatePhone(ctx context.Context, id Identity, phone string) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPut, "/patients/phone", &id, records.UpdatePhoneInput{Phone: &phone}, &out); err != nil {
		return nil, err
	}
	out.DOB = id.DOB
	return &out, nil
}

func (c *Client) UpdateInsurance(ctx context.Context, id Identity, valid bool) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPut, "/patients/insurance", &id, records.UpdateInsuranceInput{InsuranceValid: &valid}, &out); err != nil {
		return nil, err
	}
	out.DOB = id.DOB
	return &out, nil
}

func (c *Client) UpdatePrescription(ctx context.Context, id Identity, prescriptionID int64, fillStatus string, refills int) (*Prescription, error) {
	body := records.PrescriptionUpdate{
		PrescriptionID: records.NewPrescriptionID(prescriptionID),
		FillStatus:     &fillStatus,
		Refills:        &refills,
	}
	var out Prescription
	if err := c.do(ctx, http.MethodPut, "/patients/prescriptions", &id, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePatient removes the patient and its record, returning the server's
// confirmation message.
func (c *Client) DeletePatient(ctx context.Context, id Identity) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, "/patients", &id, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Raw sends body as-is so callers can exercise fields the typed methods
// always fill in.
func (c *Client) Raw(ctx context.Context, method, path string, id *Identity, body interface{}) (*resty.Response, error) {
	return c.request(ctx, id, body).Execute(method, path)
}

func (c *Client) request(ctx context.Context, id *Identity, body interface{}) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if id != nil {
		if id.DOB != "" {
			req.SetHeader(records.HeaderDOB, id.DOB)
		}
		if id.FirstName != "" {
			req.SetHeader(records.HeaderFirstName, id.FirstName)
		}
		if id.LastName != "" {
			req.SetHeader(records.HeaderLastName, id.LastName)
		}
	}
	if body != nil {
		req.SetBody(body)
	}
	return req
}

func (c *Client) do(ctx context.Context, method, path string, id *Identity, body, out interface{}) error {
	var apiErr errorBody
	resp, err := c.request(ctx, id, body).
		SetResult(out).
		SetError(&apiErr).
		Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
