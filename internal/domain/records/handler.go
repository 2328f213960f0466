package records

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Identity header names. Go canonicalizes them, so lookups are case-insensitive.
const (
	HeaderDOB       = "dob"
	HeaderFirstName = "firstname"
	HeaderLastName  = "lastname"
)

const deleteMessage = "Patient and medical records deleted successfully"

// Handler serves the patient endpoints over a Service.
type Handler struct {
	svc *Service
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts every patient route on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients/records", h.GetRecord)
	g.GET("/patients/details", h.GetDetails)
	g.POST("/patients", h.CreatePatient)
	g.PUT("/patients/phone", h.UpdatePhone)
	g.PUT("/patients/insurance", h.UpdateInsurance)
	g.PUT("/patients/prescriptions", h.UpdatePrescription)
	g.DELETE("/patients", h.DeletePatient)
}

func (h *Handler) GetRecord(c echo.Context) error {
	rec, err := h.svc.GetRecord(c.Request().Context(), identityFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetDetails(c echo.Context) error {
	d, err := h.svc.GetDetails(c.Request().Context(), identityFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var in CreatePatientInput
	if err := bindBody(c, &in); err != nil {
		return httpError(err)
	}
	p, err := h.svc.CreatePatient(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePhone(c echo.Context) error {
	var in UpdatePhoneInput
	if err := bindBody(c, &in); err != nil {
		return httpError(err)
	}
	p, err := h.svc.UpdatePhone(c.Request().Context(), identityFrom(c), in.Phone)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateInsurance(c echo.Context) error {
	var in UpdateInsuranceInput
	if err := bindBody(c, &in); err != nil {
		return httpError(err)
	}
	p, err := h.svc.UpdateInsurance(c.Request().Context(), identityFrom(c), in.InsuranceValid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	var in PrescriptionUpdate
	if err := bindBody(c, &in); err != nil {
		return httpError(err)
	}
	rx, err := h.svc.UpdatePrescription(c.Request().Context(), identityFrom(c), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rx)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.DeletePatient(c.Request().Context(), identityFrom(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": deleteMessage})
}

func identityFrom(c echo.Context) Identity {
	hdr := c.Request().Header
	return Identity{
		DOB:       hdr.Get(HeaderDOB),
		FirstName: hdr.Get(HeaderFirstName),
		LastName:  hdr.Get(HeaderLastName),
	}
}

// bindBody decodes a JSON body. A body with a non-JSON content type is
// ignored, leaving every field absent.
func bindBody(c echo.Context, v interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusUnsupportedMediaType:
				return nil
			case http.StatusRequestEntityTooLarge:
				// Raised by the body limit while the decoder was reading.
				return he
			}
		}
		return ErrInvalidBody
	}
	return nil
}

// httpError converts domain errors to echo HTTP errors. Anything else is
// returned untouched and surfaces as a 500.
func httpError(err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		return echo.NewHTTPError(de.Status, de.Message)
	}
	return err
}
