package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ehr/records/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "2004",
		Env:            "test",
		CORSOrigins:    []string{"*"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		BodyLimit:      "1K",
		SeedData:       true,
	}
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	svc, err := newService(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newService: %v", err)
	}
	return newServer(cfg, zerolog.Nop(), svc)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestServer_DetailsEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/patients/details", nil)
	req.Header.Set("dob", "2000-01-01")
	req.Header.Set("firstname", "Mohammed Kashif")
	req.Header.Set("lastname", "Ahmed")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"firstName", "lastName", "phone", "insuranceValid", "status", "prescriptions"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected key %q in merged details", key)
		}
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("expected Cache-Control no-store")
	}
}

func TestServer_ErrorBodyShape(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/patients/records", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"DOB, firstname, and lastname are required"}` {
		t.Errorf("unexpected body %s", got)
	}
}

func TestServer_TrailingSlashReachesRoute(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodDelete, "/patients/", nil)
	req.Header.Set("dob", "1995-05-05")
	req.Header.Set("firstname", "Spartans")
	req.Header.Set("lastname", "Taj Hydrabad")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Patient and medical records deleted successfully") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestServer_BodyTooLarge(t *testing.T) {
	srv := newTestServer(t)
	body := bytes.Repeat([]byte("x"), 4096)
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestServer_UnseededStartsEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.SeedData = false
	svc, err := newService(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newService: %v", err)
	}
	srv := newServer(cfg, zerolog.Nop(), svc)

	req := httptest.NewRequest(http.MethodGet, "/patients/records", nil)
	req.Header.Set("dob", "2000-01-01")
	req.Header.Set("firstname", "Mohammed Kashif")
	req.Header.Set("lastname", "Ahmed")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without seed data, got %d", rec.Code)
	}
}

func TestSeedCommand_PrintsSeed(t *testing.T) {
	cmd := seedCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out.String(), `"dob": "1995-05-05"`) {
		t.Errorf("expected seed DOB in output, got %s", out.String())
	}
}
