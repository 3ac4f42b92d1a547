// Package client calls the clinic HTTP API. The seed and simulate commands
// drive a running api-server through it.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/hackgods/clinic-records/internal/api"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Details string
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("clinic api: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("clinic api: %d %s: %s", e.Status, e.Code, e.Details)
}

// Conflict reports whether the request lost a race for a slot or hit an
// appointment that had already left the scheduled state.
func (e *APIError) Conflict() bool {
	return e.Status == http.StatusConflict
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) RegisterPatient(ctx context.Context, req api.RegisterPatientRequest) (api.PatientResponse, error) {
	var out api.PatientResponse
	err := c.do(ctx, http.MethodPost, "/patients", req, &out)
	return out, err
}

func (c *Client) ListPatients(ctx context.Context) ([]api.PatientResponse, error) {
	var out []api.PatientResponse
	err := c.do(ctx, http.MethodGet, "/patients", nil, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, patientID string) (api.HistoryResponse, error) {
	var out api.HistoryResponse
	err := c.do(ctx, http.MethodGet, "/patients/"+url.PathEscape(patientID)+"/history", nil, &out)
	return out, err
}

func (c *Client) RegisterDoctor(ctx context.Context, req api.RegisterDoctorRequest) (api.DoctorResponse, error) {
	var out api.DoctorResponse
	err := c.do(ctx, http.MethodPost, "/doctors", req, &out)
	return out, err
}

func (c *Client) ListDoctors(ctx context.Context) ([]api.DoctorResponse, error) {
	var out []api.DoctorResponse
	err := c.do(ctx, http.MethodGet, "/doctors", nil, &out)
	return out, err
}

func (c *Client) AddSpecialty(ctx context.Context, license string, req api.AddSpecialtyRequest) (api.SpecialtyResponse, error) {
	var out api.SpecialtyResponse
	err := c.do(ctx, http.MethodPost, "/doctors/"+url.PathEscape(license)+"/specialties", req, &out)
	return out, err
}

func (c *Client) ScheduleAppointment(ctx context.Context, req api.ScheduleAppointmentRequest) (api.AppointmentResponse, error) {
	var out api.AppointmentResponse
	err := c.do(ctx, http.MethodPost, "/appointments", req, &out)
	return out, err
}

func (c *Client) GetAppointment(ctx context.Context, id uuid.UUID) (api.AppointmentResponse, error) {
	var out api.AppointmentResponse
	err := c.do(ctx, http.MethodGet, "/appointments/"+id.String(), nil, &out)
	return out, err
}

func (c *Client) CancelAppointment(ctx context.Context, id uuid.UUID) (api.AppointmentResponse, error) {
	var out api.AppointmentResponse
	err := c.do(ctx, http.MethodPost, "/appointments/"+id.String()+"/cancel", nil, &out)
	return out, err
}

func (c *Client) CompleteAppointment(ctx context.Context, id uuid.UUID) (api.AppointmentResponse, error) {
	var out api.AppointmentResponse
	err := c.do(ctx, http.MethodPost, "/appointments/"+id.String()+"/complete", nil, &out)
	return out, err
}

func (c *Client) IssuePrescription(ctx context.Context, req api.IssuePrescriptionRequest) (api.PrescriptionResponse, error) {
	var out api.PrescriptionResponse
	err := c.do(ctx, http.MethodPost, "/prescriptions", req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e api.ErrorResponse
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code = e.Error
			apiErr.Details = e.Details
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
