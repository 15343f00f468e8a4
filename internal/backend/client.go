// internal/backend/client.go
//
// True Relief Physio – REST client for the external lead backend.
//
// Context
//   All lead data lives in a separate REST service; this site never stores a
//   lead locally.  The client wraps the handful of endpoints the site uses:
//
//     POST  /api/appointments/          create an appointment lead
//     POST  /api/contacts/              create a contact lead
//     GET   /api/appointments/list/     list appointment leads (admin)
//     GET   /api/contacts/list/         list contact leads (admin)
//     PATCH /api/appointments/{id}/     update lead status (admin)
//     PATCH /api/contacts/{id}/         update lead status (admin)
//     POST  /api/auth/login/            verify admin credentials
//
//   On 2xx the backend answers {success, message?, data?}.  Any other
//   outcome is returned as *APIError: status 0 for transport failures, and
//   the rate-limit flag plus Retry-After seconds for 429s.  Each call feeds
//   the backend_* Prometheus counters.
//
//------------------------------------------------------------------------------

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/truereliefphysio/physioweb/internal/metrics"
)

// Client is safe for concurrent use.  Construct once at startup.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for the backend at baseURL ("https://api.example.com",
// no trailing slash).  The timeout caps each individual request.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
	}
}

// Response is the backend's 2xx envelope.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// AppointmentPayload is the JSON body for appointment creation.  Age is an
// integer on the wire; callers coerce it after validation.
type AppointmentPayload struct {
	Service  string `json:"service"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Message  string `json:"message,omitempty"`
}

// ContactPayload is the JSON body for contact creation.
type ContactPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ConcernType string `json:"concern_type"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// Appointment is one appointment lead as listed by the backend.
type Appointment struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Service        string `json:"service"`
	ServiceDisplay string `json:"service_display"`
	Age            int    `json:"age"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	StatusDisplay  string `json:"status_display"`
	CreatedAt      string `json:"created_at"`
}

// Contact is one contact lead as listed by the backend.
type Contact struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	ConcernType        string `json:"concern_type"`
	ConcernTypeDisplay string `json:"concern_type_display"`
	Subject            string `json:"subject"`
	Message            string `json:"message"`
	Status             string `json:"status"`
	StatusDisplay      string `json:"status_display"`
	CreatedAt          string `json:"created_at"`
}

// -----------------------------------------------------------------------------
// Lead creation
// -----------------------------------------------------------------------------

// CreateAppointment submits a new appointment lead.
func (c *Client) CreateAppointment(ctx context.Context, p AppointmentPayload) (*Response, error) {
	var out Response
	if err := c.do(ctx, "create_appointment", http.MethodPost, "/api/appointments/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContact submits a new contact lead.
func (c *Client) CreateContact(ctx context.Context, p ContactPayload) (*Response, error) {
	var out Response
	if err := c.do(ctx, "create_contact", http.MethodPost, "/api/contacts/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// -----------------------------------------------------------------------------
// Admin operations
// -----------------------------------------------------------------------------

// Login verifies admin credentials with the backend.  Credentials are never
// checked locally; the backend is the single authority.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, "login", http.MethodPost, "/api/auth/login/", body, nil)
}

// ListAppointments returns every appointment lead, newest first (backend
// ordering).
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := c.do(ctx, "list_appointments", http.MethodGet, "/api/appointments/list/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListContacts returns every contact lead, newest first.
func (c *Client) ListContacts(ctx context.Context) ([]Contact, error) {
	var out []Contact
	if err := c.do(ctx, "list_contacts", http.MethodGet, "/api/contacts/list/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAppointmentStatus PATCHes a new status onto an appointment lead.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/api/appointments/%d/", id)
	return c.do(ctx, "update_appointment", http.MethodPatch, path, body, nil)
}

// UpdateContactStatus PATCHes a new status onto a contact lead.
func (c *Client) UpdateContactStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/api/contacts/%d/", id)
	return c.do(ctx, "update_contact", http.MethodPatch, path, body, nil)
}

// -----------------------------------------------------------------------------
// Transport
// -----------------------------------------------------------------------------

// do performs one request.  body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded 2xx response.  All failures come back as
// *APIError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s: %w", op, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return fmt.Errorf("backend: build %s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, "network").Inc()
		return &APIError{Status: 0, Message: "Unable to connect to the server"}
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(op, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend: decode %s: %w", op, err)
		}
		return nil
	}

	return c.errorFromResponse(resp)
}

// errorFromResponse builds the *APIError for a non-2xx response.
func (c *Client) errorFromResponse(resp *http.Response) *APIError {
	ae := &APIError{Status: resp.StatusCode}

	// Body is best effort; the backend may answer with an empty body or
	// non-JSON on hard failures.
	var payload struct {
		Message    string         `json:"message"`
		Detail     string         `json:"detail"`
		RetryAfter int            `json:"retry_after"`
		Errors     map[string]any `json:"errors"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(raw) > 0 && json.Unmarshal(raw, &payload) == nil {
		ae.Message = payload.Message
		if ae.Message == "" {
			ae.Message = payload.Detail
		}
		if len(payload.Errors) > 0 {
			ae.Details = payload.Errors
		}
		ae.RetryAfter = payload.RetryAfter
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		ae.IsRateLimited = true
		metrics.BackendRateLimitedTotal.Inc()
		if s := resp.Header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
				ae.RetryAfter = secs
			}
		}
	}

	return ae
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
