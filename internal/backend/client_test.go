// internal/backend/client_test.go
//
// Exercises the REST client against httptest servers: envelope decoding,
// error mapping, rate-limit headers, and transport failures.
//
//------------------------------------------------------------------------------

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(h http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	return New(srv.URL, 5*time.Second), srv
}

func TestCreateAppointment_Success(t *testing.T) {
	var gotPath, gotMethod, gotCT string
	var gotBody AppointmentPayload

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod, gotCT = r.URL.Path, r.Method, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Appointment booked successfully!"}`))
	})
	defer srv.Close()

	resp, err := c.CreateAppointment(context.Background(), AppointmentPayload{
		Service: "home-visit", Name: "Asha Verma", Email: "asha@example.com",
		Phone: "9625891710", Age: 35, Location: "B-42, Sector 15, Noida",
		Date: "2026-09-10", Time: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if gotPath != "/api/appointments/" || gotMethod != http.MethodPost {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q", gotCT)
	}
	if gotBody.Age != 35 || gotBody.Name != "Asha Verma" {
		t.Errorf("decoded payload = %+v", gotBody)
	}
	if !resp.Success || resp.Message != "Appointment booked successfully!" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCreateContact_BadRequest(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid phone number","errors":{"phone":["Invalid"]}}`))
	})
	defer srv.Close()

	_, err := c.CreateContact(context.Background(), ContactPayload{})
	ae, isAPI := AsAPIError(err)
	if !isAPI {
		t.Fatalf("want *APIError, got %T: %v", err, err)
	}
	if ae.Status != 400 || ae.Message != "Invalid phone number" {
		t.Errorf("APIError = %+v", ae)
	}
	if _, hasField := ae.Details["phone"]; !hasField {
		t.Errorf("Details = %v, want phone entry", ae.Details)
	}
}

func TestDo_DetailFallback(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid credentials."}`))
	})
	defer srv.Close()

	err := c.Login(context.Background(), "admin", "wrong")
	ae, isAPI := AsAPIError(err)
	if !isAPI || ae.Status != 401 {
		t.Fatalf("got %v", err)
	}
	if ae.Message != "Invalid credentials." {
		t.Errorf("Message = %q, want detail fallback", ae.Message)
	}
}

func TestDo_RateLimited(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := c.ListAppointments(context.Background())
	ae, isAPI := AsAPIError(err)
	if !isAPI {
		t.Fatalf("want *APIError, got %v", err)
	}
	if !ae.IsRateLimited || ae.RetryAfter != 120 {
		t.Errorf("APIError = %+v, want rate limited with 120s", ae)
	}
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // closed server refuses connections
	c := New(srv.URL, time.Second)

	err := c.Login(context.Background(), "admin", "pw")
	ae, isAPI := AsAPIError(err)
	if !isAPI {
		t.Fatalf("want *APIError, got %v", err)
	}
	if ae.Status != 0 {
		t.Errorf("Status = %d, want 0 for transport failure", ae.Status)
	}
}

func TestListContacts_Decode(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/contacts/list/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"name":"Asha","status":"new","concern_type_display":"Back Pain"}]`))
	})
	defer srv.Close()

	list, err := c.ListContacts(context.Background())
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(list) != 1 || list[0].ID != 7 || list[0].ConcernTypeDisplay != "Back Pain" {
		t.Errorf("list = %+v", list)
	}
}

func TestUpdateAppointmentStatus_PathAndBody(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]string

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	if err := c.UpdateAppointmentStatus(context.Background(), 42, "confirmed"); err != nil {
		t.Fatalf("UpdateAppointmentStatus: %v", err)
	}
	if gotPath != "/api/appointments/42/" || gotMethod != http.MethodPatch {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["status"] != "confirmed" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestAPIError_Error(t *testing.T) {
	cases := []struct {
		err  *APIError
		want string
	}{
		{&APIError{Status: 0}, "backend: no response"},
		{&APIError{Status: 503}, "backend: status 503"},
		{&APIError{IsRateLimited: true, RetryAfter: 60}, "backend: rate limited (retry after 60s)"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("Error() = %q, want %q", got, c.want)
		}
	}
}
