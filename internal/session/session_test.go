// internal/session/session_test.go

package session

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/admin", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestLoginRoundTrip(t *testing.T) {
	SetKey("test-secret")

	rec := httptest.NewRecorder()
	LoginAdmin(rec, httptest.NewRequest("POST", "/admin/login", nil), "admin")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies", len(cookies))
	}
	c := cookies[0]
	if c.Name != "trp_admin" || c.Path != "/admin" || !c.HttpOnly {
		t.Errorf("cookie = %+v", c)
	}
	if c.Secure {
		t.Error("cookie Secure over plain HTTP")
	}

	user, ok := AdminUser(requestWithCookies(rec))
	if !ok || user != "admin" {
		t.Errorf("AdminUser = (%q, %v)", user, ok)
	}
}

func TestLoginAdmin_SecureBehindProxy(t *testing.T) {
	SetKey("test-secret")

	r := httptest.NewRequest("POST", "/admin/login", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	LoginAdmin(rec, r, "admin")

	if !rec.Result().Cookies()[0].Secure {
		t.Error("cookie not Secure behind an HTTPS proxy")
	}
}

func TestAdminUser_NoCookie(t *testing.T) {
	SetKey("test-secret")
	if _, ok := AdminUser(httptest.NewRequest("GET", "/admin", nil)); ok {
		t.Error("AdminUser ok without a cookie")
	}
}

func TestAdminUser_TamperedCookie(t *testing.T) {
	SetKey("test-secret")

	raw, _ := base64.RawURLEncoding.DecodeString(encode("admin", time.Now().Add(time.Hour).Unix()))
	// Change the username without re-signing.
	raw[len(raw)-1] = 'X'
	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: "trp_admin", Value: base64.RawURLEncoding.EncodeToString(raw)})

	if _, ok := AdminUser(r); ok {
		t.Error("tampered cookie accepted")
	}
}

func TestAdminUser_ExpiredCookie(t *testing.T) {
	SetKey("test-secret")

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: "trp_admin", Value: encode("admin", time.Now().Add(-time.Minute).Unix())})

	if _, ok := AdminUser(r); ok {
		t.Error("expired cookie accepted")
	}
}

func TestAdminUser_WrongKey(t *testing.T) {
	SetKey("key-one")
	value := encode("admin", time.Now().Add(time.Hour).Unix())

	SetKey("key-two")
	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: "trp_admin", Value: value})
	if _, ok := AdminUser(r); ok {
		t.Error("cookie signed with a different key accepted")
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	Logout(rec, nil)

	c := rec.Result().Cookies()[0]
	if c.Name != "trp_admin" || c.Value != "" || c.MaxAge != -1 {
		t.Errorf("logout cookie = %+v", c)
	}
}
