// internal/session/session.go
//
// True Relief Physio – signed admin session cookie.
//
// Context
//   The admin dashboard needs a “logged-in” flag between requests.  After
//   the backend verifies credentials, we set a cookie named “trp_admin”
//   whose value is HMAC-SHA256 signed:
//
//      base64url( username | unixExpiry | HMAC(secret, username+expiry) )
//
//   No server-side session store is required; the signature plus expiry
//   makes the cookie tamper-evident, and logging out simply clears it.
//   The signing key comes from config (security.session_key, optionally a
//   Vault reference) and is installed once at startup via SetKey.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"net/http"
	"sync"
	"time"
)

const (
	cookieName = "trp_admin"
	maxAge     = 12 * time.Hour
)

var (
	keyMu sync.RWMutex
	key   []byte
)

// SetKey installs the signing secret.  Call once at startup, before any
// login or verification.
func SetKey(k string) {
	keyMu.Lock()
	key = []byte(k)
	keyMu.Unlock()
}

func signingKey() []byte {
	keyMu.RLock()
	defer keyMu.RUnlock()
	return key
}

// LoginAdmin sets a signed session cookie for the given admin username.
//
// Callers invoke this after the backend confirms the credentials.
func LoginAdmin(w http.ResponseWriter, r *http.Request, username string) {
	expiry := time.Now().Add(maxAge).Unix()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encode(username, expiry),
		Path:     "/admin",
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(expiry, 0),
	})
}

// Logout clears the session cookie.
func Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// AdminUser returns the username from a valid session cookie.
//
// ok == false when the cookie is missing, expired, or tampered with.
func AdminUser(r *http.Request) (username string, ok bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return decode(c.Value)
}

// encode builds username|expiry|sig and base64url-encodes the lot.
func encode(username string, expiry int64) string {
	exp := make([]byte, 8)
	binary.BigEndian.PutUint64(exp, uint64(expiry))

	mac := hmac.New(sha256.New, signingKey())
	mac.Write([]byte(username))
	mac.Write(exp)
	sig := mac.Sum(nil)

	buf := make([]byte, 0, len(username)+8+len(sig))
	buf = append(buf, exp...)
	buf = append(buf, sig...)
	buf = append(buf, username...)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// decode verifies the signature and expiry, returning the username.
func decode(v string) (string, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil || len(raw) < 8+sha256.Size+1 {
		return "", false
	}

	exp := raw[:8]
	sig := raw[8 : 8+sha256.Size]
	username := string(raw[8+sha256.Size:])

	expiry := int64(binary.BigEndian.Uint64(exp))
	if time.Now().Unix() > expiry {
		return "", false
	}

	mac := hmac.New(sha256.New, signingKey())
	mac.Write([]byte(username))
	mac.Write(exp)
	want := mac.Sum(nil)

	if !hmac.Equal(sig, want) {
		return "", false
	}
	return username, true
}
