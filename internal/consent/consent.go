// internal/consent/consent.go
//
// True Relief Physio – cookie-consent preference store.
//
// Context
//   Visitor cookie preferences live in a single first-party cookie,
//   “trp_consent”, holding the accepted categories as a compact flag string
//   (e.g. “nam” for necessary+analytics+marketing, “n” for necessary only).
//   Necessary is always on; the banner partial is shown until a choice has
//   been stored.  No preference ever leaves the browser except in this
//   cookie, and nothing server-side records it.
//
// Workflow
//   •  FromRequest reads the cookie into Preferences; Chosen is false when
//      the cookie is absent or malformed.
//   •  Write stores a choice for one year; AcceptAll and NecessaryOnly are
//      the two banner shortcuts, and the settings form can set categories
//      individually.
//
//------------------------------------------------------------------------------

package consent

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the single consent cookie.
const CookieName = "trp_consent"

// maxAge keeps a stored choice for one year.
const maxAge = 365 * 24 * time.Hour

// Preferences records which cookie categories the visitor accepted.
// Necessary is implied and always true once a choice exists.
type Preferences struct {
	Necessary bool
	Analytics bool
	Marketing bool
	Chosen    bool // false until the visitor has answered the banner
}

// AcceptAll is the “Accept all” banner shortcut.
func AcceptAll() Preferences {
	return Preferences{Necessary: true, Analytics: true, Marketing: true, Chosen: true}
}

// NecessaryOnly is the “Reject non-essential” banner shortcut.
func NecessaryOnly() Preferences {
	return Preferences{Necessary: true, Chosen: true}
}

// FromRequest reads the consent cookie.  A missing or malformed cookie
// returns unchosen preferences so the banner renders.
func FromRequest(r *http.Request) Preferences {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Preferences{}
	}
	return decode(c.Value)
}

// Write stores prefs in the response.  The cookie is first-party, Lax, and
// HttpOnly; the banner never needs to read it from script because the
// server renders the banner conditionally.
func Write(w http.ResponseWriter, prefs Preferences, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encode(prefs),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// encode renders the flag string: one letter per accepted category.
func encode(p Preferences) string {
	var b strings.Builder
	b.WriteByte('n') // necessary is always on
	if p.Analytics {
		b.WriteByte('a')
	}
	if p.Marketing {
		b.WriteByte('m')
	}
	return b.String()
}

// decode parses the flag string.  Any value containing 'n' counts as a
// stored choice.
func decode(v string) Preferences {
	p := Preferences{}
	for _, c := range v {
		switch c {
		case 'n':
			p.Necessary = true
			p.Chosen = true
		case 'a':
			p.Analytics = true
		case 'm':
			p.Marketing = true
		}
	}
	if !p.Chosen {
		return Preferences{}
	}
	return p
}
