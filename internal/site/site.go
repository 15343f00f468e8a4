// internal/site/site.go
//
// True Relief Physio – static site identity.
//
// Context
//   A single-site deployment needs one place that answers "who is this
//   clinic": display name, tagline, phone numbers, email, and the area the
//   home-visit service covers.  The values come from conf/global.yaml via
//   internal/config; this package only defines the shape so that templates,
//   the error classifier, and the booking flow can share it without
//   importing the config loader.
//
//------------------------------------------------------------------------------

package site

import "strings"

// Contact is the subset of Info needed wherever we tell a visitor how to
// reach the clinic directly (error recovery copy, footers, fallbacks).
type Contact struct {
	Phones []string
	Email  string
}

// Info is the full site identity passed to every page render.
type Info struct {
	Name        string
	Tagline     string
	ServiceArea string
	Contact     Contact
}

// PhoneLine renders the phone numbers as one human-readable line, e.g.
// "9625891710 or 8449555400".
func (c Contact) PhoneLine() string {
	return strings.Join(c.Phones, " or ")
}
