// internal/routing/slug.go
//
// True Relief Physio – slug and path helpers.
//
// Context
//   The services and treatments pages anchor each catalog entry by a slug of
//   its display label ("Sports Injury Rehab" → "sports-injury-rehab"), so
//   /services#back-pain-treatment style links stay stable as the catalog is
//   reordered.  BuildPath joins route segments with exactly one leading
//   slash for the alias table.
//
// Workflow (MakeSlug)
//   1. Lower-case everything.
//   2. Convert any run of non-[a-z0-9] characters to one "-".  That strips
//      spaces, punctuation, and non-ASCII.
//   3. Trim leading and trailing "-".
//   4. If the result is empty, return "item".
//   5. Cap at 100 bytes.  Catalog labels are ASCII, so no transliteration.
//
//------------------------------------------------------------------------------

package routing

import (
	"strings"
)

// MakeSlug converts a display label to a lower-kebab ASCII slug.
func MakeSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// Any run of punctuation or non-ASCII becomes one dash.
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "item"
	}
	if len(slug) > 100 {
		slug = slug[:100]
		// The cut may land on a dash.
		slug = strings.TrimRightFunc(slug, func(r rune) bool { return r == '-' })
	}
	return slug
}

// BuildPath joins parent + slug ensuring exactly one leading slash and no
// duplicate separators.
func BuildPath(parent, slug string) string {
	parent = strings.Trim(parent, "/")
	slug = strings.Trim(slug, "/")

	switch {
	case parent == "" && slug == "":
		return "/"
	case parent == "":
		return "/" + slug
	case slug == "":
		return "/" + parent
	default:
		return "/" + parent + "/" + slug
	}
}
