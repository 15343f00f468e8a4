// internal/routing/slug_test.go

package routing

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Back Pain", "back-pain"},
		{"Exercise & Fitness", "exercise-fitness"},
		{"Post-Surgery Recovery", "post-surgery-recovery"},
		{"  lots   of   spaces  ", "lots-of-spaces"},
		{"IASTM Therapy", "iastm-therapy"},
		{"!!!", "item"},
		{"", "item"},
	}
	for _, c := range cases {
		if got := MakeSlug(c.in); got != c.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	long := MakeSlug(strings.Repeat("ab ", 80))
	if len(long) > 100 || strings.HasSuffix(long, "-") {
		t.Errorf("long slug = %q (len %d)", long, len(long))
	}
}

func TestBuildPath(t *testing.T) {
	cases := []struct{ parent, slug, want string }{
		{"", "", "/"},
		{"", "services", "/services"},
		{"services", "", "/services"},
		{"services", "back-pain", "/services/back-pain"},
		{"/services/", "/back-pain/", "/services/back-pain"},
	}
	for _, c := range cases {
		if got := BuildPath(c.parent, c.slug); got != c.want {
			t.Errorf("BuildPath(%q, %q) = %q, want %q", c.parent, c.slug, got, c.want)
		}
	}
}
