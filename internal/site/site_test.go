// internal/site/site_test.go

package site

import "testing"

func TestPhoneLine(t *testing.T) {
	cases := []struct {
		phones []string
		want   string
	}{
		{nil, ""},
		{[]string{"9625891710"}, "9625891710"},
		{[]string{"9625891710", "8449555400"}, "9625891710 or 8449555400"},
	}
	for _, c := range cases {
		if got := (Contact{Phones: c.phones}).PhoneLine(); got != c.want {
			t.Errorf("PhoneLine(%v) = %q, want %q", c.phones, got, c.want)
		}
	}
}
