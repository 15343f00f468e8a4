// internal/catalog/catalog_test.go

package catalog

import "testing"

func TestMembership(t *testing.T) {
	if !ValidService("physiotherapy") || ValidService("astrology") {
		t.Error("ValidService misjudged membership")
	}
	if !ValidConcernType("back_pain") || ValidConcernType("back pain") {
		t.Error("ValidConcernType misjudged membership")
	}
	if !ValidTimeSlot("09:00 AM") || ValidTimeSlot("9:00 AM") {
		t.Error("ValidTimeSlot misjudged membership")
	}
	if !ValidAppointmentStatus("confirmed") || ValidAppointmentStatus("new") {
		t.Error("ValidAppointmentStatus misjudged membership")
	}
	if !ValidContactStatus("new") || ValidContactStatus("confirmed") {
		t.Error("ValidContactStatus misjudged membership")
	}
}

func TestLunchSlotsExcluded(t *testing.T) {
	for _, s := range []string{"01:00 PM", "01:30 PM"} {
		if ValidTimeSlot(s) {
			t.Errorf("lunch slot %q should not be bookable", s)
		}
	}
	if n := len(TimeSlots()); n != 20 {
		t.Errorf("len(TimeSlots) = %d, want 20", n)
	}
}

func TestLabels(t *testing.T) {
	if got := ServiceLabel("dry_needling"); got != "Dry needling" {
		t.Errorf("ServiceLabel = %q", got)
	}
	if got := ConcernLabel("post_surgery_recovery"); got != "Post-Surgery Recovery" {
		t.Errorf("ConcernLabel = %q", got)
	}
	// Unknown keys pass through so newer backend data still displays.
	if got := ServiceLabel("hydrotherapy"); got != "hydrotherapy" {
		t.Errorf("unknown ServiceLabel = %q", got)
	}
}

func TestNoDuplicateValues(t *testing.T) {
	check := func(name string, opts []Option) {
		seen := make(map[string]bool, len(opts))
		for _, o := range opts {
			if seen[o.Value] {
				t.Errorf("%s: duplicate value %q", name, o.Value)
			}
			seen[o.Value] = true
			if o.Value == "" || o.Label == "" {
				t.Errorf("%s: empty value or label in %+v", name, o)
			}
		}
	}
	check("services", Services())
	check("concern_types", ConcernTypes())
	check("appointment_statuses", AppointmentStatuses())
	check("contact_statuses", ContactStatuses())
}
