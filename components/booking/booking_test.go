// components/booking/booking_test.go

package booking

import (
	"testing"
	"time"
)

func validValues() map[string]string {
	return map[string]string{
		"service":  "physiotherapy",
		"name":     "Asha Verma",
		"email":    "asha@example.com",
		"phone":    "9625891710",
		"age":      "35",
		"location": "B-42, Sector 15, Noida",
		"date":     time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		"time":     "10:00 AM",
		"message":  "",
	}
}

func TestValidateValues_OK(t *testing.T) {
	ok, errs := validateValues(validValues())
	if !ok || len(errs) != 0 {
		t.Fatalf("valid submission rejected: %v", errs)
	}
}

func TestValidateValues_UnknownCatalogValues(t *testing.T) {
	v := validValues()
	v["service"] = "astrology"
	v["time"] = "01:00 PM" // lunch slot, not bookable

	ok, errs := validateValues(v)
	if ok {
		t.Fatal("unknown catalog values accepted")
	}
	if errs["service"] != "Please select a service" {
		t.Errorf("service error = %q", errs["service"])
	}
	if errs["time"] != "Please select a time slot" {
		t.Errorf("time error = %q", errs["time"])
	}
}

func TestSanitizeValues(t *testing.T) {
	out := sanitizeValues(map[string]string{"name": "  <Asha>  ", "age": "35"})
	if out["name"] != "Asha" || out["age"] != "35" {
		t.Errorf("sanitized = %v", out)
	}
}
