// components/contact/contact_test.go

package contact

import "testing"

func validValues() map[string]string {
	return map[string]string{
		"name":         "Asha Verma",
		"email":        "asha@example.com",
		"phone":        "9625891710",
		"concern_type": "back_pain",
		"subject":      "Back pain inquiry",
		"message":      "Lower back pain for two weeks.",
	}
}

func TestValidateValues_OK(t *testing.T) {
	ok, errs := validateValues(validValues())
	if !ok || len(errs) != 0 {
		t.Fatalf("valid submission rejected: %v", errs)
	}
}

func TestValidateValues_UnknownConcernType(t *testing.T) {
	v := validValues()
	v["concern_type"] = "palmistry"

	ok, errs := validateValues(v)
	if ok {
		t.Fatal("unknown concern type accepted")
	}
	if errs["concern_type"] != "Please select a concern type" {
		t.Errorf("concern_type error = %q", errs["concern_type"])
	}
}

func TestValidateValues_CollectsEveryFailure(t *testing.T) {
	ok, errs := validateValues(map[string]string{})
	if ok {
		t.Fatal("empty submission accepted")
	}
	for _, field := range []string{"name", "email", "phone", "concern_type", "subject", "message"} {
		if errs[field] == "" {
			t.Errorf("no error for empty %q", field)
		}
	}
}
