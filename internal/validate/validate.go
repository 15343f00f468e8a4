// internal/validate/validate.go
//
// True Relief Physio – lead-form field validation.
//
// Context
//   Both lead forms (appointment booking and contact inquiry) funnel through
//   the rule functions in this file before anything touches the network.  A
//   rule takes the raw string a visitor typed and returns a Result: valid, or
//   invalid with a user-facing message.  The thresholds mirror what the REST
//   backend enforces, so a submission that passes here will not bounce off the
//   backend with a 400 in the normal case.
//
// Workflow
//   •  Rule functions (Email, Phone, Name, Age, Date, Message, Location,
//      Subject) each check exactly one field.
//   •  Aggregates (Appointment, Contact) run every applicable rule, collect
//      all failures into a field → message map, and never short-circuit, so
//      the form can highlight every problem in one pass.
//   •  DetectMaliciousInput is a coarse tripwire for logging, not a gate.
//
// Style
//   Comments follow the house guide: full sentences, two spaces after
//   periods, Oxford commas.
//
//------------------------------------------------------------------------------

package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Result reports the outcome of a single rule.  Error is empty when Valid.
type Result struct {
	Valid bool
	Error string
}

func ok() Result             { return Result{Valid: true} }
func fail(msg string) Result { return Result{Error: msg} }

// -----------------------------------------------------------------------------
// Field rules
// -----------------------------------------------------------------------------

// emailRe accepts the simple local@domain.tld shape.  Deliberately loose; the
// backend performs its own RFC-level check.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// emailBlocklist catches markup smuggled into an address.
var emailBlocklist = []string{"script", "javascript:", "onerror", "onclick"}

// Email validates an email address: required, local@domain.tld shape, at
// most 254 characters, and free of blocklisted substrings.
func Email(email string) Result {
	if strings.TrimSpace(email) == "" {
		return fail("Email is required")
	}
	if !emailRe.MatchString(email) {
		return fail("Please enter a valid email address")
	}
	if utf8.RuneCountInString(email) > 254 {
		return fail("Email address is too long")
	}
	lower := strings.ToLower(email)
	for _, p := range emailBlocklist {
		if strings.Contains(lower, p) {
			return fail("Email contains invalid characters")
		}
	}
	return ok()
}

// phoneStrip removes the separators people type into phone numbers.
var phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// phoneRe matches 10–15 digits with an optional + prefix, after stripping.
var phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)

// Phone validates a phone number.  Spaces, dashes, and parentheses are
// stripped before matching, so "+91 96258-91710" is acceptable input.
func Phone(phone string) Result {
	if strings.TrimSpace(phone) == "" {
		return fail("Phone number is required")
	}
	cleaned := phoneStrip.Replace(phone)
	if !phoneRe.MatchString(cleaned) {
		return fail("Please enter a valid phone number (10-15 digits)")
	}
	return ok()
}

// NormalizePhone returns the digits-only form used for display and search.
// The optional + prefix is dropped.
func NormalizePhone(phone string) string {
	return strings.TrimPrefix(phoneStrip.Replace(strings.TrimSpace(phone)), "+")
}

// nameBlocklist rejects obvious injection payloads in a person's name.
var nameBlocklist = []string{"<script", "javascript:", "onerror", "onclick", "drop table"}

// Name validates a person's name: required, 2–100 characters, and free of
// blocklisted substrings (checked case-insensitively).  Lengths count runes,
// not bytes, so Devanagari and other multi-byte names measure correctly.
func Name(name string) Result {
	if strings.TrimSpace(name) == "" {
		return fail("Name is required")
	}
	if utf8.RuneCountInString(name) < 2 {
		return fail("Name must be at least 2 characters")
	}
	if utf8.RuneCountInString(name) > 100 {
		return fail("Name is too long (max 100 characters)")
	}
	lower := strings.ToLower(name)
	for _, p := range nameBlocklist {
		if strings.Contains(lower, p) {
			return fail("Name contains invalid characters")
		}
	}
	return ok()
}

// Age validates a patient age: a whole number between 1 and 120 inclusive.
func Age(age string) Result {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		return fail("Please enter a valid age")
	}
	if n < 1 || n > 120 {
		return fail("Age must be between 1 and 120 years")
	}
	return ok()
}

// Date validates an appointment date in 2006-01-02 form.  The date must be
// today or later, and no more than six calendar months ahead.  "Today" is
// evaluated in the server's local zone with the time truncated to midnight.
func Date(dateString string) Result {
	if strings.TrimSpace(dateString) == "" {
		return fail("Date is required")
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateString), time.Local)
	if err != nil {
		return fail("Please enter a valid date")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	if d.Before(today) {
		return fail("Cannot book appointments in the past")
	}
	if d.After(today.AddDate(0, 6, 0)) {
		return fail("Cannot book appointments more than 6 months in advance")
	}
	return ok()
}

// sqlBlocklist catches SQL statements pasted into free text.  Matching is
// case-insensitive; note the trailing space in "UPDATE " so the plain word
// passes.
var sqlBlocklist = []string{"DROP TABLE", "DELETE FROM", "INSERT INTO", "UPDATE ", "SELECT *"}

// Message validates free text: at most 2000 characters and free of SQL
// statement patterns.  The field is optional unless required is set.
func Message(message string, required bool) Result {
	if required && strings.TrimSpace(message) == "" {
		return fail("Message is required")
	}
	if utf8.RuneCountInString(message) > 2000 {
		return fail("Message is too long (max 2000 characters)")
	}
	upper := strings.ToUpper(message)
	for _, p := range sqlBlocklist {
		if strings.Contains(upper, p) {
			return fail("Message contains invalid content")
		}
	}
	return ok()
}

// Location validates the visit address: required, 5–200 characters.
func Location(location string) Result {
	if strings.TrimSpace(location) == "" {
		return fail("Location is required")
	}
	if utf8.RuneCountInString(location) < 5 {
		return fail("Please enter a complete address")
	}
	if utf8.RuneCountInString(location) > 200 {
		return fail("Location is too long (max 200 characters)")
	}
	return ok()
}

// Subject validates the inquiry subject line: required, 3–200 characters.
func Subject(subject string) Result {
	if strings.TrimSpace(subject) == "" {
		return fail("Subject is required")
	}
	if utf8.RuneCountInString(subject) < 3 {
		return fail("Subject is too short (min 3 characters)")
	}
	if utf8.RuneCountInString(subject) > 200 {
		return fail("Subject is too long (max 200 characters)")
	}
	return ok()
}

// -----------------------------------------------------------------------------
// Aggregate form validation
// -----------------------------------------------------------------------------

// AppointmentData carries the raw booking-form values.  Age stays a string
// here; it is coerced to an integer only when the payload is built.
type AppointmentData struct {
	Service  string
	Name     string
	Email    string
	Phone    string
	Age      string
	Location string
	Date     string
	Time     string
	Message  string
}

// ContactData carries the raw contact-form values.
type ContactData struct {
	Name        string
	Email       string
	Phone       string
	ConcernType string
	Subject     string
	Message     string
}

// Appointment runs every booking rule and collects all failures.  The map is
// keyed by submission field name.  An empty map means the form is valid.
func Appointment(d AppointmentData) (bool, map[string]string) {
	errs := make(map[string]string)

	collect(errs, "name", Name(d.Name))
	collect(errs, "email", Email(d.Email))
	collect(errs, "phone", Phone(d.Phone))
	collect(errs, "age", Age(d.Age))
	collect(errs, "location", Location(d.Location))
	collect(errs, "date", Date(d.Date))

	if d.Service == "" {
		errs["service"] = "Please select a service"
	}
	if d.Time == "" {
		errs["time"] = "Please select a time slot"
	}
	if d.Message != "" {
		collect(errs, "message", Message(d.Message, false))
	}

	return len(errs) == 0, errs
}

// Contact runs every contact-form rule and collects all failures.
func Contact(d ContactData) (bool, map[string]string) {
	errs := make(map[string]string)

	collect(errs, "name", Name(d.Name))
	collect(errs, "email", Email(d.Email))
	collect(errs, "phone", Phone(d.Phone))
	collect(errs, "subject", Subject(d.Subject))
	collect(errs, "message", Message(d.Message, true))

	if d.ConcernType == "" {
		errs["concern_type"] = "Please select a concern type"
	}

	return len(errs) == 0, errs
}

func collect(errs map[string]string, field string, r Result) {
	if !r.Valid {
		errs[field] = r.Error
	}
}

// -----------------------------------------------------------------------------
// Malicious-input tripwire
// -----------------------------------------------------------------------------

// maliciousRes is a coarse battery of injection signatures: script tags,
// inline event handlers, eval/expression calls, SQL statements, path
// traversal, and URL-encoded angle brackets.
var maliciousRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)eval\(`),
	regexp.MustCompile(`(?i)expression\(`),
	regexp.MustCompile(`(?i)DROP\s+TABLE`),
	regexp.MustCompile(`(?i)DELETE\s+FROM`),
	regexp.MustCompile(`(?i)INSERT\s+INTO`),
	regexp.MustCompile(`\.\./`),
	regexp.MustCompile(`(?i)%3C`),
	regexp.MustCompile(`(?i)%3E`),
}

// DetectMaliciousInput reports whether input matches any known injection
// signature.  Used for logging suspicious submissions; validation rules above
// remain the actual gate.
func DetectMaliciousInput(input string) bool {
	for _, re := range maliciousRes {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}
