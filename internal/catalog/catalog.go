// internal/catalog/catalog.go
//
// True Relief Physio – enumerated clinic data.
//
// Context
//   Every selectable option the site offers lives here: the services the
//   clinic performs, the concern categories a contact inquiry may carry, the
//   bookable half-hour time slots, and the lead statuses the admin dashboard
//   can assign.  The lists mirror the choices enforced by the REST backend,
//   so a value accepted here is a value the backend will accept too.
//
//   Values are stable machine keys; labels are what templates display.  The
//   lunch break (01:00 PM and 01:30 PM) is deliberately absent from the slot
//   list.
//
//------------------------------------------------------------------------------

package catalog

// Option pairs a machine value with its display label.
type Option struct {
	Value string
	Label string
}

// services the clinic offers, in menu order.
var services = []Option{
	{"physiotherapy", "Physiotherapy"},
	{"manual_therapy", "Manual Therapy"},
	{"electro_therapy", "Electro Therapy"},
	{"exercise_fitness", "Exercise & Fitness"},
	{"cupping_therapy", "Cupping Therapy"},
	{"orthopaedic_physio", "Orthopaedic physiotherapy"},
	{"neuro_physio", "Neuro physiotherapy"},
	{"sports_physio", "Sports physiotherapy"},
	{"paediatrics_physio", "Paediatrics physiotherapy"},
	{"dry_needling", "Dry needling"},
	{"physio_at_home", "Physiotherapy at Home"},
	{"chest_physio", "Chest Physiotherapy"},
	{"tele_physio", "Tele Physiotherapy"},
	{"chiropractic", "Chiropractic Therapy"},
	{"obesity_physio", "Obesity Physiotherapy"},
	{"iastm_therapy", "IASTM Therapy"},
	{"vertigo_testing", "Vertigo Testing"},
	{"shockwave_therapy", "Shockwave Therapy"},
}

// concernTypes categorize contact inquiries.
var concernTypes = []Option{
	{"general_inquiry", "General Inquiry"},
	{"back_pain", "Back Pain"},
	{"neck_pain", "Neck Pain"},
	{"joint_pain", "Joint Pain"},
	{"sports_injury", "Sports Injury"},
	{"post_surgery_recovery", "Post-Surgery Recovery"},
	{"neurological_condition", "Neurological Condition"},
	{"pediatric_care", "Pediatric Care"},
	{"home_visit_request", "Home Visit Request"},
	{"online_consultation", "Online Consultation"},
	{"emergency_care", "Emergency Care"},
	{"other", "Other"},
}

// timeSlots are the bookable half-hour visit times.  09:00 AM through
// 07:30 PM, minus the 01:00 PM and 01:30 PM lunch slots.
var timeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	"04:00 PM", "04:30 PM", "05:00 PM", "05:30 PM", "06:00 PM", "06:30 PM",
	"07:00 PM", "07:30 PM",
}

// appointmentStatuses is the lifecycle an appointment lead moves through.
var appointmentStatuses = []Option{
	{"pending", "Pending"},
	{"confirmed", "Confirmed"},
	{"completed", "Completed"},
	{"cancelled", "Cancelled"},
}

// contactStatuses is the lifecycle a contact lead moves through.
var contactStatuses = []Option{
	{"new", "New"},
	{"in_progress", "In Progress"},
	{"replied", "Replied"},
	{"closed", "Closed"},
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Services returns the service list in menu order.  Callers must not mutate
// the returned slice.
func Services() []Option { return services }

// ConcernTypes returns the contact concern categories.
func ConcernTypes() []Option { return concernTypes }

// TimeSlots returns the bookable time-slot strings.
func TimeSlots() []string { return timeSlots }

// AppointmentStatuses returns the appointment lead statuses.
func AppointmentStatuses() []Option { return appointmentStatuses }

// ContactStatuses returns the contact lead statuses.
func ContactStatuses() []Option { return contactStatuses }

// -----------------------------------------------------------------------------
// Membership checks
// -----------------------------------------------------------------------------

// ValidService reports whether v is a known service key.
func ValidService(v string) bool { return optionKnown(services, v) }

// ValidConcernType reports whether v is a known concern key.
func ValidConcernType(v string) bool { return optionKnown(concernTypes, v) }

// ValidTimeSlot reports whether v is a bookable slot.
func ValidTimeSlot(v string) bool {
	for _, s := range timeSlots {
		if s == v {
			return true
		}
	}
	return false
}

// ValidAppointmentStatus reports whether v is an assignable appointment status.
func ValidAppointmentStatus(v string) bool { return optionKnown(appointmentStatuses, v) }

// ValidContactStatus reports whether v is an assignable contact status.
func ValidContactStatus(v string) bool { return optionKnown(contactStatuses, v) }

// ServiceLabel returns the display label for a service key, or the key itself
// when unknown (backend data may be newer than this binary).
func ServiceLabel(v string) string { return optionLabel(services, v) }

// ConcernLabel returns the display label for a concern key, or the key itself.
func ConcernLabel(v string) string { return optionLabel(concernTypes, v) }

func optionKnown(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func optionLabel(opts []Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}
