package logging

// Structured log keys used across packages.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldPhase      = "phase"
	FieldSlot       = "slot"
	FieldTier       = "tier"
	FieldCount      = "count"
	FieldReminderID = "reminder_id"
	FieldAgeMS      = "age_ms"
	FieldDurationMS = "duration_ms"
	FieldPath       = "path"
)
