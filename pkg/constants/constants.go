package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// NATS subject prefixes. The id of the affected row is appended as the
	// final token and also carried in the message body.
	SubjectAppointmentCreated   = "sanad.appointment.created"
	SubjectAppointmentCancelled = "sanad.appointment.cancelled"
	SubjectAppointmentUpdated   = "sanad.appointment.updated"
	SubjectMessageNew           = "sanad.message.new"
)
