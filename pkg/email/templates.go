package email

import (
	"fmt"
	"time"
)

// AppointmentEmailData carries the fields used by appointment email templates.
type AppointmentEmailData struct {
	PatientName string
	Email       string
	DoctorName  string
	SessionDate time.Time
	SessionType string
	AppName     string
}

func (d AppointmentEmailData) appName() string {
	if d.AppName == "" {
		return "Sanad"
	}
	return d.AppName
}

func (d AppointmentEmailData) patientName() string {
	if d.PatientName == "" {
		return "there"
	}
	return d.PatientName
}

func (d AppointmentEmailData) sessionDate() string {
	return d.SessionDate.Format("Monday, 2 January 2006 at 15:04 MST")
}

// BuildAppointmentBookedEmail creates a confirmation email for a new booking.
func BuildAppointmentBookedEmail(data AppointmentEmailData) Message {
	appName := data.appName()
	subject := fmt.Sprintf("Your %s session is booked", appName)

	textBody := fmt.Sprintf(`Hi %s,

Your session with %s has been booked.

When: %s
Type: %s

If you need to change or cancel your appointment, you can do so from your dashboard.

Take care,
The %s Team`,
		data.patientName(), data.DoctorName, data.sessionDate(), data.SessionType, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>Your session with <strong>%s</strong> has been booked.</p>
    <p style="background-color: #f3f4f6; padding: 12px 15px; border-radius: 6px;">
        <strong>When:</strong> %s<br>
        <strong>Type:</strong> %s
    </p>
    <p>If you need to change or cancel your appointment, you can do so from your dashboard.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Take care,<br>The %s Team</p>
</body>
</html>`,
		data.patientName(), data.DoctorName, data.sessionDate(), data.SessionType, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// BuildAppointmentCancelledEmail creates a cancellation notice.
func BuildAppointmentCancelledEmail(data AppointmentEmailData) Message {
	appName := data.appName()
	subject := fmt.Sprintf("Your %s session was cancelled", appName)

	textBody := fmt.Sprintf(`Hi %s,

Your session with %s scheduled for %s has been cancelled.

You can book a new session anytime from your dashboard.

Take care,
The %s Team`,
		data.patientName(), data.DoctorName, data.sessionDate(), appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>Your session with <strong>%s</strong> scheduled for %s has been cancelled.</p>
    <p>You can book a new session anytime from your dashboard.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Take care,<br>The %s Team</p>
</body>
</html>`,
		data.patientName(), data.DoctorName, data.sessionDate(), appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// BuildAppointmentRescheduledEmail creates a notice carrying the new session time.
func BuildAppointmentRescheduledEmail(data AppointmentEmailData) Message {
	appName := data.appName()
	subject := fmt.Sprintf("Your %s session was rescheduled", appName)

	textBody := fmt.Sprintf(`Hi %s,

Your session with %s has been moved.

New time: %s

If the new time does not work for you, you can reschedule again or cancel from your dashboard.

Take care,
The %s Team`,
		data.patientName(), data.DoctorName, data.sessionDate(), appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>Your session with <strong>%s</strong> has been moved.</p>
    <p style="background-color: #f3f4f6; padding: 12px 15px; border-radius: 6px;">
        <strong>New time:</strong> %s
    </p>
    <p>If the new time does not work for you, you can reschedule again or cancel from your dashboard.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Take care,<br>The %s Team</p>
</body>
</html>`,
		data.patientName(), data.DoctorName, data.sessionDate(), appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
