package mailer

import (
	"fmt"

	mail "gopkg.in/mail.v2"
)

// Kind selects the mail template.
type Kind string

const (
	KindBookingConfirmation Kind = "booking_confirmation"
	KindCancellation        Kind = "cancellation"
	KindStatusUpdate        Kind = "status_update"
)

// Sender delivers one templated mail. Every call site in the
// scheduling core treats failures as log-and-continue.
type Sender interface {
	Send(to string, kind Kind, params map[string]string) error
}

type SMTPSender struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

func NewSMTPSender(smtpHost string, smtpPort int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) Send(to string, kind Kind, params map[string]string) error {
	subject, body := render(kind, params)

	message := mail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)

	return dialer.DialAndSend(message)
}

func render(kind Kind, params map[string]string) (subject, body string) {
	switch kind {
	case KindBookingConfirmation:
		return "Your consultation is booked",
			fmt.Sprintf(
				"Hello %s,\n\nYour %s consultation with Dr. %s is booked for %s.\nWe will let you know once the physician confirms.\n",
				params["patient_name"],
				params["consultation_type"],
				params["physician_name"],
				params["start_time"],
			)
	case KindCancellation:
		return "Your consultation was cancelled",
			fmt.Sprintf(
				"Hello %s,\n\nYour consultation with Dr. %s on %s was cancelled by the %s.\n",
				params["patient_name"],
				params["physician_name"],
				params["start_time"],
				params["cancelled_by"],
			)
	case KindStatusUpdate:
		return "Your consultation was updated",
			fmt.Sprintf(
				"Hello %s,\n\nYour consultation with Dr. %s on %s is now %s.\n",
				params["patient_name"],
				params["physician_name"],
				params["start_time"],
				params["status"],
			)
	}

	return "Notification", params["message"]
}
