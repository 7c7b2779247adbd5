package notify

import (
	"log"

	"gopkg.in/gomail.v2"

	"github.com/NishantRana07/Krishi-Mitra/internal/config"
	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

// EmailService sends alert notifications over SMTP. A nil service is valid
// and logs a preview instead of sending, so monitoring keeps working when
// SMTP is not configured.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	if cfg.Host == "" || cfg.Username == "" {
		return nil
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &EmailService{dialer: d, from: cfg.From}
}

// SendAlertEmail delivers one alert notification. Returns false when the
// service is unconfigured or delivery fails; the caller uses the result to
// decide whether to mark the alert's email as sent.
func (e *EmailService) SendAlertEmail(to string, alert models.Alert, crop models.Crop, farmerName string) bool {
	subject := AlertSubject(alert, crop)

	if e == nil {
		log.Printf("Email configuration missing, preview only: to=%s subject=%q", to, subject)
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", AlertTemplate(alert, crop, farmerName))

	if err := e.dialer.DialAndSend(m); err != nil {
		log.Printf("Error sending alert email to %s: %v", to, err)
		return false
	}
	return true
}
