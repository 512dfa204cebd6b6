// Package notification delivers status messages hospitals send to
// patients. Delivery is fire-and-forget and nothing is persisted.
package notification

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

// Sender delivers a composed notification.
type Sender interface {
	Send(notification *model.Notification) error
}

type Service struct {
	sender Sender
	log    *logger.Logger
	now    func() time.Time
}

func NewService(sender Sender, log *logger.Logger) *Service {
	return &Service{sender: sender, log: log, now: time.Now}
}

// Send composes and delivers a notification on behalf of the logged-in
// hospital.
func (s *Service) Send(sess *session.Session, req *model.SendNotificationRequest) (*model.Notification, error) {
	if sess.Hospital() == nil {
		return nil, apperrors.Unauthorized("only a logged-in hospital can send notifications")
	}

	notification := &model.Notification{
		PatientMobile: req.PatientMobile,
		Status:        req.Status,
		Message:       req.Message,
		Timestamp:     s.now(),
	}
	if err := s.sender.Send(notification); err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}
	return notification, nil
}

// LogSender writes notifications to the log. It is the default when no
// SMTP relay is configured.
type LogSender struct {
	Log *logger.Logger
}

func (s *LogSender) Send(notification *model.Notification) error {
	s.Log.Info("notification sent",
		"patientMobile", notification.PatientMobile,
		"status", notification.Status,
		"message", notification.Message,
	)
	return nil
}

// SMTPConfig configures the gomail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPSender relays notifications to an operations mailbox via SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (s *SMTPSender) Send(notification *model.Notification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("Appointment %s for %s", notification.Status, notification.PatientMobile))
	m.SetBody("text/plain", notification.Message)
	return s.dialer.DialAndSend(m)
}
