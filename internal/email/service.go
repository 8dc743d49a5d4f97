package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/pediclinic/booking-api/internal/model"
)

// Service sends booking mail. Sends are best-effort: a failed mail never
// rolls back the reservation it describes.
type Service interface {
	SendReservationCreated(ctx context.Context, to string, r *model.Reservation, serviceName string) error
	SendReservationCancelled(ctx context.Context, to string, r *model.Reservation) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendReservationCreated(_ context.Context, to string, r *model.Reservation, serviceName string) error {
	body := fmt.Sprintf(
		"Tu turno para %s ha sido reservado para el %s a las %s.\nEstado: pendiente de confirmación.",
		serviceName,
		r.Date.Format("02/01/2006"),
		r.Slot().Label(),
	)
	return s.send(to, "Turno reservado", body)
}

func (s *smtpService) SendReservationCancelled(_ context.Context, to string, r *model.Reservation) error {
	body := fmt.Sprintf(
		"Tu turno del %s a las %s fue cancelado.",
		r.Date.Format("02/01/2006"),
		r.Slot().Label(),
	)
	return s.send(to, "Turno cancelado", body)
}

// Noop returns a Service that drops all mail, for environments without
// SMTP.
func Noop() Service { return noopService{} }

type noopService struct{}

func (noopService) SendReservationCreated(context.Context, string, *model.Reservation, string) error {
	return nil
}

func (noopService) SendReservationCancelled(context.Context, string, *model.Reservation) error {
	return nil
}
