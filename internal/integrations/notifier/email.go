package notifier

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender отправляет письма через SendGrid API
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       Logger
}

// NewSendGridSender создает отправителя. Без API ключа возвращает nil
func NewSendGridSender(apiKey, fromEmail, fromName string, log Logger) *SendGridSender {
	if apiKey == "" {
		return nil
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.client == nil {
		return ErrEmailNotConfigured
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d: %s", ErrEmailSend, response.StatusCode, response.Body)
	}

	s.log.Info("SendGrid: email sent to %s, status=%d", msg.To, response.StatusCode)
	return nil
}

// StubEmailSender логирует письмо вместо отправки
type StubEmailSender struct {
	log Logger
}

func NewStubEmailSender(log Logger) *StubEmailSender {
	return &StubEmailSender{log: log}
}

func (s *StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	s.log.Info("StubEmailSender: would send %q to %s", msg.Subject, msg.To)
	return nil
}

// NewEmailSender выбирает SendGrid при наличии ключа, иначе заглушку
func NewEmailSender(apiKey, fromEmail, fromName string, log Logger) EmailSender {
	if sg := NewSendGridSender(apiKey, fromEmail, fromName, log); sg != nil {
		return sg
	}
	return NewStubEmailSender(log)
}
