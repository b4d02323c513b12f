// Package services содержит бизнес-логику отправки писем: обработчики
// сообщений из очередей уведомлений собирают письмо и шлют его через
// SMTP-транспорт.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/lib/smtp"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// SenderService отправляет письма по сообщениям из очередей уведомлений.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// HandleWelcome обрабатывает сообщение очереди notifications.welcome.
func (s *SenderService) HandleWelcome(body []byte) error {
	const op = "sender.HandleWelcome"
	var msg models.WelcomeMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject := "Welcome to FreshFold"
	html := fmt.Sprintf(`<html><body>
		<h2>Welcome, %s!</h2>
		<p>Your account is ready. Schedule your first pickup and we will
		take care of the rest.</p>
		</body></html>`, msg.Name)

	if err := s.send(msg.Email, subject, html); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sent welcome email", slog.String("email", msg.Email))
	return nil
}

// HandleOrderStatus обрабатывает сообщение очереди notifications.order_status.
func (s *SenderService) HandleOrderStatus(body []byte) error {
	const op = "sender.HandleOrderStatus"
	var msg models.OrderStatusMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject := fmt.Sprintf("Order #%d update", msg.OrderID)
	html := fmt.Sprintf(`<html><body>
		<h2>Hi, %s!</h2>
		<p>Your order <b>#%d</b> is now <b>%s</b>.</p>
		</body></html>`, msg.Name, msg.OrderID, statusLabel(msg.Status))

	if err := s.send(msg.Email, subject, html); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sent order status email",
		slog.String("email", msg.Email), slog.Int("order_id", msg.OrderID))
	return nil
}

// HandleTest обрабатывает проверочное сообщение очереди notifications.test.
func (s *SenderService) HandleTest(body []byte) error {
	const op = "sender.HandleTest"
	var msg models.TestMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject := "FreshFold test email"
	html := `<html><body><p>Email delivery works.</p></body></html>`

	if err := s.send(msg.Email, subject, html); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sent test email", slog.String("email", msg.Email))
	return nil
}

// statusLabel переводит машинный статус в человекочитаемую фразу письма.
func statusLabel(status string) string {
	switch status {
	case models.StatusPickupScheduled:
		return "scheduled for pickup"
	case models.StatusPickedUp:
		return "picked up"
	case models.StatusWashing:
		return "being washed"
	case models.StatusReady:
		return "ready for delivery"
	case models.StatusOutForDelivery:
		return "out for delivery"
	case models.StatusCompleted:
		return "completed"
	default:
		return strings.ReplaceAll(status, "_", " ")
	}
}

func (s *SenderService) send(to, subject, html string) error {
	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Quit(); err != nil {
			s.log.Warn("failed to quit smtp client", sl.Err(err))
		}
	}()

	from := s.transport.GetFrom()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	if _, err := w.Write([]byte(b.String())); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
