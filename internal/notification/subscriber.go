package notification

import (
	"context"
	"log/slog"

	"github.com/netfibra/backoffice/internal/core/events"
)

// Subscriber wires domain events to outbound email. Every handler swallows
// its own failures after logging; a dead SMTP relay must never fail a write
// on the API side.
type Subscriber struct {
	mailer Mailer
	logger *slog.Logger
}

func NewSubscriber(mailer Mailer, logger *slog.Logger) *Subscriber {
	return &Subscriber{mailer: mailer, logger: logger}
}

func (s *Subscriber) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeUserCreated, s.onUserCreated)
	bus.Subscribe(events.EventTypeMatrixReplaced, s.onMatrixReplaced)
}

func (s *Subscriber) onUserCreated(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})
	email, _ := data["email"].(string)
	if email == "" {
		return nil
	}

	body := "Sua conta foi criada e aguarda aprovação de um administrador.\n" +
		"Você receberá acesso assim que a conta for aprovada."
	if err := s.mailer.Send(email, "Conta criada", body); err != nil {
		s.logger.Error("failed to send account created email", "to", email, "error", err)
	}
	return nil
}

func (s *Subscriber) onMatrixReplaced(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})
	role, _ := data["role"].(string)
	s.logger.Info("screen permission matrix replaced", "role", role, "event_id", event.EventID())
	return nil
}
