package email

import (
	"context"
	"errors"

	"honeypot-llm/internal/domain"
)

// Sender define la interfaz para el envio de alertas de inteligencia.
type Sender interface {
	SendIntelligenceAlert(ctx context.Context, report domain.IntelligenceReport) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendIntelligenceAlert(_ context.Context, _ domain.IntelligenceReport) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
