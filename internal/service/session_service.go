package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"honeypot-llm/internal/domain"
	"honeypot-llm/internal/email"
	"honeypot-llm/internal/repository"
)

var ErrSessionIDRequired = errors.New("session id is required")

// SessionService mantiene el estado de enganche por sesion y persiste
// transcripciones y reportes de inteligencia. Toda la persistencia es de mejor
// esfuerzo: una falla aqui nunca afecta la respuesta al contraparte. Con
// repositorios nil opera como no-op (modo sin base de datos).
type SessionService struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	messages repository.MessageRepository
	reports  repository.IntelligenceRepository
	alerts   email.Sender
}

func NewSessionService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	messages repository.MessageRepository,
	reports repository.IntelligenceRepository,
	alerts email.Sender,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		logger:   logger,
		sessions: sessions,
		messages: messages,
		reports:  reports,
		alerts:   alerts,
	}
}

// Touch garantiza que la sesion exista y devuelve la duracion real del
// enganche en segundos, medida desde el primer turno observado.
func (s *SessionService) Touch(ctx context.Context, sessionID string, turnCount int) (int, error) {
	if s == nil || s.sessions == nil {
		return 0, nil
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return 0, ErrSessionIDRequired
	}

	now := time.Now().UTC()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		session = domain.Session{
			ID:         sessionID,
			TurnCount:  turnCount,
			LastSeenAt: now,
			CreatedAt:  now,
		}
		if err := s.sessions.Create(ctx, session); err != nil {
			return 0, fmt.Errorf("create session: %w", err)
		}
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}

	if err := s.sessions.UpdateEngagement(ctx, sessionID, turnCount, now); err != nil {
		return 0, fmt.Errorf("update session: %w", err)
	}

	elapsed := int(now.Sub(session.CreatedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, nil
}

// RecordTurn persiste el mensaje entrante y la respuesta del agente.
func (s *SessionService) RecordTurn(ctx context.Context, sessionID string, inbound domain.Message, reply string) error {
	if s == nil || s.messages == nil {
		return nil
	}

	inbound.SessionID = sessionID
	if inbound.ID == "" {
		inbound.ID = uuid.NewString()
	}
	if inbound.Role == "" {
		inbound.Role = domain.RoleScammer
	}
	if inbound.CreatedAt.IsZero() {
		inbound.CreatedAt = time.Now().UTC()
	}
	if err := s.messages.Create(ctx, inbound); err != nil {
		return fmt.Errorf("persist inbound message: %w", err)
	}

	agentMsg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      domain.RoleAgent,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, agentMsg); err != nil {
		return fmt.Errorf("persist agent message: %w", err)
	}
	return nil
}

// RecordIntelligence guarda un reporte cuando la extraccion tuvo hallazgos y
// dispara la alerta por correo si contiene identificadores financieros.
func (s *SessionService) RecordIntelligence(ctx context.Context, sessionID string, verdict domain.Verdict, intel domain.Intelligence) error {
	if s == nil || s.reports == nil || !intel.HasFindings() {
		return nil
	}

	report := domain.IntelligenceReport{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		Verdict:       verdict,
		BankAccounts:  intel.BankAccounts,
		UPIHandles:    intel.UPIHandles,
		PhishingLinks: intel.PhishingLinks,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return fmt.Errorf("persist intelligence report: %w", err)
	}

	if s.alerts != nil && report.HighValue() {
		if err := s.alerts.SendIntelligenceAlert(ctx, report); err != nil {
			s.logger.Warn("intelligence alert failed",
				zap.Error(err),
				zap.String("session_id", sessionID),
			)
		}
	}
	return nil
}
