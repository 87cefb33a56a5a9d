package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"honeypot-llm/internal/domain"
	"honeypot-llm/internal/service"
)

// ChatHandler expone el motor de decision al evaluador externo. El handler es
// plomeria: valida el payload, arma la historia y retransmite el resultado.
type ChatHandler struct {
	logger   *zap.Logger
	engine   *service.Engine
	sessions *service.SessionService
}

func NewChatHandler(logger *zap.Logger, engine *service.Engine, sessions *service.SessionService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		engine:   engine,
		sessions: sessions,
	}
}

type wireMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Chat maneja POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		SessionID           string        `json:"session_id"`
		Message             *wireMessage  `json:"message" binding:"required"`
		ConversationHistory []wireMessage `json:"conversation_history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// La historia incluye el turno actual como ultimo elemento.
	history := make([]domain.Message, 0, len(req.ConversationHistory)+1)
	for _, m := range req.ConversationHistory {
		history = append(history, domain.Message{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	current := domain.Message{
		Role:      req.Message.Role,
		Content:   req.Message.Content,
		Timestamp: req.Message.Timestamp,
	}
	if current.Role == "" {
		current.Role = domain.RoleScammer
	}
	history = append(history, current)

	result, err := h.engine.Evaluate(c.Request.Context(), sessionID, current.Content, history)
	if errors.Is(err, service.ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
		return
	}
	if err != nil {
		h.logger.Error("engine evaluate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not evaluate message"})
		return
	}

	if duration, err := h.sessions.Touch(c.Request.Context(), sessionID, result.Metrics.TurnCount); err != nil {
		h.logger.Warn("session touch failed", zap.Error(err), zap.String("session_id", sessionID))
	} else {
		result.Metrics.DurationSeconds = duration
	}

	// Persistencia asincrona para no bloquear la respuesta al contraparte.
	go func(sessionID string, inbound domain.Message, result domain.EngineResult) {
		ctx := context.Background()
		if err := h.sessions.RecordTurn(ctx, sessionID, inbound, result.Reply); err != nil {
			h.logger.Warn("record turn failed", zap.Error(err), zap.String("session_id", sessionID))
		}
		if err := h.sessions.RecordIntelligence(ctx, sessionID, result.Verdict, result.Intelligence); err != nil {
			h.logger.Warn("record intelligence failed", zap.Error(err), zap.String("session_id", sessionID))
		}
	}(sessionID, current, result)

	c.JSON(http.StatusOK, gin.H{
		"session_id":             sessionID,
		"scam_detection_status":  result.Verdict,
		"reply":                  result.Reply,
		"extracted_intelligence": result.Intelligence,
		"engagement_metrics":     result.Metrics,
	})
}
