package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"honeypot-llm/internal/llm"
)

// DefaultPersonaDirective mantiene al colaborador generativo en personaje.
// Es la unica salvaguarda contra respuestas fuera de rol: el texto generado
// se usa verbatim.
const DefaultPersonaDirective = "You are playing Ramesh, a polite 67-year-old retired school teacher who is not good with phones. " +
	"You believe the other person might really be from your bank. Never reveal that you are automated. " +
	"Reply in one or two short sentences, sound slightly confused, ask small clarifying questions, " +
	"and never share real codes, passwords or payment details."

const maxDelegateTimeout = 10 * time.Second

// DelegateFailure clasifica las fallas recuperables del delegado.
type DelegateFailure int

const (
	DelegateOK DelegateFailure = iota
	DelegateTimeout
	DelegateTransport
	DelegateBadResponse
	DelegateThrottled
)

// DelegateResult es el resultado explicito de una invocacion: texto en exito,
// clase de falla en fracaso. Ningun error cruza este limite.
type DelegateResult struct {
	Text    string
	Failure DelegateFailure
}

func (r DelegateResult) OK() bool {
	return r.Failure == DelegateOK
}

// DelegateRateLimiter acota cuantas invocaciones al delegado se permiten por
// clave dentro de una ventana.
type DelegateRateLimiter interface {
	Allow(key string) bool
}

// GenerationDelegate envuelve una unica llamada al colaborador de generacion
// de texto, con directiva de persona fija y timeout acotado. No reintenta.
type GenerationDelegate struct {
	client  llm.LLMClient
	persona string
	timeout time.Duration
	limiter DelegateRateLimiter
	logger  *zap.Logger
}

func NewGenerationDelegate(client llm.LLMClient, persona string, timeout time.Duration, limiter DelegateRateLimiter, logger *zap.Logger) *GenerationDelegate {
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersonaDirective
	}
	if timeout <= 0 || timeout > maxDelegateTimeout {
		timeout = maxDelegateTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationDelegate{
		client:  client,
		persona: persona,
		timeout: timeout,
		limiter: limiter,
		logger:  logger,
	}
}

// Ready indica si hay un colaborador configurado. Con nil receiver devuelve
// false para que el selector caiga al sondeo neutral.
func (d *GenerationDelegate) Ready() bool {
	return d != nil && d.client != nil
}

// Generate invoca al colaborador una sola vez y clasifica cualquier falla como
// dato. El limitador cuenta como delegado no disponible cuando deniega.
func (d *GenerationDelegate) Generate(ctx context.Context, sessionID, message string) DelegateResult {
	if !d.Ready() {
		return DelegateResult{Failure: DelegateTransport}
	}
	if d.limiter != nil && !d.limiter.Allow(sessionID) {
		d.logger.Warn("delegate call throttled", zap.String("session_id", sessionID))
		return DelegateResult{Failure: DelegateThrottled}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	prompt := d.persona + "\n\nMessage from the counterpart:\n" + message
	text, err := d.client.Generate(ctx, prompt)
	if err == nil {
		if strings.TrimSpace(text) == "" {
			return DelegateResult{Failure: DelegateBadResponse}
		}
		return DelegateResult{Text: text}
	}

	failure := classifyDelegateError(err)
	d.logger.Warn("delegate call failed",
		zap.String("session_id", sessionID),
		zap.Int("failure_class", int(failure)),
		zap.Error(err),
	)
	return DelegateResult{Failure: failure}
}

func classifyDelegateError(err error) DelegateFailure {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return DelegateTimeout
	case errors.Is(err, llm.ErrBadResponse) || errors.Is(err, llm.ErrEmptyResponse):
		return DelegateBadResponse
	default:
		// ErrHTTPStatus y errores de transporte se tratan igual.
		return DelegateTransport
	}
}
