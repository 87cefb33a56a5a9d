package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"honeypot-llm/internal/domain"
)

// ErrEmptyMessage se devuelve cuando el turno actual esta vacio. Se rechaza al
// caller en lugar de defaultear en silencio.
var ErrEmptyMessage = errors.New("empty current message")

// ReplyInternalFault es la respuesta de mejor esfuerzo ante una falla interna
// inesperada: la conversacion nunca se corta, un honeypot mudo no sirve.
const ReplyInternalFault = "Hello? I think something is wrong with my phone. What were you saying?"

// Engine es el nucleo de deteccion, extraccion y seleccion de respuesta.
// No guarda estado entre invocaciones: todo el contexto conversacional llega
// en la historia provista por el caller, asi que las evaluaciones concurrentes
// no requieren locks.
type Engine struct {
	extractor  IntelligenceExtractor
	classifier *SignalClassifier
	selector   StrategySelector
	delegate   *GenerationDelegate
	logger     *zap.Logger
}

func NewEngine(classifier *SignalClassifier, delegate *GenerationDelegate, logger *zap.Logger) *Engine {
	if classifier == nil {
		classifier = NewSignalClassifier(DefaultVocabulary())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		extractor:  DefaultIntelligenceExtractor,
		classifier: classifier,
		selector:   DefaultStrategySelector,
		delegate:   delegate,
		logger:     logger,
	}
}

// Evaluate clasifica el turno actual, extrae inteligencia y produce la
// respuesta de enganche. history incluye el turno actual como ultimo elemento:
// turn_count es la longitud observada de la conversacion al momento de
// clasificar, sin contar la respuesta que esta por generarse.
// DurationSeconds queda en cero; el caller lo deriva del reloj real de la
// sesion cuando dispone de el.
func (e *Engine) Evaluate(ctx context.Context, sessionID, current string, history []domain.Message) (result domain.EngineResult, err error) {
	if strings.TrimSpace(current) == "" {
		return domain.EngineResult{}, ErrEmptyMessage
	}

	metrics := domain.EngagementMetrics{TurnCount: len(history)}
	intel := domain.EmptyIntelligence()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("engine fault recovered",
				zap.String("session_id", sessionID),
				zap.Any("fault", r),
			)
			result = domain.EngineResult{
				Verdict:      domain.VerdictError,
				Reply:        ReplyInternalFault,
				Intelligence: intel,
				Metrics:      metrics,
			}
			err = nil
		}
	}()

	intel = e.extractor.Extract(current)
	flags := e.classifier.Classify(current, intel)
	verdict := e.classifier.VerdictFor(flags)

	strategy := e.selector.Select(flags, e.delegate.Ready())

	var reply string
	if strategy == StrategyDelegated {
		res := e.delegate.Generate(ctx, sessionID, current)
		if res.OK() {
			reply = res.Text
		} else {
			reply = FallbackFor(res.Failure)
		}
	} else {
		reply = e.selector.TemplateFor(strategy)
	}

	e.logger.Info("turn evaluated",
		zap.String("session_id", sessionID),
		zap.String("verdict", string(verdict)),
		zap.String("strategy", string(strategy)),
		zap.Int("turn_count", metrics.TurnCount),
	)

	return domain.EngineResult{
		Verdict:      verdict,
		Reply:        reply,
		Flags:        flags,
		Intelligence: intel,
		Metrics:      metrics,
	}, nil
}
