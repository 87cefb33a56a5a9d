package service

import "honeypot-llm/internal/domain"

// Strategy identifica la tactica de respuesta elegida para un turno.
type Strategy string

const (
	StrategyPaymentStall   Strategy = "payment_stall"
	StrategyConfusionProbe Strategy = "confusion_probe"
	StrategyDelegated      Strategy = "delegated"
	StrategyNeutralProbe   Strategy = "neutral_probe"
)

// Plantillas deterministas. Se prefieren sobre el delegado siempre que una
// tactica guionada conocida aplique; la generacion queda reservada para la
// cola larga de mensajes sin patron.
const (
	// ReplyPaymentStall invierte el intento de extraccion: pide al
	// contraparte un monto pequeno para "verificar" el canal de pago.
	ReplyPaymentStall = "I can do that, but my app always fails with new payees. First send me 10 rupees so I can verify the channel works, then I will transfer the full amount."

	// ReplyConfusionProbe finge confusion y pide un dato aclaratorio.
	ReplyConfusionProbe = "Why is my account being suspended? Which bank are you calling from, and which branch?"

	// ReplyNeutralProbe pide al contraparte identificarse.
	ReplyNeutralProbe = "Who are you and why are you messaging me?"

	// Fallbacks neutrales cuando el delegado de generacion no esta disponible.
	ReplyFallbackWeakSignal = "Sorry, the signal here is very weak. Can you say that again?"
	ReplyFallbackNetwork    = "My internet keeps dropping, give me a minute and send that once more."
	ReplyFallbackRepeat     = "I did not catch that, please repeat it."
)

// StrategySelector implementa la tabla de decision priorizada. El orden de
// evaluacion es fijo y no debe alterarse: contra-extraccion de pagos, sondeo
// de confusion, generacion delegada, sondeo neutral.
type StrategySelector struct{}

// DefaultStrategySelector permite uso directo sin instanciar.
var DefaultStrategySelector = StrategySelector{}

// Select devuelve la primera tactica cuya condicion se cumple, de arriba hacia
// abajo. delegateReady indica si hay un delegado de generacion configurado.
func (StrategySelector) Select(flags domain.ClassificationFlags, delegateReady bool) Strategy {
	switch {
	case flags.PaymentRequested:
		return StrategyPaymentStall
	case flags.BankOrAccountReferenced || flags.OTPOrVerificationReferenced || flags.UrgencyAsserted:
		return StrategyConfusionProbe
	case flags.Any() && delegateReady:
		return StrategyDelegated
	default:
		return StrategyNeutralProbe
	}
}

// TemplateFor devuelve la plantilla fija de una estrategia determinista.
func (StrategySelector) TemplateFor(s Strategy) string {
	switch s {
	case StrategyPaymentStall:
		return ReplyPaymentStall
	case StrategyConfusionProbe:
		return ReplyConfusionProbe
	default:
		return ReplyNeutralProbe
	}
}

// FallbackFor elige el reemplazo fijo segun la clase de falla del delegado.
func FallbackFor(failure DelegateFailure) string {
	switch failure {
	case DelegateTimeout:
		return ReplyFallbackWeakSignal
	case DelegateBadResponse:
		return ReplyFallbackRepeat
	default:
		return ReplyFallbackNetwork
	}
}
