package service

import (
	"strings"

	"honeypot-llm/internal/domain"
)

// SignalClassifier evalua un mensaje contra la taxonomia de senales de
// sospecha. La clasificacion es por turno: ningun estado de turnos previos
// alimenta las banderas.
type SignalClassifier struct {
	vocab Vocabulary
}

func NewSignalClassifier(vocab Vocabulary) *SignalClassifier {
	return &SignalClassifier{vocab: vocab}
}

// Classify es una funcion pura: el mismo par (texto, inteligencia) produce
// siempre las mismas banderas. Las reglas son independientes y no exclusivas;
// todas se evaluan en cada llamada.
func (c *SignalClassifier) Classify(text string, intel domain.Intelligence) domain.ClassificationFlags {
	lower := strings.ToLower(text)
	return domain.ClassificationFlags{
		PaymentRequested:            containsAny(lower, c.vocab.Payment),
		BankOrAccountReferenced:     containsAny(lower, c.vocab.BankAccount),
		OTPOrVerificationReferenced: containsAny(lower, c.vocab.Verification),
		UrgencyAsserted:             containsAny(lower, c.vocab.Urgency),
		IntelligencePresent:         intel.HasFindings(),
	}
}

// VerdictFor deriva el veredicto global: sospechoso si cualquier bandera esta
// activa, seguro en caso contrario.
func (c *SignalClassifier) VerdictFor(flags domain.ClassificationFlags) domain.Verdict {
	if flags.Any() {
		return domain.VerdictSuspicious
	}
	return domain.VerdictSafe
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
