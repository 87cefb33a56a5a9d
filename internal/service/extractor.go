package service

import (
	"regexp"

	"honeypot-llm/internal/domain"
)

// Patrones de artefactos. El patron de cuentas (9-18 digitos) tambien captura
// telefonos de 10 digitos: es una limitacion de precision conocida, no se
// estrecha sin confirmar el comportamiento esperado.
var (
	upiHandleRe    = regexp.MustCompile(`[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}`)
	bankAccountRe  = regexp.MustCompile(`\b[0-9]{9,18}\b`)
	phishingLinkRe = regexp.MustCompile(`https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+`)
)

// IntelligenceExtractor escanea el texto crudo de un mensaje en busca de
// numeros de cuenta, handles de pago estilo UPI y enlaces de phishing.
type IntelligenceExtractor struct{}

// DefaultIntelligenceExtractor permite uso directo sin instanciar.
var DefaultIntelligenceExtractor = IntelligenceExtractor{}

// Extract corre los tres escaneos independientes sobre el texto. No hay
// validacion cruzada entre campos: un token que coincide con varios patrones
// se reporta en todos. Nunca falla; sin coincidencias devuelve colecciones
// vacias.
func (IntelligenceExtractor) Extract(text string) domain.Intelligence {
	return domain.Intelligence{
		BankAccounts:  dedupeMatches(bankAccountRe.FindAllString(text, -1)),
		UPIHandles:    dedupeMatches(upiHandleRe.FindAllString(text, -1)),
		PhishingLinks: dedupeMatches(phishingLinkRe.FindAllString(text, -1)),
	}
}

// dedupeMatches elimina duplicados preservando el orden de aparicion.
func dedupeMatches(matches []string) []string {
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
