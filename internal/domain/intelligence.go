package domain

// Intelligence agrupa los artefactos extraidos de un unico mensaje. Cada campo
// es una coleccion sin duplicados; colecciones vacias significan "nada
// encontrado", no ausencia de analisis.
type Intelligence struct {
	BankAccounts  []string `json:"bank_accounts"`
	UPIHandles    []string `json:"upi_handles"`
	PhishingLinks []string `json:"phishing_links"`
}

// EmptyIntelligence devuelve una extraccion vacia con colecciones inicializadas.
func EmptyIntelligence() Intelligence {
	return Intelligence{
		BankAccounts:  []string{},
		UPIHandles:    []string{},
		PhishingLinks: []string{},
	}
}

// HasFindings indica si al menos un campo contiene artefactos.
func (i Intelligence) HasFindings() bool {
	return len(i.BankAccounts) > 0 || len(i.UPIHandles) > 0 || len(i.PhishingLinks) > 0
}

// ClassificationFlags es la clasificacion multi-senal de un mensaje. Se deriva
// siempre del turno actual, nunca se persiste de forma independiente.
type ClassificationFlags struct {
	PaymentRequested            bool `json:"payment_requested"`
	BankOrAccountReferenced     bool `json:"bank_or_account_referenced"`
	OTPOrVerificationReferenced bool `json:"otp_or_verification_referenced"`
	UrgencyAsserted             bool `json:"urgency_asserted"`
	IntelligencePresent         bool `json:"intelligence_present"`
}

// Any indica si alguna bandera esta activa.
func (f ClassificationFlags) Any() bool {
	return f.PaymentRequested ||
		f.BankOrAccountReferenced ||
		f.OTPOrVerificationReferenced ||
		f.UrgencyAsserted ||
		f.IntelligencePresent
}

// Verdict es el veredicto global sobre un mensaje.
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictSuspicious Verdict = "suspicious"
	VerdictError      Verdict = "error"
)

// EngagementMetrics resume el enganche observado al momento de clasificar.
// TurnCount no incluye la respuesta que esta por generarse.
type EngagementMetrics struct {
	TurnCount       int `json:"turn_count"`
	DurationSeconds int `json:"duration_seconds"`
}

// EngineResult es la unica salida externa del motor de decision.
type EngineResult struct {
	Verdict      Verdict             `json:"verdict"`
	Reply        string              `json:"reply"`
	Flags        ClassificationFlags `json:"flags"`
	Intelligence Intelligence        `json:"extracted_intelligence"`
	Metrics      EngagementMetrics   `json:"engagement_metrics"`
}
