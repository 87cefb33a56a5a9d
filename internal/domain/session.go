package domain

import "time"

// Session registra el enganche acumulado de una conversacion. CreatedAt ancla
// el calculo de duracion real; TurnCount es el ultimo turno observado.
type Session struct {
	ID         string    `json:"id"`
	TurnCount  int       `json:"turn_count"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// IntelligenceReport es un hallazgo persistido para reporte y bloqueo posterior.
type IntelligenceReport struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	Verdict       Verdict   `json:"verdict"`
	BankAccounts  []string  `json:"bank_accounts"`
	UPIHandles    []string  `json:"upi_handles"`
	PhishingLinks []string  `json:"phishing_links"`
	CreatedAt     time.Time `json:"created_at"`
}

// HighValue indica si el reporte contiene identificadores financieros
// accionables (cuentas o handles de pago), no solo enlaces.
func (r IntelligenceReport) HighValue() bool {
	return len(r.BankAccounts) > 0 || len(r.UPIHandles) > 0
}
