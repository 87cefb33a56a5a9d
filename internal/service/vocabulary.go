package service

// Vocabulary es la tabla versionada de terminos que activan cada senal de
// sospecha. Se inyecta al clasificador para que la tabla de decision se pueda
// probar sin literales dispersos en el flujo de control.
type Vocabulary struct {
	Payment      []string
	BankAccount  []string
	Verification []string
	Urgency      []string
}

// DefaultVocabulary devuelve el vocabulario operativo del honeypot, incluyendo
// los terminos regionales de apps de pago y la variante estricta de urgencia.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Payment:      []string{"money", "pay", "payment", "send", "transfer", "upi", "gpay", "paytm", "phonepe"},
		BankAccount:  []string{"bank", "account"},
		Verification: []string{"otp", "verify"},
		Urgency:      []string{"urgent", "blocked", "suspend", "suspended"},
	}
}
