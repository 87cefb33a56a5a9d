package llm

import "context"

// MockClient permite tests sin llamar a un LLM real. Registra las invocaciones
// para poder afirmar cuando el cliente NO debio ser llamado (throttling,
// delegado deshabilitado).
type MockClient struct {
	Response   string
	Err        error
	Calls      int
	LastPrompt string
}

func (m *MockClient) Generate(_ context.Context, prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	return m.Response, m.Err
}
