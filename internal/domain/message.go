package domain

import "time"

// Roles de los participantes en una conversacion del honeypot.
const (
	RoleScammer = "scammer"
	RoleAgent   = "agent"
)

// Message representa un turno inmutable de la conversacion. Timestamp es el
// epoch en segundos reportado por el remitente; CreatedAt es el momento de
// persistencia local.
type Message struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp int64     `json:"timestamp,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
