package entity

import "time"

type TicketStatus string

const (
	TicketCreated   TicketStatus = "created"
	TicketForwarded TicketStatus = "forwarded"
)

// HandoffTicket is an escalation of a chat to a human agent.
type HandoffTicket struct {
	ID              string         `json:"id"`
	Reason          string         `json:"reason"`
	SessionID       string         `json:"session_id,omitempty"`
	CustomerProfile map[string]any `json:"customer_profile"`
	Status          TicketStatus   `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	ForwardedAt     *time.Time     `json:"forwarded_at,omitempty"`
}
