package persistence

import (
	"database/sql"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"insurance_desk/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// ticketSchema maps a handoff_tickets row.
type ticketSchema struct {
	ID              string       `db:"id"`
	Reason          string       `db:"reason"`
	SessionID       string       `db:"session_id"`
	CustomerProfile []byte       `db:"customer_profile"`
	Status          string       `db:"status"`
	CreatedAt       time.Time    `db:"created_at"`
	ForwardedAt     sql.NullTime `db:"forwarded_at"`
}

func fromTicket(t entity.HandoffTicket) (ticketSchema, error) {
	profile := t.CustomerProfile
	if profile == nil {
		profile = map[string]any{}
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return ticketSchema{}, fmt.Errorf("json.Marshal: %w", err)
	}

	s := ticketSchema{
		ID:              t.ID,
		Reason:          t.Reason,
		SessionID:       t.SessionID,
		CustomerProfile: raw,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
	}

	if t.ForwardedAt != nil {
		s.ForwardedAt = sql.NullTime{Time: *t.ForwardedAt, Valid: true}
	}

	return s, nil
}

func (s ticketSchema) toDomain() (entity.HandoffTicket, error) {
	var profile map[string]any
	if len(s.CustomerProfile) > 0 {
		if err := json.Unmarshal(s.CustomerProfile, &profile); err != nil {
			return entity.HandoffTicket{}, fmt.Errorf("json.Unmarshal: %w", err)
		}
	}

	t := entity.HandoffTicket{
		ID:              s.ID,
		Reason:          s.Reason,
		SessionID:       s.SessionID,
		CustomerProfile: profile,
		Status:          entity.TicketStatus(s.Status),
		CreatedAt:       s.CreatedAt.UTC(),
	}

	if s.ForwardedAt.Valid {
		at := s.ForwardedAt.Time.UTC()
		t.ForwardedAt = &at
	}

	return t, nil
}
