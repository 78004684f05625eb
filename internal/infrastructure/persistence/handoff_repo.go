package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"insurance_desk/internal/domain"
	"insurance_desk/internal/domain/entity"
	"insurance_desk/pkg/errcodes"
)

//go:embed migrations/001_handoff_tickets.sql
var handoffSchema string

// HandoffRepository stores handoff tickets in postgres.
type HandoffRepository struct {
	db *sqlx.DB
}

func NewHandoffRepository(db *sqlx.DB) *HandoffRepository {
	return &HandoffRepository{db: db}
}

// Migrate creates the tickets table when it does not exist yet.
func (r *HandoffRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, handoffSchema); err != nil {
		return domain.WrapError(err, errcodes.HandoffStore, "failed to migrate handoff_tickets")
	}

	return nil
}

func (r *HandoffRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.HandoffStore, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.HandoffStore, "failed to commit")
	}

	return nil
}

func (r *HandoffRepository) Create(ctx context.Context, ticket entity.HandoffTicket) error {
	schema, err := fromTicket(ticket)
	if err != nil {
		return domain.WrapError(err, errcodes.HandoffStore, "failed to encode ticket")
	}

	query := `
		INSERT INTO handoff_tickets (id, reason, session_id, customer_profile, status, created_at, forwarded_at)
		VALUES (:id, :reason, :session_id, :customer_profile, :status, :created_at, :forwarded_at)`

	if _, err = r.db.NamedExecContext(ctx, query, schema); err != nil {
		return domain.WrapError(err, errcodes.HandoffStore, "failed to insert ticket")
	}

	return nil
}

func (r *HandoffRepository) GetByID(ctx context.Context, id string) (entity.HandoffTicket, error) {
	query := `
		SELECT id, reason, session_id, customer_profile, status, created_at, forwarded_at
		FROM handoff_tickets
		WHERE id = $1`

	var schema ticketSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.HandoffTicket{}, domain.NewError(errcodes.TicketNotFound, "ticket not found")
		}

		return entity.HandoffTicket{}, domain.WrapError(err, errcodes.HandoffStore, "failed to get ticket")
	}

	ticket, err := schema.toDomain()
	if err != nil {
		return entity.HandoffTicket{}, domain.WrapError(err, errcodes.HandoffStore, "failed to decode ticket")
	}

	return ticket, nil
}

// MarkForwarded locks the row so concurrent task retries record a single
// forwarding time.
func (r *HandoffRepository) MarkForwarded(ctx context.Context, id string, at time.Time) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		var status string

		err := tx.GetContext(ctx, &status, `SELECT status FROM handoff_tickets WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewError(errcodes.TicketNotFound, "ticket not found")
			}

			return domain.WrapError(err, errcodes.HandoffStore, "failed to lock ticket")
		}

		if entity.TicketStatus(status) == entity.TicketForwarded {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE handoff_tickets SET status = $1, forwarded_at = $2 WHERE id = $3`,
			string(entity.TicketForwarded), at, id,
		)
		if err != nil {
			return domain.WrapError(err, errcodes.HandoffStore, "failed to mark ticket forwarded")
		}

		return nil
	})
}
