package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/pkg/generator"
)

// AttemptLogRepository records checkout attempts with their terminal state.
// Append-only; nothing in the serving path reads it.
type AttemptLogRepository struct {
	db       *sql.DB
	tokenGen *generator.TokenGenerator
}

func NewAttemptLogRepository(conn *Connection) *AttemptLogRepository {
	return &AttemptLogRepository{
		db:       conn.GetDB(),
		tokenGen: generator.NewTokenGenerator(),
	}
}

func (r *AttemptLogRepository) LogAttempt(ctx context.Context, attempt ports.CheckoutAttempt) error {
	id := attempt.ID
	if id == "" {
		id = r.tokenGen.GenerateAttemptID()
	}

	query := `
		INSERT INTO checkout_attempts (id, session_token, session_id, state, fail_reason, line_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "checkout_attempts", query,
		id, attempt.SessionToken, attempt.SessionID, string(attempt.State),
		attempt.FailReason, attempt.LineCount, time.Now().UTC(),
	)
	return err
}

func (r *AttemptLogRepository) CountAttempts(ctx context.Context, token string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM checkout_attempts
		WHERE session_token = $1
	`

	var count int
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "checkout_attempts", query, token)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
