package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RosterRepository struct {
	pool *pgxpool.Pool
}

func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

func (r *RosterRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RosterRepository) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	return getEventForUpdate(ctx, r, eventID)
}

func (r *RosterRepository) IsAttending(ctx context.Context, eventID, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM attendees WHERE event_id = $1 AND user_id = $2)`

	var attending bool
	if err := r.queryRow(ctx, query, eventID, userID).Scan(&attending); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrEventNotFound
		}
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return attending, nil
}

func (r *RosterRepository) CountAttendees(ctx context.Context, eventID string) (int, error) {
	return countAttendees(ctx, r, eventID)
}

func (r *RosterRepository) AddAttendee(ctx context.Context, eventID, userID string) error {
	const stmt = `INSERT INTO attendees (event_id, user_id) VALUES ($1, $2)`

	_, err := r.exec(ctx, stmt, eventID, userID)
	if err != nil {
		// The caller holds the event row lock, so a duplicate here means
		// the same user retried within one request lifetime.
		if isUniqueViolation(err) {
			return domain.ErrAdmissionDenied
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("add attendee: %w", err)
	}
	return nil
}

// RemoveAttendee deletes the roster row if present. Absence is not an
// error; leave is idempotent.
func (r *RosterRepository) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	const stmt = `DELETE FROM attendees WHERE event_id = $1 AND user_id = $2`

	_, err := r.exec(ctx, stmt, eventID, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("remove attendee: %w", err)
	}
	return nil
}

func (r *RosterRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RosterRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
