package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const eventWithCountQuery = `
SELECT e.id, e.title, e.description, e.starts_at, e.location, e.capacity,
       e.category, e.image_url, e.owner_id, e.created_at, e.updated_at,
       COUNT(a.user_id)
FROM events e
LEFT JOIN attendees a ON a.event_id = e.id`

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, title, description, starts_at, location, capacity, category, image_url, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.StartsAt,
		event.Location,
		event.Capacity,
		event.Category,
		event.ImageURL,
		event.OwnerID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	query := eventWithCountQuery + `
WHERE e.id = $1
GROUP BY e.id`

	event, err := r.scanEvent(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// GetEventForUpdate locks the event row for the rest of the transaction.
// The attendee count is not populated here; callers that need it read it
// under the same lock.
func (r *EventRepository) GetEventForUpdate(ctx context.Context, id string) (domain.Event, error) {
	return getEventForUpdate(ctx, r, id)
}

func (r *EventRepository) CountAttendees(ctx context.Context, eventID string) (int, error) {
	return countAttendees(ctx, r, eventID)
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET title = $2, description = $3, starts_at = $4, location = $5, capacity = $6,
    category = $7, image_url = $8, updated_at = $9
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.StartsAt,
		event.Location,
		event.Capacity,
		event.Category,
		event.ImageURL,
		event.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error) {
	query := eventWithCountQuery + `
WHERE e.starts_at >= $1
GROUP BY e.id
ORDER BY e.starts_at ASC`

	rows, err := r.query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return r.collectEvents(rows)
}

func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Event, error) {
	query := eventWithCountQuery + `
WHERE e.owner_id = $1
GROUP BY e.id
ORDER BY e.starts_at ASC`

	rows, err := r.query(ctx, query, ownerID)
	if err != nil {
		if isInvalidUUID(err) {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("list events by owner: %w", err)
	}
	return r.collectEvents(rows)
}

func (r *EventRepository) collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartsAt,
		&e.Location,
		&e.Capacity,
		&e.Category,
		&e.ImageURL,
		&e.OwnerID,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.AttendeeCount,
	)
	return e, err
}

func (r *EventRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EventRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *EventRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
