package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/jackc/pgx/v5"
)

// rowQuerier lets the event and roster repositories share the row-locked
// event read and the roster count.
type rowQuerier interface {
	queryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getEventForUpdate reads the event row with FOR UPDATE, serializing every
// roster and lifecycle mutation on the same event id for the duration of
// the surrounding transaction. A malformed or unknown id is a missing
// event, regardless of actor.
func getEventForUpdate(ctx context.Context, q rowQuerier, id string) (domain.Event, error) {
	const query = `
SELECT id, title, description, starts_at, location, capacity, category, image_url, owner_id, created_at, updated_at
FROM events
WHERE id = $1
FOR UPDATE`

	var e domain.Event
	err := q.queryRow(ctx, query, id).Scan(
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
	)
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event for update: %w", err)
	}
	return e, nil
}

func countAttendees(ctx context.Context, q rowQuerier, eventID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendees WHERE event_id = $1`

	var n int
	if err := q.queryRow(ctx, query, eventID).Scan(&n); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrEventNotFound
		}
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return n, nil
}
