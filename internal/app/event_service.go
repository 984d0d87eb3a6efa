package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cimillas/gatherhub/internal/clock"
	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/cimillas/gatherhub/internal/lib/logger/sl"
	"github.com/google/uuid"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	GetEventForUpdate(ctx context.Context, id string) (domain.Event, error)
	CountAttendees(ctx context.Context, eventID string) (int, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Event, error)
}

// ImageRemover releases stored event images. Cleanup is best effort: a
// failed removal never fails the operation that triggered it.
type ImageRemover interface {
	Remove(ref string) error
}

type EventService struct {
	repo   EventRepository
	clock  clock.Clock
	log    *slog.Logger
	images ImageRemover
}

func NewEventService(repo EventRepository, clk clock.Clock, log *slog.Logger, opts ...EventServiceOption) *EventService {
	svc := &EventService{
		repo:  repo,
		clock: clk,
		log:   log,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type EventServiceOption func(*EventService)

// WithImageRemover enables image cleanup when events are deleted.
func WithImageRemover(r ImageRemover) EventServiceOption {
	return func(s *EventService) {
		s.images = r
	}
}

type CreateEventInput struct {
	Title       string
	Description string
	StartsAt    time.Time
	Location    string
	Capacity    int
	Category    string
	ImageURL    string
}

// Create validates the input and stores a new event owned by actorID with
// an empty roster. This is the only path that constructs events.
func (s *EventService) Create(ctx context.Context, actorID string, in CreateEventInput) (domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Event{}, domain.ErrTitleRequired
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return domain.Event{}, domain.ErrDescriptionRequired
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return domain.Event{}, domain.ErrLocationRequired
	}
	if in.StartsAt.IsZero() {
		return domain.Event{}, domain.ErrStartsAtRequired
	}
	if in.Capacity <= 0 {
		return domain.Event{}, domain.ErrInvalidCapacity
	}
	category, ok := domain.ParseCategory(in.Category)
	if !ok {
		return domain.Event{}, domain.ErrInvalidCategory
	}

	now := s.clock.Now()
	event := domain.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		StartsAt:    in.StartsAt,
		Location:    location,
		Capacity:    in.Capacity,
		Category:    category,
		ImageURL:    in.ImageURL,
		OwnerID:     actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// UpdateEventInput carries partial edits; nil fields keep their prior
// value. Owner and roster are not editable through updates.
type UpdateEventInput struct {
	Title       *string
	Description *string
	StartsAt    *time.Time
	Location    *string
	Capacity    *int
	Category    *string
	ImageURL    *string
}

// Update applies the supplied fields to an existing event. Existence is
// checked before ownership, so a missing event yields ErrEventNotFound for
// any actor. Lowering capacity below the current attendee count is
// rejected; the count is read under the same row lock as the write, so a
// concurrent join cannot slip in between.
func (s *EventService) Update(ctx context.Context, eventID, actorID string, in UpdateEventInput) (domain.Event, error) {
	var updated domain.Event
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.OwnerID != actorID {
			return domain.ErrForbidden
		}

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return domain.ErrTitleRequired
			}
			event.Title = title
		}
		if in.Description != nil {
			description := strings.TrimSpace(*in.Description)
			if description == "" {
				return domain.ErrDescriptionRequired
			}
			event.Description = description
		}
		if in.StartsAt != nil {
			if in.StartsAt.IsZero() {
				return domain.ErrStartsAtRequired
			}
			event.StartsAt = *in.StartsAt
		}
		if in.Location != nil {
			location := strings.TrimSpace(*in.Location)
			if location == "" {
				return domain.ErrLocationRequired
			}
			event.Location = location
		}
		if in.Capacity != nil {
			if *in.Capacity <= 0 {
				return domain.ErrInvalidCapacity
			}
			attending, err := s.repo.CountAttendees(txCtx, eventID)
			if err != nil {
				return err
			}
			if *in.Capacity < attending {
				return domain.ErrCapacityBelowAttendance
			}
			event.Capacity = *in.Capacity
		}
		if in.Category != nil {
			category, ok := domain.ParseCategory(*in.Category)
			if !ok {
				return domain.ErrInvalidCategory
			}
			event.Category = category
		}
		if in.ImageURL != nil {
			event.ImageURL = *in.ImageURL
		}

		event.UpdatedAt = s.clock.Now()
		if err := s.repo.UpdateEvent(txCtx, event); err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return updated, nil
}

// Delete removes an event after the existence and ownership checks.
// Deletion is unconditional once authorized; attendee rows go with the
// event. The stored image, if any, is removed afterwards on a best-effort
// basis.
func (s *EventService) Delete(ctx context.Context, eventID, actorID string) error {
	var imageURL string
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.OwnerID != actorID {
			return domain.ErrForbidden
		}
		imageURL = event.ImageURL
		return s.repo.DeleteEvent(txCtx, eventID)
	})
	if err != nil {
		return err
	}

	if imageURL != "" && s.images != nil {
		if err := s.images.Remove(imageURL); err != nil {
			s.log.Warn("image cleanup failed",
				slog.String("event_id", eventID), sl.Err(err))
		}
	}
	return nil
}

func (s *EventService) Get(ctx context.Context, eventID string) (domain.Event, error) {
	return s.repo.GetEvent(ctx, eventID)
}

// ListUpcoming returns events starting at or after the current time, in
// chronological order.
func (s *EventService) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListUpcoming(ctx, s.clock.Now())
}

func (s *EventService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Event, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
