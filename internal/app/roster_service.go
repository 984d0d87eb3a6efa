package app

import (
	"context"

	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/cimillas/gatherhub/internal/metrics"
)

// RosterRepository is the storage contract for roster admission control.
// Mutations run inside WithTx, and GetEventForUpdate locks the event row
// for the remainder of the transaction: precondition checks and the
// attendee write commit as one atomic step per event id.
type RosterRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	IsAttending(ctx context.Context, eventID, userID string) (bool, error)
	CountAttendees(ctx context.Context, eventID string) (int, error)
	AddAttendee(ctx context.Context, eventID, userID string) error
	RemoveAttendee(ctx context.Context, eventID, userID string) error
}

type RosterService struct {
	repo RosterRepository
	mtx  *metrics.Metrics
}

func NewRosterService(repo RosterRepository, opts ...RosterServiceOption) *RosterService {
	svc := &RosterService{repo: repo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type RosterServiceOption func(*RosterService)

// WithMetrics wires admission counters into the service.
func WithMetrics(m *metrics.Metrics) RosterServiceOption {
	return func(s *RosterService) {
		s.mtx = m
	}
}

// Join adds userID to the event roster and returns the resulting attendee
// count. The user must not be on the roster yet and a seat must be free;
// both conditions are evaluated under the event row lock, so concurrent
// joins racing for the last seat cannot overfill the roster. A rejected
// join returns domain.ErrAdmissionDenied and changes nothing.
func (s *RosterService) Join(ctx context.Context, eventID, userID string) (int, error) {
	var count int
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}

		attending, err := s.repo.IsAttending(txCtx, eventID, userID)
		if err != nil {
			return err
		}
		if attending {
			return domain.ErrAdmissionDenied
		}

		current, err := s.repo.CountAttendees(txCtx, eventID)
		if err != nil {
			return err
		}
		if current >= event.Capacity {
			return domain.ErrAdmissionDenied
		}

		if err := s.repo.AddAttendee(txCtx, eventID, userID); err != nil {
			return err
		}
		count = current + 1
		return nil
	})
	if err != nil {
		if err == domain.ErrAdmissionDenied && s.mtx != nil {
			s.mtx.AdmissionDeniedTotal.Inc()
		}
		return 0, err
	}

	if s.mtx != nil {
		s.mtx.JoinsTotal.Inc()
	}
	return count, nil
}

// Leave removes userID from the event roster and returns the resulting
// attendee count. Removing a user who is not on the roster is not an
// error; only a missing event is.
func (s *RosterService) Leave(ctx context.Context, eventID, userID string) (int, error) {
	var count int
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetEventForUpdate(txCtx, eventID); err != nil {
			return err
		}
		if err := s.repo.RemoveAttendee(txCtx, eventID, userID); err != nil {
			return err
		}
		current, err := s.repo.CountAttendees(txCtx, eventID)
		if err != nil {
			return err
		}
		count = current
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.mtx != nil {
		s.mtx.LeavesTotal.Inc()
	}
	return count, nil
}
