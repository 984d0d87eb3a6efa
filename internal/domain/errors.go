package domain

import "errors"

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrForbidden               = errors.New("not the event owner")
	ErrAdmissionDenied         = errors.New("event is full or user already joined")
	ErrCapacityBelowAttendance = errors.New("capacity below current attendee count")
	ErrTitleRequired           = errors.New("title required")
	ErrDescriptionRequired     = errors.New("description required")
	ErrLocationRequired        = errors.New("location required")
	ErrStartsAtRequired        = errors.New("starts_at required")
	ErrInvalidCapacity         = errors.New("capacity must be a positive integer")
	ErrInvalidCategory         = errors.New("unrecognized category")
	ErrInvalidID               = errors.New("invalid id")
	ErrEmailTaken              = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
)
