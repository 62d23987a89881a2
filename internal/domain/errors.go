package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStay        = errors.New("check-in must not be after check-out")
	ErrRoomFull           = errors.New("room is at capacity")
	ErrDuplicate          = errors.New("already exists")
	ErrPollNotActive      = errors.New("poll is not active")
	ErrUnknownOption      = errors.New("unknown poll option")
	ErrAlreadyResolved    = errors.New("complaint already resolved")
	ErrNoResponses        = errors.New("no rating responses")
	ErrBookingTooSoon     = errors.New("meals must be booked at least 2 days in advance")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)
