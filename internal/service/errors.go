package service

import "errors"

var (
	// ErrSessionEnded is returned for any input after End
	ErrSessionEnded = errors.New("therapy session has ended")
	// ErrReplyPending is returned when input arrives while a reply is in flight
	ErrReplyPending = errors.New("waiting for the previous reply")
	ErrEmptyInput   = errors.New("input is empty")
	// ErrInvalidTransition is returned when an event is not valid in the current state
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrSessionNotFound   = errors.New("therapy session not found")
)
