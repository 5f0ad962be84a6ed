package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrNoPhasesConfigured = errors.New("no phases configured")
	ErrUnknownSessionType = errors.New("unknown session type")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrMaxHoldRequired    = errors.New("max hold is not set")
	ErrTemplateShape      = errors.New("template shape does not match session type")
	ErrProfileExists      = errors.New("profile already exists")
	ErrDefaultProfile     = errors.New("default profile cannot be deleted")
)
