package systems

import "errors"

var (
	ErrNilSystem         = errors.New("system is nil")
	ErrAlreadyRegistered = errors.New("system already registered")
	ErrNotRegistered     = errors.New("system not registered")
	ErrAlreadyRunning    = errors.New("manager is already running")
	ErrInvalidInterval   = errors.New("tick interval must be positive")
)
