package tailf

import "errors"

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrAlreadyStarted    = errors.New("session already started")
	ErrMissingLevelGroup = errors.New("level regex must define a named group 'level'")
	ErrPollerPanic       = errors.New("poller panicked")
)
