package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Profile is a named snapshot of calico.cfg and the EEPROM record.
type Profile struct {
	ID          string
	Name        string
	Description string
	ConfigText  string
	EEPROM      []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Launch records one attempt to start the game.
type Launch struct {
	ID        string
	StartedAt time.Time
	Command   string
	ExitCode  int
	Error     string
}
