package idutil

import (
	"time"

	"github.com/google/uuid"
)

// RunID identifies one batch of checks in logs and reports. It is a v7 UUID,
// so run ids sort by start time.
type RunID struct{ uuid.UUID }

func NewRunID() (RunID, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return RunID{}, err
	}
	return RunID{UUID: u}, nil
}

func ParseRunID(s string) (RunID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, err
	}
	return RunID{UUID: u}, nil
}

func (id RunID) IsZero() bool   { return id.UUID == uuid.Nil }
func (id RunID) String() string { return id.UUID.String() }

// Started returns the millisecond timestamp embedded in a v7 id, or the zero
// time for any other version.
func (id RunID) Started() time.Time {
	if id.Version() != 7 {
		return time.Time{}
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC()
}
