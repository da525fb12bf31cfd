package appointment

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid appointment status")
	ErrStartInPast   = errors.New("appointment start is in the past")
	ErrNotModifiable = errors.New("appointment can no longer be modified")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal statuses accept no further changes.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}
