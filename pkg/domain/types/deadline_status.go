package types

// DeadlineStatus reports whether deadline extraction produced a usable value
type DeadlineStatus string

const (
	DeadlineStatusValid DeadlineStatus = "valid"
	DeadlineStatusError DeadlineStatus = "error"
)

// IsValid checks if the deadline status is valid
func (s DeadlineStatus) IsValid() bool {
	switch s {
	case DeadlineStatusValid, DeadlineStatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the deadline status
func (s DeadlineStatus) String() string {
	return string(s)
}
