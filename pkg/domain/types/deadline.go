package types

import (
	"encoding/json"
	"time"
)

// DeadlineLayout is the wire format for deadline dates: day.month with a
// two-digit year, e.g. "30.09.25".
const DeadlineLayout = "02.01.06"

// stalenessHorizonDays is the number of days beyond which a promised
// deadline is treated as abandoned. Exactly 365 days out is still
// acceptable; 366 is not.
const stalenessHorizonDays = 365

// Sentinel tokens used in the persisted deadline field.
const (
	DeadlineTokenNotSet = "NOT_SET"
	DeadlineTokenTooFar = "TOO_FAR"
)

// DeadlineKind discriminates the variants of a Deadline value.
type DeadlineKind int

const (
	// DeadlineUnset is the zero value: no analysis has produced a
	// deadline for the task yet.
	DeadlineUnset DeadlineKind = iota
	// DeadlineDate is a concrete calendar date.
	DeadlineDate
	// DeadlineNotSet means the reply contained no discernible deadline.
	DeadlineNotSet
	// DeadlineTooFar means the deadline exceeds the one-year horizon.
	DeadlineTooFar
	// DeadlineError carries a diagnostic from a failed extraction. It is
	// never persisted on a task, only recorded on an analysis result.
	DeadlineError
)

// Deadline is a tagged value: a calendar date, one of the sentinels, or an
// extraction error. It replaces the ad hoc string sentinels of the original
// data model so callers branch on Kind instead of comparing magic strings.
type Deadline struct {
	kind DeadlineKind
	date time.Time
	msg  string
}

// DeadlineOf returns a concrete date deadline. The time portion is
// truncated; only the calendar date is significant.
func DeadlineOf(t time.Time) Deadline {
	return Deadline{kind: DeadlineDate, date: truncateToDate(t)}
}

// NotSetDeadline returns the "no deadline stated" sentinel.
func NotSetDeadline() Deadline {
	return Deadline{kind: DeadlineNotSet}
}

// TooFarDeadline returns the "beyond one year" sentinel.
func TooFarDeadline() Deadline {
	return Deadline{kind: DeadlineTooFar}
}

// ErrorDeadline returns an extraction-error deadline carrying a diagnostic.
func ErrorDeadline(msg string) Deadline {
	return Deadline{kind: DeadlineError, msg: msg}
}

// Kind returns the variant tag.
func (d Deadline) Kind() DeadlineKind {
	return d.kind
}

// IsZero reports whether no deadline value has been set at all.
func (d Deadline) IsZero() bool {
	return d.kind == DeadlineUnset
}

// Date returns the calendar date and true for DeadlineDate values.
func (d Deadline) Date() (time.Time, bool) {
	if d.kind != DeadlineDate {
		return time.Time{}, false
	}
	return d.date, true
}

// Message returns the diagnostic of a DeadlineError value.
func (d Deadline) Message() string {
	return d.msg
}

// Encode returns the persisted token form: the DeadlineLayout date, a
// sentinel token, or empty for unset/error values (errors are analysis
// metadata, not task state).
func (d Deadline) Encode() string {
	switch d.kind {
	case DeadlineDate:
		return d.date.Format(DeadlineLayout)
	case DeadlineNotSet:
		return DeadlineTokenNotSet
	case DeadlineTooFar:
		return DeadlineTokenTooFar
	default:
		return ""
	}
}

// String returns the token form, or the diagnostic for error values.
func (d Deadline) String() string {
	if d.kind == DeadlineError {
		return d.msg
	}
	return d.Encode()
}

// DecodeDeadline parses a persisted token back into a Deadline. An
// unrecognized token decodes as NotSet: malformed stored values degrade to
// "unresolved" rather than failing reads.
func DecodeDeadline(token string) Deadline {
	switch token {
	case "":
		return Deadline{}
	case DeadlineTokenNotSet:
		return NotSetDeadline()
	case DeadlineTokenTooFar:
		return TooFarDeadline()
	}
	if t, err := time.Parse(DeadlineLayout, token); err == nil {
		return DeadlineOf(t)
	}
	return NotSetDeadline()
}

// DaysUntil returns the whole number of calendar days from today until the
// deadline date. It returns false for anything that is not a concrete date.
func (d Deadline) DaysUntil(today time.Time) (int, bool) {
	if d.kind != DeadlineDate {
		return 0, false
	}
	delta := d.date.Sub(truncateToDate(today))
	return int(delta.Hours() / 24), true
}

// TooFar applies the staleness rule: TOO_FAR is always too far, concrete
// dates are too far when more than the one-year horizon away, and
// everything else (not set, errors, unset) is merely unresolved.
func (d Deadline) TooFar(today time.Time) bool {
	switch d.kind {
	case DeadlineTooFar:
		return true
	case DeadlineDate:
		days, _ := d.DaysUntil(today)
		return days > stalenessHorizonDays
	default:
		return false
	}
}

// MarshalJSON encodes the deadline as its token form; error values encode
// as the diagnostic string so analysis payloads stay informative.
func (d Deadline) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a token form produced by MarshalJSON.
func (d *Deadline) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	*d = DecodeDeadline(token)
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
