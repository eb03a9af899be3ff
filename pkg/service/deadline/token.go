// Package deadline normalizes deadline tokens produced by the extraction
// model and implements the calendar rules used to turn free-text period
// phrasing into concrete dates.
package deadline

import (
	"strings"
	"time"

	"github.com/citops/promisetrack/pkg/domain/types"
)

// Sentinel tokens as the extraction model emits them (Russian), mapped to
// the canonical persisted sentinels.
const (
	tokenNotSetRU = "НЕ_УСТАНОВЛЕН"
	tokenTooFarRU = "БОЛЕЕ_ГОДА"
)

// ParseToken validates a raw extractor token into a Deadline value. The
// model is prompted to answer with exactly a date in DeadlineLayout or one
// of the sentinels, but its output is untrusted: quotes and trailing
// punctuation are tolerated, and anything that still fails to parse
// degrades to NotSet.
func ParseToken(raw string) types.Deadline {
	token := strings.TrimSpace(raw)
	token = strings.Trim(token, `"'.`)
	token = strings.TrimSpace(token)

	switch strings.ToUpper(token) {
	case tokenNotSetRU, types.DeadlineTokenNotSet:
		return types.NotSetDeadline()
	case tokenTooFarRU, types.DeadlineTokenTooFar:
		return types.TooFarDeadline()
	}

	if t, err := time.Parse(types.DeadlineLayout, token); err == nil {
		return types.DeadlineOf(t)
	}

	return types.NotSetDeadline()
}
