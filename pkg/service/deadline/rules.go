package deadline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/citops/promisetrack/pkg/domain/types"
)

// The deterministic counterpart of the extraction prompt's normalization
// table. The model is expected to apply these rules itself; this engine
// exists so the rules are testable offline and so operators can check a
// reply without an API round trip (the `validate` command).

var (
	reExplicitDate = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)
	reQuarter      = regexp.MustCompile(`([1-4])\s*квартал(?:[ае])?(?:\s*(\d{4}))?`)
	reBusinessDays = regexp.MustCompile(`(\d+)\s*рабоч\S*\s*дн`)
	reRelative     = regexp.MustCompile(`в\s*течени[ие]\s*(\d+)\s*(недел|дн)`)
	reYearOnly     = regexp.MustCompile(`на\s*(\d{4})\s*год`)
	reMonthYear    = regexp.MustCompile(`(январ[ея]|феврал[ея]|март[ае]|апрел[ея]|ма[ея]|июн[ея]|июл[ея]|август[ае]|сентябр[ея]|октябр[ея]|ноябр[ея]|декабр[ея])\s*(\d{4})`)
)

// Ordered longest-stem-first so "март" wins over "ма".
var monthStems = []struct {
	stem  string
	month time.Month
}{
	{"январ", time.January},
	{"феврал", time.February},
	{"март", time.March},
	{"апрел", time.April},
	{"июн", time.June},
	{"июл", time.July},
	{"август", time.August},
	{"сентябр", time.September},
	{"октябр", time.October},
	{"ноябр", time.November},
	{"декабр", time.December},
	{"ма", time.May},
}

// businessDayApproximation is the fixed calendar offset used for "N рабочих
// дней" phrasing. Not a real business-day count.
const businessDayApproximation = 14

// FromText applies the normalization rule table to free text, using today
// as the anchor for relative periods. It returns a concrete date, NotSet
// when no deadline phrasing is found, or TooFar when the computed date
// lies beyond the one-year horizon.
func FromText(text string, today time.Time) types.Deadline {
	lower := strings.ToLower(text)

	if date, ok := applyRules(lower, today); ok {
		d := types.DeadlineOf(date)
		if d.TooFar(today) {
			return types.TooFarDeadline()
		}
		return d
	}

	return types.NotSetDeadline()
}

func applyRules(lower string, today time.Time) (time.Time, bool) {
	if m := reExplicitDate.FindStringSubmatch(lower); m != nil {
		day := atoi(m[1])
		month := atoi(m[2])
		year := atoi(m[3])
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// Reject impossible dates that normalized away (e.g. 31.02).
		if date.Day() == day && int(date.Month()) == month {
			return date, true
		}
		return time.Time{}, false
	}

	if m := reQuarter.FindStringSubmatch(lower); m != nil {
		quarter := atoi(m[1])
		year := today.Year()
		if m[2] != "" {
			year = atoi(m[2])
		}
		return lastDayOfMonth(year, time.Month(quarter*3)), true
	}

	if m := reBusinessDays.FindStringSubmatch(lower); m != nil {
		return truncate(today).AddDate(0, 0, businessDayApproximation), true
	}

	if m := reRelative.FindStringSubmatch(lower); m != nil {
		n := atoi(m[1])
		days := n
		if strings.HasPrefix(m[2], "недел") {
			days = n * 7
		}
		return truncate(today).AddDate(0, 0, days), true
	}

	if strings.Contains(lower, "до конца месяца") {
		return lastDayOfMonth(today.Year(), today.Month()), true
	}

	if strings.Contains(lower, "до конца года") {
		return time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC), true
	}

	if m := reMonthYear.FindStringSubmatch(lower); m != nil {
		for _, ms := range monthStems {
			if strings.HasPrefix(m[1], ms.stem) {
				return lastDayOfMonth(atoi(m[2]), ms.month), true
			}
		}
	}

	if m := reYearOnly.FindStringSubmatch(lower); m != nil {
		return time.Date(atoi(m[1]), time.December, 31, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
