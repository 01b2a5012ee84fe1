package hotel

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	offsetPattern   = regexp.MustCompile(`^[+-]\d+$`)
	inDaysPattern   = regexp.MustCompile(`^in (\d+) days?$`)
	inWeeksPattern  = regexp.MustCompile(`^in (\d+) weeks?$`)
	weekdayPattern  = regexp.MustCompile(`^(next|this) ([a-z]+)$`)
	weekdayAliases  = map[string]time.Weekday{
		"monday": time.Monday, "mon": time.Monday,
		"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
		"wednesday": time.Wednesday, "wed": time.Wednesday,
		"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
		"friday": time.Friday, "fri": time.Friday,
		"saturday": time.Saturday, "sat": time.Saturday,
		"sunday": time.Sunday, "sun": time.Sunday,
	}
)

// ResolveDate normalizes a spoken date expression to YYYY-MM-DD relative to
// today. Supported forms: literal YYYY-MM-DD, numeric day offsets ("+2",
// "-1"), "today"/"tonight"/"tomorrow"/"yesterday", "in N days", "in N weeks",
// and "next <weekday>" / "this <weekday>". Anything else resolves to "".
func ResolveDate(expr string, today time.Time) string {
	expr = strings.ToLower(strings.TrimSpace(expr))
	if expr == "" {
		return ""
	}
	if isoDatePattern.MatchString(expr) {
		return expr
	}
	day := today.Truncate(24 * time.Hour)

	if offsetPattern.MatchString(expr) {
		offset, err := strconv.Atoi(expr)
		if err != nil {
			return ""
		}
		return day.AddDate(0, 0, offset).Format(dateLayout)
	}

	switch expr {
	case "today", "tonight":
		return day.Format(dateLayout)
	case "tomorrow":
		return day.AddDate(0, 0, 1).Format(dateLayout)
	case "yesterday":
		return day.AddDate(0, 0, -1).Format(dateLayout)
	}

	if m := inDaysPattern.FindStringSubmatch(expr); m != nil {
		n, _ := strconv.Atoi(m[1])
		return day.AddDate(0, 0, n).Format(dateLayout)
	}
	if m := inWeeksPattern.FindStringSubmatch(expr); m != nil {
		n, _ := strconv.Atoi(m[1])
		return day.AddDate(0, 0, 7*n).Format(dateLayout)
	}

	if m := weekdayPattern.FindStringSubmatch(expr); m != nil {
		target, ok := weekdayAliases[m[2]]
		if !ok {
			return ""
		}
		delta := (int(target) - int(day.Weekday()) + 7) % 7
		// "this friday" on a Friday means today; "next friday" means a week out.
		if delta == 0 && m[1] == "next" {
			delta = 7
		}
		return day.AddDate(0, 0, delta).Format(dateLayout)
	}

	return ""
}
