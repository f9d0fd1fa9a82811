package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	bareYearRE   = regexp.MustCompile(`^\d{4}$`)
	numericDMYRE = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{2,4})$`)
	yearRE       = regexp.MustCompile(`\b20\d{2}\b`)

	monthPattern = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

	dayMonthRE  = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthPattern + `)\b`)
	monthDayRE  = regexp.MustCompile(`(?i)\b(` + monthPattern + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	monthOnlyRE = regexp.MustCompile(`(?i)\b(` + monthPattern + `)\b`)

	// monthYearRE captures a month token with an optionally attached year, for
	// propagating "Mar 2025" from one side of a range to the other.
	monthYearRE = regexp.MustCompile(`(?i)\b(` + monthPattern + `)(\s+\d{4})?\b`)
	anyYearRE   = regexp.MustCompile(`\b\d{4}\b`)
)

// monthNames pairs every month spelling the interpreter recognizes with its
// 1-based month number; the cross-check below compares mod 12 so that short
// and long spellings agree.
var monthNames = []string{
	"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
	"january", "february", "march", "april", "may", "june", "july", "august",
	"september", "october", "november", "december",
}

func monthNumber(name string) time.Month {
	switch strings.ToLower(name)[:3] {
	case "jan":
		return time.January
	case "feb":
		return time.February
	case "mar":
		return time.March
	case "apr":
		return time.April
	case "may":
		return time.May
	case "jun":
		return time.June
	case "jul":
		return time.July
	case "aug":
		return time.August
	case "sep":
		return time.September
	case "oct":
		return time.October
	case "nov":
		return time.November
	case "dec":
		return time.December
	}
	return 0
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// ParseDateText interprets a free-form date substring as a calendar date.
// It rejects input that is too short or too ambiguous to anchor a date, tries
// a strict day-first numeric form, then falls back to fuzzy parsing that
// tolerates surrounding non-date words. Fuzzy results are cross-checked
// against any month name or 4-digit year present in the original text, since
// fuzzy parsers are prone to inventing plausible-but-wrong dates from noise
// like prices or page numbers. Returns nil when no trustworthy date exists.
func ParseDateText(text string) *time.Time {
	clean := normalizeSpace(text)
	if len(clean) < 5 {
		return nil
	}
	if bareYearRE.MatchString(clean) {
		// A bare year carries no usable day or month.
		return nil
	}

	if m := numericDMYRE.FindStringSubmatch(clean); m != nil {
		if t, ok := parseDayFirst(m[1], m[2], m[3]); ok {
			return &t
		}
		// Fall through to the fuzzy pass rather than failing outright.
	}

	t, ok := parseFuzzy(clean)
	if !ok {
		return nil
	}

	lower := strings.ToLower(clean)
	for i, name := range monthNames {
		if strings.Contains(lower, name) && (i+1)%12 != int(t.Month())%12 {
			return nil
		}
	}
	if y := yearRE.FindString(clean); y != "" {
		if want, err := strconv.Atoi(y); err == nil && want != t.Year() {
			return nil
		}
	}
	return &t
}

// parseDayFirst parses the strict D[/.-]M[/.-]Y form using UK day-first
// convention. Two-digit years follow the usual 69/70 pivot.
func parseDayFirst(dayStr, monthStr, yearStr string) (time.Time, bool) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	if year < 100 {
		if year >= 69 {
			year += 1900
		} else {
			year += 2000
		}
	}
	return buildDate(year, time.Month(month), day)
}

// parseFuzzy extracts a date from text that may carry surrounding words.
// Month-name patterns are handled directly; anything else is handed to
// dateparse, which covers ISO and US-style numeric forms.
func parseFuzzy(clean string) (time.Time, bool) {
	if m := dayMonthRE.FindStringSubmatch(clean); m != nil {
		day, _ := strconv.Atoi(m[1])
		return buildDate(yearIn(clean), monthNumber(m[2]), day)
	}
	if m := monthDayRE.FindStringSubmatch(clean); m != nil {
		day, _ := strconv.Atoi(m[2])
		return buildDate(yearIn(clean), monthNumber(m[1]), day)
	}
	if m := monthOnlyRE.FindStringSubmatch(clean); m != nil {
		// Month without a day, e.g. "June 2025".
		return buildDate(yearIn(clean), monthNumber(m[1]), 1)
	}
	t, err := dateparse.ParseAny(clean)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// yearIn returns the first 20xx year in the text, or the current year when
// the text carries none.
func yearIn(clean string) int {
	if y := yearRE.FindString(clean); y != "" {
		n, _ := strconv.Atoi(y)
		return n
	}
	return time.Now().Year()
}

// buildDate constructs a UTC date and rejects values time.Date would
// silently normalize (e.g. 31 Feb).
func buildDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseDateRange splits date range text on the first matching separator and
// interprets each side. Sites render ranges like "12 Jan - 15 Mar 2025" with
// the month or year stated once, so before parsing, a month (with attached
// year) present on only one side is propagated to the other. When no
// separator matches, "from"/"until"/"till" prefixes yield a one-sided range,
// and otherwise the whole text is treated as a single start date.
func ParseDateRange(text string, separators []string, fromUntil bool) (start, end *time.Time) {
	clean := normalizeSpace(text)
	if clean == "" {
		return nil, nil
	}

	for _, sep := range separators {
		if !strings.Contains(clean, sep) {
			continue
		}
		parts := strings.SplitN(clean, sep, 2)
		a := strings.TrimSpace(parts[0])
		b := strings.TrimSpace(parts[1])
		a, b = propagateMonthYear(a, b)
		start = ParseDateText(a)
		end = ParseDateText(b)
		break
	}
	if start != nil || end != nil {
		return start, end
	}

	if fromUntil {
		lower := strings.ToLower(clean)
		switch {
		case strings.Contains(lower, "from"):
			return ParseDateText(strings.TrimSpace(strings.ReplaceAll(lower, "from", ""))), nil
		case strings.Contains(lower, "until"), strings.Contains(lower, "till"):
			stripped := strings.ReplaceAll(lower, "until", "")
			stripped = strings.ReplaceAll(stripped, "till", "")
			return nil, ParseDateText(strings.TrimSpace(stripped))
		}
	}

	return ParseDateText(clean), nil
}

// propagateMonthYear copies a month token (and any attached or trailing year)
// from whichever side of a split range carries one to the side that does not.
func propagateMonthYear(a, b string) (string, string) {
	aMonth := monthOnlyRE.MatchString(a)
	bMonth := monthOnlyRE.MatchString(b)
	switch {
	case aMonth && !bMonth:
		if tok := monthYearRE.FindString(a); tok != "" {
			b = b + " " + tok
		}
	case bMonth && !aMonth:
		if tok := monthYearRE.FindString(b); tok != "" {
			a = a + " " + tok
		}
	}

	aYear := anyYearRE.MatchString(a)
	bYear := anyYearRE.MatchString(b)
	switch {
	case aYear && !bYear:
		b = b + " " + anyYearRE.FindString(a)
	case bYear && !aYear:
		a = a + " " + anyYearRE.FindString(b)
	}
	return a, b
}
