package pricing

import (
	"log"
	"sort"
	"time"

	"proposal-engine/internal/model"
)

// isISODate checks "YYYY-MM-DD" without layout parsing, which is the hot case
// since stored proposals already carry normalized dates.
func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	m := int(s[5]-'0')*10 + int(s[6]-'0')
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	return m >= 1 && m <= 12 && d >= 1 && d <= 31
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// NormalizeDate returns the date as "YYYY-MM-DD", or "TBD" when the input is
// absent or unparseable. The fallback is logged, never an error.
func NormalizeDate(date string) string {
	if date == "" || date == model.TBD {
		return model.TBD
	}
	if isISODate(date) {
		return date
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01-02")
		}
	}
	log.Printf("Unparseable event date %q, falling back to TBD", date)
	return model.TBD
}

// SortDates orders date strings ascending with "TBD" always last. The sort is
// stable so multiple TBD entries keep their relative order. ISO dates compare
// correctly as strings.
func SortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		if dates[i] == model.TBD {
			return false
		}
		if dates[j] == model.TBD {
			return true
		}
		return dates[i] < dates[j]
	})
}
