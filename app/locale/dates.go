package locale

import (
	"time"

	"github.com/dustin/go-humanize"
)

// LongDate formats t as a long absolute date-time, e.g. "5 de março às 14:30h".
func (l *Locale) LongDate(t time.Time) string {
	return l.cat.longDate(l.loc, t.In(l.location))
}

// Relative formats the distance between then and now with a direction
// suffix, e.g. "há 3 dias" or "em 2 horas".
func (l *Locale) Relative(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, l.cat.past, l.cat.future, l.cat.magnitudes)
}

// ISO formats t for machine-readable datetime attributes.
func ISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
