package drafting

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goodsign/monday"
)

// InvalidDate replaces date placeholders whose value is missing or unparseable.
const InvalidDate = "FECHA INVÁLIDA"

const (
	longDateLayout  = "Monday, 2 de January de 2006"
	shortDateLayout = "2 de January de 2006"
	groupFormat     = "#.###,"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
}

// ParseAmount reads a numeric field value. Missing or non-numeric values
// read as zero.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmount groups v the es-CL way: "." between thousands, "," before
// at most three fraction digits.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	fixed := strconv.FormatFloat(v, 'f', 3, 64)
	intPart, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// beyond int64: ungrouped digits
		return sign + intPart
	}

	out := humanize.FormatInteger(groupFormat, int(n))
	if frac != "" {
		out += "," + frac
	}
	if out == "0" {
		sign = ""
	}
	return sign + out
}

// FormatCurrency renders v as a peso amount, e.g. "$1.000.000".
func FormatCurrency(v float64) string {
	return "$" + FormatAmount(v)
}

// FormatDate renders s as an uppercased Spanish date. Long dates include the
// weekday. Instants carrying a zone are shown in loc when loc is non-nil.
func FormatDate(s string, long bool, loc *time.Location) string {
	t, ok := ParseDate(s, loc)
	if !ok {
		return InvalidDate
	}

	layout := shortDateLayout
	if long {
		layout = longDateLayout
	}
	return strings.ToUpper(monday.Format(t, layout, monday.LocaleEsES))
}

// ParseDate accepts ISO dates, RFC 3339 instants, and dd-mm-yyyy forms.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == time.RFC3339Nano && loc != nil {
			t = t.In(loc)
		}
		return t, true
	}
	return time.Time{}, false
}
