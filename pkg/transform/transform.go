package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/aretw0/unixtime/pkg/domain"
)

// HumanLayout renders a date the way the conversion commands display it,
// e.g. "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)".
const HumanLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// MaxEpochSeconds bounds the representable calendar range: ±100,000,000 days around the epoch.
const MaxEpochSeconds int64 = 8_640_000_000_000

// Transformer converts one input string into one result string.
// It returns an error wrapping domain.ErrInvalidInput when the input cannot be interpreted.
type Transformer func(input string) (string, error)

// Converter carries the location conversions are rendered and parsed in.
type Converter struct {
	loc *time.Location
}

// NewConverter returns a Converter for loc. A nil loc means time.Local.
func NewConverter(loc *time.Location) *Converter {
	if loc == nil {
		loc = time.Local
	}
	return &Converter{loc: loc}
}

// Location returns the zone used for rendering and for parsing zone-less input.
func (c *Converter) Location() *time.Location {
	return c.loc
}

// TimestampToHuman renders whole seconds since the epoch as a human-readable date.
func (c *Converter) TimestampToHuman(input string) (string, error) {
	secs, ok := parseLeadingInt(input)
	if !ok || secs > MaxEpochSeconds || secs < -MaxEpochSeconds {
		return "", fmt.Errorf("timestamp %q: %w", input, domain.ErrInvalidInput)
	}
	return time.Unix(secs, 0).In(c.loc).Format(HumanLayout), nil
}

// HumanToTimestamp parses a free-form date and returns whole seconds since the epoch.
func (c *Converter) HumanToTimestamp(input string) (string, error) {
	t, err := c.ParseHuman(input)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(floorDiv(t.UnixMilli(), 1000), 10), nil
}

// dateOnlyLayouts are ISO date forms without a time of day. They are read as UTC;
// date-time forms without a zone use the converter's location.
var dateOnlyLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseHuman parses input as a date. The display layout and RFC 3339 are tried
// before the general parser so that dates this package renders parse back exactly.
func (c *Converter) ParseHuman(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("date %q: %w", input, domain.ErrInvalidInput)
	}
	if t, ok := parseHumanLayout(s, c.loc); ok {
		return t, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", input, domain.ErrInvalidInput)
	}
	return t, nil
}

// Now returns the current whole seconds since the epoch according to clock.
func Now(clock Clock) string {
	if clock == nil {
		clock = SystemClock{}
	}
	return strconv.FormatInt(floorDiv(clock.Now().UnixMilli(), 1000), 10)
}

// parseLeadingInt reads an optionally signed run of decimal digits after leading
// whitespace and ignores whatever follows it. It fails when there are no digits or
// the value overflows int64.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f\u00a0\ufeff")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
