package transform

import (
	"regexp"
	"strconv"
	"time"
)

// humanPattern matches HumanLayout output. Years outside 0000-9999 are
// accepted here because time.Parse only reads four-digit years.
var humanPattern = regexp.MustCompile(`^[A-Za-z]{3} ([A-Za-z]{3}) (\d{2}) (-?\d{4,}) (\d{2}):(\d{2}):(\d{2}) GMT([+-])(\d{2})(\d{2})(?: \(([^)]*)\))?$`)

var shortMonths = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// parseHumanLayout parses the display format. The rendered offset is truncated to
// minutes, so when the zone name and offset agree with loc at that wall time the
// time is resolved in loc. Otherwise the numeric GMT offset wins.
func parseHumanLayout(s string, loc *time.Location) (time.Time, bool) {
	m := humanPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := shortMonths[m[1]]
	if !ok {
		return time.Time{}, false
	}
	nums := make([]int, 0, 8)
	for _, part := range []string{m[2], m[3], m[4], m[5], m[6], m[8], m[9]} {
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, false
		}
		nums = append(nums, n)
	}
	day, year, hour, minute, second, offH, offM := nums[0], nums[1], nums[2], nums[3], nums[4], nums[5], nums[6]
	if day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 || offM > 59 {
		return time.Time{}, false
	}
	offset := offH*3600 + offM*60
	if m[7] == "-" {
		offset = -offset
	}
	t := time.Date(year, month, day, hour, minute, second, 0, time.FixedZone("", offset))
	if t.Day() != day {
		return time.Time{}, false
	}
	if local, ok := inLocation(t, m[10], offset, loc); ok {
		return local, true
	}
	return t, true
}

func inLocation(t time.Time, zone string, offset int, loc *time.Location) (time.Time, bool) {
	if zone == "" || loc == nil {
		return time.Time{}, false
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
	name, off := local.Zone()
	if name != zone || off/60 != offset/60 {
		return time.Time{}, false
	}
	return local, true
}
