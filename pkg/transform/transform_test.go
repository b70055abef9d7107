package transform_test

import (
	"strconv"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampToHuman(t *testing.T) {
	conv := transform.NewConverter(time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"epoch", "0", "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)"},
		{"new year 2021", "1609459200", "Fri Jan 01 2021 00:00:00 GMT+0000 (UTC)"},
		{"negative", "-86400", "Wed Dec 31 1969 00:00:00 GMT+0000 (UTC)"},
		{"leading whitespace", "  1609459200", "Fri Jan 01 2021 00:00:00 GMT+0000 (UTC)"},
		{"trailing garbage ignored", "1609459200abc", "Fri Jan 01 2021 00:00:00 GMT+0000 (UTC)"},
		{"explicit plus sign", "+60", "Thu Jan 01 1970 00:01:00 GMT+0000 (UTC)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.TimestampToHuman(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimestampToHuman_Zone(t *testing.T) {
	conv := transform.NewConverter(time.FixedZone("BRT", -3*3600))
	got, err := conv.TimestampToHuman("0")
	require.NoError(t, err)
	assert.Equal(t, "Wed Dec 31 1969 21:00:00 GMT-0300 (BRT)", got)
}

func TestTimestampToHuman_Invalid(t *testing.T) {
	conv := transform.NewConverter(time.UTC)
	for _, input := range []string{"abc", "", "   ", "-", "+", "x123", "99999999999999999999", "8640000000001"} {
		t.Run(input, func(t *testing.T) {
			_, err := conv.TimestampToHuman(input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestTimestampToHuman_RangeBoundary(t *testing.T) {
	conv := transform.NewConverter(time.UTC)
	_, err := conv.TimestampToHuman(strconv.FormatInt(transform.MaxEpochSeconds, 10))
	assert.NoError(t, err)
	_, err = conv.TimestampToHuman(strconv.FormatInt(-transform.MaxEpochSeconds, 10))
	assert.NoError(t, err)
}

func TestHumanToTimestamp(t *testing.T) {
	conv := transform.NewConverter(time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc3339", "2021-01-01T00:00:00Z", "1609459200"},
		{"rfc3339 offset", "2021-01-01T02:00:00+02:00", "1609459200"},
		{"fractional seconds floor", "2021-01-01T00:00:00.999Z", "1609459200"},
		{"negative fractional floors down", "1969-12-31T23:59:59.5Z", "-1"},
		{"display layout", "Fri Jan 01 2021 00:00:00 GMT+0000 (UTC)", "1609459200"},
		{"display layout long zone name", "Thu Jan 01 1970 00:00:00 GMT+0000 (Coordinated Universal Time)", "0"},
		{"display layout without zone name", "Thu Jan 01 1970 01:00:00 GMT+0100", "0"},
		{"date only", "2021-01-01", "1609459200"},
		{"surrounding whitespace", "  2021-01-01T00:00:00Z\n", "1609459200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.HumanToTimestamp(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanToTimestamp_DateOnlyIsUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	conv := transform.NewConverter(loc)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"day", "2021-01-01", "1609459200"},
		{"month", "2021-01", "1609459200"},
		{"year", "2021", "1609459200"},
		{"date time without zone uses location", "2021-01-01T00:00:00", "1609477200"},
		{"spaced date time without zone uses location", "2021-01-01 00:00:00", "1609477200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.HumanToTimestamp(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanToTimestamp_Invalid(t *testing.T) {
	conv := transform.NewConverter(time.UTC)
	for _, input := range []string{"", "   ", "not a date", "abc"} {
		t.Run(input, func(t *testing.T) {
			_, err := conv.HumanToTimestamp(input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	zones := []*time.Location{time.UTC, time.FixedZone("IST", 5*3600+1800), time.FixedZone("", -7*3600)}
	for _, name := range []string{"Africa/Monrovia", "America/New_York", "Asia/Kolkata"} {
		loc, err := time.LoadLocation(name)
		require.NoError(t, err)
		zones = append(zones, loc)
	}
	values := []int64{-3000000000, -86400, -1, 0, 1, 59, 86399, 63072000, 951782400, 1609459200, 2147483647, 4102444800, 253402300799, 253402300800, transform.MaxEpochSeconds - 1}

	for _, loc := range zones {
		conv := transform.NewConverter(loc)
		for _, n := range values {
			in := strconv.FormatInt(n, 10)
			human, err := conv.TimestampToHuman(in)
			require.NoError(t, err, "to human %d", n)

			back, err := conv.HumanToTimestamp(human)
			require.NoError(t, err, "to timestamp %q", human)
			assert.Equal(t, in, back, "round trip through %q in %s", human, loc)
		}
	}
}

func TestHumanToTimestamp_SecondsOffsetZone(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Monrovia")
	require.NoError(t, err)
	conv := transform.NewConverter(loc)

	human, err := conv.TimestampToHuman("0")
	require.NoError(t, err)
	assert.Equal(t, "Wed Dec 31 1969 23:15:30 GMT-0044 (MMT)", human)

	back, err := conv.HumanToTimestamp(human)
	require.NoError(t, err)
	assert.Equal(t, "0", back)

	// Another converter has no zone to resolve MMT in and keeps the printed offset.
	back, err = transform.NewConverter(time.UTC).HumanToTimestamp(human)
	require.NoError(t, err)
	assert.Equal(t, "-30", back)
}

func TestNow(t *testing.T) {
	fixed := transform.FixedClock(time.Date(2021, 1, 1, 0, 0, 0, 999_000_000, time.UTC))
	assert.Equal(t, "1609459200", transform.Now(fixed))

	before := time.Now().Unix()
	got, err := strconv.ParseInt(transform.Now(nil), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, before)
	assert.Regexp(t, `^[0-9]+$`, transform.Now(transform.SystemClock{}))
}
