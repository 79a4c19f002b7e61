package cartera

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// MonthFormat is the format used to represent calendar months as strings.
const MonthFormat = "2006-01"

// Date represents a date with day-level granularity, normalized to the
// market's local calendar day.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the calendar month containing the date.
func (d Date) Month() Month { return Month{d.y, d.m} }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in date RFC3339
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added.
// Day-of-month overflow normalizes forward (Jan 31 + 1 month is Mar 3).
func (d Date) AddMonth(i int) Date { return NewDate(d.y, d.m+time.Month(i), d.d) }

// AddYear returns a new Date with the given number of years added.
func (d Date) AddYear(i int) Date { return NewDate(d.y+i, d.m, d.d) }

// ParseDate parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*j = NewDate(on.Date())
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Month represents a calendar month, the granularity of the price-index
// series and of the inflation comparison rows.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	d := NewDate(year, month, 1)
	return Month{d.y, d.m}
}

// Year returns the month's year.
func (m Month) Year() int { return m.y }

// String formats the month as "2006-01".
func (m Month) String() string { return NewDate(m.y, m.m, 1).Format(MonthFormat) }

// IsZero returns true if the month is the zero value.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// Add returns the month i months later (or earlier for negative i).
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.y < x.y || (m.y == x.y && m.m < x.m) }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return x.Before(m) }

// First returns the first day of the month.
func (m Month) First() Date { return NewDate(m.y, m.m, 1) }

// Last returns the last day of the month.
func (m Month) Last() Date { return NewDate(m.y, m.m+1, 0) }

// ParseMonth parses a Month from a "2006-01" string.
func ParseMonth(str string) (Month, error) {
	str = strings.TrimSpace(str)
	parts := strings.SplitN(str, "-", 2)
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("invalid month %q want format %q", str, MonthFormat)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("invalid year in month %q: %w", str, err)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return Month{}, fmt.Errorf("invalid month number in %q: %w", str, err)
	}
	if mm < 1 || mm > 12 {
		return Month{}, fmt.Errorf("invalid month %q: month number must be 1..12", str)
	}
	return NewMonth(y, time.Month(mm)), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

func (j *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	m, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*j = m
	return nil
}
