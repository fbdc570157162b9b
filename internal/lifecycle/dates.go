package lifecycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date represents a calendar date with no time-of-day component. All
// contract and termination dates in the engine are calendar dates, so
// day arithmetic is exact and immune to timezone drift.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct.
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day %d is out of range for %04d-%02d", day, year, month)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return Date{Year: u.Year(), Month: int(u.Month()), Day: u.Day()}
}

// String formats the date as yyyy-mm-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from one date to
// another. The result is negative when 'to' lies before 'from'.
func DaysBetween(from, to Date) int {
	return int(to.toTime().Sub(from.toTime()).Hours() / 24)
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return DaysBetween(d, other) > 0
}

// DaysInMonth returns the number of days in a given month.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// AddDays advances a date by n calendar days.
func AddDays(d Date, n int) Date {
	return DateOf(d.toTime().AddDate(0, 0, n))
}

// MonthsBetween returns the number of complete months elapsed from one date
// to another. Partial months do not count: Jan 15 to Feb 14 is 0 months,
// Jan 15 to Feb 15 is 1.
func MonthsBetween(from, to Date) int {
	months := (to.Year-from.Year)*12 + (to.Month - from.Month)
	if to.Day < from.Day {
		months--
	}
	return months
}

// AddMonths advances a date by n calendar months, clamping the day to the
// length of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(d Date, n int) Date {
	total := d.Year*12 + (d.Month - 1) + n
	year := total / 12
	month := total%12 + 1
	day := d.Day
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return Date{Year: year, Month: month, Day: day}
}
