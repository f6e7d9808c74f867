package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = [...]string{
	1:  "January",
	2:  "February",
	3:  "March",
	4:  "April",
	5:  "May",
	6:  "June",
	7:  "July",
	8:  "August",
	9:  "September",
	10: "October",
	11: "November",
	12: "December",
}

// CreatedDate is the year/month bucket a file is organized under.
type CreatedDate struct {
	Year  int
	Month int // 1-12
}

// ParseCreatedTime extracts the year and month from a storage-service
// creation timestamp. The trailing Z and any sub-second fraction are stripped
// and the remainder is parsed as a naive timestamp, so the bucket follows the
// service's reported wall clock rather than any local zone.
func ParseCreatedTime(s string) (CreatedDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CreatedDate{}, fmt.Errorf("empty created time")
	}
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}

	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return CreatedDate{}, fmt.Errorf("parse created time %q: %w", s, err)
	}
	return CreatedDate{Year: t.Year(), Month: int(t.Month())}, nil
}

// YearFolder returns the 4-digit year folder name.
func (d CreatedDate) YearFolder() string {
	return strconv.Itoa(d.Year)
}

// MonthFolder returns the full month name for the 1-12 month number.
func (d CreatedDate) MonthFolder() string {
	return monthNames[d.Month]
}

// MonthName maps a 1-12 month number to its full English name.
func MonthName(month int) (string, bool) {
	if month < 1 || month > 12 {
		return "", false
	}
	return monthNames[month], true
}
