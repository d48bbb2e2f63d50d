// Package formatting parses human-readable sizes and recovers structured
// values from free-form model output.
package formatting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

var bytesPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// FormatBytes renders n with the largest base-1024 unit that keeps the value
// at or above one. Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	size := float64(n)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses sizes such as "50MB", "1.5 GiB" or "4096". Units are
// base-1024 and case-insensitive; the IEC spelling (KiB, MiB) is accepted
// as an alias. A bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	m := bytesPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.Replace(strings.ToUpper(m[2]), "IB", "B", 1)
	if unit == "" {
		unit = "B"
	}

	for i, u := range units {
		if u == unit {
			for range i {
				value *= 1024
			}
			return int64(value), nil
		}
	}
	return 0, fmt.Errorf("unknown byte size unit: %q", m[2])
}
