package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// ParseCompactDuration parses durations in the "NdNhNm" form, e.g. "1d",
// "2h30m", "1d6h". Every unit is optional, at least one is required, and the
// result must be strictly positive.
func ParseCompactDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var total time.Duration
	var n int
	var hasDigit, hasUnit bool
	seen := map[byte]bool{}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			hasDigit = true

		case c == 'd' || c == 'h' || c == 'm':
			if !hasDigit {
				return 0, fmt.Errorf("invalid duration %q", s)
			}

			if seen[c] {
				return 0, fmt.Errorf("duplicated unit %q in duration %q", string(c), s)
			}

			seen[c] = true
			switch c {
			case 'd':
				total += time.Duration(n) * day
			case 'h':
				total += time.Duration(n) * time.Hour
			case 'm':
				total += time.Duration(n) * time.Minute
			}

			n = 0
			hasDigit = false
			hasUnit = true

		default:
			return 0, fmt.Errorf("invalid duration %q", s)
		}
	}

	if hasDigit {
		return 0, fmt.Errorf("missing unit in duration %q", s)
	}

	if !hasUnit {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	if total <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}

	return total, nil
}

// FormatCompact renders a duration in the same "NdNhNm" form accepted by
// ParseCompactDuration. Sub-minute leftovers are dropped, a non-positive
// duration renders as "0m".
func FormatCompact(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}

	var b strings.Builder
	if days := d / day; days > 0 {
		fmt.Fprintf(&b, "%dd", days)
		d -= days * day
	}

	if hours := d / time.Hour; hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
		d -= hours * time.Hour
	}

	if minutes := d / time.Minute; minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}

	if b.Len() == 0 {
		return "0m"
	}

	return b.String()
}
