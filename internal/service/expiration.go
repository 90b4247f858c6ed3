package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/status-bot/internal/domain"
)

// RelativeExpirationCutoff separates relative offsets from absolute epoch
// timestamps. Parsed values below it are added to now; values at or above it
// are used as-is.
const RelativeExpirationCutoff = 1_000_000_000

// durationPart matches one "<amount><unit>" term, e.g. "1h", "30 minutes", "1.5d".
var durationPart = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-z]+)`)

var unitSeconds = map[string]float64{
	"s": 1, "sec": 1, "secs": 1, "second": 1, "seconds": 1,
	"m": 60, "min": 60, "mins": 60, "minute": 60, "minutes": 60,
	"h": 3600, "hr": 3600, "hrs": 3600, "hour": 3600, "hours": 3600,
	"d": 86400, "day": 86400, "days": 86400,
	"w": 604800, "wk": 604800, "wks": 604800, "week": 604800, "weeks": 604800,
}

// ResolveExpiration turns an expiration expression into epoch seconds.
//
//   - nil or blank → 0 (never expires)
//   - "2h", "1h30m", "45 minutes", "90" → now + parsed seconds
//   - a number at or above RelativeExpirationCutoff → that number (absolute)
//
// Returns domain.ErrValidation if expr is not a duration or does not fit in
// int64 seconds.
func ResolveExpiration(now time.Time, expr *string) (int64, error) {
	if expr == nil || strings.TrimSpace(*expr) == "" {
		return 0, nil
	}
	parsed, err := ParseDurationSeconds(*expr)
	if err != nil {
		return 0, err
	}
	if parsed < RelativeExpirationCutoff {
		base := now.Unix()
		if base > math.MaxInt64-parsed {
			return 0, fmt.Errorf("%w: expiration %q is out of range", domain.ErrValidation, *expr)
		}
		return base + parsed, nil
	}
	return parsed, nil
}

// ParseDurationSeconds parses a bare integer or a compound duration into
// seconds. Terms may be separated by whitespace, commas, or "and".
func ParseDurationSeconds(expr string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: expiration %q must not be negative", domain.ErrValidation, expr)
		}
		return n, nil
	}

	matches := durationPart.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: expiration %q is not a duration", domain.ErrValidation, expr)
	}

	var total float64
	last := 0
	for _, m := range matches {
		if !isSeparator(s[last:m[0]]) {
			return 0, fmt.Errorf("%w: expiration %q is not a duration", domain.ErrValidation, expr)
		}
		amount, err := strconv.ParseFloat(s[m[2]:m[3]], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: expiration %q is not a duration", domain.ErrValidation, expr)
		}
		unit, ok := unitSeconds[s[m[4]:m[5]]]
		if !ok {
			return 0, fmt.Errorf("%w: expiration %q has unknown unit %q", domain.ErrValidation, expr, s[m[4]:m[5]])
		}
		total += amount * unit
		last = m[1]
	}
	if !isSeparator(s[last:]) {
		return 0, fmt.Errorf("%w: expiration %q is not a duration", domain.ErrValidation, expr)
	}
	total = math.Round(total)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if math.IsInf(total, 0) || total >= float64(math.MaxInt64) {
		return 0, fmt.Errorf("%w: expiration %q is out of range", domain.ErrValidation, expr)
	}
	return int64(total), nil
}

func isSeparator(gap string) bool {
	gap = strings.Trim(gap, " \t,")
	return gap == "" || gap == "and"
}
