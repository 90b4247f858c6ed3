package service

import (
	"regexp"
	"time"

	"github.com/pkordes/status-bot/internal/domain"
)

const (
	WeekendStatus             = "Yay, weekend!"
	WeekendEmoji              = ":sunglasses:"
	LimitedAvailabilitySuffix = " (My work phone is off. Availability might be limited.)"
	UnavailableEmoji          = ":no_mobile_phones:"

	workdayStartHour = 9
	workdayEndHour   = 17
)

var outOfOffice = regexp.MustCompile(`^Out of office`)

// OnVacation reports whether text is an out-of-office status.
func OnVacation(text string) bool {
	return outOfOffice.MatchString(text)
}

// IsWeekend reports whether now falls on Saturday, Sunday, or Friday at or
// after 17:00 in now's location.
func IsWeekend(now time.Time) bool {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	case time.Friday:
		return now.Hour() >= workdayEndHour
	}
	return false
}

// IsLimitedAvailability reports whether now is outside 09:00-17:00 on a
// business day.
func IsLimitedAvailability(now time.Time) bool {
	if IsWeekend(now) {
		return false
	}
	h := now.Hour()
	return h < workdayStartHour || h >= workdayEndHour
}

// ApplyOverrides applies, in priority order, the vacation, weekend, and
// limited-availability rules. At most one of them changes the output. The
// returned reason is empty when none applied.
func ApplyOverrides(now time.Time, text, emoji string) (string, string, domain.Reason) {
	switch {
	case OnVacation(text):
		return text, emoji, domain.ReasonVacation
	case IsWeekend(now):
		return WeekendStatus, WeekendEmoji, domain.ReasonWeekend
	case IsLimitedAvailability(now):
		return text + LimitedAvailabilitySuffix, UnavailableEmoji, domain.ReasonLimited
	}
	return text, emoji, ""
}
