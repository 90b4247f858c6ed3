package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkordes/status-bot/internal/domain"
)

// TravelingEmoji is used when the current city has no emoji of its own.
const TravelingEmoji = ":briefcase:"

// placeholder matches "{{name}}" with optional inner whitespace. Templates
// can only reference names; there is no expression language.
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

var (
	remoteSuffix = regexp.MustCompile(`- Remote$`)
	weekWrapper  = regexp.MustCompile(`^\w+:(.*)- (Week.*)$`)
	vacationTrip = regexp.MustCompile(`^Vacation: .* until (.*)$`)
)

// CityEmojiLookup maps a city name to its emoji.
type CityEmojiLookup interface {
	Lookup(city string) (string, bool)
}

// Rendered is the status produced by the first matching rule.
type Rendered struct {
	Text  string
	Emoji string
	// Rule is the index of the matching rule in load order.
	Rule int
}

type compiledRule struct {
	pattern *regexp.Regexp
	rule    domain.StatusTemplateRule
}

// RuleSet is the ordered, compiled list of status template rules. It is built
// once at startup and is safe for concurrent use.
type RuleSet struct {
	rules    []compiledRule
	employer string
	// employerWrapper strips "<employer>: ... - Week N" when the employer
	// name has spaces or punctuation that weekWrapper's \w+ cannot match.
	employerWrapper *regexp.Regexp
}

// NewRuleSet substitutes {{employer}} into every match pattern and compiles it.
// Returns an error if the list is empty, a pattern references another
// variable, or a pattern does not compile.
func NewRuleSet(rules []domain.StatusTemplateRule, employer string) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, errors.New("service.NewRuleSet: no status rules found")
	}
	vars := map[string]string{"employer": regexp.QuoteMeta(employer)}

	rs := &RuleSet{employer: employer, rules: make([]compiledRule, 0, len(rules))}
	if employer != "" {
		rs.employerWrapper = regexp.MustCompile(`^` + regexp.QuoteMeta(employer) + `:(.*)- (Week.*)$`)
	}
	for i, r := range rules {
		src, err := interpolate(r.MatchPattern, vars)
		if err != nil {
			return nil, fmt.Errorf("service.NewRuleSet: rule %d: %w", i, err)
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("service.NewRuleSet: rule %d: %w", i, err)
		}
		rs.rules = append(rs.rules, compiledRule{pattern: re, rule: r})
	}
	return rs, nil
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Match returns the index of the first rule whose pattern matches tripName.
func (rs *RuleSet) Match(tripName string) (int, bool) {
	for i, r := range rs.rules {
		if r.pattern.MatchString(tripName) {
			return i, true
		}
	}
	return -1, false
}

// ClassifyAndRender picks the first rule matching the trip name, selects its
// flying or not-flying variant, and renders both templates.
//
// A nil trip yields (nil, nil): the caller falls back to its default status.
// A trip name matching no rule yields domain.ErrInvalidTripName, and a
// template referencing an unavailable variable yields domain.ErrRender.
func (rs *RuleSet) ClassifyAndRender(trip *domain.TripSnapshot, cities CityEmojiLookup) (*Rendered, error) {
	if trip == nil {
		return nil, nil
	}

	idx, ok := rs.Match(trip.TripName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTripName, trip.TripName)
	}

	variant := rs.rules[idx].rule.NotFlying
	if trip.Flying() {
		variant = rs.rules[idx].rule.Flying
	}

	vars := rs.variables(trip, cities)
	text, err := interpolate(variant.Status, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: status: %w", domain.ErrRender, err)
	}
	emoji, err := interpolate(variant.Emoji, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: emoji: %w", domain.ErrRender, err)
	}
	return &Rendered{Text: text, Emoji: emoji, Rule: idx}, nil
}

// variables is the complete set of names a status template may reference.
func (rs *RuleSet) variables(trip *domain.TripSnapshot, cities CityEmojiLookup) map[string]string {
	vars := map[string]string{
		"current_city": trip.CurrentCity,
		"city_emoji":   cityEmoji(trip.CurrentCity, cities),
		"trip_name":    trip.TripName,
		"employer":     rs.employer,
		"client":       rs.clientName(trip.TripName),
	}
	if m := vacationTrip.FindStringSubmatch(trip.TripName); m != nil {
		vars["return_date"] = strings.TrimSpace(m[1])
	}
	if trip.Flying() {
		vars["flight_info"] = trip.FlightInfo()
	}
	return vars
}

func cityEmoji(city string, cities CityEmojiLookup) string {
	if city == "" || cities == nil {
		return TravelingEmoji
	}
	if emoji, ok := cities.Lookup(city); ok && emoji != "" {
		return emoji
	}
	return TravelingEmoji
}

// clientName strips "<Employer>: " and " - Week N" (and a "- Remote" suffix)
// from a work trip name, leaving the client.
func (rs *RuleSet) clientName(tripName string) string {
	s := remoteSuffix.ReplaceAllString(tripName, "")
	if rs.employerWrapper != nil && rs.employerWrapper.MatchString(s) {
		s = rs.employerWrapper.ReplaceAllString(s, "$1")
	} else {
		s = weekWrapper.ReplaceAllString(s, "$1")
	}
	return strings.TrimSpace(s)
}

// interpolate replaces every {{name}} in tmpl with vars[name]. It fails on
// the first name not present in vars.
func interpolate(tmpl string, vars map[string]string) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		v, ok := vars[name]
		if !ok && missing == "" {
			missing = name
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("unknown or unavailable variable %q", missing)
	}
	return out, nil
}
