package repo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/status-bot/internal/domain"
)

// LoadStatusRules reads the ordered status template rules from a YAML file.
// The file is a top-level list; order is significant.
//
//	- status_regexp: "^{{employer}}: .* - Week \\d+$"
//	  flying:     {status: "{{client}}: {{flight_info}}", emoji: ":airplane:"}
//	  not_flying: {status: "{{client}} @ {{current_city}}", emoji: "{{city_emoji}}"}
func LoadStatusRules(path string) ([]domain.StatusTemplateRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadStatusRules: %w", err)
	}
	var rules []domain.StatusTemplateRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("repo.LoadStatusRules: %s: %w", path, err)
	}
	for i, r := range rules {
		if r.MatchPattern == "" {
			return nil, fmt.Errorf("repo.LoadStatusRules: rule %d: status_regexp is required", i)
		}
	}
	return rules, nil
}

// CityEmojis maps city names to emoji. It is read-only after loading.
type CityEmojis map[string]string

// Lookup returns the emoji for city.
func (c CityEmojis) Lookup(city string) (string, bool) {
	emoji, ok := c[city]
	return emoji, ok
}

// LoadCityEmojis reads a YAML mapping of city name to emoji. A missing file
// is an error; an empty file yields an empty map.
func LoadCityEmojis(path string) (CityEmojis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadCityEmojis: %w", err)
	}
	emojis := CityEmojis{}
	if err := yaml.Unmarshal(data, &emojis); err != nil {
		return nil, fmt.Errorf("repo.LoadCityEmojis: %s: %w", path, err)
	}
	return emojis, nil
}
