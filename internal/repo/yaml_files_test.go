package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/repo"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadStatusRules_preservesOrder(t *testing.T) {
	path := writeFile(t, "travel_statuses.yml", `
- status_regexp: "^{{employer}}: .* - Week \\d+$"
  flying:
    status: "{{client}}: {{flight_info}}"
    emoji: ":airplane:"
  not_flying:
    status: "{{client}} @ {{current_city}}"
    emoji: "{{city_emoji}}"
- status_regexp: "^Personal:"
  flying:
    status: "Flying somewhere fun"
    emoji: ":airplane:"
  not_flying:
    status: "Out of office"
    emoji: ":palm_tree:"
`)

	rules, err := repo.LoadStatusRules(path)

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, `^{{employer}}: .* - Week \d+$`, rules[0].MatchPattern)
	assert.Equal(t, domain.StatusVariant{Status: "{{client}}: {{flight_info}}", Emoji: ":airplane:"}, rules[0].Flying)
	assert.Equal(t, "{{city_emoji}}", rules[0].NotFlying.Emoji)
	assert.Equal(t, "^Personal:", rules[1].MatchPattern)
	assert.Equal(t, "Out of office", rules[1].NotFlying.Status)
}

func TestLoadStatusRules_missingPattern(t *testing.T) {
	path := writeFile(t, "travel_statuses.yml", `
- flying: {status: "x", emoji: ":x:"}
  not_flying: {status: "y", emoji: ":y:"}
`)

	_, err := repo.LoadStatusRules(path)

	require.ErrorContains(t, err, "status_regexp is required")
}

func TestLoadStatusRules_badYAML(t *testing.T) {
	path := writeFile(t, "travel_statuses.yml", "status_regexp: [unterminated")

	_, err := repo.LoadStatusRules(path)

	require.Error(t, err)
}

func TestLoadStatusRules_missingFile(t *testing.T) {
	_, err := repo.LoadStatusRules(filepath.Join(t.TempDir(), "nope.yml"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCityEmojis(t *testing.T) {
	path := writeFile(t, "city_emojis.yml", "Austin: \":guitar:\"\nNew York: \":statue_of_liberty:\"\n")

	emojis, err := repo.LoadCityEmojis(path)

	require.NoError(t, err)
	got, ok := emojis.Lookup("Austin")
	assert.True(t, ok)
	assert.Equal(t, ":guitar:", got)
	_, ok = emojis.Lookup("Dallas")
	assert.False(t, ok)
}

func TestLoadCityEmojis_emptyFile(t *testing.T) {
	emojis, err := repo.LoadCityEmojis(writeFile(t, "city_emojis.yml", ""))

	require.NoError(t, err)
	assert.Empty(t, emojis)
}
