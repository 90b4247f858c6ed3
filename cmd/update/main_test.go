package main

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/status-bot/internal/config"
	"github.com/pkordes/status-bot/testutil"
)

// parse runs the root command with args and returns the options it parsed.
func parse(t *testing.T, args ...string) options {
	t.Helper()
	var got options
	cmd := newRootCmd(func(_ context.Context, opts options) error {
		got = opts
		return nil
	})
	cmd.SetArgs(append([]string{}, args...))
	require.NoError(t, cmd.Execute())
	return got
}

func TestRootCmd_ForceFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no flags", args: nil, want: false},
		{name: "long name", args: []string{"--ignore-slack-status-expiration"}, want: true},
		{name: "alias", args: []string{"--force"}, want: true},
		{name: "shorthand", args: []string{"-f"}, want: true},
		{name: "explicit false", args: []string{"--force=false"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.args...).force)
		})
	}
}

func TestRootCmd_Integrations(t *testing.T) {
	assert.Nil(t, parse(t).integrations)
	assert.Equal(t, []string{"Default"}, parse(t, "--integrations", "Default").integrations)
	assert.Equal(t, []string{"TripIt", "Default"}, parse(t, "--integrations", "TripIt,Default").integrations)
	assert.Equal(t, []string{"TripIt", "Default"}, parse(t, "--integrations=TripIt", "--integrations=Default").integrations)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd(func(context.Context, options) error {
		t.Fatal("run must not be called")
		return nil
	})
	cmd.SetArgs([]string{"TripIt"})

	assert.Error(t, cmd.Execute())
}

func TestOptions_Apply(t *testing.T) {
	cfg := config.Config{EnabledIntegrations: []string{"TripIt"}}

	assert.Equal(t, []string{"TripIt"}, options{}.apply(cfg).EnabledIntegrations)
	assert.Equal(t, []string{"Default"}, options{integrations: []string{"Default"}}.apply(cfg).EnabledIntegrations)
	assert.Equal(t, []string{"TripIt"}, cfg.EnabledIntegrations, "the original config is not modified")
}

// ---- run against fake APIs ----

type env struct {
	slack  *testutil.FakeStatusAPI
	tripit *testutil.FakeTripAPI
}

// setEnv points the whole configuration at fake APIs and the shipped YAML.
// The current status expires far in the future, so only a forced run posts.
func setEnv(t *testing.T) env {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	include := filepath.Join(filepath.Dir(file), "..", "..", "include")

	e := env{slack: testutil.NewFakeStatusAPI(t, "sk"), tripit: testutil.NewFakeTripAPI(t, "tk")}
	e.slack.SetCurrent("In a meeting", ":calendar:", 4_000_000_000)

	for k, v := range map[string]string{
		"TZ":                             "America/Chicago",
		"ENABLED_INTEGRATIONS":           "TripIt",
		"SLACK_API_URL":                  e.slack.URL,
		"SLACK_API_KEY":                  "sk",
		"SLACK_API_DEFAULT_STATUS":       "Working",
		"SLACK_API_DEFAULT_STATUS_EMOJI": ":computer:",
		"TRIPIT_WORK_COMPANY_NAME":       "Acme",
		"TRIPIT_API_URL":                 e.tripit.URL,
		"TRIPIT_API_KEY":                 "tk",
		"CITY_EMOJIS_FILE":               filepath.Join(include, "city_emojis.yml"),
		"TRAVEL_STATUSES_FILE":           filepath.Join(include, "travel_statuses.yml"),
		"DATABASE_URL":                   "",
		"LOG_FILE":                       "",
		"LOG_LEVEL":                      "error",
	} {
		t.Setenv(k, v)
	}
	return e
}

// execute runs the real command. args is never nil so cobra does not fall
// back to os.Args.
func execute(args ...string) error {
	cmd := newRootCmd(run)
	cmd.SetArgs(append([]string{}, args...))
	return cmd.Execute()
}

func TestRun_GateAndForce(t *testing.T) {
	t.Run("not expired", func(t *testing.T) {
		e := setEnv(t)
		require.NoError(t, execute())
		assert.Empty(t, e.slack.Posts())
	})

	for _, flag := range []string{"--ignore-slack-status-expiration", "--force", "-f"} {
		t.Run(flag, func(t *testing.T) {
			e := setEnv(t)
			require.NoError(t, execute(flag))
			require.Len(t, e.slack.Posts(), 1)
		})
	}
}

func TestRun_IntegrationsOverrideConfig(t *testing.T) {
	e := setEnv(t)
	// TripIt is the only configured integration and it cannot reach its API.
	e.tripit.Fail(true)

	err := execute("-f")
	require.Error(t, err)
	assert.ErrorContains(t, err, "one or more integrations failed to update: [TripIt]")
	assert.ErrorContains(t, err, ". See logs for more")
	assert.Empty(t, e.slack.Posts())

	require.NoError(t, execute("-f", "--integrations", "Default"))
	assert.Len(t, e.slack.Posts(), 1)
}

func TestRun_ConfigurationError(t *testing.T) {
	setEnv(t)
	t.Setenv("SLACK_API_KEY", "")

	err := execute()

	assert.ErrorContains(t, err, "configuration error")
	assert.ErrorContains(t, err, "SLACK_API_KEY")
}
