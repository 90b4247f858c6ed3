package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/repo"
	"github.com/pkordes/status-bot/internal/service"
)

// mockStatusAPI is a hand-written double for the status API.
// Each method is a function field; set only the ones your test needs.
type mockStatusAPI struct {
	getStatus  func(ctx context.Context) (*domain.ExistingStatus, error)
	postStatus func(ctx context.Context, text, emoji string, expiration int64) error
}

func (m *mockStatusAPI) GetStatus(ctx context.Context) (*domain.ExistingStatus, error) {
	return m.getStatus(ctx)
}
func (m *mockStatusAPI) PostStatus(ctx context.Context, text, emoji string, expiration int64) error {
	return m.postStatus(ctx, text, emoji, expiration)
}

// compile-time checks: mockStatusAPI must satisfy both status interfaces.
var (
	_ service.StatusReader = (*mockStatusAPI)(nil)
	_ service.StatusWriter = (*mockStatusAPI)(nil)
)

type mockTripSource struct {
	currentTrip func(ctx context.Context) (*domain.TripSnapshot, error)
}

func (m *mockTripSource) CurrentTrip(ctx context.Context) (*domain.TripSnapshot, error) {
	return m.currentTrip(ctx)
}

var _ service.TripSource = (*mockTripSource)(nil)

type mockHistoryRepo struct {
	record    func(ctx context.Context, u domain.StatusUpdate) (domain.StatusUpdate, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error)
}

func (m *mockHistoryRepo) Record(ctx context.Context, u domain.StatusUpdate) (domain.StatusUpdate, error) {
	return m.record(ctx, u)
}
func (m *mockHistoryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error) {
	return m.getByID(ctx, id)
}
func (m *mockHistoryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error) {
	return m.listPaged(ctx, p)
}

var _ repo.StatusUpdateRepo = (*mockHistoryRepo)(nil)

// ---- helpers ---------------------------------------------------------------

type postCall struct {
	text       string
	emoji      string
	expiration int64
}

// statusAPI returns a mock reporting existing and recording every post.
func statusAPI(existing *domain.ExistingStatus) (*mockStatusAPI, *[]postCall) {
	var mu sync.Mutex
	posts := &[]postCall{}
	return &mockStatusAPI{
		getStatus: func(context.Context) (*domain.ExistingStatus, error) { return existing, nil },
		postStatus: func(_ context.Context, text, emoji string, exp int64) error {
			mu.Lock()
			defer mu.Unlock()
			*posts = append(*posts, postCall{text, emoji, exp})
			return nil
		},
	}, posts
}

func tripSource(trip *domain.TripSnapshot) *mockTripSource {
	return &mockTripSource{
		currentTrip: func(context.Context) (*domain.TripSnapshot, error) { return trip, nil },
	}
}

func ptr[T any](v T) *T { return &v }

// Reference instants in America/Chicago. 2025-06-02 is a Monday.
var central = time.FixedZone("CDT", -5*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, central)
}

var (
	mondayNoon    = at(2, 12, 0)
	mondayEarly   = at(2, 7, 30)
	mondayEvening = at(2, 17, 0)
	fridayFour    = at(6, 16, 59)
	fridayEvening = at(6, 18, 0)
	saturdayNoon  = at(7, 12, 0)
	sundayMorning = at(8, 6, 0)
)

// workRules mirrors a typical travel_statuses.yml.
func workRules() []domain.StatusTemplateRule {
	return []domain.StatusTemplateRule{
		{
			MatchPattern: `^Vacation:`,
			Flying:       domain.StatusVariant{Status: "Out of office until {{return_date}}", Emoji: ":palm_tree:"},
			NotFlying:    domain.StatusVariant{Status: "Out of office until {{return_date}}", Emoji: ":palm_tree:"},
		},
		{
			MatchPattern: `^{{employer}}: .* - Week \d+$`,
			Flying:       domain.StatusVariant{Status: "{{client}}: {{flight_info}}", Emoji: ":airplane:"},
			NotFlying:    domain.StatusVariant{Status: "{{client}} @ {{current_city}}", Emoji: "{{city_emoji}}"},
		},
		{
			MatchPattern: `^Personal:`,
			Flying:       domain.StatusVariant{Status: "Traveling", Emoji: ":airplane:"},
			NotFlying:    domain.StatusVariant{Status: "Away in {{current_city}}", Emoji: "{{city_emoji}}"},
		},
	}
}

func mustRuleSet(t interface{ Fatalf(string, ...any) }, rules []domain.StatusTemplateRule) *service.RuleSet {
	rs, err := service.NewRuleSet(rules, "Acme")
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	return rs
}

type cityMap map[string]string

func (c cityMap) Lookup(city string) (string, bool) {
	e, ok := c[city]
	return e, ok
}

var cities = cityMap{"Austin": ":guitar:", "Chicago": ":pizza:"}
