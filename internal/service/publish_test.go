package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/repo"
	"github.com/pkordes/status-bot/internal/service"
)

func TestPublisher_Publish(t *testing.T) {
	api, posts := statusAPI(nil)
	history := repo.NewMemoryStatusUpdateRepo()
	pub := service.NewPublisher(api, history)
	s := domain.ComputedStatus{Text: "Client X @ Austin", Emoji: ":guitar:", Updated: true, Reason: domain.ReasonTemplated}

	err := pub.Publish(context.Background(), "tripit", s)

	require.NoError(t, err)
	assert.Equal(t, []postCall{{"Client X @ Austin", ":guitar:", 0}}, *posts)
	recorded, total, err := history.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "tripit", recorded[0].Integration)
	assert.Equal(t, domain.ReasonTemplated, recorded[0].Reason)
}

func TestPublisher_Publish_NotUpdated(t *testing.T) {
	api, posts := statusAPI(nil)
	history := repo.NewMemoryStatusUpdateRepo()
	pub := service.NewPublisher(api, history)

	err := pub.Publish(context.Background(), "tripit", domain.ComputedStatus{Reason: domain.ReasonNotExpired})

	require.NoError(t, err)
	assert.Empty(t, *posts)
	_, total, _ := history.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))
	assert.EqualValues(t, 1, total, "skipped decisions are still recorded")
}

func TestPublisher_Publish_PostFails(t *testing.T) {
	api := &mockStatusAPI{postStatus: func(context.Context, string, string, int64) error { return domain.ErrTransport }}
	pub := service.NewPublisher(api, nil)

	err := pub.Publish(context.Background(), "tripit", domain.ComputedStatus{Text: "x", Updated: true, TripName: "Acme: x"})

	var de *domain.DecisionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.StagePublish, de.Stage)
	assert.Equal(t, "Acme: x", de.TripName)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestPublisher_Publish_HistoryFailureIsNotFatal(t *testing.T) {
	api, posts := statusAPI(nil)
	history := &mockHistoryRepo{record: func(context.Context, domain.StatusUpdate) (domain.StatusUpdate, error) {
		return domain.StatusUpdate{}, errors.New("db down")
	}}
	pub := service.NewPublisher(api, history)

	err := pub.Publish(context.Background(), "tripit", domain.ComputedStatus{Text: "x", Emoji: ":x:", Updated: true})

	require.NoError(t, err)
	assert.Len(t, *posts, 1)
}
