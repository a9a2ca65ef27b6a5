package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/auction-data-service/internal/models"
)

type fakeValuationProvider struct {
	values []models.ValuedPlayer
	err    error
}

func (f *fakeValuationProvider) GetAuctionValues(_ context.Context, _ string, _, _ int) ([]models.ValuedPlayer, error) {
	return f.values, f.err
}

type fakeDraftProvider struct {
	prices []int
	err    error
}

func (f *fakeDraftProvider) GetDraftPrices(_ context.Context, _ string) ([]int, error) {
	return f.prices, f.err
}

type fakePlayerProvider struct {
	players []models.Player
	err     error
}

func (f *fakePlayerProvider) GetAuctionValues(_ context.Context) ([]models.Player, error) {
	return f.players, f.err
}

func valued(name string, price int) models.ValuedPlayer {
	return models.ValuedPlayer{
		Player: models.Player{Name: name, Team: "TB", Position: "QB", Price: price},
		Value:  models.FormatValue(price),
	}
}

func newTestAuctionService(values *fakeValuationProvider, drafts *fakeDraftProvider) *AuctionService {
	logger := logrus.New()
	return NewAuctionService(
		values,
		drafts,
		&fakePlayerProvider{},
		&fakePlayerProvider{},
		&fakePlayerProvider{},
		NewCircuitBreakerService(5, 10*time.Second, logger),
		MergeDefaults{Scoring: "HALF", NumTeams: 14, Budget: 200},
		logger,
	)
}

func TestMergeByRank(t *testing.T) {
	values := []models.ValuedPlayer{valued("A", 50), valued("B", 40)}
	merged := MergeByRank(values, []int{30})

	require.Len(t, merged, 2)
	assert.Equal(t, "A", merged[0].Name)
	assert.Equal(t, 30, merged[0].Price)
	assert.Equal(t, "$30", merged[0].Value)
	assert.Equal(t, "B", merged[1].Name)
	assert.Equal(t, 1, merged[1].Price, "entries past the paid list fall to the floor")
	assert.Equal(t, "$1", merged[1].Value)

	// The input list is left untouched
	assert.Equal(t, 50, values[0].Price)
	assert.Equal(t, 40, values[1].Price)
}

func TestMergeByRank_Properties(t *testing.T) {
	values := []models.ValuedPlayer{
		valued("A", 60), valued("B", 55), valued("C", 40), valued("D", 12),
	}
	prices := []int{48, 33}

	merged := MergeByRank(values, prices)

	require.Len(t, merged, len(values), "output length always equals the valuation list")
	for i := range merged {
		if i < len(prices) {
			assert.Equal(t, prices[i], merged[i].Price)
		} else {
			assert.Equal(t, 1, merged[i].Price)
		}
		assert.Equal(t, models.FormatValue(merged[i].Price), merged[i].Value)
		assert.Equal(t, values[i].Name, merged[i].Name, "order is preserved")
	}
}

func TestMergeByRank_MorePricesThanValues(t *testing.T) {
	merged := MergeByRank([]models.ValuedPlayer{valued("A", 10)}, []int{7, 5, 3})

	require.Len(t, merged, 1)
	assert.Equal(t, 7, merged[0].Price)
}

func TestMergeByRank_Empty(t *testing.T) {
	assert.Empty(t, MergeByRank(nil, []int{5}))
}

func TestAuctionService_GetMergedValues(t *testing.T) {
	svc := newTestAuctionService(
		&fakeValuationProvider{values: []models.ValuedPlayer{valued("A", 50), valued("B", 40), valued("C", 20)}},
		&fakeDraftProvider{prices: []int{30, 25}},
	)

	merged, err := svc.GetMergedValues(context.Background(), "12345")

	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, 30, merged[0].Price)
	assert.Equal(t, 25, merged[1].Price)
	assert.Equal(t, 1, merged[2].Price)
}

func TestAuctionService_GetMergedValues_DraftFailure(t *testing.T) {
	svc := newTestAuctionService(
		&fakeValuationProvider{values: []models.ValuedPlayer{valued("A", 50)}},
		&fakeDraftProvider{err: errors.New("draft room down")},
	)

	_, err := svc.GetMergedValues(context.Background(), "12345")
	require.Error(t, err)
}

func TestAuctionService_GetMergedValues_ValuationFailure(t *testing.T) {
	svc := newTestAuctionService(
		&fakeValuationProvider{err: errors.New("scrape failed")},
		&fakeDraftProvider{prices: []int{30}},
	)

	_, err := svc.GetMergedValues(context.Background(), "12345")
	require.Error(t, err)
}

func TestAuctionService_GetDraftPrices(t *testing.T) {
	svc := newTestAuctionService(
		&fakeValuationProvider{},
		&fakeDraftProvider{prices: []int{63, 45, 30}},
	)

	prices, err := svc.GetDraftPrices(context.Background(), "12345")

	require.NoError(t, err)
	assert.Equal(t, []int{63, 45, 30}, prices)
}
