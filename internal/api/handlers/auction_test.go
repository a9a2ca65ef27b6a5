package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/auction-data-service/internal/models"
	"github.com/stitts-dev/auction-data-service/internal/providers"
	"github.com/stitts-dev/auction-data-service/internal/services"
)

type fakeAggregator struct {
	prices  []int
	values  []models.ValuedPlayer
	players []models.Player
	err     error

	lastScoring  string
	lastNumTeams int
	lastBudget   int
	lastDraftID  string
}

func (f *fakeAggregator) GetDraftPrices(_ context.Context, draftID string) ([]int, error) {
	f.lastDraftID = draftID
	return f.prices, f.err
}

func (f *fakeAggregator) GetProjectedValues(_ context.Context, scoring string, numTeams, budget int) ([]models.ValuedPlayer, error) {
	f.lastScoring = scoring
	f.lastNumTeams = numTeams
	f.lastBudget = budget
	return f.values, f.err
}

func (f *fakeAggregator) GetMergedValues(_ context.Context, draftID string) ([]models.ValuedPlayer, error) {
	f.lastDraftID = draftID
	return f.values, f.err
}

func (f *fakeAggregator) GetNFLValues(_ context.Context) ([]models.Player, error) {
	return f.players, f.err
}

func (f *fakeAggregator) GetESPNValues(_ context.Context) ([]models.Player, error) {
	return f.players, f.err
}

func (f *fakeAggregator) GetYahooValues(_ context.Context) ([]models.Player, error) {
	return f.players, f.err
}

func newTestRouter(agg *fakeAggregator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAuctionHandler(agg, services.MergeDefaults{Scoring: "HALF", NumTeams: 14, Budget: 200}, logrus.New())

	router := gin.New()
	router.GET("/", handler.Root)
	router.GET("/draft/:draft_id", handler.GetDraftPrices)
	router.GET("/fantasypros", handler.GetProjectedValues)
	router.GET("/auction", handler.GetMergedValues)
	router.GET("/auction/nfl-com", handler.GetNFLValues)
	router.GET("/auction/espn", handler.GetESPNValues)
	router.GET("/auction/yahoo", handler.GetYahooValues)
	return router
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestAuctionHandler_Root(t *testing.T) {
	router := newTestRouter(&fakeAggregator{})
	w := performRequest(router, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Hello World", body["message"])
}

func TestAuctionHandler_GetDraftPrices(t *testing.T) {
	agg := &fakeAggregator{prices: []int{63, 45, 30}}
	router := newTestRouter(agg)
	w := performRequest(router, http.MethodGet, "/draft/12345")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", agg.lastDraftID)

	var prices []int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prices))
	assert.Equal(t, []int{63, 45, 30}, prices)
}

func TestAuctionHandler_GetProjectedValues_Defaults(t *testing.T) {
	agg := &fakeAggregator{values: []models.ValuedPlayer{}}
	router := newTestRouter(agg)
	w := performRequest(router, http.MethodGet, "/fantasypros")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HALF", agg.lastScoring)
	assert.Equal(t, 14, agg.lastNumTeams)
	assert.Equal(t, 200, agg.lastBudget)
}

func TestAuctionHandler_GetProjectedValues_QueryParams(t *testing.T) {
	agg := &fakeAggregator{values: []models.ValuedPlayer{}}
	router := newTestRouter(agg)
	w := performRequest(router, http.MethodGet, "/fantasypros?scoring=PPR&num_teams=10&budget=300")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PPR", agg.lastScoring)
	assert.Equal(t, 10, agg.lastNumTeams)
	assert.Equal(t, 300, agg.lastBudget)
}

func TestAuctionHandler_GetProjectedValues_BadParams(t *testing.T) {
	router := newTestRouter(&fakeAggregator{})

	w := performRequest(router, http.MethodGet, "/fantasypros?num_teams=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodGet, "/fantasypros?budget=-5")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuctionHandler_GetMergedValues_RequiresDraftID(t *testing.T) {
	router := newTestRouter(&fakeAggregator{})
	w := performRequest(router, http.MethodGet, "/auction")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuctionHandler_GetMergedValues(t *testing.T) {
	agg := &fakeAggregator{values: []models.ValuedPlayer{
		{Player: models.Player{ID: 0, Name: "A", Team: "SF", Position: "RB", Price: 30}, Value: "$30"},
	}}
	router := newTestRouter(agg)
	w := performRequest(router, http.MethodGet, "/auction?draft_id=12345")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", agg.lastDraftID)

	var values []models.ValuedPlayer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &values))
	require.Len(t, values, 1)
	assert.Equal(t, "$30", values[0].Value)
}

func TestAuctionHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"upstream unavailable", &providers.UpstreamError{Source: "espn", StatusCode: 503}, http.StatusBadGateway},
		{"malformed record", &providers.MalformedRecordError{Source: "sleeper", Reason: "no amount"}, http.StatusBadGateway},
		{"unknown code", &providers.UnknownCodeError{Source: "espn", Kind: "team", Code: 99}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&fakeAggregator{err: tc.err})
			w := performRequest(router, http.MethodGet, "/auction/espn")
			assert.Equal(t, tc.expected, w.Code)
		})
	}
}

func TestAuctionHandler_SourceEndpoints(t *testing.T) {
	agg := &fakeAggregator{players: []models.Player{
		{ID: 0, Name: "Christian McCaffrey", Team: "SF", Position: "RB", Price: 62},
	}}
	router := newTestRouter(agg)

	for _, path := range []string{"/auction/nfl-com", "/auction/espn", "/auction/yahoo"} {
		w := performRequest(router, http.MethodGet, path)
		require.Equal(t, http.StatusOK, w.Code, path)

		var players []models.Player
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &players))
		require.Len(t, players, 1, path)
		assert.Equal(t, "Christian McCaffrey", players[0].Name)
	}
}
