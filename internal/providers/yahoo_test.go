package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooClient_GetAuctionValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/fantasy/v2/league/"))
		assert.Equal(t, "json_f", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fantasy_content": {"league": {"players": [
			{"player": {"name": {"full": "Christian McCaffrey"}, "editorial_team_abbr": "SF", "primary_position": "RB", "average_auction_cost": "61.4"}},
			{"player": {"name": {"full": "Justin Jefferson"}, "editorial_team_abbr": "Min", "primary_position": "WR", "average_auction_cost": 57}},
			{"player": {"name": {"full": "Undrafted Guy"}, "editorial_team_abbr": "NO", "primary_position": "TE", "average_auction_cost": "-"}}
		]}}}`))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 5*time.Second, logrus.New())
	players, err := client.GetAuctionValues(context.Background())

	require.NoError(t, err)
	require.Len(t, players, 3)

	// Upstream order is preserved, no sort applied
	assert.Equal(t, 0, players[0].ID)
	assert.Equal(t, "Christian McCaffrey", players[0].Name)
	assert.Equal(t, "SF", players[0].Team)
	assert.Equal(t, "RB", players[0].Position)
	assert.Equal(t, 62, players[0].Price, "average cost is rounded up")

	assert.Equal(t, 1, players[1].ID)
	assert.Equal(t, 57, players[1].Price, "bare numbers are accepted")

	assert.Equal(t, "Undrafted Guy", players[2].Name)
	assert.Equal(t, 1, players[2].Price, "the dash placeholder maps to the floor")
}

func TestYahooClient_GetAuctionValues_MalformedCostAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fantasy_content": {"league": {"players": [
			{"player": {"name": {"full": "Odd Entry"}, "editorial_team_abbr": "KC", "primary_position": "QB", "average_auction_cost": "forty"}}
		]}}}`))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 5*time.Second, logrus.New())
	_, err := client.GetAuctionValues(context.Background())

	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed))
}

func TestYahooClient_GetAuctionValues_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 5*time.Second, logrus.New())
	_, err := client.GetAuctionValues(context.Background())

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
}

func TestParseYahooCost(t *testing.T) {
	price, err := parseYahooCost("24.5")
	require.NoError(t, err)
	assert.Equal(t, 25, price)

	price, err = parseYahooCost("1.0")
	require.NoError(t, err)
	assert.Equal(t, 1, price)

	price, err = parseYahooCost(yahooCostPlaceholder)
	require.NoError(t, err)
	assert.Equal(t, 1, price)

	price, err = parseYahooCost("0.3")
	require.NoError(t, err)
	assert.Equal(t, 1, price)
}
