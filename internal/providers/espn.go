package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/models"
)

const espnSource = "espn"

const espnPlayerInfoPath = "/apis/v3/games/ffl/seasons/2024/segments/0/leaguedefaults/3?view=kona_player_info"

// espnRequestHeaders is the fixed header bundle the kona endpoint expects,
// including the structured X-Fantasy-Filter payload. Treated as opaque
// pass-through configuration.
var espnRequestHeaders = map[string]string{
	"sec-ch-ua":          "\"Not)A;Brand\";v=\"99\", \"Google Chrome\";v=\"127\", \"Chromium\";v=\"127\"",
	"X-Fantasy-Source":   "kona",
	"sec-ch-ua-mobile":   "?0",
	"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
	"X-Fantasy-Filter":   "{\"players\":{\"filterSlotIds\":{\"value\":[0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,23,24]},\"sortAdp\":{\"sortPriority\":2,\"sortAsc\":true},\"sortDraftRanks\":{\"sortPriority\":100,\"sortAsc\":true,\"value\":\"STANDARD\"},\"limit\":200,\"filterRanksForSlotIds\":{\"value\":[0,2,4,6,17,16,8,9,10,12,13,24,11,14,15]},\"filterStatsForTopScoringPeriodIds\":{\"value\":2,\"additionalValue\":[\"002024\",\"102024\",\"002023\",\"022024\"]}}}",
	"Accept":             "application/json",
	"Referer":            "https://fantasy.espn.com/",
	"X-Fantasy-Platform": "kona-PROD-b9d64b8bc091127981cf8d0e333c0c7283dbaac3",
	"sec-ch-ua-platform": "\"macOS\"",
}

// ESPNClient fetches projected auction values from the ESPN fantasy API.
// The numeric team and position codes in its responses are translated through
// the injected lookup tables; a code outside either table aborts the whole
// response since it means the tables are stale against the platform.
type ESPNClient struct {
	client        *http.Client
	baseURL       string
	teamNames     map[int]string
	positionNames map[int]string
	logger        *logrus.Logger
}

type espnResponse struct {
	Players []espnPlayerEntry `json:"players"`
}

type espnPlayerEntry struct {
	Player espnPlayer `json:"player"`
}

type espnPlayer struct {
	FullName          string `json:"fullName"`
	ProTeamID         int    `json:"proTeamId"`
	DefaultPositionID int    `json:"defaultPositionId"`
	Ownership         struct {
		AuctionValueAverage float64 `json:"auctionValueAverage"`
	} `json:"ownership"`
}

// NewESPNClient creates a new ESPN fantasy API client. The team and position
// lookup tables are loaded once at startup and never mutated.
func NewESPNClient(baseURL string, timeout time.Duration, teamNames, positionNames map[int]string, logger *logrus.Logger) *ESPNClient {
	return &ESPNClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:       baseURL,
		teamNames:     teamNames,
		positionNames: positionNames,
		logger:        logger,
	}
}

// GetAuctionValues fetches the current player pool with projected auction
// values. Ids follow upstream response order; no re-sort is applied.
func (c *ESPNClient) GetAuctionValues(ctx context.Context) ([]models.Player, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+espnPlayerInfoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create espn request: %w", err)
	}
	for key, value := range espnRequestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Source: espnSource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: espnSource, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read espn response: %w", err)
	}

	var data espnResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse espn response: %w", err)
	}

	players := make([]models.Player, 0, len(data.Players))
	for i, entry := range data.Players {
		team, ok := c.teamNames[entry.Player.ProTeamID]
		if !ok {
			return nil, &UnknownCodeError{Source: espnSource, Kind: "team", Code: entry.Player.ProTeamID}
		}
		position, ok := c.positionNames[entry.Player.DefaultPositionID]
		if !ok {
			return nil, &UnknownCodeError{Source: espnSource, Kind: "position", Code: entry.Player.DefaultPositionID}
		}

		price := int(math.Ceil(entry.Player.Ownership.AuctionValueAverage))
		if price < 1 {
			price = 1
		}

		players = append(players, models.Player{
			ID:       i,
			Name:     entry.Player.FullName,
			Team:     team,
			Position: position,
			Price:    price,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"source":  espnSource,
		"players": len(players),
	}).Debug("Fetched projected auction values")

	return players, nil
}
