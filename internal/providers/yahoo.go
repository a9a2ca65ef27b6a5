package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/models"
)

const yahooSource = "yahoo"

// yahooDraftAnalysisPath is the public league draft-analysis query. Yahoo's v2
// API takes its parameters as a semicolon-delimited resource path.
const yahooDraftAnalysisPath = "/fantasy/v2/league/449.l.public;out=settings/players;position=ALL;start=0;count=200;sort=rank_season;search=;out=auction_values,ranks;ranks=season;ranks_by_position=season;out=expert_ranks;expert_ranks.rank_type=projected_season_remaining/draft_analysis;cut_types=diamond;slices=last7days?format=json_f"

// yahooCostPlaceholder marks players Yahoo has no auction data for
const yahooCostPlaceholder = "-"

// YahooClient fetches average auction costs from the Yahoo fantasy public API
type YahooClient struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

type yahooResponse struct {
	FantasyContent struct {
		League struct {
			Players []yahooPlayerEntry `json:"players"`
		} `json:"league"`
	} `json:"fantasy_content"`
}

type yahooPlayerEntry struct {
	Player yahooPlayer `json:"player"`
}

type yahooPlayer struct {
	Name struct {
		Full string `json:"full"`
	} `json:"name"`
	EditorialTeamAbbr  string      `json:"editorial_team_abbr"`
	PrimaryPosition    string      `json:"primary_position"`
	AverageAuctionCost yahooNumber `json:"average_auction_cost"`
}

// yahooNumber tolerates Yahoo emitting a cost as either a JSON string or a
// bare number
type yahooNumber string

func (n *yahooNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = yahooNumber(s)
		return nil
	}
	*n = yahooNumber(data)
	return nil
}

// NewYahooClient creates a new Yahoo fantasy API client
func NewYahooClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *YahooClient {
	return &YahooClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetAuctionValues fetches the league draft analysis and maps each player's
// average auction cost to an integer price. Ids follow upstream response
// order; no sort is applied.
func (c *YahooClient) GetAuctionValues(ctx context.Context) ([]models.Player, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+yahooDraftAnalysisPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create yahoo request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Source: yahooSource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: yahooSource, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read yahoo response: %w", err)
	}

	var data yahooResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse yahoo response: %w", err)
	}

	entries := data.FantasyContent.League.Players
	players := make([]models.Player, 0, len(entries))
	for i, entry := range entries {
		price, err := parseYahooCost(string(entry.Player.AverageAuctionCost))
		if err != nil {
			return nil, err
		}
		players = append(players, models.Player{
			ID:       i,
			Name:     entry.Player.Name.Full,
			Team:     entry.Player.EditorialTeamAbbr,
			Position: entry.Player.PrimaryPosition,
			Price:    price,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"source":  yahooSource,
		"players": len(players),
	}).Debug("Fetched average auction costs")

	return players, nil
}

// parseYahooCost maps an average auction cost to an integer price; the "-"
// placeholder means Yahoo has no data and maps to the one-dollar floor.
func parseYahooCost(cost string) (int, error) {
	if cost == yahooCostPlaceholder || cost == "" {
		return 1, nil
	}
	value, err := strconv.ParseFloat(cost, 64)
	if err != nil {
		return 0, &MalformedRecordError{Source: yahooSource, Reason: fmt.Sprintf("auction cost %q is not numeric", cost)}
	}
	price := int(math.Ceil(value))
	if price < 1 {
		price = 1
	}
	return price, nil
}
