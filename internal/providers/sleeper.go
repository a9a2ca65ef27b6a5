package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const sleeperSource = "sleeper"

// SleeperClient fetches completed auction-draft picks from the Sleeper draft API
type SleeperClient struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

// sleeperPick is the raw pick record returned by the Sleeper picks endpoint.
// Only the paid amount survives normalization; the rest of the pick is discarded.
type sleeperPick struct {
	Metadata *sleeperPickMetadata `json:"metadata"`
}

type sleeperPickMetadata struct {
	Amount string `json:"amount"`
}

// NewSleeperClient creates a new Sleeper draft API client
func NewSleeperClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *SleeperClient {
	return &SleeperClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetDraftPrices retrieves the paid auction amounts for a completed draft,
// sorted descending. The amounts carry no player identity; the caller aligns
// them by rank.
func (c *SleeperClient) GetDraftPrices(ctx context.Context, draftID string) ([]int, error) {
	url := fmt.Sprintf("%s/v1/draft/%s/picks", c.baseURL, draftID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sleeper request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Source: sleeperSource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: sleeperSource, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sleeper response: %w", err)
	}

	var picks []sleeperPick
	if err := json.Unmarshal(body, &picks); err != nil {
		return nil, fmt.Errorf("failed to parse sleeper response: %w", err)
	}

	// A pick without an amount means the upstream contract is broken, not a
	// benign gap, so the whole response is rejected.
	prices := make([]int, 0, len(picks))
	for i, pick := range picks {
		if pick.Metadata == nil || pick.Metadata.Amount == "" {
			return nil, &MalformedRecordError{
				Source: sleeperSource,
				Reason: fmt.Sprintf("pick %d has no metadata amount", i),
			}
		}
		amount, err := strconv.Atoi(pick.Metadata.Amount)
		if err != nil {
			return nil, &MalformedRecordError{
				Source: sleeperSource,
				Reason: fmt.Sprintf("pick %d amount %q is not an integer", i, pick.Metadata.Amount),
			}
		}
		prices = append(prices, amount)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(prices)))

	c.logger.WithFields(logrus.Fields{
		"source":   sleeperSource,
		"draft_id": draftID,
		"picks":    len(prices),
	}).Debug("Fetched draft auction prices")

	return prices, nil
}
