package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/models"
)

// ValuationProvider supplies a rank-ordered list of projected auction values
type ValuationProvider interface {
	GetAuctionValues(ctx context.Context, scoring string, numTeams, budget int) ([]models.ValuedPlayer, error)
}

// DraftPriceProvider supplies the identity-free list of prices paid in a
// completed live draft, sorted descending
type DraftPriceProvider interface {
	GetDraftPrices(ctx context.Context, draftID string) ([]int, error)
}

// PlayerProvider supplies a normalized player pool from a single source
type PlayerProvider interface {
	GetAuctionValues(ctx context.Context) ([]models.Player, error)
}

// MergeDefaults is the league shape assumed when the merged auction endpoint
// is called without explicit parameters
type MergeDefaults struct {
	Scoring  string
	NumTeams int
	Budget   int
}

// AuctionService orchestrates the source adapters behind the API, routing
// every upstream call through its circuit breaker.
type AuctionService struct {
	valuations ValuationProvider
	drafts     DraftPriceProvider
	nfl        PlayerProvider
	espn       PlayerProvider
	yahoo      PlayerProvider
	breakers   *CircuitBreakerService
	defaults   MergeDefaults
	logger     *logrus.Logger
}

// NewAuctionService creates the aggregation service over the five source adapters
func NewAuctionService(
	valuations ValuationProvider,
	drafts DraftPriceProvider,
	nfl, espn, yahoo PlayerProvider,
	breakers *CircuitBreakerService,
	defaults MergeDefaults,
	logger *logrus.Logger,
) *AuctionService {
	return &AuctionService{
		valuations: valuations,
		drafts:     drafts,
		nfl:        nfl,
		espn:       espn,
		yahoo:      yahoo,
		breakers:   breakers,
		defaults:   defaults,
		logger:     logger,
	}
}

// GetDraftPrices returns the paid amounts of a completed draft, highest first
func (s *AuctionService) GetDraftPrices(ctx context.Context, draftID string) ([]int, error) {
	result, err := s.breakers.Execute("sleeper", func() (interface{}, error) {
		return s.drafts.GetDraftPrices(ctx, draftID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]int), nil
}

// GetProjectedValues returns the scraped valuation list for a league shape
func (s *AuctionService) GetProjectedValues(ctx context.Context, scoring string, numTeams, budget int) ([]models.ValuedPlayer, error) {
	result, err := s.breakers.Execute("fantasypros", func() (interface{}, error) {
		return s.valuations.GetAuctionValues(ctx, scoring, numTeams, budget)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.ValuedPlayer), nil
}

// GetMergedValues fetches the projected valuation list and the live draft
// prices, then overwrites projections with paid prices by rank.
func (s *AuctionService) GetMergedValues(ctx context.Context, draftID string) ([]models.ValuedPlayer, error) {
	values, err := s.GetProjectedValues(ctx, s.defaults.Scoring, s.defaults.NumTeams, s.defaults.Budget)
	if err != nil {
		return nil, err
	}

	prices, err := s.GetDraftPrices(ctx, draftID)
	if err != nil {
		return nil, err
	}

	merged := MergeByRank(values, prices)

	s.logger.WithFields(logrus.Fields{
		"draft_id": draftID,
		"values":   len(values),
		"prices":   len(prices),
	}).Debug("Merged draft prices into valuation list")

	return merged, nil
}

// GetNFLValues returns the normalized NFL.com rankings pool
func (s *AuctionService) GetNFLValues(ctx context.Context) ([]models.Player, error) {
	return s.playersFrom(ctx, "nfl.com", s.nfl)
}

// GetESPNValues returns the normalized ESPN player pool
func (s *AuctionService) GetESPNValues(ctx context.Context) ([]models.Player, error) {
	return s.playersFrom(ctx, "espn", s.espn)
}

// GetYahooValues returns the normalized Yahoo player pool
func (s *AuctionService) GetYahooValues(ctx context.Context) ([]models.Player, error) {
	return s.playersFrom(ctx, "yahoo", s.yahoo)
}

func (s *AuctionService) playersFrom(ctx context.Context, source string, provider PlayerProvider) ([]models.Player, error) {
	result, err := s.breakers.Execute(source, func() (interface{}, error) {
		return provider.GetAuctionValues(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Player), nil
}

// MergeByRank aligns two independently sorted lists by index: entry i of the
// valuation list takes paid price i, entries past the paid list fall back to
// the one-dollar floor. This is a positional zip, not an identity join; if the
// two upstreams ever diverge in ordering, prices silently attach to the wrong
// player. Known limitation, kept as-is.
func MergeByRank(values []models.ValuedPlayer, prices []int) []models.ValuedPlayer {
	merged := make([]models.ValuedPlayer, len(values))
	copy(merged, values)
	for i := range merged {
		if i < len(prices) {
			merged[i].Price = prices[i]
		} else {
			merged[i].Price = 1
		}
		merged[i].Value = models.FormatValue(merged[i].Price)
	}
	return merged
}
