package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/models"
	"github.com/stitts-dev/auction-data-service/internal/providers"
	"github.com/stitts-dev/auction-data-service/internal/services"
	"github.com/stitts-dev/auction-data-service/internal/utils"
)

// AuctionAggregator is the slice of the auction service the handlers need
type AuctionAggregator interface {
	GetDraftPrices(ctx context.Context, draftID string) ([]int, error)
	GetProjectedValues(ctx context.Context, scoring string, numTeams, budget int) ([]models.ValuedPlayer, error)
	GetMergedValues(ctx context.Context, draftID string) ([]models.ValuedPlayer, error)
	GetNFLValues(ctx context.Context) ([]models.Player, error)
	GetESPNValues(ctx context.Context) ([]models.Player, error)
	GetYahooValues(ctx context.Context) ([]models.Player, error)
}

// AuctionHandler exposes the source adapters and the merge engine over HTTP
type AuctionHandler struct {
	auctions AuctionAggregator
	defaults services.MergeDefaults
	logger   *logrus.Logger
}

// NewAuctionHandler creates a new auction handler
func NewAuctionHandler(auctions AuctionAggregator, defaults services.MergeDefaults, logger *logrus.Logger) *AuctionHandler {
	return &AuctionHandler{
		auctions: auctions,
		defaults: defaults,
		logger:   logger,
	}
}

// Root returns the service greeting
func (h *AuctionHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

// GetDraftPrices returns the paid amounts of a completed draft, descending
func (h *AuctionHandler) GetDraftPrices(c *gin.Context) {
	draftID := c.Param("draft_id")

	prices, err := h.auctions.GetDraftPrices(c.Request.Context(), draftID)
	if err != nil {
		h.respondAdapterError(c, err)
		return
	}

	c.JSON(http.StatusOK, prices)
}

// GetProjectedValues returns the scraped FantasyPros valuation table
func (h *AuctionHandler) GetProjectedValues(c *gin.Context) {
	scoring := c.DefaultQuery("scoring", h.defaults.Scoring)

	numTeams, err := strconv.Atoi(c.DefaultQuery("num_teams", strconv.Itoa(h.defaults.NumTeams)))
	if err != nil || numTeams < 1 {
		utils.SendBadRequest(c, "num_teams must be a positive integer")
		return
	}

	budget, err := strconv.Atoi(c.DefaultQuery("budget", strconv.Itoa(h.defaults.Budget)))
	if err != nil || budget < 1 {
		utils.SendBadRequest(c, "budget must be a positive integer")
		return
	}

	values, err := h.auctions.GetProjectedValues(c.Request.Context(), scoring, numTeams, budget)
	if err != nil {
		h.respondAdapterError(c, err)
		return
	}

	c.JSON(http.StatusOK, values)
}

// GetMergedValues returns the valuation list with prices overwritten by a
// completed draft's paid amounts
func (h *AuctionHandler) GetMergedValues(c *gin.Context) {
	draftID := c.Query("draft_id")
	if draftID == "" {
		utils.SendBadRequest(c, "draft_id is required")
		return
	}

	values, err := h.auctions.GetMergedValues(c.Request.Context(), draftID)
	if err != nil {
		h.respondAdapterError(c, err)
		return
	}

	c.JSON(http.StatusOK, values)
}

// GetNFLValues returns the normalized NFL.com rankings pool
func (h *AuctionHandler) GetNFLValues(c *gin.Context) {
	players, err := h.auctions.GetNFLValues(c.Request.Context())
	if err != nil {
		h.respondAdapterError(c, err)
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetESPNValues returns the normalized ESPN player pool
func (h *AuctionHandler) GetESPNValues(c *gin.Context) {
	players, err := h.auctions.GetESPNValues(c.Request.Context())
	if err != nil {
		h.respondAdapterError(c, err)
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetYahooValues returns the normalized Yahoo player pool
func (h *AuctionHandler) GetYahooValues(c *gin.Context) {
	players, err := h.auctions.GetYahooValues(c.Request.Context())
	if err != nil {
		h.respondAdapterError(c, err)
		return
	}

	c.JSON(http.StatusOK, players)
}

// respondAdapterError maps the adapter error taxonomy onto HTTP statuses:
// upstream failures and broken upstream contracts are gateway errors, a stale
// lookup table is our own configuration problem.
func (h *AuctionHandler) respondAdapterError(c *gin.Context, err error) {
	var upstreamErr *providers.UpstreamError
	var malformedErr *providers.MalformedRecordError
	var unknownCodeErr *providers.UnknownCodeError

	switch {
	case errors.As(err, &unknownCodeErr):
		h.logger.WithError(err).Error("Stale lookup table")
		utils.SendInternalError(c, err.Error())
	case errors.As(err, &malformedErr):
		h.logger.WithError(err).Error("Upstream returned a malformed response")
		utils.SendBadGateway(c, err.Error())
	case errors.As(err, &upstreamErr):
		h.logger.WithError(err).Error("Upstream source unavailable")
		utils.SendBadGateway(c, err.Error())
	default:
		h.logger.WithError(err).Error("Failed to fetch auction data")
		utils.SendBadGateway(c, "failed to fetch auction data")
	}
}
