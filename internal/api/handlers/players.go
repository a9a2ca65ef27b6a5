package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/models"
	"github.com/stitts-dev/auction-data-service/internal/services"
	"github.com/stitts-dev/auction-data-service/internal/utils"
)

// PlayerStore is the slice of the player service the handlers need
type PlayerStore interface {
	ListPlayers() ([]models.PersistedPlayer, error)
	GetPlayer(id uint) (*models.PersistedPlayer, error)
	CreatePlayer(req models.CreatePlayerRequest) (*models.PersistedPlayer, error)
}

// PlayerHandler handles CRUD endpoints for user-created player records
type PlayerHandler struct {
	players PlayerStore
	logger  *logrus.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players PlayerStore, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		players: players,
		logger:  logger,
	}
}

// ListPlayers returns all persisted players
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.players.ListPlayers()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list players")
		utils.SendInternalError(c, "failed to list players")
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetPlayer returns a single persisted player by id
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendBadRequest(c, "id must be a positive integer")
		return
	}

	player, err := h.players.GetPlayer(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			utils.SendNotFound(c, "player not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get player")
		utils.SendInternalError(c, "failed to get player")
		return
	}

	c.JSON(http.StatusOK, player)
}

// CreatePlayer stores a user-submitted player record
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "name, team and position are required")
		return
	}

	player, err := h.players.CreatePlayer(req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create player")
		utils.SendInternalError(c, "failed to create player")
		return
	}

	c.JSON(http.StatusCreated, player)
}
