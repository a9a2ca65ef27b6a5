package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitts-dev/auction-data-service/internal/models"
	"github.com/stitts-dev/auction-data-service/pkg/database"
)

// ErrPlayerNotFound is returned when no persisted player has the requested id
var ErrPlayerNotFound = errors.New("player not found")

// PlayerService owns the lifecycle of user-created player records
type PlayerService struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewPlayerService creates a new persisted-player service
func NewPlayerService(db *database.DB, logger *logrus.Logger) *PlayerService {
	return &PlayerService{
		db:     db,
		logger: logger,
	}
}

// ListPlayers returns all persisted players
func (s *PlayerService) ListPlayers() ([]models.PersistedPlayer, error) {
	players := []models.PersistedPlayer{}
	if err := s.db.Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// GetPlayer returns a single persisted player by id
func (s *PlayerService) GetPlayer(id uint) (*models.PersistedPlayer, error) {
	var player models.PersistedPlayer
	if err := s.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return &player, nil
}

// CreatePlayer stores a user-submitted player with the default one-dollar price
func (s *PlayerService) CreatePlayer(req models.CreatePlayerRequest) (*models.PersistedPlayer, error) {
	player := models.PersistedPlayer{
		Name:     req.Name,
		Team:     req.Team,
		Position: req.Position,
		Price:    1,
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"player_id": player.ID,
		"name":      player.Name,
	}).Info("Created player")

	return &player, nil
}
