package models

import (
	"fmt"
	"time"
)

// Player is the canonical normalized record every source adapter produces.
// Price is an auction dollar value and is always >= 1; sources without a
// usable price fall back to the one-dollar floor.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Price    int    `json:"price"`
}

// ValuedPlayer is a Player with a formatted display value, as produced by the
// FantasyPros adapter and the auction merge.
type ValuedPlayer struct {
	Player
	Value string `json:"value"`
}

// FormatValue renders an auction price as the display string shown in draft rooms
func FormatValue(price int) string {
	return fmt.Sprintf("$%d", price)
}

// PersistedPlayer is a user-created player record stored in postgres
type PersistedPlayer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Team      string    `gorm:"not null" json:"team"`
	Position  string    `gorm:"not null" json:"position"`
	Price     int       `gorm:"not null;default:1" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PersistedPlayer) TableName() string {
	return "players"
}

// CreatePlayerRequest is the payload accepted by POST /players/. Price and ID
// are assigned server-side.
type CreatePlayerRequest struct {
	Name     string `json:"name" binding:"required"`
	Team     string `json:"team" binding:"required"`
	Position string `json:"position" binding:"required"`
}
