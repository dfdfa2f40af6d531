package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Team represents a user's fantasy soccer team. Its ID is the owning user's ID.
type Team struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Country   string          `json:"country"`
	Budget    decimal.Decimal `json:"budget"`
	CreatedAt time.Time       `json:"created_at"`
}

// TeamValuation pairs a team with the summed market value of its roster
type TeamValuation struct {
	Team        Team            `json:"team"`
	MarketValue decimal.Decimal `json:"market_value"`
	PlayerCount int             `json:"player_count"`
}
