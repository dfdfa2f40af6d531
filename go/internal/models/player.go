package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Player represents a soccer player owned by exactly one team
type Player struct {
	ID          uuid.UUID       `json:"id"`
	TeamID      uuid.UUID       `json:"team_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Country     string          `json:"country"`
	Age         int             `json:"age"`
	Position    Position        `json:"position"`
	MarketValue decimal.Decimal `json:"market_value"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FullName returns the player's display name
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Position represents the field position of a player
type Position string

const (
	PositionGoalkeeper Position = "GOALKEEPER"
	PositionDefender   Position = "DEFENDER"
	PositionMidfielder Position = "MIDFIELDER"
	PositionAttacker   Position = "ATTACKER"
)

// Valid reports whether p is one of the known positions
func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionAttacker:
		return true
	default:
		return false
	}
}
