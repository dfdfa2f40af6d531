package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Listing is an active offer to sell a player. Its ID is the listed player's ID,
// so a player can never have more than one listing.
type Listing struct {
	ID        uuid.UUID       `json:"id"`
	AskPrice  decimal.Decimal `json:"ask_price"`
	ListedAt  time.Time       `json:"listed_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Player is the listed player as of the read; nil on write paths.
	Player *Player `json:"player,omitempty"`
}

// PlayerID returns the ID of the listed player
func (l *Listing) PlayerID() uuid.UUID {
	return l.ID
}

// ListingPage is one page of listings ordered by ask price
type ListingPage struct {
	Listings      []Listing `json:"listings"`
	TotalElements int64     `json:"total_elements"`
	TotalPages    int       `json:"total_pages"`
}
