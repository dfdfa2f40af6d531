package transfer

import (
	"time"

	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/shopspring/decimal"
)

// Wire messages for the transfer service. Money travels as fixed two decimal
// strings, truncated rather than rounded.

type PlayerMessage struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Country     string `json:"country"`
	Age         int    `json:"age"`
	Position    string `json:"position"`
	MarketValue string `json:"market_value"`
}

type ListingMessage struct {
	ID        string         `json:"id"`
	AskPrice  string         `json:"ask_price"`
	ListedAt  time.Time      `json:"listed_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Player    *PlayerMessage `json:"player,omitempty"`
}

type CreateListingRequest struct {
	PlayerID string `json:"player_id"`
	AskPrice string `json:"ask_price"`
}

type CreateListingResponse struct {
	Listing *ListingMessage `json:"listing"`
}

type UpdateListingRequest struct {
	ListingID string `json:"listing_id"`
	AskPrice  string `json:"ask_price"`
}

type UpdateListingResponse struct {
	Listing *ListingMessage `json:"listing"`
}

type ResolveListingRequest struct {
	ListingID   string `json:"listing_id"`
	BuyerTeamID string `json:"buyer_team_id,omitempty"`
}

type ResolveListingResponse struct {
	Outcome      string `json:"outcome"`
	ListingID    string `json:"listing_id"`
	SellerTeamID string `json:"seller_team_id"`
	BuyerTeamID  string `json:"buyer_team_id,omitempty"`
	Price        string `json:"price,omitempty"`
	SellerBudget string `json:"seller_budget,omitempty"`
	BuyerBudget  string `json:"buyer_budget,omitempty"`
	MarketValue  string `json:"market_value"`
}

type GetListingRequest struct {
	ListingID string `json:"listing_id"`
}

type GetListingResponse struct {
	Listing *ListingMessage `json:"listing"`
}

// ListListingsRequest pages through listings. Page and Size default when
// omitted; Unpaged asks for every listing.
type ListListingsRequest struct {
	Page    *int `json:"page,omitempty"`
	Size    *int `json:"size,omitempty"`
	Unpaged bool `json:"unpaged,omitempty"`
}

type ListListingsResponse struct {
	TotalElements int64             `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
	Items         []*ListingMessage `json:"items"`
}

// FormatMoney renders d with exactly two decimals, truncating extra digits
func FormatMoney(d decimal.Decimal) string {
	return d.Truncate(2).StringFixed(2)
}

func listingToMessage(l *models.Listing) *ListingMessage {
	msg := &ListingMessage{
		ID:        l.ID.String(),
		AskPrice:  FormatMoney(l.AskPrice),
		ListedAt:  l.ListedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if p := l.Player; p != nil {
		msg.Player = &PlayerMessage{
			ID:          p.ID.String(),
			TeamID:      p.TeamID.String(),
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Country:     p.Country,
			Age:         p.Age,
			Position:    string(p.Position),
			MarketValue: FormatMoney(p.MarketValue),
		}
	}
	return msg
}

func resolutionToMessage(r *Resolution) *ResolveListingResponse {
	msg := &ResolveListingResponse{
		Outcome:      string(r.Outcome),
		ListingID:    r.ListingID.String(),
		SellerTeamID: r.SellerTeamID.String(),
		MarketValue:  FormatMoney(r.MarketValue),
	}
	if r.Outcome == OutcomeSold {
		msg.BuyerTeamID = r.BuyerTeamID.String()
		msg.Price = FormatMoney(r.Price)
		msg.SellerBudget = FormatMoney(r.SellerBudget)
		msg.BuyerBudget = FormatMoney(r.BuyerBudget)
	}
	return msg
}
