package transfer

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/ledger"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/shopspring/decimal"
)

// Store defines what the engine needs from listing persistence.
// Lookups return ErrListingNotFound, ErrPlayerNotFound or ErrTeamNotFound
// (possibly wrapped) for missing rows.
type Store interface {
	// InTx runs fn in one unit of work. Writes made through tx are visible to
	// others only if fn returns nil.
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	ListListings(ctx context.Context, page *Page) (*models.ListingPage, error)
}

// Tx is the set of locked reads and writes available inside a unit of work.
// The ForUpdate reads hold their rows until the unit of work ends.
type Tx interface {
	ledger.Store

	GetPlayerForUpdate(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetListingForUpdate(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	// CreateListing returns ErrListingDuplicate when the player is already listed.
	CreateListing(ctx context.Context, listing models.Listing) error
	UpdateListingAskPrice(ctx context.Context, id uuid.UUID, askPrice decimal.Decimal, updatedAt time.Time) error
	DeleteListing(ctx context.Context, id uuid.UUID) error
	TransferPlayer(ctx context.Context, playerID, teamID uuid.UUID, marketValue decimal.Decimal) error
	InsertOutboxEvent(ctx context.Context, record events.Record) error
}

// Page selects a slice of listings ordered by ask price. Number is zero based.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows skipped before this page, saturating at
// math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.Size > 0 && p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}

// TotalPages returns how many pages of this size hold total rows
func (p Page) TotalPages(total int64) int {
	if p.Size <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// ListingCache is an optional read-through cache for single listings
type ListingCache interface {
	GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, bool, error)
	SetListing(ctx context.Context, listing *models.Listing) error
	InvalidateListing(ctx context.Context, id uuid.UUID) error
}

// Outcome is the terminal state a listing resolves into
type Outcome string

const (
	OutcomeWithdrawn Outcome = "WITHDRAWN"
	OutcomeSold      Outcome = "SOLD"
)

// Resolution reports what ResolveListing did
type Resolution struct {
	Outcome      Outcome
	ListingID    uuid.UUID
	SellerTeamID uuid.UUID
	BuyerTeamID  uuid.UUID
	Price        decimal.Decimal
	SellerBudget decimal.Decimal
	BuyerBudget  decimal.Decimal
	MarketValue  decimal.Decimal
}
