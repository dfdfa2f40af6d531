package transfer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/ledger"
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrListingDuplicate = errors.New("player is already listed")
	ErrUnauthorized     = errors.New("actor may not act on this player")
	ErrInvalidAskPrice  = errors.New("ask price must not be negative")

	// Budget failures come from the ledger so callers can match either package.
	ErrTeamNotFound       = ledger.ErrTeamNotFound
	ErrInsufficientBudget = ledger.ErrInsufficientBudget
)

// Error describes a failed engine operation and the entities involved.
// It wraps one of the sentinel errors above.
type Error struct {
	Op        string
	ListingID uuid.UUID
	PlayerID  uuid.UUID
	TeamID    uuid.UUID
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.ListingID != uuid.Nil {
		fmt.Fprintf(&b, " listing=%s", e.ListingID)
	}
	if e.PlayerID != uuid.Nil && e.PlayerID != e.ListingID {
		fmt.Fprintf(&b, " player=%s", e.PlayerID)
	}
	if e.TeamID != uuid.Nil {
		fmt.Fprintf(&b, " team=%s", e.TeamID)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, listingID, teamID uuid.UUID, err error) error {
	return &Error{Op: op, ListingID: listingID, PlayerID: listingID, TeamID: teamID, Err: err}
}
