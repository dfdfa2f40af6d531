package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/transfermarket/go/internal/authz"
	"github.com/mcdev12/transfermarket/go/internal/ledger"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Appreciator computes a player's market value after a sale
type Appreciator interface {
	Appreciate(current decimal.Decimal) decimal.Decimal
}

// App runs the listing lifecycle and the acquisition transaction
type App struct {
	store       Store
	appreciator Appreciator
	clock       clockwork.Clock
	cache       ListingCache
}

// NewApp creates a new transfer App. cache may be nil.
func NewApp(store Store, appreciator Appreciator, clock clockwork.Clock, cache ListingCache) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		store:       store,
		appreciator: appreciator,
		clock:       clock,
		cache:       cache,
	}
}

func (a *App) now() time.Time {
	return a.clock.Now().UTC()
}

// CreateListing offers the player for sale at askPrice
func (a *App) CreateListing(ctx context.Context, actor authz.Actor, playerID uuid.UUID, askPrice decimal.Decimal) (*models.Listing, error) {
	const op = "create listing"
	if askPrice.IsNegative() {
		return nil, opError(op, playerID, uuid.Nil, ErrInvalidAskPrice)
	}

	var listing *models.Listing
	err := a.store.InTx(ctx, func(tx Tx) error {
		// Listing before player, the same order update and resolve lock in.
		_, listingErr := tx.GetListingForUpdate(ctx, playerID)
		if listingErr != nil && !errors.Is(listingErr, ErrListingNotFound) {
			return fmt.Errorf("failed to check existing listing: %w", listingErr)
		}

		player, err := tx.GetPlayerForUpdate(ctx, playerID)
		if err != nil {
			return opError(op, playerID, uuid.Nil, err)
		}
		if !authz.CanActOnPlayer(actor, player) {
			return opError(op, playerID, player.TeamID, ErrUnauthorized)
		}
		if listingErr == nil {
			return opError(op, playerID, player.TeamID, ErrListingDuplicate)
		}

		now := a.now()
		listing = &models.Listing{
			ID:        playerID,
			AskPrice:  askPrice,
			ListedAt:  now,
			UpdatedAt: now,
		}
		if err := tx.CreateListing(ctx, *listing); err != nil {
			return opError(op, playerID, player.TeamID, err)
		}
		listing.Player = player

		record, err := events.NewRecord(events.EventTypeListingCreated, playerID, now, events.ListingCreatedPayload{
			ListingID:    playerID.String(),
			PlayerID:     playerID.String(),
			PlayerName:   player.FullName(),
			SellerTeamID: player.TeamID.String(),
			AskPrice:     askPrice,
			ListedAt:     now,
		}, player.TeamID)
		if err != nil {
			return err
		}
		return tx.InsertOutboxEvent(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	a.invalidate(ctx, playerID)
	log.Info().
		Str("listing_id", listing.ID.String()).
		Str("team_id", listing.Player.TeamID.String()).
		Str("ask_price", askPrice.String()).
		Str("actor", actor.String()).
		Msg("listing created")
	return listing, nil
}

// UpdateListing replaces the ask price of an existing listing
func (a *App) UpdateListing(ctx context.Context, actor authz.Actor, listingID uuid.UUID, askPrice decimal.Decimal) (*models.Listing, error) {
	const op = "update listing"
	if askPrice.IsNegative() {
		return nil, opError(op, listingID, uuid.Nil, ErrInvalidAskPrice)
	}

	var listing *models.Listing
	err := a.store.InTx(ctx, func(tx Tx) error {
		current, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return opError(op, listingID, uuid.Nil, err)
		}
		player, err := tx.GetPlayerForUpdate(ctx, current.PlayerID())
		if err != nil {
			return opError(op, listingID, uuid.Nil, err)
		}
		if !authz.CanActOnPlayer(actor, player) {
			return opError(op, listingID, player.TeamID, ErrUnauthorized)
		}

		now := a.now()
		if err := tx.UpdateListingAskPrice(ctx, listingID, askPrice, now); err != nil {
			return opError(op, listingID, player.TeamID, err)
		}

		record, err := events.NewRecord(events.EventTypeListingUpdated, listingID, now, events.ListingUpdatedPayload{
			ListingID:        listingID.String(),
			SellerTeamID:     player.TeamID.String(),
			AskPrice:         askPrice,
			PreviousAskPrice: current.AskPrice,
			UpdatedAt:        now,
		}, player.TeamID)
		if err != nil {
			return err
		}
		if err := tx.InsertOutboxEvent(ctx, record); err != nil {
			return err
		}

		listing = &models.Listing{
			ID:        listingID,
			AskPrice:  askPrice,
			ListedAt:  current.ListedAt,
			UpdatedAt: now,
			Player:    player,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.invalidate(ctx, listingID)
	log.Info().
		Str("listing_id", listingID.String()).
		Str("ask_price", askPrice.String()).
		Str("actor", actor.String()).
		Msg("listing updated")
	return listing, nil
}

// ResolveListing ends a listing. Without a buyer, or with the seller as buyer,
// the listing is withdrawn. Otherwise the buyer pays the ask price, the player
// moves to the buyer and its market value appreciates, all in one unit of work.
func (a *App) ResolveListing(ctx context.Context, actor authz.Actor, listingID uuid.UUID, buyerID *uuid.UUID) (*Resolution, error) {
	const op = "resolve listing"

	var res *Resolution
	err := a.store.InTx(ctx, func(tx Tx) error {
		listing, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return opError(op, listingID, uuid.Nil, err)
		}
		player, err := tx.GetPlayerForUpdate(ctx, listing.PlayerID())
		if err != nil {
			return opError(op, listingID, uuid.Nil, err)
		}
		sellerID := player.TeamID
		if !authz.CanResolve(actor, sellerID, buyerID) {
			return opError(op, listingID, sellerID, ErrUnauthorized)
		}

		if buyerID == nil || *buyerID == sellerID {
			res, err = a.withdraw(ctx, tx, listing, player)
			return err
		}
		res, err = a.sell(ctx, tx, listing, player, *buyerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.invalidate(ctx, listingID)
	if res.Outcome == OutcomeWithdrawn {
		log.Info().
			Str("listing_id", listingID.String()).
			Str("actor", actor.String()).
			Msg("listing withdrawn")
	} else {
		log.Info().
			Str("listing_id", listingID.String()).
			Str("seller_team_id", res.SellerTeamID.String()).
			Str("buyer_team_id", res.BuyerTeamID.String()).
			Str("price", res.Price.String()).
			Str("market_value", res.MarketValue.String()).
			Str("actor", actor.String()).
			Msg("player transferred")
	}
	return res, nil
}

func (a *App) withdraw(ctx context.Context, tx Tx, listing *models.Listing, player *models.Player) (*Resolution, error) {
	if err := tx.DeleteListing(ctx, listing.ID); err != nil {
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}

	now := a.now()
	record, err := events.NewRecord(events.EventTypeListingWithdrawn, listing.ID, now, events.ListingWithdrawnPayload{
		ListingID:    listing.ID.String(),
		SellerTeamID: player.TeamID.String(),
		WithdrawnAt:  now,
	}, player.TeamID)
	if err != nil {
		return nil, err
	}
	if err := tx.InsertOutboxEvent(ctx, record); err != nil {
		return nil, err
	}

	return &Resolution{
		Outcome:      OutcomeWithdrawn,
		ListingID:    listing.ID,
		SellerTeamID: player.TeamID,
		MarketValue:  player.MarketValue,
	}, nil
}

func (a *App) sell(ctx context.Context, tx Tx, listing *models.Listing, player *models.Player, buyerID uuid.UUID) (*Resolution, error) {
	const op = "resolve listing"
	sellerID := player.TeamID

	// Team rows are locked in ascending id order so concurrent transfers
	// between the same two teams cannot deadlock.
	for _, id := range lockOrder(sellerID, buyerID) {
		if _, err := tx.GetTeamForUpdate(ctx, id); err != nil {
			return nil, opError(op, listing.ID, id, err)
		}
	}

	ldg := ledger.New(tx)
	buyerBudget, err := ldg.Debit(ctx, buyerID, listing.AskPrice)
	if err != nil {
		return nil, opError(op, listing.ID, buyerID, err)
	}
	sellerBudget, err := ldg.Credit(ctx, sellerID, listing.AskPrice)
	if err != nil {
		return nil, opError(op, listing.ID, sellerID, err)
	}

	newValue := a.appreciator.Appreciate(player.MarketValue)
	if err := tx.TransferPlayer(ctx, player.ID, buyerID, newValue); err != nil {
		return nil, fmt.Errorf("failed to reassign player: %w", err)
	}
	if err := tx.DeleteListing(ctx, listing.ID); err != nil {
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}

	now := a.now()
	record, err := events.NewRecord(events.EventTypePlayerTransferred, listing.ID, now, events.PlayerTransferredPayload{
		ListingID:           listing.ID.String(),
		PlayerID:            player.ID.String(),
		PlayerName:          player.FullName(),
		SellerTeamID:        sellerID.String(),
		BuyerTeamID:         buyerID.String(),
		Price:               listing.AskPrice,
		PreviousMarketValue: player.MarketValue,
		NewMarketValue:      newValue,
		TransferredAt:       now,
	}, sellerID, buyerID)
	if err != nil {
		return nil, err
	}
	if err := tx.InsertOutboxEvent(ctx, record); err != nil {
		return nil, err
	}

	return &Resolution{
		Outcome:      OutcomeSold,
		ListingID:    listing.ID,
		SellerTeamID: sellerID,
		BuyerTeamID:  buyerID,
		Price:        listing.AskPrice,
		SellerBudget: sellerBudget,
		BuyerBudget:  buyerBudget,
		MarketValue:  newValue,
	}, nil
}

// GetListing returns a listing with its player, consulting the cache first
func (a *App) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if a.cache != nil {
		listing, ok, err := a.cache.GetListing(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("listing_id", id.String()).Msg("listing cache read failed")
		} else if ok {
			return listing, nil
		}
	}

	listing, err := a.store.GetListing(ctx, id)
	if err != nil {
		return nil, opError("get listing", id, uuid.Nil, err)
	}

	if a.cache != nil {
		if err := a.cache.SetListing(ctx, listing); err != nil {
			log.Warn().Err(err).Str("listing_id", id.String()).Msg("listing cache write failed")
		}
	}
	return listing, nil
}

// ListListings returns listings by ascending ask price. A nil page returns all.
func (a *App) ListListings(ctx context.Context, page *Page) (*models.ListingPage, error) {
	result, err := a.store.ListListings(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return result, nil
}

func (a *App) invalidate(ctx context.Context, id uuid.UUID) {
	if a.cache == nil {
		return
	}
	if err := a.cache.InvalidateListing(ctx, id); err != nil {
		log.Warn().Err(err).Str("listing_id", id.String()).Msg("listing cache invalidation failed")
	}
}

func lockOrder(x, y uuid.UUID) []uuid.UUID {
	if bytes.Compare(x[:], y[:]) <= 0 {
		return []uuid.UUID{x, y}
	}
	return []uuid.UUID{y, x}
}
