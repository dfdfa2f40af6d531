package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/mcdev12/transfermarket/go/internal/sqlutil"
	"github.com/mcdev12/transfermarket/go/internal/transfer/db"
	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/shopspring/decimal"
	"github.com/sqlc-dev/pqtype"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Repository is the Postgres Store. Units of work run under READ COMMITTED
// with row locks taken in listing, player, team order.
type Repository struct {
	conn    *sql.DB
	queries *db.Queries
}

// NewRepository creates a new transfer repository
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		conn:    conn,
		queries: db.New(conn),
	}
}

var _ Store = (*Repository)(nil)

// InTx runs fn inside one database transaction
func (r *Repository) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return sqlutil.RunWithOptions(ctx, r.conn, sqlutil.ReadCommitted, r.queries.WithTx, func(q *db.Queries) error {
		return fn(&repoTx{q: q})
	})
}

// GetListing retrieves a listing joined with its player
func (r *Repository) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	row, err := r.queries.GetListingWithPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listingRowToModel(db.ListListingsWithPlayerRow(row)), nil
}

// ListListings retrieves listings ordered by ask price. A nil page returns every listing.
func (r *Repository) ListListings(ctx context.Context, page *Page) (*models.ListingPage, error) {
	total, err := r.queries.CountListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	params := db.ListListingsWithPlayerParams{Limit: math.MaxInt32}
	if page != nil {
		if int64(page.Offset()) >= total {
			result := &models.ListingPage{Listings: []models.Listing{}, TotalElements: total, TotalPages: page.TotalPages(total)}
			return result, nil
		}
		params.Limit = int32(min(page.Size, math.MaxInt32))
		params.Offset = int32(page.Offset())
	}

	rows, err := r.queries.ListListingsWithPlayer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	listings := make([]models.Listing, len(rows))
	for i, row := range rows {
		listings[i] = *listingRowToModel(row)
	}

	result := &models.ListingPage{Listings: listings, TotalElements: total, TotalPages: 1}
	if page != nil {
		result.TotalPages = page.TotalPages(total)
	}
	return result, nil
}

// CreateTeam inserts a team and its roster in one transaction
func (r *Repository) CreateTeam(ctx context.Context, team models.Team, players []models.Player) error {
	return sqlutil.Run(ctx, r.conn, r.queries.WithTx, func(q *db.Queries) error {
		err := q.CreateTeam(ctx, db.CreateTeamParams{
			ID:        team.ID,
			Name:      team.Name,
			Country:   team.Country,
			Budget:    team.Budget,
			CreatedAt: team.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		for _, p := range players {
			err := q.CreatePlayer(ctx, db.CreatePlayerParams{
				ID:          p.ID,
				TeamID:      team.ID,
				FirstName:   p.FirstName,
				LastName:    p.LastName,
				Country:     p.Country,
				Age:         int32(p.Age),
				Position:    string(p.Position),
				MarketValue: p.MarketValue,
				CreatedAt:   p.CreatedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to create player %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// GetTeamValuation retrieves a team with the summed value of its roster
func (r *Repository) GetTeamValuation(ctx context.Context, id uuid.UUID) (*models.TeamValuation, error) {
	row, err := r.queries.GetTeamValuation(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team valuation: %w", err)
	}
	return &models.TeamValuation{
		Team: models.Team{
			ID:        row.ID,
			Name:      row.Name,
			Country:   row.Country,
			Budget:    row.Budget,
			CreatedAt: row.CreatedAt,
		},
		MarketValue: row.MarketValue,
		PlayerCount: int(row.PlayerCount),
	}, nil
}

type repoTx struct {
	q *db.Queries
}

func (t *repoTx) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row, err := t.q.GetTeamForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to lock team: %w", err)
	}
	return &models.Team{
		ID:        row.ID,
		Name:      row.Name,
		Country:   row.Country,
		Budget:    row.Budget,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (t *repoTx) UpdateTeamBudget(ctx context.Context, id uuid.UUID, budget decimal.Decimal) error {
	n, err := t.q.UpdateTeamBudget(ctx, db.UpdateTeamBudgetParams{ID: id, Budget: budget})
	if err != nil {
		return fmt.Errorf("failed to update team budget: %w", err)
	}
	if n == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (t *repoTx) GetPlayerForUpdate(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row, err := t.q.GetPlayerForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to lock player: %w", err)
	}
	return &models.Player{
		ID:          row.ID,
		TeamID:      row.TeamID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Country:     row.Country,
		Age:         int(row.Age),
		Position:    models.Position(row.Position),
		MarketValue: row.MarketValue,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (t *repoTx) GetListingForUpdate(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	row, err := t.q.GetListingForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to lock listing: %w", err)
	}
	return &models.Listing{
		ID:        row.PlayerID,
		AskPrice:  row.AskPrice,
		ListedAt:  row.ListedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (t *repoTx) CreateListing(ctx context.Context, listing models.Listing) error {
	err := t.q.CreateListing(ctx, db.CreateListingParams{
		PlayerID:  listing.ID,
		AskPrice:  listing.AskPrice,
		ListedAt:  listing.ListedAt,
		UpdatedAt: listing.UpdatedAt,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return ErrListingDuplicate
			case pgForeignKeyViolation:
				return ErrPlayerNotFound
			}
		}
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (t *repoTx) UpdateListingAskPrice(ctx context.Context, id uuid.UUID, askPrice decimal.Decimal, updatedAt time.Time) error {
	n, err := t.q.UpdateListingAskPrice(ctx, db.UpdateListingAskPriceParams{
		PlayerID:  id,
		AskPrice:  askPrice,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (t *repoTx) DeleteListing(ctx context.Context, id uuid.UUID) error {
	n, err := t.q.DeleteListing(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (t *repoTx) TransferPlayer(ctx context.Context, playerID, teamID uuid.UUID, marketValue decimal.Decimal) error {
	n, err := t.q.TransferPlayer(ctx, db.TransferPlayerParams{
		ID:          playerID,
		TeamID:      teamID,
		MarketValue: marketValue,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to transfer player: %w", err)
	}
	if n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (t *repoTx) InsertOutboxEvent(ctx context.Context, record events.Record) error {
	metadata, err := json.Marshal(events.MetadataFor(record))
	if err != nil {
		return fmt.Errorf("failed to marshal outbox metadata: %w", err)
	}

	err = t.q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:        record.ID,
		ListingID: record.ListingID,
		EventType: string(record.Type),
		Payload:   record.Payload,
		Metadata:  pqtype.NullRawMessage{RawMessage: metadata, Valid: len(record.TeamIDs) > 0},
		CreatedAt: record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", record.Type, err)
	}
	return nil
}

func listingRowToModel(row db.ListListingsWithPlayerRow) *models.Listing {
	return &models.Listing{
		ID:        row.PlayerID,
		AskPrice:  row.AskPrice,
		ListedAt:  row.ListedAt,
		UpdatedAt: row.UpdatedAt,
		Player: &models.Player{
			ID:          row.PlayerID,
			TeamID:      row.TeamID,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			Country:     row.Country,
			Age:         int(row.Age),
			Position:    models.Position(row.Position),
			MarketValue: row.MarketValue,
			CreatedAt:   row.CreatedAt,
		},
	}
}
