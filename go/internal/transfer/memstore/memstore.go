// Package memstore is an in-process transfer.Store. Units of work are
// serialized by a mutex and staged on a copy of the state, so a failed unit
// leaves nothing behind.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/ledger"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/mcdev12/transfermarket/go/internal/transfer"
	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/shopspring/decimal"
)

type state struct {
	teams    map[uuid.UUID]models.Team
	players  map[uuid.UUID]models.Player
	listings map[uuid.UUID]models.Listing
	outbox   []events.Record
}

func newState() *state {
	return &state{
		teams:    make(map[uuid.UUID]models.Team),
		players:  make(map[uuid.UUID]models.Player),
		listings: make(map[uuid.UUID]models.Listing),
	}
}

func (s *state) clone() *state {
	c := &state{
		teams:    make(map[uuid.UUID]models.Team, len(s.teams)),
		players:  make(map[uuid.UUID]models.Player, len(s.players)),
		listings: make(map[uuid.UUID]models.Listing, len(s.listings)),
	}
	for k, v := range s.teams {
		c.teams[k] = v
	}
	for k, v := range s.players {
		c.players[k] = v
	}
	for k, v := range s.listings {
		c.listings[k] = v
	}
	return c
}

// DefaultOutboxLimit is how many committed events a Store retains
const DefaultOutboxLimit = 1024

// Store keeps teams, players, listings and the most recent events in memory
type Store struct {
	mu          sync.Mutex
	state       *state
	outboxLimit int
}

// Option configures a Store
type Option func(*Store)

// WithOutboxLimit bounds how many committed events Events can return
func WithOutboxLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.outboxLimit = n
		}
	}
}

// New creates an empty Store
func New(opts ...Option) *Store {
	s := &Store{state: newState(), outboxLimit: DefaultOutboxLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ transfer.Store = (*Store)(nil)

// InTx runs fn against a staged copy and publishes it only when fn succeeds
func (s *Store) InTx(ctx context.Context, fn func(tx transfer.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	// Only the events of this unit of work are staged, never the history.
	staged := s.state.clone()
	if err := fn(&tx{st: staged}); err != nil {
		return err
	}
	staged.outbox = s.appendOutbox(staged.outbox)
	s.state = staged
	return nil
}

func (s *Store) appendOutbox(records []events.Record) []events.Record {
	outbox := append(s.state.outbox, records...)
	if drop := len(outbox) - s.outboxLimit; drop > 0 {
		outbox = slices.Delete(outbox, 0, drop)
	}
	return outbox
}

// GetListing returns a listing joined with its player
func (s *Store) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.state.listings[id]
	if !ok {
		return nil, transfer.ErrListingNotFound
	}
	return s.state.withPlayer(l), nil
}

// ListListings returns listings ordered by ask price, then id
func (s *Store) ListListings(ctx context.Context, page *transfer.Page) (*models.ListingPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]models.Listing, 0, len(s.state.listings))
	for _, l := range s.state.listings {
		all = append(all, *s.state.withPlayer(l))
	}
	slices.SortFunc(all, func(a, b models.Listing) int {
		if c := a.AskPrice.Cmp(b.AskPrice); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	total := int64(len(all))
	if page == nil {
		return &models.ListingPage{Listings: all, TotalElements: total, TotalPages: 1}, nil
	}

	start := min(page.Offset(), len(all))
	end := start + min(page.Size, len(all)-start)
	return &models.ListingPage{
		Listings:      all[start:end],
		TotalElements: total,
		TotalPages:    page.TotalPages(total),
	}, nil
}

func (s *state) withPlayer(l models.Listing) *models.Listing {
	if p, ok := s.players[l.ID]; ok {
		l.Player = &p
	}
	return &l
}

// CreateTeam adds a team and its roster
func (s *Store) CreateTeam(ctx context.Context, team models.Team, players []models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.teams[team.ID]; ok {
		return fmt.Errorf("team %s already exists", team.ID)
	}
	s.state.teams[team.ID] = team
	for _, p := range players {
		p.TeamID = team.ID
		s.state.players[p.ID] = p
	}
	return nil
}

// GetTeam returns the current state of a team
func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.state.teams[id]
	if !ok {
		return nil, ledger.ErrTeamNotFound
	}
	return &t, nil
}

// GetPlayer returns the current state of a player
func (s *Store) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.players[id]
	if !ok {
		return nil, transfer.ErrPlayerNotFound
	}
	return &p, nil
}

// GetTeamValuation sums the market value of the team's roster
func (s *Store) GetTeamValuation(ctx context.Context, id uuid.UUID) (*models.TeamValuation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.state.teams[id]
	if !ok {
		return nil, ledger.ErrTeamNotFound
	}
	v := models.TeamValuation{Team: t, MarketValue: decimal.Zero}
	for _, p := range s.state.players {
		if p.TeamID == id {
			v.MarketValue = v.MarketValue.Add(p.MarketValue)
			v.PlayerCount++
		}
	}
	return &v, nil
}

// Events returns the most recent committed outbox records, oldest first
func (s *Store) Events() []events.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.outbox)
}

type tx struct {
	st *state
}

func (t *tx) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, ok := t.st.teams[id]
	if !ok {
		return nil, ledger.ErrTeamNotFound
	}
	return &team, nil
}

func (t *tx) UpdateTeamBudget(ctx context.Context, id uuid.UUID, budget decimal.Decimal) error {
	team, ok := t.st.teams[id]
	if !ok {
		return ledger.ErrTeamNotFound
	}
	team.Budget = budget
	t.st.teams[id] = team
	return nil
}

func (t *tx) GetPlayerForUpdate(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := t.st.players[id]
	if !ok {
		return nil, transfer.ErrPlayerNotFound
	}
	return &p, nil
}

func (t *tx) GetListingForUpdate(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	l, ok := t.st.listings[id]
	if !ok {
		return nil, transfer.ErrListingNotFound
	}
	return &l, nil
}

func (t *tx) CreateListing(ctx context.Context, listing models.Listing) error {
	if _, ok := t.st.players[listing.ID]; !ok {
		return transfer.ErrPlayerNotFound
	}
	if _, ok := t.st.listings[listing.ID]; ok {
		return transfer.ErrListingDuplicate
	}
	listing.Player = nil
	t.st.listings[listing.ID] = listing
	return nil
}

func (t *tx) UpdateListingAskPrice(ctx context.Context, id uuid.UUID, askPrice decimal.Decimal, updatedAt time.Time) error {
	l, ok := t.st.listings[id]
	if !ok {
		return transfer.ErrListingNotFound
	}
	l.AskPrice = askPrice
	l.UpdatedAt = updatedAt
	t.st.listings[id] = l
	return nil
}

func (t *tx) DeleteListing(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.st.listings[id]; !ok {
		return transfer.ErrListingNotFound
	}
	delete(t.st.listings, id)
	return nil
}

func (t *tx) TransferPlayer(ctx context.Context, playerID, teamID uuid.UUID, marketValue decimal.Decimal) error {
	p, ok := t.st.players[playerID]
	if !ok {
		return transfer.ErrPlayerNotFound
	}
	if _, ok := t.st.teams[teamID]; !ok {
		return ledger.ErrTeamNotFound
	}
	p.TeamID = teamID
	p.MarketValue = marketValue
	t.st.players[playerID] = p
	return nil
}

func (t *tx) InsertOutboxEvent(ctx context.Context, record events.Record) error {
	t.st.outbox = append(t.st.outbox, record)
	return nil
}
