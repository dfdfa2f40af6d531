package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/transfermarket/go/internal/ledger"
	"github.com/mcdev12/transfermarket/go/internal/models"
)

type fakeStore struct {
	teams  map[uuid.UUID]*models.Team
	writes int
}

func newFakeStore(teams ...models.Team) *fakeStore {
	s := &fakeStore{teams: make(map[uuid.UUID]*models.Team)}
	for i := range teams {
		t := teams[i]
		s.teams[t.ID] = &t
	}
	return s
}

func (s *fakeStore) GetTeamForUpdate(_ context.Context, id uuid.UUID) (*models.Team, error) {
	t, ok := s.teams[id]
	if !ok {
		return nil, ledger.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeStore) UpdateTeamBudget(_ context.Context, id uuid.UUID, budget decimal.Decimal) error {
	s.teams[id].Budget = budget
	s.writes++
	return nil
}

func TestDebit_Success(t *testing.T) {
	team := models.Team{ID: uuid.New(), Budget: decimal.NewFromInt(100000)}
	store := newFakeStore(team)

	balance, err := ledger.New(store).Debit(context.Background(), team.ID, decimal.NewFromInt(20000))
	require.NoError(t, err)

	assert.True(t, balance.Equal(decimal.NewFromInt(80000)))
	assert.True(t, store.teams[team.ID].Budget.Equal(decimal.NewFromInt(80000)))
}

func TestDebit_ExactBalance(t *testing.T) {
	team := models.Team{ID: uuid.New(), Budget: decimal.RequireFromString("150.25")}
	store := newFakeStore(team)

	balance, err := ledger.New(store).Debit(context.Background(), team.ID, decimal.RequireFromString("150.25"))
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestDebit_InsufficientBudgetWritesNothing(t *testing.T) {
	team := models.Team{ID: uuid.New(), Budget: decimal.NewFromInt(15000)}
	store := newFakeStore(team)

	_, err := ledger.New(store).Debit(context.Background(), team.ID, decimal.NewFromInt(20000))
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBudget)

	var budgetErr *ledger.InsufficientBudgetError
	require.True(t, errors.As(err, &budgetErr))
	assert.Equal(t, team.ID, budgetErr.TeamID)
	assert.True(t, budgetErr.Balance.Equal(decimal.NewFromInt(15000)))

	assert.Zero(t, store.writes)
	assert.True(t, store.teams[team.ID].Budget.Equal(decimal.NewFromInt(15000)))
}

func TestDebit_UnknownTeam(t *testing.T) {
	_, err := ledger.New(newFakeStore()).Debit(context.Background(), uuid.New(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ledger.ErrTeamNotFound)
}

func TestCredit_Success(t *testing.T) {
	team := models.Team{ID: uuid.New(), Budget: decimal.NewFromInt(100000)}
	store := newFakeStore(team)

	balance, err := ledger.New(store).Credit(context.Background(), team.ID, decimal.NewFromInt(20000))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(120000)))
}

func TestNegativeAmountsRejected(t *testing.T) {
	team := models.Team{ID: uuid.New(), Budget: decimal.NewFromInt(10)}
	store := newFakeStore(team)
	l := ledger.New(store)

	_, err := l.Debit(context.Background(), team.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ledger.ErrNegativeAmount)

	_, err = l.Credit(context.Background(), team.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ledger.ErrNegativeAmount)

	assert.Zero(t, store.writes)
}

func TestDebitCreditConserveTotal(t *testing.T) {
	amounts := []string{"0", "0.01", "19999.99", "20000"}
	for _, a := range amounts {
		t.Run(a, func(t *testing.T) {
			buyer := decimal.NewFromInt(100000)
			seller := decimal.RequireFromString("42.10")
			amount := decimal.RequireFromString(a)

			newBuyer, err := ledger.Debit(buyer, amount)
			require.NoError(t, err)
			newSeller, err := ledger.Credit(seller, amount)
			require.NoError(t, err)

			assert.True(t, newBuyer.Add(newSeller).Equal(buyer.Add(seller)))
		})
	}
}
