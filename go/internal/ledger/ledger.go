// Package ledger applies budget movements to teams. Debit and Credit are the only
// sanctioned ways to change a team's budget during a transfer.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientBudget is returned when a debit would drive a budget below zero
	ErrInsufficientBudget = errors.New("insufficient budget")
	// ErrNegativeAmount is returned for debits or credits of a negative amount
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrTeamNotFound is returned by stores when the team does not exist
	ErrTeamNotFound = errors.New("team not found")
)

// InsufficientBudgetError carries the balance that could not cover a debit
type InsufficientBudgetError struct {
	TeamID  uuid.UUID
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("team %s has budget %s, needs %s", e.TeamID, e.Balance.StringFixed(2), e.Amount.StringFixed(2))
}

func (e *InsufficientBudgetError) Unwrap() error {
	return ErrInsufficientBudget
}

// Store is the view of team budgets the ledger needs. GetTeamForUpdate must lock
// the row (or otherwise serialize) until the surrounding unit of work ends.
type Store interface {
	GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error)
	UpdateTeamBudget(ctx context.Context, id uuid.UUID, budget decimal.Decimal) error
}

// Ledger debits and credits team budgets through a Store
type Ledger struct {
	store Store
}

// New creates a Ledger bound to store
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Debit subtracts amount from the team's budget and returns the new balance.
// Nothing is written when the budget cannot cover the amount.
func (l *Ledger) Debit(ctx context.Context, teamID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	team, err := l.store.GetTeamForUpdate(ctx, teamID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load team for debit: %w", err)
	}

	balance, err := Debit(team.Budget, amount)
	if err != nil {
		var budgetErr *InsufficientBudgetError
		if errors.As(err, &budgetErr) {
			budgetErr.TeamID = teamID
		}
		return decimal.Zero, err
	}

	if err := l.store.UpdateTeamBudget(ctx, teamID, balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to write debited budget: %w", err)
	}
	return balance, nil
}

// Credit adds amount to the team's budget and returns the new balance
func (l *Ledger) Credit(ctx context.Context, teamID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	team, err := l.store.GetTeamForUpdate(ctx, teamID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load team for credit: %w", err)
	}

	balance, err := Credit(team.Budget, amount)
	if err != nil {
		return decimal.Zero, err
	}

	if err := l.store.UpdateTeamBudget(ctx, teamID, balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to write credited budget: %w", err)
	}
	return balance, nil
}

// Debit returns balance minus amount, or an *InsufficientBudgetError when the
// result would be negative.
func Debit(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("debit %s: %w", amount, ErrNegativeAmount)
	}
	if balance.LessThan(amount) {
		return decimal.Zero, &InsufficientBudgetError{Balance: balance, Amount: amount}
	}
	return balance.Sub(amount), nil
}

// Credit returns balance plus amount
func Credit(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("credit %s: %w", amount, ErrNegativeAmount)
	}
	return balance.Add(amount), nil
}
