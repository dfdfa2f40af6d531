package squad

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/models"
)

// TeamCreator persists a team with its roster
type TeamCreator interface {
	CreateTeam(ctx context.Context, team models.Team, players []models.Player) error
}

// Seed generates n squads and stores each one
func (g *Generator) Seed(ctx context.Context, store TeamCreator, n int, now time.Time) ([]Squad, error) {
	squads := make([]Squad, 0, n)
	for i := 0; i < n; i++ {
		s := g.Generate(uuid.New(), now)
		if err := store.CreateTeam(ctx, s.Team, s.Players); err != nil {
			return squads, fmt.Errorf("create team %d of %d: %w", i+1, n, err)
		}
		squads = append(squads, s)
	}
	return squads, nil
}
