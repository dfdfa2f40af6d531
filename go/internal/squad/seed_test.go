package squad_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/mcdev12/transfermarket/go/internal/squad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCreator struct {
	teams   []models.Team
	players int
	failAt  int
}

func (r *recordingCreator) CreateTeam(ctx context.Context, team models.Team, players []models.Player) error {
	if r.failAt > 0 && len(r.teams)+1 == r.failAt {
		return errors.New("boom")
	}
	r.teams = append(r.teams, team)
	r.players += len(players)
	return nil
}

func TestSeed(t *testing.T) {
	gen, err := squad.NewGenerator(squad.DefaultPolicy(), rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	store := &recordingCreator{}
	squads, err := gen.Seed(context.Background(), store, 3, time.Now())
	require.NoError(t, err)

	require.Len(t, squads, 3)
	assert.Len(t, store.teams, 3)
	assert.Equal(t, 60, store.players)
	assert.NotEqual(t, squads[0].Team.ID, squads[1].Team.ID)
}

func TestSeed_StopsOnError(t *testing.T) {
	gen, err := squad.NewGenerator(squad.DefaultPolicy(), rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	store := &recordingCreator{failAt: 2}
	squads, err := gen.Seed(context.Background(), store, 3, time.Now())
	require.Error(t, err)
	assert.Len(t, squads, 1)
}
