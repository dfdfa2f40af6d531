package squad_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/mcdev12/transfermarket/go/internal/squad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DefaultComposition(t *testing.T) {
	gen, err := squad.NewGenerator(squad.DefaultPolicy(), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	teamID := uuid.New()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := gen.Generate(teamID, now)

	assert.Equal(t, teamID, s.Team.ID)
	assert.Equal(t, "5000000", s.Team.Budget.String())
	assert.NotEmpty(t, s.Team.Name)
	assert.NotEmpty(t, s.Team.Country)
	require.Len(t, s.Players, 20)

	counts := map[models.Position]int{}
	seen := map[uuid.UUID]bool{}
	for _, p := range s.Players {
		counts[p.Position]++
		assert.Equal(t, teamID, p.TeamID)
		assert.Equal(t, "1000000", p.MarketValue.String())
		assert.GreaterOrEqual(t, p.Age, 18)
		assert.LessOrEqual(t, p.Age, 39)
		assert.False(t, seen[p.ID], "duplicate player id")
		seen[p.ID] = true
	}
	assert.Equal(t, 3, counts[models.PositionGoalkeeper])
	assert.Equal(t, 6, counts[models.PositionDefender])
	assert.Equal(t, 6, counts[models.PositionMidfielder])
	assert.Equal(t, 5, counts[models.PositionAttacker])
}

func TestValuation(t *testing.T) {
	gen, err := squad.NewGenerator(squad.DefaultPolicy(), nil)
	require.NoError(t, err)

	s := gen.Generate(uuid.New(), time.Now())
	v := squad.Valuation(s.Team, s.Players)

	assert.Equal(t, 20, v.PlayerCount)
	assert.Equal(t, "20000000", v.MarketValue.String())
}

func TestPolicyValidate(t *testing.T) {
	p := squad.DefaultPolicy()
	p.MaxAge = 10
	_, err := squad.NewGenerator(p, nil)
	assert.Error(t, err)

	p = squad.DefaultPolicy()
	p.Defenders = -1
	assert.Error(t, p.Validate())
}
