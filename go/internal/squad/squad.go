// Package squad generates the starting team and roster for a new user.
package squad

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/shopspring/decimal"
)

// Policy describes the starting budget and roster of a new team
type Policy struct {
	InitialBudget      decimal.Decimal `yaml:"initial_budget"`
	InitialPlayerValue decimal.Decimal `yaml:"initial_player_value"`
	MinAge             int             `yaml:"min_age"`
	MaxAge             int             `yaml:"max_age"`
	Goalkeepers        int             `yaml:"goalkeepers"`
	Defenders          int             `yaml:"defenders"`
	Midfielders        int             `yaml:"midfielders"`
	Attackers          int             `yaml:"attackers"`
}

// DefaultPolicy is 5,000,000 budget and 20 players worth 1,000,000 each
func DefaultPolicy() Policy {
	return Policy{
		InitialBudget:      decimal.NewFromInt(5_000_000),
		InitialPlayerValue: decimal.NewFromInt(1_000_000),
		MinAge:             18,
		MaxAge:             39,
		Goalkeepers:        3,
		Defenders:          6,
		Midfielders:        6,
		Attackers:          5,
	}
}

// Size returns the number of players in a generated roster
func (p Policy) Size() int {
	return p.Goalkeepers + p.Defenders + p.Midfielders + p.Attackers
}

// Validate checks that the policy can produce a team
func (p Policy) Validate() error {
	if p.InitialBudget.IsNegative() {
		return errors.New("initial budget must not be negative")
	}
	if p.InitialPlayerValue.IsNegative() {
		return errors.New("initial player value must not be negative")
	}
	if p.MinAge <= 0 || p.MaxAge < p.MinAge {
		return fmt.Errorf("invalid age range [%d, %d]", p.MinAge, p.MaxAge)
	}
	if p.Goalkeepers < 0 || p.Defenders < 0 || p.Midfielders < 0 || p.Attackers < 0 {
		return errors.New("position counts must not be negative")
	}
	return nil
}

// Source supplies random integers in [0, n)
type Source interface {
	IntN(n int) int
}

// Generator builds new teams with randomized names, countries and ages
type Generator struct {
	policy Policy
	mu     sync.Mutex
	src    Source
}

// NewGenerator creates a Generator. A nil src uses the global generator.
func NewGenerator(policy Policy, src Source) (*Generator, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid squad policy: %w", err)
	}
	if src == nil {
		src = globalSource{}
	}
	return &Generator{policy: policy, src: src}, nil
}

// Squad is a generated team and its roster
type Squad struct {
	Team    models.Team
	Players []models.Player
}

// Generate builds a squad for the team with the given id
func (g *Generator) Generate(teamID uuid.UUID, now time.Time) Squad {
	g.mu.Lock()
	defer g.mu.Unlock()

	team := models.Team{
		ID:        teamID,
		Name:      g.teamName(),
		Country:   g.pick(countries),
		Budget:    g.policy.InitialBudget,
		CreatedAt: now,
	}

	players := make([]models.Player, 0, g.policy.Size())
	for _, slot := range []struct {
		pos   models.Position
		count int
	}{
		{models.PositionGoalkeeper, g.policy.Goalkeepers},
		{models.PositionDefender, g.policy.Defenders},
		{models.PositionMidfielder, g.policy.Midfielders},
		{models.PositionAttacker, g.policy.Attackers},
	} {
		for range slot.count {
			players = append(players, models.Player{
				ID:          uuid.New(),
				TeamID:      teamID,
				FirstName:   g.pick(firstNames),
				LastName:    g.pick(lastNames),
				Country:     g.pick(countries),
				Age:         g.policy.MinAge + g.src.IntN(g.policy.MaxAge-g.policy.MinAge+1),
				Position:    slot.pos,
				MarketValue: g.policy.InitialPlayerValue,
				CreatedAt:   now,
			})
		}
	}

	return Squad{Team: team, Players: players}
}

func (g *Generator) teamName() string {
	return g.pick(cities) + " " + g.pick(mascots)
}

func (g *Generator) pick(from []string) string {
	return from[g.src.IntN(len(from))]
}

// Valuation sums the market value of a squad's roster
func Valuation(team models.Team, players []models.Player) models.TeamValuation {
	total := decimal.Zero
	for _, p := range players {
		total = total.Add(p.MarketValue)
	}
	return models.TeamValuation{Team: team, MarketValue: total, PlayerCount: len(players)}
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}
