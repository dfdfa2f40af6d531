package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/mcdev12/transfermarket/go/internal/authz"
	"github.com/mcdev12/transfermarket/go/internal/dbconfig"
	"github.com/mcdev12/transfermarket/go/internal/migrations"
	"github.com/mcdev12/transfermarket/go/internal/squad"
	"github.com/mcdev12/transfermarket/go/internal/transfer"
)

func main() {
	_ = godotenv.Load()

	count := flag.Int("teams", 4, "number of teams to generate")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed bearer tokens")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "transfermarket"
	}

	ctx := context.Background()

	// 1) Connect using shared dbconfig and bring the schema up to date
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.Run(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate: %v\n", err)
		os.Exit(1)
	}

	conn := stdlib.OpenDBFromPool(pool)
	defer conn.Close()
	repo := transfer.NewRepository(conn)

	tokens, err := authz.NewTokens(authz.TokenConfig{Secret: []byte(secret), Issuer: issuer, TTL: *tokenTTL})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure tokens: %v\n", err)
		os.Exit(1)
	}

	// 2) Generate and store squads
	gen, err := squad.NewGenerator(squad.DefaultPolicy(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	squads, err := gen.Seed(ctx, repo, *count, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed after %d teams: %v\n", len(squads), err)
		os.Exit(1)
	}

	// 3) Print a token and valuation per team
	for _, s := range squads {
		token, err := tokens.Issue(authz.Team(s.Team.ID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "issue token for %s: %v\n", s.Team.ID, err)
			os.Exit(1)
		}
		valuation, err := repo.GetTeamValuation(ctx, s.Team.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "value team %s: %v\n", s.Team.ID, err)
			os.Exit(1)
		}
		fmt.Printf("%s  %-28s budget=%s value=%s players=%d\n  token=%s\n",
			s.Team.ID, s.Team.Name,
			transfer.FormatMoney(s.Team.Budget),
			transfer.FormatMoney(valuation.MarketValue),
			valuation.PlayerCount, token)
	}

	admin, err := tokens.Issue(authz.Admin())
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue admin token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Teams seed complete: %d teams\nadmin token=%s\n", len(squads), admin)
}
