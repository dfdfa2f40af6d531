package dbconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "market")

	cfg := NewConfigFromEnv()
	assert.Equal(t, "postgres://postgres:postgres@db:6543/market?sslmode=disable", cfg.DSN())

	t.Setenv("DB_PORT", "not-a-port")
	assert.Equal(t, 5432, NewConfigFromEnv().Port)
}
