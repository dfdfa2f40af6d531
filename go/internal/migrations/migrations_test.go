package migrations_test

import (
	"testing"

	"github.com/mcdev12/transfermarket/go/internal/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_Ordered(t *testing.T) {
	names, err := migrations.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_market.sql", "0002_transfer_outbox.sql"}, names)
}
