package authz_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/transfermarket/go/internal/authz"
)

func newTokens(t *testing.T, clock clockwork.Clock) *authz.Tokens {
	t.Helper()
	tokens, err := authz.NewTokens(authz.TokenConfig{
		Secret: []byte("test-secret"),
		Issuer: "transfermarket",
		TTL:    time.Hour,
		Now:    clock.Now,
	})
	require.NoError(t, err)
	return tokens
}

func TestTokens_RoundTripTeam(t *testing.T) {
	tokens := newTokens(t, clockwork.NewFakeClock())
	id := uuid.New()

	raw, err := tokens.Issue(authz.Team(id))
	require.NoError(t, err)

	actor, err := tokens.VerifyHeader("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, authz.Team(id), actor)
}

func TestTokens_RoundTripAdmin(t *testing.T) {
	tokens := newTokens(t, clockwork.NewFakeClock())

	raw, err := tokens.Issue(authz.Admin())
	require.NoError(t, err)

	actor, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
}

func TestTokens_Expired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tokens := newTokens(t, clock)

	raw, err := tokens.Issue(authz.Team(uuid.New()))
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, authz.ErrInvalidToken)
}

func TestTokens_WrongSecret(t *testing.T) {
	clock := clockwork.NewFakeClock()
	raw, err := newTokens(t, clock).Issue(authz.Team(uuid.New()))
	require.NoError(t, err)

	other, err := authz.NewTokens(authz.TokenConfig{Secret: []byte("other"), Issuer: "transfermarket", Now: clock.Now})
	require.NoError(t, err)

	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, authz.ErrInvalidToken)
}

func TestTokens_MissingHeader(t *testing.T) {
	tokens := newTokens(t, clockwork.NewFakeClock())

	_, err := tokens.VerifyHeader("")
	assert.ErrorIs(t, err, authz.ErrMissingToken)

	_, err = tokens.VerifyHeader("Basic abc")
	assert.ErrorIs(t, err, authz.ErrMissingToken)
}

func TestTokens_AnonymousCannotBeIssued(t *testing.T) {
	tokens := newTokens(t, clockwork.NewFakeClock())
	_, err := tokens.Issue(authz.Actor{})
	assert.Error(t, err)
}

func TestNewTokens_RequiresSecret(t *testing.T) {
	_, err := authz.NewTokens(authz.TokenConfig{})
	assert.Error(t, err)
}
