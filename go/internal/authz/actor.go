// Package authz resolves who is acting on the transfer market and whether they
// may touch a given player.
package authz

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/models"
)

type actorKind int

const (
	actorNone actorKind = iota
	actorAdmin
	actorTeam
)

// Actor is the party performing an operation: either the administrator or a
// specific team. The zero Actor is anonymous and may act on nothing.
type Actor struct {
	kind   actorKind
	teamID uuid.UUID
}

// Admin returns the administrative actor, which skips ownership checks
func Admin() Actor {
	return Actor{kind: actorAdmin}
}

// Team returns an actor acting on behalf of the given team
func Team(id uuid.UUID) Actor {
	return Actor{kind: actorTeam, teamID: id}
}

// IsAdmin reports whether the actor is administrative
func (a Actor) IsAdmin() bool {
	return a.kind == actorAdmin
}

// TeamID returns the acting team's ID, if the actor is a team
func (a Actor) TeamID() (uuid.UUID, bool) {
	return a.teamID, a.kind == actorTeam
}

func (a Actor) String() string {
	switch a.kind {
	case actorAdmin:
		return "admin"
	case actorTeam:
		return "team:" + a.teamID.String()
	default:
		return "anonymous"
	}
}

// CanActOnPlayer reports whether the actor may list, reprice or withdraw the player
func CanActOnPlayer(a Actor, player *models.Player) bool {
	if player == nil {
		return false
	}
	return a.owns(player.TeamID)
}

// CanResolve reports whether the actor may resolve a listing sold by sellerID.
// A team may resolve only as the seller or as the named buyer.
func CanResolve(a Actor, sellerID uuid.UUID, buyerID *uuid.UUID) bool {
	if a.owns(sellerID) {
		return true
	}
	return buyerID != nil && a.kind == actorTeam && a.teamID == *buyerID
}

func (a Actor) owns(teamID uuid.UUID) bool {
	switch a.kind {
	case actorAdmin:
		return true
	case actorTeam:
		return a.teamID == teamID
	default:
		return false
	}
}

type actorKey struct{}

// WithActor stores the actor in ctx
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the actor stored in ctx, or the anonymous actor
func ActorFromContext(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}
