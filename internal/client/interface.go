package client

import (
	"context"

	"github.com/maxovaroy/merlin-V2/internal/entity"
)

type Role struct {
	ID      string
	Name    string
	IsAdmin bool
}

// RoleCaller resolves the roles an actor holds in a guild. It is the only
// view the permission checks have of the chat platform.
type RoleCaller interface {
	IsAdministrator(ctx context.Context, guildID, userID string) (bool, error)
	MemberRoles(ctx context.Context, guildID, userID string) ([]Role, error)
}

// Announcer owns every public post of the giveaway lifecycle. All methods
// except PostGiveaway are best-effort from the caller's point of view: a
// failure must never block finalization.
type Announcer interface {
	// PostGiveaway publishes the opening announcement with the join button
	// and returns the created message reference.
	PostGiveaway(ctx context.Context, giveaway *entity.Giveaway) (string, error)

	// CloseGiveaway edits the opening announcement into its terminal,
	// non-interactive state.
	CloseGiveaway(ctx context.Context, giveaway *entity.Giveaway) error

	AnnounceWinners(ctx context.Context, giveaway *entity.Giveaway, winnerIDs []string) error
	AnnounceNoParticipants(ctx context.Context, giveaway *entity.Giveaway) error

	// ResolveMessage verifies that a stored message reference still points
	// at a reachable destination.
	ResolveMessage(ctx context.Context, channelID, messageID string) error
}
