package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/discord"
	"github.com/maxovaroy/merlin-V2/pkg/testutil"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func Test_interactionDomain_Handle(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	giveawayDomain, registry := newTestGiveawayDomain(testutil.NewMockAnnouncer())
	domain := NewInteractionDomain(giveawayDomain, registry)

	giveaway := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: testutil.Community1.ID,
		ChannelID:   "channel1",
		MessageID:   "message1",
		Title:       "Drop",
		Prize:       "Nitro",
		WinnerCount: 1,
		EndTime:     time.Now().Add(time.Hour),
		Active:      true,
	}
	require.NoError(t, xcontext.DB(ctx).Create(giveaway).Error)
	registry.Register(giveaway.MessageID, giveaway.ID)

	ping := &discord.Interaction{Type: discord.InteractionTypePing}
	require.Equal(t, discord.CallbackPong, domain.Handle(ctx, ping).Type)

	press := &discord.Interaction{Type: discord.InteractionTypeMessageComponent}
	press.Member.User.ID = testutil.User1.ID
	press.Message.ID = giveaway.MessageID
	press.Data.CustomID = "giveaway:join:" + giveaway.ID

	resp := domain.Handle(ctx, press)
	require.Equal(t, discord.CallbackChannelMessage, resp.Type)
	require.Equal(t, discord.MessageFlagEphemeral, resp.Data.Flags)
	require.Contains(t, resp.Data.Content, "joined")

	resp = domain.Handle(ctx, press)
	require.Contains(t, resp.Data.Content, "already joined")

	// Ineligible users get the gate message back, not a join.
	press.Member.User.ID = "stranger"
	resp = domain.Handle(ctx, press)
	require.Equal(t, "You are not in the database yet. Chat a bit first.", resp.Data.Content)

	unknown := &discord.Interaction{Type: discord.InteractionTypeMessageComponent}
	unknown.Member.User.ID = testutil.User1.ID
	unknown.Message.ID = "some-other-message"
	unknown.Data.CustomID = "unrelated"
	resp = domain.Handle(ctx, unknown)
	require.Equal(t, "This giveaway is no longer available.", resp.Data.Content)
}
