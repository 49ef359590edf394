package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/maxovaroy/merlin-V2/internal/client"
	"github.com/maxovaroy/merlin-V2/internal/model"
	"github.com/maxovaroy/merlin-V2/pkg/discord"
	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

type InteractionDomain interface {
	Handle(ctx context.Context, interaction *discord.Interaction) *discord.InteractionResponse
}

type interactionDomain struct {
	giveawayDomain GiveawayDomain
	registry       *JoinRegistry
}

func NewInteractionDomain(giveawayDomain GiveawayDomain, registry *JoinRegistry) *interactionDomain {
	return &interactionDomain{giveawayDomain: giveawayDomain, registry: registry}
}

// Handle answers a webhook interaction. Button presses on a giveaway
// announcement become join attempts of the pressing user, and the outcome is
// reported back as an ephemeral reply only that user sees.
func (d *interactionDomain) Handle(
	ctx context.Context, interaction *discord.Interaction,
) *discord.InteractionResponse {
	if interaction.Type == discord.InteractionTypePing {
		return &discord.InteractionResponse{Type: discord.CallbackPong}
	}

	if interaction.Type != discord.InteractionTypeMessageComponent {
		return ephemeral("Unsupported interaction.")
	}

	giveawayID, ok := strings.CutPrefix(interaction.Data.CustomID, client.JoinCustomIDPrefix)
	if !ok {
		// Buttons posted before a restart carry no known custom id scheme
		// only if the message was re-registered under another giveaway.
		giveawayID, ok = d.registry.Lookup(interaction.Message.ID)
		if !ok {
			return ephemeral("This giveaway is no longer available.")
		}
	}

	ctx = xcontext.WithRequestUserID(ctx, interaction.Member.User.ID)
	resp, err := d.giveawayDomain.Join(ctx, &model.JoinGiveawayRequest{GiveawayID: giveawayID})
	if err != nil {
		errx := errorx.Error{}
		if errors.As(err, &errx) {
			return ephemeral(errx.Message)
		}

		return ephemeral(errorx.Unknown.Message)
	}

	if resp.AlreadyJoined {
		return ephemeral("You already joined this giveaway.")
	}

	return ephemeral("🎉 You joined the giveaway. Good luck!")
}

func ephemeral(content string) *discord.InteractionResponse {
	return &discord.InteractionResponse{
		Type: discord.CallbackChannelMessage,
		Data: &discord.InteractionResponseData{
			Content: content,
			Flags:   discord.MessageFlagEphemeral,
		},
	}
}
