package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/dateutil"
	"github.com/maxovaroy/merlin-V2/pkg/discord"
)

const (
	colorBlue = 0x3498db
	colorGold = 0xf1c40f

	// JoinCustomIDPrefix prefixes the custom id of every join button.
	JoinCustomIDPrefix = "giveaway:join:"
)

type discordCaller struct {
	client *discord.Client
}

func NewDiscordCaller(client *discord.Client) *discordCaller {
	return &discordCaller{client: client}
}

func (c *discordCaller) IsAdministrator(ctx context.Context, guildID, userID string) (bool, error) {
	roles, err := c.MemberRoles(ctx, guildID, userID)
	if err != nil {
		return false, err
	}

	for _, role := range roles {
		if role.IsAdmin {
			return true, nil
		}
	}

	return false, nil
}

func (c *discordCaller) MemberRoles(ctx context.Context, guildID, userID string) ([]Role, error) {
	member, err := c.client.GetGuildMember(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	guildRoles, err := c.client.GetGuildRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	byID := map[string]discord.Role{}
	for _, role := range guildRoles {
		byID[role.ID] = role
	}

	roles := []Role{}
	for _, id := range member.RoleIDs {
		role, ok := byID[id]
		if !ok {
			continue
		}

		permissions, err := strconv.ParseUint(role.Permissions, 10, 64)
		if err != nil {
			permissions = 0
		}

		roles = append(roles, Role{
			ID:      role.ID,
			Name:    role.Name,
			IsAdmin: permissions&discord.PermissionAdministrator != 0,
		})
	}

	return roles, nil
}

func (c *discordCaller) PostGiveaway(ctx context.Context, giveaway *entity.Giveaway) (string, error) {
	return c.client.SendMessage(ctx, giveaway.ChannelID, discord.Message{
		Embeds: []discord.Embed{GiveawayEmbed(giveaway)},
		Components: []discord.ActionRow{{
			Type: discord.ComponentTypeActionRow,
			Components: []discord.Button{{
				Type:     discord.ComponentTypeButton,
				Style:    discord.ButtonStyleSuccess,
				Label:    "🎉 Join Giveaway",
				CustomID: JoinCustomIDPrefix + giveaway.ID,
			}},
		}},
	})
}

func (c *discordCaller) CloseGiveaway(ctx context.Context, giveaway *entity.Giveaway) error {
	embed := GiveawayEmbed(giveaway)
	embed.Title = "🎉 Giveaway Ended!"
	embed.Color = colorGold
	embed.Fields = nil

	// An empty component list strips the join button from the post.
	return c.client.EditMessage(ctx, giveaway.ChannelID, giveaway.MessageID, discord.Message{
		Embeds:     []discord.Embed{embed},
		Components: []discord.ActionRow{},
	})
}

func (c *discordCaller) AnnounceWinners(
	ctx context.Context, giveaway *entity.Giveaway, winnerIDs []string,
) error {
	mentions := make([]string, 0, len(winnerIDs))
	for _, id := range winnerIDs {
		mentions = append(mentions, fmt.Sprintf("<@%s>", id))
	}

	_, err := c.client.SendMessage(ctx, giveaway.ChannelID, discord.Message{
		Embeds: []discord.Embed{{
			Title:       "🎉 Giveaway Ended!",
			Description: fmt.Sprintf("Winners: %s\nPrize: **%s**", strings.Join(mentions, " "), giveaway.Prize),
			Color:       colorGold,
		}},
	})

	return err
}

func (c *discordCaller) AnnounceNoParticipants(ctx context.Context, giveaway *entity.Giveaway) error {
	_, err := c.client.SendMessage(ctx, giveaway.ChannelID, discord.Message{
		Content: "Giveaway ended. No participants.",
	})

	return err
}

func (c *discordCaller) ResolveMessage(ctx context.Context, channelID, messageID string) error {
	return c.client.GetMessage(ctx, channelID, messageID)
}

// GiveawayEmbed renders the opening announcement of a giveaway.
func GiveawayEmbed(giveaway *entity.Giveaway) discord.Embed {
	return discord.Embed{
		Title: "🎉 Giveaway Started!",
		Description: fmt.Sprintf(
			"**%s**\nPrize: **%s**\nWinners: %d\nRequired Messages: %d\nRequired Level: %d",
			giveaway.Title,
			giveaway.Prize,
			giveaway.WinnerCount,
			giveaway.MinMessages,
			giveaway.MinLevel,
		),
		Color: colorBlue,
		Fields: []discord.EmbedField{{
			Name:  "Ends in",
			Value: dateutil.FormatCompact(time.Until(giveaway.EndTime)),
		}},
	}
}
