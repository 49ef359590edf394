package domain

import (
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/model"
)

func convertGiveaway(giveaway *entity.Giveaway, communityHandle string) model.Giveaway {
	return model.Giveaway{
		ID:              giveaway.ID,
		CommunityHandle: communityHandle,
		ChannelID:       giveaway.ChannelID,
		MessageID:       giveaway.MessageID,
		Title:           giveaway.Title,
		Prize:           giveaway.Prize,
		WinnerCount:     giveaway.WinnerCount,
		MinMessages:     giveaway.MinMessages,
		MinLevel:        giveaway.MinLevel,
		StartTime:       giveaway.StartTime,
		EndTime:         giveaway.EndTime,
		Active:          giveaway.Active,
	}
}

func convertUser(user *entity.User) model.User {
	return model.User{
		ID:       user.ID,
		Name:     user.Name,
		XP:       user.XP,
		Level:    user.Level,
		Messages: user.Messages,
		Aura:     user.Aura,
	}
}
