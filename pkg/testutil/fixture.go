package testutil

import (
	"context"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

var (
	Community1 = entity.Community{
		Base:           entity.Base{ID: "community1"},
		Handle:         "wizard_tower",
		Name:           "Wizard Tower",
		DiscordGuildID: "guild1",
	}

	Community2 = entity.Community{
		Base:           entity.Base{ID: "community2"},
		Handle:         "dragon_keep",
		Name:           "Dragon Keep",
		DiscordGuildID: "guild2",
	}

	// User1 is an administrator of community1.
	User1 = entity.User{
		Base:     entity.Base{ID: "user1"},
		Name:     "user1",
		XP:       1000,
		Level:    11,
		Messages: 100,
		Aura:     500,
	}

	// User2 is a plain member with modest stats.
	User2 = entity.User{
		Base:     entity.Base{ID: "user2"},
		Name:     "user2",
		XP:       90,
		Level:    4,
		Messages: 9,
		Aura:     40,
	}

	// User3 has never chatted enough to pass any gate.
	User3 = entity.User{
		Base:     entity.Base{ID: "user3"},
		Name:     "user3",
		XP:       10,
		Level:    2,
		Messages: 1,
		Aura:     5,
	}
)

func CreateFixtureDb(ctx context.Context) {
	insertCommunities(ctx)
	insertUsers(ctx)
}

func insertCommunities(ctx context.Context) {
	communities := []entity.Community{Community1, Community2}
	if err := xcontext.DB(ctx).Create(&communities).Error; err != nil {
		panic(err)
	}
}

func insertUsers(ctx context.Context) {
	users := []entity.User{User1, User2, User3}
	if err := xcontext.DB(ctx).Create(&users).Error; err != nil {
		panic(err)
	}
}
