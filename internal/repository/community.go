package repository

import (
	"context"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

type CommunityRepository interface {
	Create(ctx context.Context, community *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Community, error)
	GetByDiscordGuildID(ctx context.Context, guildID string) (*entity.Community, error)
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, community *entity.Community) error {
	return xcontext.DB(ctx).Create(community).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	result := entity.Community{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	result := entity.Community{}
	if err := xcontext.DB(ctx).Take(&result, "handle=?", handle).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetByDiscordGuildID(
	ctx context.Context, guildID string,
) (*entity.Community, error) {
	result := entity.Community{}
	err := xcontext.DB(ctx).Take(&result, "discord_guild_id=?", guildID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
