package repository

import (
	"context"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type GiveawayManagerRoleRepository interface {
	Upsert(ctx context.Context, role *entity.GiveawayManagerRole) error
	GetByCommunityID(ctx context.Context, communityID string) (*entity.GiveawayManagerRole, error)
}

type giveawayManagerRoleRepository struct{}

func NewGiveawayManagerRoleRepository() *giveawayManagerRoleRepository {
	return &giveawayManagerRoleRepository{}
}

func (r *giveawayManagerRoleRepository) Upsert(ctx context.Context, role *entity.GiveawayManagerRole) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id", "updated_at"}),
		}).
		Create(role).Error
}

func (r *giveawayManagerRoleRepository) GetByCommunityID(
	ctx context.Context, communityID string,
) (*entity.GiveawayManagerRole, error) {
	result := entity.GiveawayManagerRole{}
	err := xcontext.DB(ctx).Take(&result, "community_id=?", communityID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
