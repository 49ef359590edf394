package common

import (
	"context"
	"errors"
	"strings"

	"github.com/maxovaroy/merlin-V2/internal/client"
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ManagerVerifier decides whether a user may run giveaway management
// operations in a community. Administrators always pass. Otherwise the user
// must hold the configured manager role, or, when no role is configured, any
// role whose name contains one of the fallback keywords.
type ManagerVerifier struct {
	roleCaller      client.RoleCaller
	managerRoleRepo repository.GiveawayManagerRoleRepository
}

func NewManagerVerifier(
	roleCaller client.RoleCaller,
	managerRoleRepo repository.GiveawayManagerRoleRepository,
) *ManagerVerifier {
	return &ManagerVerifier{
		roleCaller:      roleCaller,
		managerRoleRepo: managerRoleRepo,
	}
}

func (v *ManagerVerifier) IsAdministrator(
	ctx context.Context, community *entity.Community, userID string,
) (bool, error) {
	return v.roleCaller.IsAdministrator(ctx, community.DiscordGuildID, userID)
}

func (v *ManagerVerifier) SetManagerRole(ctx context.Context, role *entity.GiveawayManagerRole) error {
	return v.managerRoleRepo.Upsert(ctx, role)
}

func (v *ManagerVerifier) Verify(ctx context.Context, community *entity.Community, userID string) error {
	isAdmin, err := v.roleCaller.IsAdministrator(ctx, community.DiscordGuildID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check administrator permission: %v", err)
		return errorx.Unknown
	}

	if isAdmin {
		return nil
	}

	roles, err := v.roleCaller.MemberRoles(ctx, community.DiscordGuildID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member roles: %v", err)
		return errorx.Unknown
	}

	managerRole, err := v.managerRoleRepo.GetByCommunityID(ctx, community.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get giveaway manager role: %v", err)
		return errorx.Unknown
	}

	if managerRole != nil {
		ok := slices.ContainsFunc(roles, func(role client.Role) bool {
			return role.ID == managerRole.RoleID
		})
		if ok {
			return nil
		}

		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	keywords := xcontext.Configs(ctx).Giveaway.ManagerKeywords
	for _, role := range roles {
		name := strings.ToLower(role.Name)
		for _, keyword := range keywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				return nil
			}
		}
	}

	return errorx.New(errorx.PermissionDenied, "Permission denied")
}
