package domain

import (
	"context"
	"errors"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"gorm.io/gorm"
)

// checkEligibility evaluates the giveaway's gates against the user's current
// stats. Gates are re-evaluated on every attempt, so a user rejected once can
// qualify later.
func checkEligibility(
	ctx context.Context,
	userRepo repository.UserRepository,
	giveaway *entity.Giveaway,
	userID string,
) error {
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.Unavailable,
				"You are not in the database yet. Chat a bit first.")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	if user.Messages < giveaway.MinMessages {
		return errorx.New(errorx.Unavailable,
			"You need at least %d messages to join (you have %d)",
			giveaway.MinMessages, user.Messages)
	}

	if user.Level < giveaway.MinLevel {
		return errorx.New(errorx.Unavailable,
			"You need to reach level %d to join (you are level %d)",
			giveaway.MinLevel, user.Level)
	}

	return nil
}
