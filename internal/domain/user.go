package domain

import (
	"context"
	"errors"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/model"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	TrackMessage(ctx context.Context, req *model.TrackMessageRequest) (*model.TrackMessageResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{User: convertUser(user)}, nil
}

// TrackMessage counts a chat message for a user, creating the user row on
// first sight.
func (d *userDomain) TrackMessage(
	ctx context.Context, req *model.TrackMessageRequest,
) (*model.TrackMessageResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id")
	}

	result, err := d.userRepo.AddMessage(ctx, req.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		createErr := d.userRepo.Create(ctx, &entity.User{
			Base:  entity.Base{ID: req.UserID},
			Name:  req.Name,
			Level: 1,
		})
		if createErr != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", createErr)
			return nil, errorx.Unknown
		}

		result, err = d.userRepo.AddMessage(ctx, req.UserID)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot track message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.TrackMessageResponse{
		User:       convertUser(&result.User),
		LeveledUp:  result.LeveledUp,
		AuraGained: result.AuraGained,
	}, nil
}

func (d *userDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 10
	}

	if req.Limit < 0 || req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and 50")
	}

	entries, err := d.userRepo.GetLeaderboard(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}
