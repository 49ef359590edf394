package domain

import (
	"context"
	"errors"

	"github.com/maxovaroy/merlin-V2/internal/model"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Generate(ctx context.Context, req *model.GenerateAccessTokenRequest) (*model.GenerateAccessTokenResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{userRepo: userRepo}
}

// Generate mints an access token for a known user. Only enabled outside of
// production, where the bot gateway is the one issuing tokens.
func (d *authDomain) Generate(
	ctx context.Context, req *model.GenerateAccessTokenRequest,
) (*model.GenerateAccessTokenResponse, error) {
	if xcontext.Configs(ctx).Env == "prod" {
		return nil, errorx.New(errorx.Unavailable, "Not available in production")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{ID: user.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GenerateAccessTokenResponse{AccessToken: token}, nil
}
