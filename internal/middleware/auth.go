package middleware

import (
	"context"
	"strings"

	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/router"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

// AuthVerifier resolves the caller identity from a bearer header or the
// access token cookie and makes it available through the context.
func AuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := ""
		if authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization"); authorization != "" {
			parts := strings.Split(authorization, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, errorx.New(errorx.Unauthenticated, "Invalid authorization header")
			}

			token = parts[1]
		} else {
			cookie, err := xcontext.HTTPRequest(ctx).
				Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
			if err != nil {
				return nil, errorx.New(errorx.Unauthenticated, "Not found any authentication")
			}

			token = cookie.Value
		}

		accessToken, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}
