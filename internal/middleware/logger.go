package middleware

import (
	"context"

	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/router"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)

		code := errorx.Code(0)
		if err := xcontext.Error(ctx); err != nil {
			errx := errorx.Unknown
			if e, ok := err.(errorx.Error); ok {
				errx = e
			}
			code = errx.Code
		}

		xcontext.Logger(ctx).Infof("%s | %s | %d", r.Method, r.URL.Path, code)
	}
}
