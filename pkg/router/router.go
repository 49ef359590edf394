package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type MiddlewareFunc func(ctx context.Context) (context.Context, error)
type CloserFunc func(ctx context.Context)

// Router dispatches requests to typed handlers. Every request runs the
// before middlewares, the handler, the after middlewares, then the closers,
// all sharing one context derived from the router's base context.
type Router struct {
	Inner gin.IRouter

	ctx     context.Context
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{Inner: gin.New(), ctx: ctx}
}

// Branch derives a sub-router with its own middleware chain rooted under
// pattern.
func (r *Router) Branch(pattern string) *Router {
	return &Router{
		Inner:   r.Inner.Group(pattern),
		ctx:     r.ctx,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, handler, func(ginCtx *gin.Context, req *Request) error {
		return ginCtx.ShouldBindQuery(req)
	}))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, handler, func(ginCtx *gin.Context, req *Request) error {
		return ginCtx.ShouldBindJSON(req)
	}))
}

func wrapHandler[Request, Response any](
	r *Router,
	handler HandlerFunc[Request, Response],
	bind func(*gin.Context, *Request) error,
) gin.HandlerFunc {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	return func(ginCtx *gin.Context) {
		ctx := xcontext.WithRequestScope(r.ctx, ginCtx.Request, ginCtx.Writer)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		run := func() error {
			for _, before := range befores {
				beforeCtx, err := before(ctx)
				if err != nil {
					return err
				}

				ctx = beforeCtx
			}

			var req Request
			if err := bind(ginCtx, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return err
			}

			xcontext.SetResponse(ctx, resp)
			for _, after := range afters {
				afterCtx, err := after(ctx)
				if err != nil {
					return err
				}

				ctx = afterCtx
			}

			return nil
		}

		if err := run(); err != nil {
			xcontext.SetError(ctx, err)
		}
	}
}
