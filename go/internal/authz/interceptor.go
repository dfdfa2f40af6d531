package authz

import (
	"context"

	"connectrpc.com/connect"
	"github.com/rs/zerolog/log"
)

// NewInterceptor returns a Connect interceptor that resolves the bearer token on
// every incoming unary call and stores the Actor in the request context.
func NewInterceptor(tokens *Tokens) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			actor, err := tokens.VerifyHeader(req.Header().Get("Authorization"))
			if err != nil {
				log.Debug().
					Err(err).
					Str("procedure", req.Spec().Procedure).
					Msg("rejected unauthenticated request")
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithActor(ctx, actor), req)
		}
	}
}

// NewClientInterceptor attaches a bearer token to outgoing calls
func NewClientInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}
