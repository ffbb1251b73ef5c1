// Package notify provides the handler decoration layer. Middlewares are
// composed around a handler at registration time and observe the final
// response; they can never replace it.
package notify

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// HandlerFunc is the Lambda handler signature the middlewares wrap.
type HandlerFunc func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Middleware observes a completed request. After runs once the handler has
// produced its response; a middleware failure must be swallowed internally.
type Middleware interface {
	After(ctx context.Context, request events.APIGatewayProxyRequest, response events.APIGatewayProxyResponse, handlerErr error)
}

// Apply composes middlewares around a handler. The handler's response and
// error pass through unchanged.
func Apply(handler HandlerFunc, middlewares ...Middleware) HandlerFunc {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		response, err := handler(ctx, request)
		for _, mw := range middlewares {
			mw.After(ctx, request, response, err)
		}
		return response, err
	}
}
