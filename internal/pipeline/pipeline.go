// Package pipeline composes use-case handlers with cross-cutting behaviors.
package pipeline

import (
	"context"

	"github.com/yukikurage/pastry-manager-api/internal/result"
)

// HandlerFunc handles one request type. Expected failures are returned in
// the Result; the error is reserved for infrastructure faults.
type HandlerFunc[Req, Res any] func(ctx context.Context, req Req) (result.Result[Res], error)

// Behavior wraps a handler. name identifies the request in logs and metrics.
type Behavior[Req, Res any] func(name string, next HandlerFunc[Req, Res]) HandlerFunc[Req, Res]

// Chain wraps h with behaviors; the first behavior runs outermost.
func Chain[Req, Res any](name string, h HandlerFunc[Req, Res], behaviors ...Behavior[Req, Res]) HandlerFunc[Req, Res] {
	for i := len(behaviors) - 1; i >= 0; i-- {
		h = behaviors[i](name, h)
	}
	return h
}
