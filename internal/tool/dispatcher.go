package tool

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"soustackgw/internal/domain"
)

// Dispatcher turns a request into exactly one response. It never panics and
// never returns a nil response.
type Dispatcher struct {
	registry *Registry
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher over registry.
func NewDispatcher(registry *Registry, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{registry: registry, logger: logger}
}

// Registry returns the tools the dispatcher serves.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch runs req and builds its response. fields are added to every log
// entry written for the request.
func (d *Dispatcher) Dispatch(ctx context.Context, req *domain.Request, fields ...zap.Field) (resp *domain.Response) {
	start := time.Now()
	log := d.logger.With(append(fields, zap.String("request_id", req.ID), zap.String("tool", req.Tool))...)

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool panicked", zap.Any("panic", r))
			resp = toolError(req.ID, fmt.Errorf("panic: %v", r))
		}
	}()

	out, err := d.registry.Execute(ctx, req.Tool, req.Input)
	duration := zap.Duration("duration", time.Since(start))
	if err != nil {
		if domain.MapError(err) == domain.ErrorCodeToolNotFound {
			log.Info("tool not found", duration)
			return domain.Failure(&req.ID, domain.ErrorCodeToolNotFound, domain.ToolNotFoundMessage(req.Tool), nil)
		}
		log.Error("tool failed", duration, zap.Error(err))
		return toolError(req.ID, err)
	}

	log.Info("tool completed", duration)
	return domain.Success(req.ID, out)
}

func toolError(id string, err error) *domain.Response {
	return domain.Failure(&id, domain.ErrorCodeToolError, domain.MsgToolError, map[string]any{"error": err.Error()})
}
