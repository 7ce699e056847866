package generation

import (
	"context"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

func (c *Controller) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, ports.Event{Type: eventType, Fields: payload}); err != nil {
		c.warn(ctx, "failed to publish domain event", "event_type", eventType, "error", err)
	}
}

func (c *Controller) debug(ctx context.Context, msg string, fields ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(ctx, msg, fields...)
	}
}

func (c *Controller) info(ctx context.Context, msg string, fields ...interface{}) {
	if c.logger != nil {
		c.logger.Info(ctx, msg, fields...)
	}
}

func (c *Controller) warn(ctx context.Context, msg string, fields ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(ctx, msg, fields...)
	}
}
