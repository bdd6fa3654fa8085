package berth

import "go.uber.org/zap"

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for container diagnostics.
// The container logs registrations, edge rejections and factory calls at
// debug level and factory failures at warn level. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks installs hooks, called in the order given.
func WithHooks(hooks ...Hook) Option {
	return func(c *Container) {
		for _, hook := range hooks {
			if hook != nil {
				c.hooks = c.hooks.add(hook)
			}
		}
	}
}
