package berth

import (
	"time"

	"go.uber.org/zap"
)

// LoggingHook logs every resolution and factory invocation.
// The container itself never logs absences; install this hook when the
// application wants them in its logs.
type LoggingHook struct {
	logger *zap.Logger
}

// NewLoggingHook creates a hook writing to logger.
func NewLoggingHook(logger *zap.Logger) *LoggingHook {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LoggingHook{logger: logger.Named("berth")}
}

// BeforeResolve implements Hook.
func (h *LoggingHook) BeforeResolve(ID) error {
	return nil
}

// AfterResolve implements Hook.
func (h *LoggingHook) AfterResolve(id ID, _ any, err error, elapsed time.Duration) {
	if err != nil {
		h.logger.Info("service unavailable",
			zap.Stringer("service", id),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)

		return
	}

	h.logger.Debug("service resolved",
		zap.Stringer("service", id),
		zap.Duration("elapsed", elapsed),
	)
}

// BeforeCreate implements Hook.
func (h *LoggingHook) BeforeCreate(ID) error {
	return nil
}

// AfterCreate implements Hook.
func (h *LoggingHook) AfterCreate(id ID, instance any, err error, elapsed time.Duration) {
	if err != nil {
		h.logger.Error("service creation failed",
			zap.Stringer("service", id),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)

		return
	}

	h.logger.Info("service created",
		zap.Stringer("service", id),
		zap.String("type", typeName(instance)),
		zap.Duration("elapsed", elapsed),
	)
}
