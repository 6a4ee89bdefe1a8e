package importer

import (
	"context"

	"game-importer/core/reconcile"

	"go.uber.org/zap"
)

// LogObserver writes every engine event to the log at debug level.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer logging to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// OnEvent implements reconcile.Observer.
func (o *LogObserver) OnEvent(_ context.Context, ev reconcile.Event) {
	o.logger.Debug("Reconcile event",
		zap.String("event", string(ev.Kind)),
		zap.Uint("record_id", ev.RecordID),
		zap.String("external_id", ev.ExternalID),
	)
}
