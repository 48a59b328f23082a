package bus

import (
	"time"

	"github.com/zeusync/hoopbot/internal/core/observability/log"
)

type logObserver struct {
	logger log.Log
}

// NewLogObserver logs every delivery at debug level and failed deliveries
// as warnings.
func NewLogObserver(logger log.Log) Observer {
	if logger == nil {
		logger = log.NewNop()
	}
	return logObserver{logger: logger}
}

func (o logObserver) OnDelivered(eventType string, handlers int, err error, durationMicros int64) {
	fields := []log.Field{
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", time.Duration(durationMicros)*time.Microsecond),
	}
	if err != nil {
		o.logger.Warn("event handler failed", append(fields, log.Error(err))...)
		return
	}
	o.logger.Debug("event delivered", fields...)
}
