package bus

import (
	"time"

	"github.com/zeusync/softbody/internal/core/observability/log"
)

// DefaultSlowDelivery is the delivery time above which LogObserver warns.
// Frames are published from the simulation goroutine, so a slow handler
// stalls the simulation.
const DefaultSlowDelivery = 2 * time.Millisecond

// LogObserver warns about deliveries that took longer than its threshold.
// Handler errors are returned to the publisher and are not logged here.
type LogObserver struct {
	logger log.Log
	slow   time.Duration
}

func NewLogObserver(logger log.Log, slow time.Duration) *LogObserver {
	if slow <= 0 {
		slow = DefaultSlowDelivery
	}
	return &LogObserver{logger: logger, slow: slow}
}

func (o *LogObserver) OnDelivered(eventType string, handlers int, _ error, took time.Duration) {
	if took <= o.slow {
		return
	}
	o.logger.Warn("slow event delivery",
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", took),
		log.Duration("threshold", o.slow),
	)
}
