package notify

import (
	"time"

	"github.com/lib/pq"
)

// NewPQListener создает слушатель LISTEN/NOTIFY с автоматическим переподключением
func NewPQListener(dsn string, minReconnect, maxReconnect time.Duration, logger Logger) *pq.Listener {
	return pq.NewListener(dsn, minReconnect, maxReconnect, func(event pq.ListenerEventType, err error) {
		switch event {
		case pq.ListenerEventConnected:
			logger.Info("Listener: connected")
		case pq.ListenerEventDisconnected:
			logger.Warn("Listener: disconnected: %v", err)
		case pq.ListenerEventReconnected:
			logger.Info("Listener: reconnected")
		case pq.ListenerEventConnectionAttemptFailed:
			logger.Error("Listener: connection attempt failed: %v", err)
		}
	})
}
