package notify

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// Resyncer периодически перечитывает оба источника по cron-расписанию,
// чтобы пропущенные уведомления не оставляли устаревшее состояние.
type Resyncer struct {
	cron *cron.Cron
}

// NewResyncer регистрирует пересинхронизацию broker по расписанию spec (стандартный cron-формат)
func NewResyncer(ctx context.Context, spec string, broker *Broker, logger Logger) (*Resyncer, error) {
	c := cron.New(
		cron.WithLogger(cronLogger{logger: logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
	)

	if _, err := c.AddFunc(spec, func() { broker.Resync(ctx) }); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}

	return &Resyncer{cron: c}, nil
}

// Start запускает планировщик в фоне
func (r *Resyncer) Start() {
	r.cron.Start()
}

// Stop останавливает планировщик и возвращает контекст, завершающийся после текущего запуска
func (r *Resyncer) Stop() context.Context {
	return r.cron.Stop()
}

// cronLogger адаптирует Logger к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет о каждом запуске, это шум
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Resyncer: %s: %v %v", msg, err, keysAndValues)
}
