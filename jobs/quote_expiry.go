package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// ExpirySweeper transitions outstanding quotes past their validity date.
type ExpirySweeper interface {
	ExpireDue(ctx context.Context) (int, error)
}

// QuoteExpiryJob runs the periodic expiry sweep against the quote service.
type QuoteExpiryJob struct {
	sweeper ExpirySweeper
	logger  *slog.Logger
}

// NewQuoteExpiryJob constructs the expiry job.
func NewQuoteExpiryJob(sweeper ExpirySweeper, logger *slog.Logger) *QuoteExpiryJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuoteExpiryJob{sweeper: sweeper, logger: logger}
}

// Handle processes TaskTypeQuoteExpiry tasks.
func (j *QuoteExpiryJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload QuoteExpiryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	started := time.Now()
	expired, err := j.sweeper.ExpireDue(ctx)
	if err != nil {
		j.logger.Error("quote expiry sweep", slog.Any("error", err))
		return err
	}
	j.logger.Info("quote expiry sweep",
		slog.Int("expired", expired),
		slog.Duration("took", time.Since(started)),
		slog.Time("scheduled_for", payload.ScheduledFor),
	)
	return nil
}
