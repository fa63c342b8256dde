package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDecisionNotify is the task type for notifying a quote owner
	// of a client decision.
	TaskTypeDecisionNotify = "quote:decision_notify"
	// TaskTypeQuoteExpiry sweeps outstanding quotes past their validity date.
	TaskTypeQuoteExpiry = "quote:expire_due"
)

// DecisionNotifyPayload describes a client decision notification.
type DecisionNotifyPayload struct {
	QuoteID     string `json:"quote_id"`
	QuoteNumber string `json:"quote_number"`
	Decision    string `json:"decision"`
	Recipient   string `json:"recipient"`
}

// NewDecisionNotifyTask constructs an Asynq task.
func NewDecisionNotifyTask(payload DecisionNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDecisionNotify, data), nil
}

// HandleDecisionNotifyTask processes TaskTypeDecisionNotify tasks.
func HandleDecisionNotifyTask(ctx context.Context, t *asynq.Task) error {
	var payload DecisionNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: integrate with SMTP/Mailpit in phase 2.
	fmt.Printf("[jobs] notify %s: quote %s %s\n", payload.Recipient, payload.QuoteNumber, payload.Decision)
	return nil
}

// QuoteExpiryPayload carries scheduling metadata.
type QuoteExpiryPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewQuoteExpiryTask constructs an Asynq task for the expiry sweep.
func NewQuoteExpiryTask(at time.Time) (*asynq.Task, error) {
	payload := QuoteExpiryPayload{ScheduledFor: at}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeQuoteExpiry, body, asynq.Queue(QueueDefault)), nil
}
