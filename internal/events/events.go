package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys of job lifecycle events
const (
	RoutingJobSubmitted = "job.submitted"
	RoutingJobExpired   = "job.expired"
)

// Submission actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// JobSubmitted announces content that waits for admin approval
type JobSubmitted struct {
	JobID     string    `json:"job_id"`
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Action    string    `json:"action"`
	At        time.Time `json:"at"`
}

// JobsExpired announces jobs flipped to expired by one sweep
type JobsExpired struct {
	JobIDs []string  `json:"job_ids"`
	At     time.Time `json:"at"`
}

// Sender delivers an encoded message under a routing key.
// *rabbitmq.Client satisfies it.
type Sender interface {
	PublishWithRetry(ctx context.Context, routingKey string, body []byte, contentType string) error
}

// Publisher sends job events to the jobs exchange
type Publisher struct {
	client Sender
}

func NewPublisher(client Sender) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishJobSubmitted(ctx context.Context, event JobSubmitted) error {
	return p.publish(ctx, RoutingJobSubmitted, event)
}

func (p *Publisher) PublishJobsExpired(ctx context.Context, event JobsExpired) error {
	return p.publish(ctx, RoutingJobExpired, event)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", routingKey, err)
	}
	return p.client.PublishWithRetry(ctx, routingKey, body, "application/json")
}
