// Package jobs publishes asynchronous domain events to Pub/Sub.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"

	"github.com/techfunding/api/internal/services"
)

// PubSubFundingPublisher publishes settled funding events to a Pub/Sub topic.
type PubSubFundingPublisher struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

// NewPubSubFundingPublisher constructs a Pub/Sub backed funding event publisher.
func NewPubSubFundingPublisher(topic *pubsub.Topic) (*PubSubFundingPublisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub funding publisher: topic is required")
	}
	return &PubSubFundingPublisher{
		topic:   topic,
		marshal: json.Marshal,
	}, nil
}

// PublishFundingSettled enqueues a settlement message on the configured topic.
func (p *PubSubFundingPublisher) PublishFundingSettled(ctx context.Context, message services.FundingSettledMessage) (string, error) {
	if p == nil || p.topic == nil {
		return "", errors.New("pubsub funding publisher: not initialised")
	}

	data, err := p.marshal(message)
	if err != nil {
		return "", fmt.Errorf("marshal funding event: %w", err)
	}

	attrs := make(map[string]string)
	setAttr(attrs, "fundingId", message.FundingID)
	setAttr(attrs, "projectId", message.ProjectID)
	setAttr(attrs, "rewardId", message.RewardID)
	setAttr(attrs, "status", message.Status)

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})

	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish funding event: %w", err)
	}
	return id, nil
}

func setAttr(attrs map[string]string, key string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		attrs[key] = v
	}
}
