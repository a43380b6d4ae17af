package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/techfunding/api/internal/services"
)

func TestPubSubFundingPublisherPublishesMessage(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	client, err := pubsub.NewClient(ctx, "test-project",
		option.WithEndpoint(srv.Addr),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		t.Fatalf("pubsub.NewClient: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	topic, err := client.CreateTopic(ctx, "funding-events")
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	publisher, err := NewPubSubFundingPublisher(topic)
	if err != nil {
		t.Fatalf("NewPubSubFundingPublisher: %v", err)
	}

	settledAt := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	msg := services.FundingSettledMessage{
		FundingID: "fd_test",
		ProjectID: "1",
		RewardID:  "1",
		Amount:    500,
		Status:    "completed",
		SettledAt: settledAt,
	}

	if _, err := publisher.PublishFundingSettled(ctx, msg); err != nil {
		t.Fatalf("PublishFundingSettled: %v", err)
	}

	messages := srv.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	var payload services.FundingSettledMessage
	if err := json.Unmarshal(messages[0].Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.FundingID != msg.FundingID || payload.ProjectID != msg.ProjectID {
		t.Fatalf("unexpected payload %#v", payload)
	}
	if attr := messages[0].Attributes["fundingId"]; attr != "fd_test" {
		t.Fatalf("expected fundingId attribute, got %q", attr)
	}
	if attr := messages[0].Attributes["status"]; attr != "completed" {
		t.Fatalf("expected status attribute, got %q", attr)
	}
}
