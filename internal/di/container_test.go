package di

import (
	"context"
	"testing"
	"time"

	"github.com/techfunding/api/internal/platform/config"
	"github.com/techfunding/api/internal/services"
	"go.uber.org/zap"
)

func TestNewContainerMemoryBacked(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Port: "0"},
		Funding:     config.FundingConfig{SettlementDelay: 0},
		Catalog:     config.CatalogConfig{DefaultPageSize: 20, MaxPageSize: 100},
		Features:    config.FeatureFlags{SeedSampleData: true},
	}

	container, err := NewContainer(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Close(ctx); err != nil {
			t.Errorf("Close: %v", err)
		}
	})

	if container.FirestoreProvider() != nil {
		t.Fatalf("memory-backed container should not hold a firestore provider")
	}

	svc := container.Services
	if svc.Catalog == nil || svc.Fundings == nil || svc.Purchases == nil || svc.QnA == nil || svc.Reviews == nil {
		t.Fatalf("expected all services wired, got %+v", svc)
	}

	// Seeded data should be reachable through the service layer.
	page, err := svc.Catalog.ListProjects(ctx, services.CatalogFilterInput{})
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(page.Items) == 0 {
		t.Fatalf("expected seeded projects")
	}

	session, err := svc.Fundings.Start(ctx, services.StartFundingCommand{
		ProjectID: "1",
		RewardID:  firstRewardID(t, "1", svc),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.State != services.FundingStateConfirmPending {
		t.Fatalf("expected confirm_pending, got %s", session.State)
	}

	deadline, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	confirmed, err := svc.Fundings.Confirm(deadline, session.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.State != services.FundingStateSucceeded {
		t.Fatalf("expected succeeded, got %s", confirmed.State)
	}
}

func firstRewardID(t *testing.T, projectID string, svc Services) string {
	t.Helper()
	project, err := svc.Catalog.GetProject(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if len(project.Rewards) == 0 {
		t.Fatalf("seeded project %s has no rewards", projectID)
	}
	return project.Rewards[0].ID
}
