//go:build integration

package firestore

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"strings"
	"testing"
	"time"

	pconfig "github.com/techfunding/api/internal/platform/config"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/repositories"

	domain "github.com/techfunding/api/internal/domain"
)

func TestProjectRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not available: " + err.Error())
	}

	ensureDockerDaemon(t)

	port := freePort(t)
	endpoint := fmt.Sprintf("127.0.0.1:%d", port)
	containerID := startFirestoreEmulator(t, port)
	t.Cleanup(func() { stopContainer(containerID) })

	waitForEndpoint(t, endpoint, 30*time.Second)

	cfg := pconfig.FirestoreConfig{
		ProjectID:    "catalog-test",
		EmulatorHost: endpoint,
	}

	provider := pfirestore.NewProvider(cfg)
	t.Cleanup(func() {
		_ = provider.Close(context.Background())
	})

	repo, err := NewProjectRepository(provider)
	if err != nil {
		t.Fatalf("new project repository: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Second)
	seed := []domain.Project{
		{
			ID:          "p-1",
			Title:       "Pocket Synth",
			Description: "A pocket sized synthesizer",
			Category:    domain.CategoryAppService,
			FundingGoal: 1_000_000,
			Rewards: []domain.Reward{
				{ID: "r-1", Name: "Early unit", Amount: 500, MaxQuantity: 1},
			},
			Status:    domain.ProjectStatusActive,
			CreatedAt: now.Add(-2 * time.Hour),
			UpdatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:          "p-2",
			Title:       "Desk Planner",
			Description: "A weekly planner for makers",
			Category:    domain.CategoryNotionTemplate,
			FundingGoal: 500_000,
			Status:      domain.ProjectStatusActive,
			CreatedAt:   now.Add(-time.Hour),
			UpdatedAt:   now.Add(-time.Hour),
		},
	}
	for _, project := range seed {
		if _, err := repo.Insert(ctx, project); err != nil {
			t.Fatalf("insert %s: %v", project.ID, err)
		}
	}

	page, err := repo.List(ctx, repositories.CatalogFilter{Category: domain.CategoryAppService})
	if err != nil {
		t.Fatalf("list app-service: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "p-1" {
		t.Fatalf("expected only p-1 in app-service category, got %+v", page.Items)
	}

	found, err := repo.FindByID(ctx, "p-2")
	if err != nil {
		t.Fatalf("find p-2: %v", err)
	}
	if found.Title != "Desk Planner" || found.Category != domain.CategoryNotionTemplate {
		t.Fatalf("unexpected project: %+v", found)
	}

	// First claim takes the only reward unit and bumps the total.
	updated, err := repo.AddFunding(ctx, "p-1", "r-1", 500)
	if err != nil {
		t.Fatalf("add funding: %v", err)
	}
	if updated.CurrentFunding != 500 {
		t.Fatalf("expected funding total 500, got %d", updated.CurrentFunding)
	}
	if updated.Rewards[0].CurrentQuantity != 1 {
		t.Fatalf("expected reward claimed once, got %+v", updated.Rewards[0])
	}

	// Second claim must fail: the reward is capped at one unit.
	_, err = repo.AddFunding(ctx, "p-1", "r-1", 500)
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsConflict() {
		t.Fatalf("expected sold-out conflict, got %v", err)
	}

	_, err = repo.FindByID(ctx, "missing")
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not found, got %v", err)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	addr, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unable to allocate port: %v", err)
	}
	defer addr.Close()
	return addr.Addr().(*net.TCPAddr).Port
}

func startFirestoreEmulator(t *testing.T, port int) string {
	t.Helper()
	args := []string{
		"run", "-d", "--rm",
		"-p", fmt.Sprintf("%d:8080", port),
		firestoreEmulatorImage,
		"gcloud", "beta", "emulators", "firestore", "start",
		"--host-port=0.0.0.0:8080",
		"--quiet",
	}

	cmd := exec.Command("docker", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to start firestore emulator: %v - %s", err, string(out))
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		t.Fatalf("docker returned empty container id")
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

func ensureDockerDaemon(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "docker", "info")
	if err := cmd.Run(); err != nil {
		t.Fatalf("docker daemon not available: %v", err)
	}
}

func stopContainer(id string) {
	if id == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "docker", "stop", id)
	_ = cmd.Run()
}

func waitForEndpoint(t *testing.T, endpoint string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", endpoint, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	t.Fatalf("firestore emulator at %s did not become ready within %s", endpoint, timeout)
}

const firestoreEmulatorImage = "gcr.io/google.com/cloudsdktool/cloud-sdk:emulators"
