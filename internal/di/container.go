// Package di assembles the runtime dependency graph: repositories, the
// settlement gateway, event publishing, and the service layer.
package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"

	"github.com/techfunding/api/internal/payments"
	"github.com/techfunding/api/internal/platform/config"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/platform/jobs"
	"github.com/techfunding/api/internal/repositories"
	firestoreRepo "github.com/techfunding/api/internal/repositories/firestore"
	"github.com/techfunding/api/internal/repositories/memory"
	"github.com/techfunding/api/internal/services"
)

// Repositories bundles the persistence contracts the service layer depends on.
type Repositories struct {
	Projects  repositories.ProjectRepository
	Products  repositories.ProductRepository
	Questions repositories.QuestionRepository
	Reviews   repositories.ReviewRepository
	Fundings  repositories.FundingRepository
	Purchases repositories.PurchaseRepository
}

// Services bundles the service-layer contracts that handlers rely upon.
type Services struct {
	Catalog   services.CatalogService
	Fundings  services.FundingService
	Purchases services.PurchaseService
	QnA       services.QnAService
	Reviews   services.ReviewService
}

// Container wires repositories, services, and background infrastructure for runtime use.
type Container struct {
	Config       config.Config
	Repositories Repositories
	Services     Services

	firestoreProvider *pfirestore.Provider
	pubsubClient      *pubsub.Client
}

// NewContainer constructs the runtime dependencies. A configured Firestore
// project selects the Firestore repositories; otherwise the seeded in-memory
// stores back the API, which keeps local runs self-contained.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	container := &Container{Config: cfg}

	if strings.TrimSpace(cfg.Firestore.ProjectID) != "" {
		if err := container.buildFirestoreRepositories(cfg); err != nil {
			return nil, err
		}
	} else if err := container.buildMemoryRepositories(ctx, cfg); err != nil {
		return nil, err
	}

	publisher, err := container.buildPublisher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	settler := payments.NewSimulatedSettler(payments.WithDelay(cfg.Funding.SettlementDelay))

	if err := container.buildServices(settler, publisher, logger); err != nil {
		_ = container.Close(ctx)
		return nil, err
	}
	return container, nil
}

// FirestoreProvider exposes the backing provider, or nil when the container
// runs on the in-memory repositories.
func (c *Container) FirestoreProvider() *pfirestore.Provider {
	if c == nil {
		return nil
	}
	return c.firestoreProvider
}

// Close releases the Firestore and Pub/Sub clients.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	if c.pubsubClient != nil {
		if err := c.pubsubClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pubsub client: %w", err))
		}
		c.pubsubClient = nil
	}
	if c.firestoreProvider != nil {
		if err := c.firestoreProvider.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close firestore provider: %w", err))
		}
		c.firestoreProvider = nil
	}
	return errors.Join(errs...)
}

func (c *Container) buildFirestoreRepositories(cfg config.Config) error {
	provider := pfirestore.NewProvider(cfg.Firestore)
	c.firestoreProvider = provider

	projects, err := firestoreRepo.NewProjectRepository(provider)
	if err != nil {
		return fmt.Errorf("build project repository: %w", err)
	}
	products, err := firestoreRepo.NewProductRepository(provider)
	if err != nil {
		return fmt.Errorf("build product repository: %w", err)
	}
	questions, err := firestoreRepo.NewQuestionRepository(provider)
	if err != nil {
		return fmt.Errorf("build question repository: %w", err)
	}
	reviews, err := firestoreRepo.NewReviewRepository(provider)
	if err != nil {
		return fmt.Errorf("build review repository: %w", err)
	}
	fundings, err := firestoreRepo.NewFundingRepository(provider)
	if err != nil {
		return fmt.Errorf("build funding repository: %w", err)
	}
	purchases, err := firestoreRepo.NewPurchaseRepository(provider)
	if err != nil {
		return fmt.Errorf("build purchase repository: %w", err)
	}

	c.Repositories = Repositories{
		Projects:  projects,
		Products:  products,
		Questions: questions,
		Reviews:   reviews,
		Fundings:  fundings,
		Purchases: purchases,
	}
	return nil
}

func (c *Container) buildMemoryRepositories(ctx context.Context, cfg config.Config) error {
	projects := memory.NewProjectRepository()
	products := memory.NewProductRepository()
	questions := memory.NewQuestionRepository()

	if cfg.Features.SeedSampleData {
		if err := memory.Seed(ctx, projects, products, questions); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}

	c.Repositories = Repositories{
		Projects:  projects,
		Products:  products,
		Questions: questions,
		Reviews:   memory.NewReviewRepository(),
		Fundings:  memory.NewFundingRepository(),
		Purchases: memory.NewPurchaseRepository(),
	}
	return nil
}

func (c *Container) buildPublisher(ctx context.Context, cfg config.Config) (services.FundingEventPublisher, error) {
	topicID := strings.TrimSpace(cfg.PubSub.TopicID)
	if topicID == "" {
		return nil, nil
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("build pubsub client: %w", err)
	}
	c.pubsubClient = client

	publisher, err := jobs.NewPubSubFundingPublisher(client.Topic(topicID))
	if err != nil {
		return nil, fmt.Errorf("build funding publisher: %w", err)
	}
	return publisher, nil
}

func (c *Container) buildServices(settler payments.Settler, publisher services.FundingEventPublisher, logger *zap.Logger) error {
	catalog, err := services.NewCatalogService(services.CatalogServiceDeps{
		Projects: c.Repositories.Projects,
		Products: c.Repositories.Products,
		Clock:    time.Now,
	})
	if err != nil {
		return fmt.Errorf("build catalog service: %w", err)
	}

	fundings, err := services.NewFundingService(services.FundingServiceDeps{
		Projects:  c.Repositories.Projects,
		Fundings:  c.Repositories.Fundings,
		Settler:   settler,
		Publisher: publisher,
		Logger:    logger,
		Clock:     time.Now,
	})
	if err != nil {
		return fmt.Errorf("build funding service: %w", err)
	}

	purchases, err := services.NewPurchaseService(services.PurchaseServiceDeps{
		Products:  c.Repositories.Products,
		Purchases: c.Repositories.Purchases,
		Logger:    logger,
		Clock:     time.Now,
	})
	if err != nil {
		return fmt.Errorf("build purchase service: %w", err)
	}

	qna, err := services.NewQnAService(services.QnAServiceDeps{
		Projects:  c.Repositories.Projects,
		Questions: c.Repositories.Questions,
		Clock:     time.Now,
	})
	if err != nil {
		return fmt.Errorf("build qna service: %w", err)
	}

	reviews, err := services.NewReviewService(services.ReviewServiceDeps{
		Products: c.Repositories.Products,
		Reviews:  c.Repositories.Reviews,
		Clock:    time.Now,
	})
	if err != nil {
		return fmt.Errorf("build review service: %w", err)
	}

	c.Services = Services{
		Catalog:   catalog,
		Fundings:  fundings,
		Purchases: purchases,
		QnA:       qna,
		Reviews:   reviews,
	}
	return nil
}
