package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/payments"
	"github.com/techfunding/api/internal/repositories"
)

var (
	// ErrFundingSessionNotFound indicates no confirmation session exists for the id.
	ErrFundingSessionNotFound = errors.New("funding service: session not found")
	// ErrFundingInvalidState indicates the requested transition is not legal from the session's state.
	ErrFundingInvalidState = errors.New("funding service: invalid session state")
	// ErrFundingNotSupported indicates the project's category does not accept fundings.
	ErrFundingNotSupported = errors.New("funding service: category does not support funding")
	// ErrFundingRewardRequired indicates the project defines rewards but none was selected.
	ErrFundingRewardRequired = errors.New("funding service: reward selection is required")
	// ErrFundingRewardNotFound indicates the selected reward does not exist on the project.
	ErrFundingRewardNotFound = errors.New("funding service: reward not found")
	// ErrFundingRewardSoldOut indicates the selected reward has no remaining quantity.
	ErrFundingRewardSoldOut = errors.New("funding service: reward sold out")
)

// FundingServiceDeps bundles constructor inputs for the funding service.
type FundingServiceDeps struct {
	Projects  repositories.ProjectRepository
	Fundings  repositories.FundingRepository
	Settler   payments.Settler
	Publisher FundingEventPublisher
	Logger    *zap.Logger
	Clock     func() time.Time
	NewID     func() string
}

type fundingService struct {
	projects  repositories.ProjectRepository
	fundings  repositories.FundingRepository
	settler   payments.Settler
	publisher FundingEventPublisher
	logger    *zap.Logger
	clock     func() time.Time
	newID     func() string
	printer   *message.Printer

	mu       sync.RWMutex
	sessions map[string]FundingSession
}

// NewFundingService constructs the funding confirmation service.
func NewFundingService(deps FundingServiceDeps) (FundingService, error) {
	if deps.Projects == nil {
		return nil, fmt.Errorf("funding service: project repository is required")
	}
	if deps.Fundings == nil {
		return nil, fmt.Errorf("funding service: funding repository is required")
	}
	if deps.Settler == nil {
		return nil, fmt.Errorf("funding service: settler is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fundingService{
		projects:  deps.Projects,
		fundings:  deps.Fundings,
		settler:   deps.Settler,
		publisher: deps.Publisher,
		logger:    logger.Named("funding"),
		clock:     func() time.Time { return clock().UTC() },
		newID:     newID,
		printer:   message.NewPrinter(language.Korean),
		sessions:  make(map[string]FundingSession),
	}, nil
}

// Start validates the target project and opens a confirmation session. No
// charge exists until Confirm succeeds.
func (s *fundingService) Start(ctx context.Context, cmd StartFundingCommand) (FundingSession, error) {
	projectID := strings.TrimSpace(cmd.ProjectID)
	if projectID == "" {
		return FundingSession{}, ErrProjectIDRequired
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return FundingSession{}, err
	}

	if info, ok := domain.CategoryByID(project.Category); ok && !info.SupportsFunding {
		return FundingSession{}, ErrFundingNotSupported
	}

	rewardID := strings.TrimSpace(cmd.RewardID)
	var rewardName string
	if len(project.Rewards) > 0 {
		if rewardID == "" {
			return FundingSession{}, ErrFundingRewardRequired
		}
		reward, ok := findReward(project.Rewards, rewardID)
		if !ok {
			return FundingSession{}, ErrFundingRewardNotFound
		}
		if reward.MaxQuantity > 0 && reward.CurrentQuantity >= reward.MaxQuantity {
			return FundingSession{}, ErrFundingRewardSoldOut
		}
		rewardName = reward.Name
	} else if rewardID != "" {
		return FundingSession{}, ErrFundingRewardNotFound
	}

	now := s.clock()
	session := FundingSession{
		ID:           s.newID(),
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
		RewardID:     rewardID,
		RewardName:   rewardName,
		Amount:       domain.FundingAmount,
		State:        FundingStateConfirmPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Get returns the current session snapshot.
func (s *fundingService) Get(ctx context.Context, sessionID string) (FundingSession, error) {
	if err := ctx.Err(); err != nil {
		return FundingSession{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok {
		return FundingSession{}, ErrFundingSessionNotFound
	}
	return session, nil
}

// Confirm moves the session to processing and settles the fixed-amount charge.
// A cancelled context aborts the settlement and reopens the confirmation, so
// an abandoned dialog never results in a charge.
func (s *fundingService) Confirm(ctx context.Context, sessionID string) (FundingSession, error) {
	sessionID = strings.TrimSpace(sessionID)

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return FundingSession{}, ErrFundingSessionNotFound
	}
	if session.State != FundingStateConfirmPending {
		s.mu.Unlock()
		return FundingSession{}, ErrFundingInvalidState
	}
	session.State = FundingStateProcessing
	session.UpdatedAt = s.clock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	result, err := s.settler.Settle(ctx, payments.SettlementRequest{
		SessionID: session.ID,
		ProjectID: session.ProjectID,
		RewardID:  session.RewardID,
		Amount:    session.Amount,
	})
	if err != nil && !errors.Is(err, payments.ErrSettlementDeclined) {
		// Settlement never started or was interrupted; reopen the confirmation.
		s.transition(sessionID, func(sess *FundingSession) {
			sess.State = FundingStateConfirmPending
			sess.UpdatedAt = s.clock()
		})
		return FundingSession{}, err
	}

	if errors.Is(err, payments.ErrSettlementDeclined) {
		return s.settleFailed(ctx, session)
	}
	return s.settleSucceeded(ctx, session, result)
}

func (s *fundingService) settleFailed(ctx context.Context, session FundingSession) (FundingSession, error) {
	record := domain.Funding{
		ID:        s.newID(),
		ProjectID: session.ProjectID,
		RewardID:  session.RewardID,
		Amount:    session.Amount,
		Status:    domain.TransactionStatusFailed,
		CreatedAt: s.clock(),
	}
	if _, err := s.fundings.Insert(ctx, record); err != nil {
		s.logger.Warn("record failed settlement", zap.String("sessionId", session.ID), zap.Error(err))
	}

	updated, _ := s.transition(session.ID, func(sess *FundingSession) {
		sess.State = FundingStateFailed
		sess.FundingID = record.ID
		sess.Message = "결제가 거절되었습니다. 다시 시도해주세요."
		sess.UpdatedAt = s.clock()
	})
	return updated, nil
}

func (s *fundingService) settleSucceeded(ctx context.Context, session FundingSession, result payments.SettlementResult) (FundingSession, error) {
	if _, err := s.projects.AddFunding(ctx, session.ProjectID, session.RewardID, session.Amount); err != nil {
		s.transition(session.ID, func(sess *FundingSession) {
			sess.State = FundingStateConfirmPending
			sess.UpdatedAt = s.clock()
		})
		return FundingSession{}, err
	}

	record := domain.Funding{
		ID:        s.newID(),
		ProjectID: session.ProjectID,
		RewardID:  session.RewardID,
		Amount:    session.Amount,
		Status:    domain.TransactionStatusCompleted,
		CreatedAt: result.SettledAt,
	}
	if _, err := s.fundings.Insert(ctx, record); err != nil {
		// The charge already landed on the project; a missing record must not
		// strand the session in processing.
		s.logger.Warn("record completed settlement", zap.String("sessionId", session.ID), zap.Error(err))
	}

	if s.publisher != nil {
		msg := FundingSettledMessage{
			FundingID: record.ID,
			ProjectID: record.ProjectID,
			RewardID:  record.RewardID,
			Amount:    record.Amount,
			Status:    string(record.Status),
			SettledAt: record.CreatedAt,
		}
		if _, err := s.publisher.PublishFundingSettled(ctx, msg); err != nil {
			s.logger.Warn("publish funding event", zap.String("fundingId", record.ID), zap.Error(err))
		}
	}

	updated, _ := s.transition(session.ID, func(sess *FundingSession) {
		sess.State = FundingStateSucceeded
		sess.FundingID = record.ID
		sess.Message = s.successMessage(*sess)
		sess.UpdatedAt = s.clock()
	})
	return updated, nil
}

func (s *fundingService) successMessage(session FundingSession) string {
	return s.printer.Sprintf("%v원 후원이 완료되었습니다. 후원한 프로젝트: %s",
		number.Decimal(session.Amount), session.ProjectTitle)
}

// Cancel abandons a pending confirmation. The session is discarded and no
// charge exists.
func (s *fundingService) Cancel(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrFundingSessionNotFound
	}
	if session.State != FundingStateConfirmPending {
		return ErrFundingInvalidState
	}
	delete(s.sessions, sessionID)
	return nil
}

// Dismiss closes a resolved session, returning the flow to idle.
func (s *fundingService) Dismiss(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrFundingSessionNotFound
	}
	if session.State != FundingStateSucceeded && session.State != FundingStateFailed {
		return ErrFundingInvalidState
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *fundingService) transition(sessionID string, mutate func(*FundingSession)) (FundingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return FundingSession{}, false
	}
	mutate(&session)
	s.sessions[sessionID] = session
	return session, true
}

func findReward(rewards []domain.Reward, rewardID string) (domain.Reward, bool) {
	for _, reward := range rewards {
		if reward.ID == rewardID {
			return reward, true
		}
	}
	return domain.Reward{}, false
}
