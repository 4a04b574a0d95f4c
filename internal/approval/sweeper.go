package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"tourhr/internal/events"
	"tourhr/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sweepBatchSize = 100

// SweepStats summarizes one pass of the timer sweep.
type SweepStats struct {
	Escalated    int
	AutoApproved int
	Skipped      int
	Failed       int
}

// Sweeper applies step timers: escalation first, then auto-approval.
// Every write goes through the same compare-and-swap as manual actions,
// so a request an approver touched mid-sweep is simply skipped.
type Sweeper struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewSweeper(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) *Sweeper {
	l := zap.L().Named("approval.sweeper")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.sweeper")
	}
	return &Sweeper{db: db, repo: repo, outbox: outbox, logger: l}
}

// Sweep runs one pass. A failure on one request is logged and the batch
// moves on; only the due-list queries themselves abort the pass.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (SweepStats, error) {
	var stats SweepStats

	due, err := s.repo.FindEscalationDue(ctx, now, sweepBatchSize)
	if err != nil {
		return stats, err
	}
	for i := range due {
		switch done, err := s.escalate(ctx, &due[i], now); {
		case err != nil:
			stats.Failed++
			s.logger.Error("escalation failed",
				zap.String("request_id", due[i].ID.String()),
				zap.Error(err),
			)
		case done:
			stats.Escalated++
		default:
			stats.Skipped++
		}
	}

	overdue, err := s.repo.FindAutoApproveDue(ctx, now, sweepBatchSize)
	if err != nil {
		return stats, err
	}
	for i := range overdue {
		switch done, err := s.autoApprove(ctx, &overdue[i], now); {
		case err != nil:
			stats.Failed++
			s.logger.Error("auto-approve failed",
				zap.String("request_id", overdue[i].ID.String()),
				zap.Error(err),
			)
		case done:
			stats.AutoApproved++
		default:
			stats.Skipped++
		}
	}

	if stats != (SweepStats{}) {
		s.logger.Info("sweep pass done",
			zap.Int("escalated", stats.Escalated),
			zap.Int("auto_approved", stats.AutoApproved),
			zap.Int("skipped", stats.Skipped),
			zap.Int("failed", stats.Failed),
		)
	}
	return stats, nil
}

func (s *Sweeper) escalate(ctx context.Context, request *ApprovalRequest, now time.Time) (bool, error) {
	out, err := Escalate(request.Steps, request.CurrentStep, now)
	if err != nil {
		return false, err
	}

	prevStatus, prevStep := request.Status, request.CurrentStep
	prevApprover := request.CurrentApproverID
	request.Steps = out.Steps
	request.Status = StatusEscalated
	approverUUID, err := uuid.Parse(out.CurrentApproverID)
	if err != nil {
		return false, err
	}
	request.CurrentApproverID = &approverUUID
	// One-shot: the escalation deadline clears, the auto-approve
	// deadline keeps its original basis.
	request.EscalateAt = nil

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	action := &ApprovalAction{
		ID:        uuid.New(),
		RequestID: request.ID,
		StepOrder: out.Steps[prevStep].Order,
		ActorID:   SystemActor,
		Action:    ActionEscalated,
		Comment:   "Escalated after response deadline",
	}
	if err := qtx.AppendAction(ctx, action); err != nil {
		return false, err
	}

	ok, err := qtx.UpdateRequestCAS(ctx, request, prevStatus, prevStep, prevApprover)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := s.enqueueEvent(ctx, tx, request, events.ApprovalRequestEscalated); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (s *Sweeper) autoApprove(ctx context.Context, request *ApprovalRequest, now time.Time) (bool, error) {
	in := ActionInput{
		ActorID: SystemActor,
		Type:    ActionApproved,
		Comment: "Auto-approved after response deadline",
	}
	out, err := Transition(request.Status, request.Steps, request.CurrentStep, in, now)
	if err != nil {
		return false, err
	}

	prevStatus, prevStep := request.Status, request.CurrentStep
	prevApprover := request.CurrentApproverID
	request.Steps = out.Steps
	request.CurrentStep = out.CurrentStep
	switch out.Decision {
	case DecisionApproved:
		request.Status = StatusApproved
		request.CurrentApproverID = nil
		request.AutoApproveAt = nil
		request.EscalateAt = nil
		completedAt := now
		request.CompletedAt = &completedAt
	case DecisionAdvanced:
		request.Status = StatusInProgress
		approverUUID, err := uuid.Parse(out.CurrentApproverID)
		if err != nil {
			return false, err
		}
		request.CurrentApproverID = &approverUUID
		request.StepActivatedAt = now
		request.AutoApproveAt, request.EscalateAt = StepDeadlines(out.Steps, out.CurrentStep, now)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	action := &ApprovalAction{
		ID:        uuid.New(),
		RequestID: request.ID,
		StepOrder: out.Steps[prevStep].Order,
		ActorID:   SystemActor,
		Action:    ActionApproved,
		Comment:   in.Comment,
	}
	if err := qtx.AppendAction(ctx, action); err != nil {
		return false, err
	}
	for _, order := range out.Skipped {
		skip := &ApprovalAction{
			ID:        uuid.New(),
			RequestID: request.ID,
			StepOrder: order,
			ActorID:   SystemActor,
			Action:    ActionSkipped,
		}
		if err := qtx.AppendAction(ctx, skip); err != nil {
			return false, err
		}
	}

	ok, err := qtx.UpdateRequestCAS(ctx, request, prevStatus, prevStep, prevApprover)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if request.Status.Terminal() {
		if err := s.enqueueEvent(ctx, tx, request, events.ApprovalRequestCompleted); err != nil {
			return false, err
		}
	}
	return true, tx.Commit()
}

func (s *Sweeper) enqueueEvent(ctx context.Context, tx *sql.Tx, request *ApprovalRequest, eventType string) error {
	if s.outbox == nil {
		return nil
	}
	event := events.ApprovalRequestEvent{
		EventType:   eventType,
		RequestID:   request.ID.String(),
		CompanyID:   request.CompanyID.String(),
		EntityType:  string(request.EntityType),
		EntityID:    request.EntityID.String(),
		RequestorID: request.RequestorID.String(),
		Status:      string(request.Status),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "approval_request",
		AggregateID:   request.ID.String(),
		EventType:     eventType,
		Topic:         events.ApprovalLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
