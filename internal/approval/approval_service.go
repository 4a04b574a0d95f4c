package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	approvalerrors "tourhr/internal/approval/errors"
	"tourhr/internal/directory"
	"tourhr/internal/events"
	"tourhr/internal/messaging/kafka"
	"tourhr/internal/shared/apperror"
	"tourhr/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateChain(ctx context.Context, companyID string, req CreateChainRequest) (ChainResponse, error)
	GetChains(ctx context.Context, companyID, entityType string) ([]ChainResponse, error)
	GetChain(ctx context.Context, companyID, chainID string) (ChainResponse, error)
	UpdateChain(ctx context.Context, companyID, chainID string, req UpdateChainRequest) (ChainResponse, error)
	DeactivateChain(ctx context.Context, companyID, chainID string) error

	SubmitRequest(ctx context.Context, companyID, requestorID string, req SubmitRequestRequest) (RequestResponse, error)
	RecordAction(ctx context.Context, companyID, requestID, actorID string, req ActionRequest) (RequestResponse, error)
	CancelRequest(ctx context.Context, companyID, requestID, actorID string, req CancelRequestRequest) (RequestResponse, error)
	GetRequest(ctx context.Context, companyID, requestID string) (RequestResponse, error)
	ListPendingForApprover(ctx context.Context, companyID, approverID string) ([]RequestResponse, error)

	MaterializeSteps(ctx context.Context, companyID, requestorID string, entityType EntityType, facts EntityFacts) (StepSnapshotList, string, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory directory.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	dir directory.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{db: db, repo: repo, directory: dir, outbox: outbox, logger: l}
}

func (s *service) CreateChain(ctx context.Context, companyID string, req CreateChainRequest) (ChainResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ChainResponse{}, approvalerrors.ErrInvalidCompanyID
	}
	entityType := EntityType(req.EntityType)
	if !entityType.Valid() {
		return ChainResponse{}, approvalerrors.ErrInvalidEntityType
	}

	chainID := uuid.New()
	steps, err := buildChainSteps(chainID, req.Steps)
	if err != nil {
		s.logger.Warn("create chain step validation failed", zap.Error(err))
		return ChainResponse{}, err
	}

	if req.IsDefault {
		if _, err := s.repo.FindDefaultChain(ctx, companyID, entityType); err == nil {
			return ChainResponse{}, approvalerrors.ErrDuplicateDefault
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ChainResponse{}, err
		}
	}

	chain := &ApprovalChain{
		ID:         chainID,
		CompanyID:  companyUUID,
		Name:       req.Name,
		EntityType: entityType,
		IsActive:   true,
		IsDefault:  req.IsDefault,
		Steps:      steps,
	}
	if err := s.repo.CreateChain(ctx, chain); err != nil {
		s.logger.Error("create chain persist failed", zap.Error(err))
		return ChainResponse{}, err
	}

	s.logger.Info("approval chain created",
		zap.String("company_id", companyID),
		zap.String("chain_id", chain.ID.String()),
		zap.String("entity_type", req.EntityType),
		zap.Int("steps", len(steps)),
	)
	return mapChainToResponse(*chain), nil
}

func (s *service) GetChains(ctx context.Context, companyID, entityType string) ([]ChainResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, approvalerrors.ErrInvalidCompanyID
	}
	et := EntityType(entityType)
	if entityType != "" && !et.Valid() {
		return nil, approvalerrors.ErrInvalidEntityType
	}

	chains, err := s.repo.FindChains(ctx, companyID, et)
	if err != nil {
		return nil, err
	}
	resp := make([]ChainResponse, len(chains))
	for i, c := range chains {
		resp[i] = mapChainToResponse(c)
	}
	return resp, nil
}

func (s *service) GetChain(ctx context.Context, companyID, chainID string) (ChainResponse, error) {
	if _, err := uuid.Parse(chainID); err != nil {
		return ChainResponse{}, approvalerrors.ErrInvalidChainID
	}
	chain, err := s.repo.FindChainByID(ctx, companyID, chainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChainResponse{}, approvalerrors.ErrChainNotFound
		}
		return ChainResponse{}, err
	}
	return mapChainToResponse(*chain), nil
}

func (s *service) UpdateChain(ctx context.Context, companyID, chainID string, req UpdateChainRequest) (ChainResponse, error) {
	if _, err := uuid.Parse(chainID); err != nil {
		return ChainResponse{}, approvalerrors.ErrInvalidChainID
	}
	chain, err := s.repo.FindChainByID(ctx, companyID, chainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChainResponse{}, approvalerrors.ErrChainNotFound
		}
		return ChainResponse{}, err
	}

	steps, err := buildChainSteps(chain.ID, req.Steps)
	if err != nil {
		return ChainResponse{}, err
	}

	if req.IsDefault && !chain.IsDefault {
		if existing, err := s.repo.FindDefaultChain(ctx, companyID, chain.EntityType); err == nil && existing.ID != chain.ID {
			return ChainResponse{}, approvalerrors.ErrDuplicateDefault
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return ChainResponse{}, err
		}
	}

	chain.Name = req.Name
	chain.IsDefault = req.IsDefault
	chain.Steps = steps
	if err := s.repo.ReplaceChain(ctx, chain); err != nil {
		s.logger.Error("update chain persist failed",
			zap.String("chain_id", chainID),
			zap.Error(err),
		)
		return ChainResponse{}, err
	}

	s.logger.Info("approval chain updated", zap.String("chain_id", chainID))
	return mapChainToResponse(*chain), nil
}

func (s *service) DeactivateChain(ctx context.Context, companyID, chainID string) error {
	if _, err := uuid.Parse(chainID); err != nil {
		return approvalerrors.ErrInvalidChainID
	}
	if _, err := s.repo.FindChainByID(ctx, companyID, chainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return approvalerrors.ErrChainNotFound
		}
		return err
	}
	if err := s.repo.DeactivateChain(ctx, companyID, chainID); err != nil {
		return err
	}
	s.logger.Info("approval chain deactivated", zap.String("chain_id", chainID))
	return nil
}

func (s *service) SubmitRequest(ctx context.Context, companyID, requestorID string, req SubmitRequestRequest) (RequestResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RequestResponse{}, approvalerrors.ErrInvalidCompanyID
	}
	requestorUUID, err := uuid.Parse(requestorID)
	if err != nil {
		return RequestResponse{}, apperror.InvalidField("requestor_id")
	}
	entityUUID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return RequestResponse{}, apperror.InvalidField("entity_id")
	}
	entityType := EntityType(req.EntityType)
	if !entityType.Valid() {
		return RequestResponse{}, approvalerrors.ErrInvalidEntityType
	}

	facts, err := parseFacts(req)
	if err != nil {
		return RequestResponse{}, err
	}

	chain, err := s.loadChain(ctx, companyID, req.ChainID, entityType)
	if err != nil {
		return RequestResponse{}, err
	}

	snaps, err := s.materialize(ctx, companyID, requestorID, chain, facts)
	if err != nil {
		return RequestResponse{}, err
	}

	now := time.Now().UTC()
	out := ActivateFrom(snaps, 0, now)

	request := &ApprovalRequest{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		ChainID:         chain.ID,
		EntityType:      entityType,
		EntityID:        entityUUID,
		RequestorID:     requestorUUID,
		Steps:           out.Steps,
		Meta:            Metadata(req.Meta),
		StepActivatedAt: now,
		SubmittedAt:     now,
	}
	applyOutcome(request, out, StatusPending, now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	if err := qtx.CreateRequest(ctx, request); err != nil {
		s.logger.Error("submit request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if err := s.appendSkipActions(ctx, qtx, request.ID, out.Skipped); err != nil {
		return RequestResponse{}, err
	}
	if err := s.enqueueRequestEvent(ctx, tx, request, events.ApprovalRequestSubmitted); err != nil {
		return RequestResponse{}, err
	}
	if request.Status.Terminal() {
		if err := s.enqueueRequestEvent(ctx, tx, request, events.ApprovalRequestCompleted); err != nil {
			return RequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("approval request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("entity_type", req.EntityType),
		zap.String("entity_id", req.EntityID),
		zap.String("status", string(request.Status)),
	)
	return mapRequestToResponse(*request), nil
}

func (s *service) RecordAction(ctx context.Context, companyID, requestID, actorID string, req ActionRequest) (RequestResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return RequestResponse{}, approvalerrors.ErrInvalidRequestID
	}

	request, err := s.repo.FindRequestByID(ctx, companyID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, approvalerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	in := ActionInput{
		ActorID: actorID,
		Type:    ActionType(req.Action),
		Comment: req.Comment,
	}
	switch in.Type {
	case ActionApproved, ActionRejected, ActionReturned:
	case ActionDelegated:
		delegate, err := s.directory.FindByID(ctx, companyID, req.DelegateTo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RequestResponse{}, approvalerrors.ErrDelegateRequired
			}
			return RequestResponse{}, err
		}
		in.DelegateTo = Approver{ID: delegate.ID.String(), Name: delegate.FullName}
	default:
		return RequestResponse{}, approvalerrors.ErrInvalidActionType
	}

	now := time.Now().UTC()
	out, err := Transition(request.Status, request.Steps, request.CurrentStep, in, now)
	if err != nil {
		s.logger.Warn("record action rejected by engine",
			zap.String("request_id", requestID),
			zap.String("actor_id", actorID),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	prevStatus, prevStep := request.Status, request.CurrentStep
	prevApprover := request.CurrentApproverID
	request.Steps = out.Steps
	applyOutcome(request, out, StatusInProgress, now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	action := &ApprovalAction{
		ID:        uuid.New(),
		RequestID: request.ID,
		StepOrder: out.Steps[prevStep].Order,
		ActorID:   actorID,
		Action:    in.Type,
		Comment:   req.Comment,
	}
	if in.Type == ActionDelegated {
		delegUUID := uuid.MustParse(in.DelegateTo.ID)
		action.DelegToID = &delegUUID
	}
	if err := qtx.AppendAction(ctx, action); err != nil {
		s.logger.Error("append action failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if err := s.appendSkipActions(ctx, qtx, request.ID, out.Skipped); err != nil {
		return RequestResponse{}, err
	}

	ok, err := qtx.UpdateRequestCAS(ctx, request, prevStatus, prevStep, prevApprover)
	if err != nil {
		s.logger.Error("record action update failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if !ok {
		return RequestResponse{}, approvalerrors.ErrConcurrentAction
	}

	if request.Status.Terminal() {
		if err := s.enqueueRequestEvent(ctx, tx, request, events.ApprovalRequestCompleted); err != nil {
			return RequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record action commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("approval action recorded",
		zap.String("request_id", requestID),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
		zap.String("status", string(request.Status)),
		zap.Int("current_step", request.CurrentStep),
	)
	return mapRequestToResponse(*request), nil
}

func (s *service) CancelRequest(ctx context.Context, companyID, requestID, actorID string, req CancelRequestRequest) (RequestResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return RequestResponse{}, approvalerrors.ErrInvalidRequestID
	}

	request, err := s.repo.FindRequestByID(ctx, companyID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, approvalerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if request.RequestorID.String() != actorID {
		return RequestResponse{}, approvalerrors.ErrNotRequestor
	}
	if request.Status.Terminal() {
		return RequestResponse{}, approvalerrors.ErrRequestClosed
	}

	now := time.Now().UTC()
	prevStatus, prevStep := request.Status, request.CurrentStep
	prevApprover := request.CurrentApproverID
	request.Status = StatusCancelled
	request.CurrentApproverID = nil
	request.AutoApproveAt = nil
	request.EscalateAt = nil
	request.CompletedAt = &now
	if req.Reason != "" {
		if request.Meta == nil {
			request.Meta = Metadata{}
		}
		request.Meta["cancel_reason"] = req.Reason
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	ok, err := qtx.UpdateRequestCAS(ctx, request, prevStatus, prevStep, prevApprover)
	if err != nil {
		return RequestResponse{}, err
	}
	if !ok {
		return RequestResponse{}, approvalerrors.ErrConcurrentAction
	}
	if err := s.enqueueRequestEvent(ctx, tx, request, events.ApprovalRequestCompleted); err != nil {
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	s.logger.Info("approval request cancelled",
		zap.String("request_id", requestID),
		zap.String("requestor_id", actorID),
	)
	return mapRequestToResponse(*request), nil
}

func (s *service) GetRequest(ctx context.Context, companyID, requestID string) (RequestResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return RequestResponse{}, approvalerrors.ErrInvalidRequestID
	}
	request, err := s.repo.FindRequestByID(ctx, companyID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, approvalerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	return mapRequestToResponse(*request), nil
}

func (s *service) ListPendingForApprover(ctx context.Context, companyID, approverID string) ([]RequestResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return nil, apperror.InvalidField("approver_id")
	}
	requests, err := s.repo.FindPendingByApprover(ctx, companyID, approverID)
	if err != nil {
		return nil, err
	}
	resp := make([]RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapRequestToResponse(r)
	}
	return resp, nil
}

// MaterializeSteps freezes the governing chain into per-request step
// snapshots. Tenants without a default LEAVE chain fall back to a
// single direct-manager step so leave never goes unapproved.
func (s *service) MaterializeSteps(ctx context.Context, companyID, requestorID string, entityType EntityType, facts EntityFacts) (StepSnapshotList, string, error) {
	chain, err := s.repo.FindDefaultChain(ctx, companyID, entityType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}
		if entityType != EntityLeave {
			return nil, "", approvalerrors.ErrChainNotFound
		}
		manager, err := s.directory.FindManager(ctx, companyID, requestorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", approvalerrors.ErrApproverUnresolved
			}
			return nil, "", err
		}
		snap := StepSnapshot{
			Order:        1,
			Name:         "Manager approval",
			ApproverID:   manager.ID.String(),
			ApproverName: manager.FullName,
			Status:       StepPending,
		}
		return StepSnapshotList{snap}, "", nil
	}

	snaps, err := s.materialize(ctx, companyID, requestorID, chain, facts)
	if err != nil {
		return nil, "", err
	}
	return snaps, chain.ID.String(), nil
}

func (s *service) loadChain(ctx context.Context, companyID, chainID string, entityType EntityType) (*ApprovalChain, error) {
	if chainID == "" {
		chain, err := s.repo.FindDefaultChain(ctx, companyID, entityType)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, approvalerrors.ErrChainNotFound
			}
			return nil, err
		}
		return chain, nil
	}

	if _, err := uuid.Parse(chainID); err != nil {
		return nil, approvalerrors.ErrInvalidChainID
	}
	chain, err := s.repo.FindChainByID(ctx, companyID, chainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approvalerrors.ErrChainNotFound
		}
		return nil, err
	}
	if !chain.IsActive || chain.EntityType != entityType {
		return nil, approvalerrors.ErrChainNotFound
	}
	return chain, nil
}

// materialize resolves every in-band step's approver and freezes the
// result. Out-of-band steps never enter the snapshot at all.
func (s *service) materialize(ctx context.Context, companyID, requestorID string, chain *ApprovalChain, facts EntityFacts) (StepSnapshotList, error) {
	snaps := make(StepSnapshotList, 0, len(chain.Steps))
	for _, step := range chain.Steps {
		if !step.InBand(facts.Amount) {
			continue
		}
		approver, err := s.resolveApprover(ctx, companyID, requestorID, step)
		if err != nil {
			return nil, err
		}
		snap := NewSnapshot(step, approver, facts)
		if step.EscalateTo != nil {
			target, err := s.directory.FindByID(ctx, companyID, step.EscalateTo.String())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, approvalerrors.ErrApproverUnresolved
				}
				return nil, err
			}
			snap.EscalateToName = target.FullName
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func (s *service) resolveApprover(ctx context.Context, companyID, requestorID string, step ChainStep) (Approver, error) {
	var (
		emp *directory.Employee
		err error
	)
	switch step.ApproverType {
	case ApproverDirectManager:
		emp, err = s.directory.FindManager(ctx, companyID, requestorID)
	case ApproverDepartmentHead:
		emp, err = s.directory.FindDepartmentHead(ctx, companyID, requestorID)
	case ApproverHRManager:
		emp, err = s.directory.FindRoleHolder(ctx, companyID, "HR_MANAGER")
	case ApproverFinanceManager:
		emp, err = s.directory.FindRoleHolder(ctx, companyID, "FINANCE_MANAGER")
	case ApproverUser, ApproverCustom:
		if step.ApproverID == nil {
			return Approver{}, approvalerrors.ErrApproverRequired
		}
		emp, err = s.directory.FindByID(ctx, companyID, step.ApproverID.String())
	case ApproverRole:
		if step.ApproverRole == nil {
			return Approver{}, approvalerrors.ErrApproverRequired
		}
		emp, err = s.directory.FindRoleHolder(ctx, companyID, *step.ApproverRole)
	default:
		return Approver{}, approvalerrors.ErrApproverRequired
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("approver resolution failed",
				zap.String("approver_type", string(step.ApproverType)),
				zap.String("requestor_id", requestorID),
			)
			return Approver{}, approvalerrors.ErrApproverUnresolved
		}
		return Approver{}, err
	}
	return Approver{ID: emp.ID.String(), Name: emp.FullName}, nil
}

func (s *service) appendSkipActions(ctx context.Context, repo Repository, requestID uuid.UUID, skipped []int) error {
	for _, order := range skipped {
		action := &ApprovalAction{
			ID:        uuid.New(),
			RequestID: requestID,
			StepOrder: order,
			ActorID:   SystemActor,
			Action:    ActionSkipped,
		}
		if err := repo.AppendAction(ctx, action); err != nil {
			s.logger.Error("append skip action failed",
				zap.String("request_id", requestID.String()),
				zap.Int("step_order", order),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func (s *service) enqueueRequestEvent(ctx context.Context, tx *sql.Tx, request *ApprovalRequest, eventType string) error {
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
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "approval_request",
		AggregateID:   request.ID.String(),
		EventType:     eventType,
		Topic:         events.ApprovalLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// applyOutcome folds a StepOutcome into the request row, including the
// denormalized approver and timer columns.
func applyOutcome(request *ApprovalRequest, out StepOutcome, progressStatus RequestStatus, now time.Time) {
	request.Steps = out.Steps
	request.CurrentStep = out.CurrentStep

	switch out.Decision {
	case DecisionApproved:
		request.Status = StatusApproved
	case DecisionRejected:
		request.Status = StatusRejected
	case DecisionAdvanced:
		request.Status = progressStatus
	case DecisionDelegated:
		if request.Status != StatusEscalated {
			request.Status = progressStatus
		}
	}

	if request.Status.Terminal() {
		request.CurrentApproverID = nil
		request.AutoApproveAt = nil
		request.EscalateAt = nil
		request.CompletedAt = &now
		return
	}

	approverUUID := uuid.MustParse(out.CurrentApproverID)
	request.CurrentApproverID = &approverUUID
	if out.Decision == DecisionAdvanced {
		request.StepActivatedAt = now
		request.AutoApproveAt, request.EscalateAt = StepDeadlines(out.Steps, out.CurrentStep, now)
	}
}

func parseFacts(req SubmitRequestRequest) (EntityFacts, error) {
	facts := EntityFacts{EmployeeClass: req.EmployeeClass}
	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return EntityFacts{}, apperror.InvalidField("amount")
		}
		facts.Amount = amount
	}
	if req.TotalDays != "" {
		days, err := decimal.NewFromString(req.TotalDays)
		if err != nil {
			return EntityFacts{}, apperror.InvalidField("total_days")
		}
		facts.TotalDays = days
	}
	return facts, nil
}

func buildChainSteps(chainID uuid.UUID, reqs []ChainStepRequest) ([]ChainStep, error) {
	if len(reqs) == 0 {
		return nil, approvalerrors.ErrNoSteps
	}

	steps := make([]ChainStep, len(reqs))
	for i, sr := range reqs {
		approverType := ApproverType(sr.ApproverType)
		if !approverType.Valid() {
			return nil, apperror.InvalidField("approver_type")
		}

		step := ChainStep{
			ID:                   uuid.New(),
			ChainID:              chainID,
			StepOrder:            i + 1,
			Name:                 sr.Name,
			ApproverType:         approverType,
			CanSkip:              sr.CanSkip,
			AutoApproveAfterDays: sr.AutoApproveAfterDays,
			EscalateAfterDays:    sr.EscalateAfterDays,
			RequiresComment:      sr.RequiresComment,
		}

		switch approverType {
		case ApproverUser, ApproverCustom:
			id, err := uuid.Parse(sr.ApproverID)
			if err != nil {
				return nil, approvalerrors.ErrApproverRequired
			}
			step.ApproverID = &id
		case ApproverRole:
			if sr.ApproverRole == "" {
				return nil, approvalerrors.ErrApproverRequired
			}
			role := sr.ApproverRole
			step.ApproverRole = &role
		}

		if sr.CanSkip {
			if sr.SkipCondition == nil {
				return nil, approvalerrors.ErrInvalidSkipCondition
			}
			if err := sr.SkipCondition.Validate(); err != nil {
				return nil, approvalerrors.ErrInvalidSkipCondition
			}
			step.SkipCondition = sr.SkipCondition
		}

		if sr.EscalateAfterDays != nil {
			id, err := uuid.Parse(sr.EscalateTo)
			if err != nil {
				return nil, apperror.RequiredField("escalate_to")
			}
			step.EscalateTo = &id
		}

		if sr.MinAmount != "" {
			minAmount, err := decimal.NewFromString(sr.MinAmount)
			if err != nil {
				return nil, apperror.InvalidField("min_amount")
			}
			step.MinAmount = &minAmount
		}
		if sr.MaxAmount != "" {
			maxAmount, err := decimal.NewFromString(sr.MaxAmount)
			if err != nil {
				return nil, apperror.InvalidField("max_amount")
			}
			step.MaxAmount = &maxAmount
		}
		if step.MinAmount != nil && step.MaxAmount != nil && step.MinAmount.GreaterThan(*step.MaxAmount) {
			return nil, approvalerrors.ErrInvalidAmountBand
		}

		steps[i] = step
	}
	return steps, nil
}

func mapChainToResponse(c ApprovalChain) ChainResponse {
	steps := make([]ChainStepResponse, len(c.Steps))
	for i, st := range c.Steps {
		sr := ChainStepResponse{
			ID:                   st.ID.String(),
			StepOrder:            st.StepOrder,
			Name:                 st.Name,
			ApproverType:         string(st.ApproverType),
			CanSkip:              st.CanSkip,
			SkipCondition:        st.SkipCondition,
			AutoApproveAfterDays: st.AutoApproveAfterDays,
			EscalateAfterDays:    st.EscalateAfterDays,
			RequiresComment:      st.RequiresComment,
		}
		if st.ApproverID != nil {
			sr.ApproverID = st.ApproverID.String()
		}
		if st.ApproverRole != nil {
			sr.ApproverRole = *st.ApproverRole
		}
		if st.EscalateTo != nil {
			sr.EscalateTo = st.EscalateTo.String()
		}
		if st.MinAmount != nil {
			sr.MinAmount = st.MinAmount.String()
		}
		if st.MaxAmount != nil {
			sr.MaxAmount = st.MaxAmount.String()
		}
		steps[i] = sr
	}

	return ChainResponse{
		ID:         c.ID.String(),
		CompanyID:  c.CompanyID.String(),
		Name:       c.Name,
		EntityType: string(c.EntityType),
		IsActive:   c.IsActive,
		IsDefault:  c.IsDefault,
		Steps:      steps,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  c.UpdatedAt.Format(time.RFC3339),
	}
}

func mapRequestToResponse(r ApprovalRequest) RequestResponse {
	steps := make([]StepSnapshotResponse, len(r.Steps))
	for i, st := range r.Steps {
		sr := StepSnapshotResponse{
			Order:        st.Order,
			Name:         st.Name,
			ApproverID:   st.ApproverID,
			ApproverName: st.ApproverName,
			Status:       st.Status,
			Comment:      st.Comment,
			ActedBy:      st.ActedBy,
		}
		if st.ActedAt != nil {
			sr.ActedAt = st.ActedAt.Format(time.RFC3339)
		}
		steps[i] = sr
	}

	actions := make([]ActionResponse, len(r.Actions))
	for i, a := range r.Actions {
		ar := ActionResponse{
			StepOrder: a.StepOrder,
			ActorID:   a.ActorID,
			Action:    string(a.Action),
			Comment:   a.Comment,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
		if a.DelegToID != nil {
			ar.DelegatedTo = a.DelegToID.String()
		}
		actions[i] = ar
	}

	resp := RequestResponse{
		ID:          r.ID.String(),
		CompanyID:   r.CompanyID.String(),
		ChainID:     r.ChainID.String(),
		EntityType:  string(r.EntityType),
		EntityID:    r.EntityID.String(),
		RequestorID: r.RequestorID.String(),
		Status:      string(r.Status),
		CurrentStep: r.CurrentStep,
		Steps:       steps,
		Actions:     actions,
		SubmittedAt: r.SubmittedAt.Format(time.RFC3339),
	}
	if r.CurrentApproverID != nil {
		resp.CurrentApproverID = r.CurrentApproverID.String()
	}
	if r.CompletedAt != nil {
		resp.CompletedAt = r.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
