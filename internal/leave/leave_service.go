package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"tourhr/internal/approval"
	"tourhr/internal/directory"
	"tourhr/internal/events"
	leaveerrors "tourhr/internal/leave/errors"
	"tourhr/internal/leavebalance"
	leavebalanceerrors "tourhr/internal/leavebalance/errors"
	"tourhr/internal/leavetype"
	leavetypeerrors "tourhr/internal/leavetype/errors"
	"tourhr/internal/messaging/kafka"
	"tourhr/internal/shared/contextutil"
	"tourhr/internal/trip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// StepMaterializer freezes the tenant's leave approval chain into
// per-request step snapshots.
type StepMaterializer interface {
	MaterializeSteps(ctx context.Context, companyID, requestorID string, entityType approval.EntityType, facts approval.EntityFacts) (approval.StepSnapshotList, string, error)
}

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	GetPendingForApprover(ctx context.Context, companyID, approverID string) ([]LeaveResponse, error)
	ProcessAction(ctx context.Context, companyID, actorID, id string, req LeaveActionRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string, req CancelLeaveRequest) (LeaveResponse, error)
	Revoke(ctx context.Context, companyID, actorID, id string, req RevokeLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	types     leavetype.Repository
	ledger    leavebalance.Ledger
	steps     StepMaterializer
	trips     trip.ConflictFinder
	directory directory.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types leavetype.Repository,
	ledger leavebalance.Ledger,
	steps StepMaterializer,
	trips trip.ConflictFinder,
	dir directory.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		types:     types,
		ledger:    ledger,
		steps:     steps,
		trips:     trips,
		directory: dir,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if req.HalfDay && !startDate.Equal(endDate) {
		return LeaveResponse{}, leaveerrors.ErrHalfDayRange
	}

	employee, err := s.directory.FindByID(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
		}
		return LeaveResponse{}, err
	}

	lt, err := s.types.FindByIDAndCompany(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveResponse{}, err
	}
	if !lt.IsActive {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeInactive
	}
	if !lt.AppliesTo(employee.EmployeeClass) {
		return LeaveResponse{}, leaveerrors.ErrClassNotApplicable
	}
	if lt.RequiresDocument && req.DocumentURL == "" {
		return LeaveResponse{}, leaveerrors.ErrDocumentRequired
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if lt.MinNoticeDays > 0 && startDate.Before(today.AddDate(0, 0, lt.MinNoticeDays)) {
		return LeaveResponse{}, leaveerrors.ErrNoticeTooShort
	}

	totalDays := CalculateLeaveDays(startDate, endDate, req.HalfDay)
	if lt.MaxConsecutiveDays > 0 && totalDays.GreaterThan(decimal.NewFromInt(int64(lt.MaxConsecutiveDays))) {
		return LeaveResponse{}, leaveerrors.ErrTooManyConsecutiveDays
	}

	if HasBlackoutConflict(startDate, endDate, lt.BlackoutPeriods) {
		s.logger.Warn("leave rejected by blackout period",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrBlackoutPeriod
	}

	balance, err := s.ledger.FindByKey(ctx, companyID, req.EmployeeID, req.LeaveTypeID, startDate.Year())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leavebalanceerrors.ErrBalanceNotFound
		}
		return LeaveResponse{}, err
	}
	if balance.Available().LessThan(totalDays) {
		return LeaveResponse{}, leavebalanceerrors.ErrInsufficientBalance
	}

	overlap, err := s.repo.HasOverlapping(ctx, companyID, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	// Trip conflicts flag the request but never block it.
	conflicts, err := s.trips.FindTripConflicts(ctx, companyID, req.EmployeeID, startDate, endDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if len(conflicts) > 0 {
		s.logger.Warn("leave overlaps trip assignment",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("conflicting_trips", len(conflicts)),
		)
	}

	var (
		snaps   approval.StepSnapshotList
		chainID *uuid.UUID
	)
	if lt.RequiresApproval {
		facts := approval.EntityFacts{TotalDays: totalDays, EmployeeClass: employee.EmployeeClass}
		materialized, chain, err := s.steps.MaterializeSteps(ctx, companyID, req.EmployeeID, approval.EntityLeave, facts)
		if err != nil {
			return LeaveResponse{}, err
		}
		snaps = materialized
		if chain != "" {
			id := uuid.MustParse(chain)
			chainID = &id
		}
	}

	now := time.Now().UTC()
	out := approval.ActivateFrom(snaps, 0, now)

	l := &Leave{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		EmployeeID:       employeeUUID,
		LeaveTypeID:      leaveTypeUUID,
		BalanceID:        balance.ID,
		StartDate:        startDate,
		EndDate:          endDate,
		HalfDay:          req.HalfDay,
		TotalDays:        totalDays,
		Reason:           req.Reason,
		Status:           StatusDraft,
		ChainID:          chainID,
		Steps:            out.Steps,
		CurrentStep:      out.CurrentStep,
		HasConflict:      len(conflicts) > 0,
		ConflictingTrips: TripConflictList(conflicts),
	}
	if req.HalfDay && req.HalfDaySide != "" {
		side := req.HalfDaySide
		l.HalfDaySide = &side
	}
	if req.ReplacementID != "" {
		id := uuid.MustParse(req.ReplacementID)
		l.ReplacementID = &id
	}
	if req.DocumentURL != "" {
		u := req.DocumentURL
		l.DocumentURL = &u
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)
	qledger := s.ledger.WithTx(tx)

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// The guard inside Reserve re-checks available under the row, so a
	// concurrent submission cannot double-spend what we saw above.
	if err := qledger.Reserve(ctx, balance.ID.String(), totalDays); err != nil {
		s.logger.Warn("create leave reservation failed",
			zap.String("balance_id", balance.ID.String()),
			zap.String("total_days", totalDays.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if out.Decision == approval.DecisionApproved {
		// No human step required: the reservation commits immediately.
		if err := qledger.Commit(ctx, balance.ID.String(), totalDays); err != nil {
			return LeaveResponse{}, err
		}
		l.Status = StatusApproved
		decidedAt := now
		l.DecidedAt = &decidedAt
	} else {
		l.Status = StatusPending
		approverUUID := uuid.MustParse(out.CurrentApproverID)
		l.CurrentApproverID = &approverUUID
	}

	ok, err := qtx.UpdateCAS(ctx, l, StatusDraft, out.CurrentStep, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrConcurrentUpdate
	}

	if err := s.enqueueLeaveEvent(ctx, tx, l, events.LeaveRequestSubmitted); err != nil {
		return LeaveResponse{}, err
	}
	if l.Status == StatusApproved {
		if err := s.enqueueLeaveEvent(ctx, tx, l, events.LeaveRequestDecided); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("status", l.Status),
		zap.String("total_days", totalDays.String()),
		zap.Bool("has_conflict", l.HasConflict),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetPendingForApprover(ctx context.Context, companyID, approverID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.FindPendingByApprover(ctx, companyID, approverID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ProcessAction(ctx context.Context, companyID, actorID, id string, req LeaveActionRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	in := approval.ActionInput{
		ActorID: actorID,
		Type:    approval.ActionType(req.Action),
		Comment: req.Comment,
	}
	if in.Type == approval.ActionDelegated {
		delegate, err := s.directory.FindByID(ctx, companyID, req.DelegateTo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
			}
			return LeaveResponse{}, err
		}
		in.DelegateTo = approval.Approver{ID: delegate.ID.String(), Name: delegate.FullName}
	}

	now := time.Now().UTC()
	out, err := approval.Transition(approval.StatusPending, l.Steps, l.CurrentStep, in, now)
	if err != nil {
		s.logger.Warn("leave action rejected by engine",
			zap.String("leave_id", id),
			zap.String("actor_id", actorID),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	prevStatus, prevStep := l.Status, l.CurrentStep
	prevApprover := l.CurrentApproverID
	l.Steps = out.Steps
	l.CurrentStep = out.CurrentStep

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)
	qledger := s.ledger.WithTx(tx)

	switch out.Decision {
	case approval.DecisionApproved:
		l.Status = StatusApproved
		actorUUID := uuid.MustParse(actorID)
		l.DecidedBy = &actorUUID
		l.DecidedAt = &now
		l.CurrentApproverID = nil
		if err := qledger.Commit(ctx, l.BalanceID.String(), l.TotalDays); err != nil {
			s.logger.Error("leave approve balance commit failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	case approval.DecisionRejected:
		l.Status = StatusRejected
		actorUUID := uuid.MustParse(actorID)
		l.DecidedBy = &actorUUID
		l.DecidedAt = &now
		l.CurrentApproverID = nil
		if err := qledger.Release(ctx, l.BalanceID.String(), l.TotalDays); err != nil {
			s.logger.Error("leave reject balance release failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	default:
		approverUUID := uuid.MustParse(out.CurrentApproverID)
		l.CurrentApproverID = &approverUUID
	}

	ok, err := qtx.UpdateCAS(ctx, l, prevStatus, prevStep, prevApprover)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrConcurrentUpdate
	}

	if IsTerminal(l.Status) {
		if err := s.enqueueLeaveEvent(ctx, tx, l, events.LeaveRequestDecided); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave action processed",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
		zap.String("status", l.Status),
		zap.Int("current_step", l.CurrentStep),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string, req CancelLeaveRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.EmployeeID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if l.Status != StatusDraft && l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotCancellable
	}

	now := time.Now().UTC()
	prevStatus, prevStep := l.Status, l.CurrentStep
	prevApprover := l.CurrentApproverID
	releaseReservation := l.Status == StatusPending

	l.Status = StatusCancelled
	l.CurrentApproverID = nil
	actorUUID := uuid.MustParse(actorID)
	l.CancelledBy = &actorUUID
	l.CancelledAt = &now
	if req.Reason != "" {
		reason := req.Reason
		l.CancelReason = &reason
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	if releaseReservation {
		if err := s.ledger.WithTx(tx).Release(ctx, l.BalanceID.String(), l.TotalDays); err != nil {
			s.logger.Error("leave cancel balance release failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	ok, err := qtx.UpdateCAS(ctx, l, prevStatus, prevStep, prevApprover)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrConcurrentUpdate
	}

	if err := s.enqueueLeaveEvent(ctx, tx, l, events.LeaveRequestCancelled); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request cancelled",
		zap.String("leave_id", id),
		zap.String("employee_id", actorID),
	)
	return mapToResponse(*l), nil
}

// Revoke is the administrative override that takes an approved leave
// back out of the books, returning the committed days to the balance.
func (s *service) Revoke(ctx context.Context, companyID, actorID, id string, req RevokeLeaveRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	l, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusApproved {
		return LeaveResponse{}, leaveerrors.ErrNotRevocable
	}

	now := time.Now().UTC()
	prevStatus, prevStep := l.Status, l.CurrentStep
	prevApprover := l.CurrentApproverID
	l.Status = StatusRevoked
	l.RevokedBy = &actorUUID
	l.RevokedAt = &now
	reason := req.Reason
	l.RevokeReason = &reason

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	if err := s.ledger.WithTx(tx).Refund(ctx, l.BalanceID.String(), l.TotalDays); err != nil {
		s.logger.Error("leave revoke balance refund failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	ok, err := qtx.UpdateCAS(ctx, l, prevStatus, prevStep, prevApprover)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrConcurrentUpdate
	}

	if err := s.enqueueLeaveEvent(ctx, tx, l, events.LeaveRequestDecided); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request revoked",
		zap.String("leave_id", id),
		zap.String("revoked_by", actorID),
	)
	return mapToResponse(*l), nil
}

func (s *service) enqueueLeaveEvent(ctx context.Context, tx *sql.Tx, l *Leave, eventType string) error {
	if s.outbox == nil {
		return nil
	}
	event := events.LeaveRequestEvent{
		EventType:   eventType,
		LeaveID:     l.ID.String(),
		CompanyID:   l.CompanyID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		Status:      l.Status,
		TotalDays:   l.TotalDays.String(),
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(l Leave) LeaveResponse {
	steps := make([]ApprovalStepResponse, len(l.Steps))
	for i, st := range l.Steps {
		sr := ApprovalStepResponse{
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

	trips := make([]TripConflictResponse, len(l.ConflictingTrips))
	for i, t := range l.ConflictingTrips {
		trips[i] = TripConflictResponse{
			TripID:    t.TripID,
			TripName:  t.TripName,
			StartDate: t.StartDate,
			EndDate:   t.EndDate,
		}
	}

	resp := LeaveResponse{
		ID:               l.ID.String(),
		CompanyID:        l.CompanyID.String(),
		EmployeeID:       l.EmployeeID.String(),
		LeaveTypeID:      l.LeaveTypeID.String(),
		StartDate:        l.StartDate.Format(dateLayout),
		EndDate:          l.EndDate.Format(dateLayout),
		HalfDay:          l.HalfDay,
		TotalDays:        l.TotalDays.String(),
		Reason:           l.Reason,
		Status:           l.Status,
		CurrentStep:      l.CurrentStep,
		Steps:            steps,
		HasConflict:      l.HasConflict,
		ConflictingTrips: trips,
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        l.UpdatedAt.Format(time.RFC3339),
	}
	if l.HalfDaySide != nil {
		resp.HalfDaySide = *l.HalfDaySide
	}
	if l.CurrentApproverID != nil {
		resp.CurrentApproverID = l.CurrentApproverID.String()
	}
	if l.ReplacementID != nil {
		resp.ReplacementID = l.ReplacementID.String()
	}
	if l.DocumentURL != nil {
		resp.DocumentURL = *l.DocumentURL
	}
	if l.CancelReason != nil {
		resp.CancelReason = *l.CancelReason
	}
	if l.RevokeReason != nil {
		resp.RevokeReason = *l.RevokeReason
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
