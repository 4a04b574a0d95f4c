package leavetype

import (
	"context"
	"errors"
	"time"

	leavetypeerrors "tourhr/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, companyID string, activeOnly bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidCompanyID
	}

	maxDays, carryLimit, accrualAmount, err := parseDayAmounts(req.MaxDaysPerYear, req.CarryForwardLimit, req.AccrualAmount)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	blackouts, err := parseBlackoutPeriods(req.BlackoutPeriods)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	if existing, err := s.repo.FindByCodeAndCompany(ctx, companyID, req.Code); err == nil && existing != nil && existing.ID != uuid.Nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrDuplicateCode
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveTypeResponse{}, err
	}

	requiresApproval := true
	if req.RequiresApproval != nil {
		requiresApproval = *req.RequiresApproval
	}
	accrualPolicy := req.AccrualPolicy
	if accrualPolicy == "" {
		accrualPolicy = AccrualAnnual
	}

	t := &LeaveType{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		Code:               req.Code,
		Name:               req.Name,
		IsPaid:             req.IsPaid,
		MaxDaysPerYear:     maxDays,
		CarryForwardLimit:  carryLimit,
		MinNoticeDays:      req.MinNoticeDays,
		MaxConsecutiveDays: req.MaxConsecutiveDays,
		ApplicableClasses:  req.ApplicableClasses,
		RequiresApproval:   requiresApproval,
		RequiresDocument:   req.RequiresDocument,
		AccrualPolicy:      accrualPolicy,
		AccrualAmount:      accrualAmount,
		BlackoutPeriods:    blackouts,
		IsActive:           true,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success",
		zap.String("leave_type_id", t.ID.String()),
		zap.String("company_id", companyID),
		zap.String("code", t.Code),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, activeOnly bool) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAllByCompany(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	maxDays, carryLimit, accrualAmount, err := parseDayAmounts(req.MaxDaysPerYear, req.CarryForwardLimit, req.AccrualAmount)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	blackouts, err := parseBlackoutPeriods(req.BlackoutPeriods)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	// Code is immutable once created; balances reference it by id.
	t.Name = req.Name
	t.IsPaid = req.IsPaid
	t.MaxDaysPerYear = maxDays
	t.CarryForwardLimit = carryLimit
	t.MinNoticeDays = req.MinNoticeDays
	t.MaxConsecutiveDays = req.MaxConsecutiveDays
	t.ApplicableClasses = req.ApplicableClasses
	if req.RequiresApproval != nil {
		t.RequiresApproval = *req.RequiresApproval
	}
	t.RequiresDocument = req.RequiresDocument
	if req.AccrualPolicy != "" {
		t.AccrualPolicy = req.AccrualPolicy
	}
	t.AccrualAmount = accrualAmount
	t.BlackoutPeriods = blackouts

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*t), nil
}

// Deactivate is the only removal path. Leave types are never deleted
// because balances and requests keep referencing them.
func (s *service) Deactivate(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	t.IsActive = false
	if err := s.repo.Update(ctx, t); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave type deactivated",
		zap.String("leave_type_id", id),
		zap.String("company_id", companyID),
	)
	return mapToResponse(*t), nil
}

func parseDayAmounts(maxDays, carryLimit, accrualAmount string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	md, err := decimal.NewFromString(maxDays)
	if err != nil || md.IsNegative() {
		return decimal.Zero, decimal.Zero, decimal.Zero, leavetypeerrors.ErrInvalidDayAmount
	}
	cl := decimal.Zero
	if carryLimit != "" {
		cl, err = decimal.NewFromString(carryLimit)
		if err != nil || cl.IsNegative() {
			return decimal.Zero, decimal.Zero, decimal.Zero, leavetypeerrors.ErrInvalidDayAmount
		}
	}
	aa := decimal.Zero
	if accrualAmount != "" {
		aa, err = decimal.NewFromString(accrualAmount)
		if err != nil || aa.IsNegative() {
			return decimal.Zero, decimal.Zero, decimal.Zero, leavetypeerrors.ErrInvalidDayAmount
		}
	}
	return md, cl, aa, nil
}

func parseBlackoutPeriods(payloads []BlackoutPeriodPayload) (BlackoutPeriodList, error) {
	periods := make(BlackoutPeriodList, 0, len(payloads))
	for _, p := range payloads {
		from, err := time.Parse("2006-01-02", p.From)
		if err != nil {
			return nil, leavetypeerrors.ErrInvalidDateFormat
		}
		to, err := time.Parse("2006-01-02", p.To)
		if err != nil {
			return nil, leavetypeerrors.ErrInvalidDateFormat
		}
		if from.After(to) {
			return nil, leavetypeerrors.ErrInvalidBlackoutRange
		}
		periods = append(periods, BlackoutPeriod{Name: p.Name, From: from, To: to})
	}
	return periods, nil
}

func mapToResponse(t LeaveType) LeaveTypeResponse {
	blackouts := make([]BlackoutPeriodPayload, len(t.BlackoutPeriods))
	for i, b := range t.BlackoutPeriods {
		blackouts[i] = BlackoutPeriodPayload{
			Name: b.Name,
			From: b.From.Format("2006-01-02"),
			To:   b.To.Format("2006-01-02"),
		}
	}
	return LeaveTypeResponse{
		ID:                 t.ID.String(),
		CompanyID:          t.CompanyID.String(),
		Code:               t.Code,
		Name:               t.Name,
		IsPaid:             t.IsPaid,
		MaxDaysPerYear:     t.MaxDaysPerYear.String(),
		CarryForwardLimit:  t.CarryForwardLimit.String(),
		MinNoticeDays:      t.MinNoticeDays,
		MaxConsecutiveDays: t.MaxConsecutiveDays,
		ApplicableClasses:  t.ApplicableClasses,
		RequiresApproval:   t.RequiresApproval,
		RequiresDocument:   t.RequiresDocument,
		AccrualPolicy:      t.AccrualPolicy,
		AccrualAmount:      t.AccrualAmount.String(),
		BlackoutPeriods:    blackouts,
		IsActive:           t.IsActive,
	}
}
