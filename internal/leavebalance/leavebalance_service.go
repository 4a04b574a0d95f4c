package leavebalance

import (
	"context"
	"errors"
	"time"

	leavebalanceerrors "tourhr/internal/leavebalance/errors"
	"tourhr/internal/leavetype"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// LeaveTypeCatalog is what this service needs from the leave type
// module when seeding a year.
type LeaveTypeCatalog interface {
	FindAllByCompany(ctx context.Context, companyID string, activeOnly bool) ([]leavetype.LeaveType, error)
}

type Service interface {
	InitializeYear(ctx context.Context, companyID string, req InitializeYearRequest) (InitializeYearResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)
	Adjust(ctx context.Context, companyID, balanceID string, req AdjustBalanceRequest) (BalanceResponse, error)
}

type service struct {
	repo    Repository
	catalog LeaveTypeCatalog
	logger  *zap.Logger
}

func NewService(repo Repository, catalog LeaveTypeCatalog, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{repo: repo, catalog: catalog, logger: l}
}

// InitializeYear creates one balance row per active leave type with
// opening = maxDaysPerYear and every other counter zero. Re-running is
// a no-op for rows that already exist: the unique key on
// (company, employee, type, year) turns duplicates into skips, so
// existing counters are never overwritten.
func (s *service) InitializeYear(ctx context.Context, companyID string, req InitializeYearRequest) (InitializeYearResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return InitializeYearResponse{}, leavebalanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return InitializeYearResponse{}, leavebalanceerrors.ErrInvalidEmployeeID
	}
	if req.Year < 2000 || req.Year > 2100 {
		return InitializeYearResponse{}, leavebalanceerrors.ErrInvalidYear
	}

	types, err := s.catalog.FindAllByCompany(ctx, companyID, true)
	if err != nil {
		s.logger.Error("initialize year catalog lookup failed", zap.Error(err))
		return InitializeYearResponse{}, err
	}

	created, skipped := 0, 0
	for _, t := range types {
		b := &LeaveBalance{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  employeeUUID,
			LeaveTypeID: t.ID,
			Year:        req.Year,
			Opening:     t.MaxDaysPerYear,
		}
		if err := s.repo.Create(ctx, b); err != nil {
			if isUniqueViolation(err) {
				skipped++
				continue
			}
			s.logger.Error("initialize year create failed",
				zap.String("leave_type_id", t.ID.String()),
				zap.Error(err),
			)
			return InitializeYearResponse{}, err
		}
		created++
	}

	balances, err := s.repo.FindByEmployeeYear(ctx, companyID, req.EmployeeID, req.Year)
	if err != nil {
		return InitializeYearResponse{}, err
	}

	s.logger.Info("initialize year done",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.Int("created", created),
		zap.Int("skipped", skipped),
	)

	return InitializeYearResponse{
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
		Created:    created,
		Skipped:    skipped,
		Balances:   mapToListResponse(balances),
	}, nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	balances, err := s.repo.FindByEmployeeYear(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(balances), nil
}

func (s *service) Adjust(ctx context.Context, companyID, balanceID string, req AdjustBalanceRequest) (BalanceResponse, error) {
	delta, err := decimal.NewFromString(req.Delta)
	if err != nil || delta.IsZero() {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidDayAmount
	}

	if _, err := s.repo.FindByID(ctx, companyID, balanceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leavebalanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	ok, err := s.repo.Adjust(ctx, balanceID, delta)
	if err != nil {
		s.logger.Error("adjust balance failed",
			zap.String("balance_id", balanceID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}
	if !ok {
		return BalanceResponse{}, leavebalanceerrors.ErrInsufficientBalance
	}

	b, err := s.repo.FindByID(ctx, companyID, balanceID)
	if err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("balance adjusted",
		zap.String("balance_id", balanceID),
		zap.String("delta", delta.String()),
		zap.String("reason", req.Reason),
	)
	return mapToResponse(*b), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:           b.ID.String(),
		CompanyID:    b.CompanyID.String(),
		EmployeeID:   b.EmployeeID.String(),
		LeaveTypeID:  b.LeaveTypeID.String(),
		Year:         b.Year,
		Opening:      b.Opening.String(),
		Accrued:      b.Accrued.String(),
		Taken:        b.Taken.String(),
		Pending:      b.Pending.String(),
		Adjusted:     b.Adjusted.String(),
		CarryForward: b.CarryForward.String(),
		Available:    b.Available().String(),
	}
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
