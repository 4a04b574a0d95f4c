package leave

import (
	"context"
	"database/sql"
	"time"

	"tourhr/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, companyID, id string) (*Leave, error)
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Leave, error)
	FindPendingByApprover(ctx context.Context, companyID, approverID string) ([]Leave, error)
	HasOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time, excludeID *string) (bool, error)
	UpdateCAS(ctx context.Context, l *Leave, prevStatus string, prevStep int, prevApprover *uuid.UUID) (bool, error)
}

type ListFilter struct {
	EmployeeID string
	Status     string
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	sqlDB, _ := db.DB()
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	steps, err := l.Steps.Value()
	if err != nil {
		return err
	}
	trips, err := l.ConflictingTrips.Value()
	if err != nil {
		return err
	}

	query := `
INSERT INTO leaves (
    id, company_id, employee_id, leave_type_id, balance_id,
    start_date, end_date, half_day, half_day_side, total_days, reason,
    status, chain_id, steps, current_step, current_approver_id,
    has_conflict, conflicting_trips, replacement_id, document_url,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW(), NOW())
`
	_, err = r.execer().ExecContext(
		ctx, query,
		l.ID, l.CompanyID, l.EmployeeID, l.LeaveTypeID, l.BalanceID,
		l.StartDate, l.EndDate, l.HalfDay, l.HalfDaySide, l.TotalDays.String(), l.Reason,
		l.Status, l.ChainID, steps, l.CurrentStep, l.CurrentApproverID,
		l.HasConflict, trips, l.ReplacementID, l.DocumentURL,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Leave, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var leaves []Leave
	err := q.Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindPendingByApprover(ctx context.Context, companyID, approverID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("current_approver_id = ?", approverID).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

// HasOverlapping checks the employee's other live requests against the
// proposed range. Cancelled, rejected and revoked requests do not
// block; everything else does.
func (r *repository) HasOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time, excludeID *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusCancelled, StatusRejected, StatusRevoked}).
		Where("NOT (end_date < ? OR start_date > ?)", from, to)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateCAS persists a state transition only when the row still holds
// the status, step and current approver it was computed from, so a
// concurrent approver action, delegation or cancellation makes the
// slower writer fail instead of double-applying.
func (r *repository) UpdateCAS(ctx context.Context, l *Leave, prevStatus string, prevStep int, prevApprover *uuid.UUID) (bool, error) {
	steps, err := l.Steps.Value()
	if err != nil {
		return false, err
	}

	query := `
UPDATE leaves
SET
    status = $4,
    current_step = $5,
    current_approver_id = $6,
    steps = $7,
    decided_by = $8,
    decided_at = $9,
    cancel_reason = $10,
    cancelled_by = $11,
    cancelled_at = $12,
    revoke_reason = $13,
    revoked_by = $14,
    revoked_at = $15,
    updated_at = NOW()
WHERE id = $1
  AND status = $2
  AND current_step = $3
  AND current_approver_id IS NOT DISTINCT FROM $16
`
	res, err := r.execer().ExecContext(
		ctx, query,
		l.ID, prevStatus, prevStep,
		l.Status, l.CurrentStep, l.CurrentApproverID, steps,
		l.DecidedBy, l.DecidedAt,
		l.CancelReason, l.CancelledBy, l.CancelledAt,
		l.RevokeReason, l.RevokedBy, l.RevokedAt,
		prevApprover,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
