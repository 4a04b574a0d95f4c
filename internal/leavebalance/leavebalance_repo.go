package leavebalance

import (
	"context"
	"database/sql"

	"tourhr/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByID(ctx context.Context, companyID, id string) (*LeaveBalance, error)
	FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	Reserve(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	Commit(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	Release(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	Refund(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	Adjust(ctx context.Context, id string, delta decimal.Decimal) (bool, error)
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Order("leave_type_id ASC").
		Find(&balances).Error
	return balances, err
}

// Reserve adds days to pending, guarded by the available computation so
// two concurrent reservations cannot both pass the balance check. A
// false return means the guard rejected the update.
func (r *repository) Reserve(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	query := `
UPDATE leave_balances
SET pending = pending + $2, updated_at = NOW()
WHERE id = $1
  AND opening + accrued + carry_forward + adjusted - taken - pending >= $2
`
	return r.execGuarded(ctx, query, id, days.String())
}

// Commit moves days from pending to taken.
func (r *repository) Commit(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	query := `
UPDATE leave_balances
SET pending = pending - $2, taken = taken + $2, updated_at = NOW()
WHERE id = $1
  AND pending >= $2
`
	return r.execGuarded(ctx, query, id, days.String())
}

// Release drops days from pending without touching taken.
func (r *repository) Release(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	query := `
UPDATE leave_balances
SET pending = pending - $2, updated_at = NOW()
WHERE id = $1
  AND pending >= $2
`
	return r.execGuarded(ctx, query, id, days.String())
}

// Refund returns committed days to the balance after a revocation.
func (r *repository) Refund(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	query := `
UPDATE leave_balances
SET taken = taken - $2, updated_at = NOW()
WHERE id = $1
  AND taken >= $2
`
	return r.execGuarded(ctx, query, id, days.String())
}

// Adjust applies an administrative delta; the guard keeps available
// non-negative after the adjustment.
func (r *repository) Adjust(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
	query := `
UPDATE leave_balances
SET adjusted = adjusted + $2, updated_at = NOW()
WHERE id = $1
  AND opening + accrued + carry_forward + adjusted + $2 - taken - pending >= 0
`
	return r.execGuarded(ctx, query, id, delta.String())
}

func (r *repository) execGuarded(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.execer().ExecContext(ctx, query, args...)
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
