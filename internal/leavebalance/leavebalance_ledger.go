package leavebalance

import (
	"context"
	"database/sql"

	leavebalanceerrors "tourhr/internal/leavebalance/errors"

	"github.com/shopspring/decimal"
)

// Ledger is the narrow mutation surface the leave lifecycle drives:
// reserve on submit, commit on approve, release on reject/cancel. All
// three are conditional single-row updates, so callers can run them
// inside their own transaction via WithTx.
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	Reserve(ctx context.Context, balanceID string, days decimal.Decimal) error
	Commit(ctx context.Context, balanceID string, days decimal.Decimal) error
	Release(ctx context.Context, balanceID string, days decimal.Decimal) error
	Refund(ctx context.Context, balanceID string, days decimal.Decimal) error
}

type ledger struct {
	repo Repository
}

func NewLedger(repo Repository) Ledger {
	return &ledger{repo: repo}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{repo: l.repo.WithTx(tx)}
}

func (l *ledger) FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	return l.repo.FindByKey(ctx, companyID, employeeID, leaveTypeID, year)
}

func (l *ledger) Reserve(ctx context.Context, balanceID string, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDayAmount
	}
	ok, err := l.repo.Reserve(ctx, balanceID, days)
	if err != nil {
		return err
	}
	if !ok {
		// The guard re-checks available under the row lock; losing the
		// race is reported the same as an insufficient balance.
		return leavebalanceerrors.ErrInsufficientBalance
	}
	return nil
}

func (l *ledger) Commit(ctx context.Context, balanceID string, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDayAmount
	}
	ok, err := l.repo.Commit(ctx, balanceID, days)
	if err != nil {
		return err
	}
	if !ok {
		return leavebalanceerrors.ErrPendingUnderflow
	}
	return nil
}

func (l *ledger) Refund(ctx context.Context, balanceID string, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDayAmount
	}
	ok, err := l.repo.Refund(ctx, balanceID, days)
	if err != nil {
		return err
	}
	if !ok {
		return leavebalanceerrors.ErrPendingUnderflow
	}
	return nil
}

func (l *ledger) Release(ctx context.Context, balanceID string, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDayAmount
	}
	ok, err := l.repo.Release(ctx, balanceID, days)
	if err != nil {
		return err
	}
	if !ok {
		return leavebalanceerrors.ErrPendingUnderflow
	}
	return nil
}
