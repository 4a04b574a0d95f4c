package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance holds the per-employee, per-type, per-year counters.
// Available is never stored; it is always recomputed from the five
// counters so stored and derived values cannot drift.
type LeaveBalance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balances_key"`

	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balances_key"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balances_key"`
	Year        int       `gorm:"type:int;not null;uniqueIndex:idx_leave_balances_key"`

	Opening      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Accrued      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Taken        decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Pending      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Adjusted     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarryForward decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Available = opening + accrued + carryForward + adjusted - taken - pending.
func (b LeaveBalance) Available() decimal.Decimal {
	return b.Opening.
		Add(b.Accrued).
		Add(b.CarryForward).
		Add(b.Adjusted).
		Sub(b.Taken).
		Sub(b.Pending)
}
