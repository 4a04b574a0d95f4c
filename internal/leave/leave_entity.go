package leave

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"tourhr/internal/approval"
	"tourhr/internal/trip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
	StatusRevoked   = "REVOKED"
)

const (
	HalfDayMorning   = "AM"
	HalfDayAfternoon = "PM"
)

// IsTerminal reports whether the status admits no further transition.
// REVOKED is reachable from APPROVED through an administrative
// override only; nothing leaves any of these four.
func IsTerminal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled, StatusRevoked:
		return true
	}
	return false
}

type TripConflictList []trip.Conflict

func (l TripConflictList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *TripConflictList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for TripConflictList")
	}
}

// Leave carries its approval progression as a frozen step snapshot.
// current_approver_id is denormalized from the snapshot so the pending
// list for an approver is a plain indexed query.
type Leave struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`
	BalanceID   uuid.UUID `gorm:"type:uuid;not null"`

	StartDate   time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate     time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	HalfDay     bool            `gorm:"not null;default:false"`
	HalfDaySide *string         `gorm:"type:varchar(2)"`
	TotalDays   decimal.Decimal `gorm:"type:numeric(5,1);not null"`
	Reason      string          `gorm:"type:text"`

	Status            string                    `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_leaves_company_status"`
	ChainID           *uuid.UUID                `gorm:"type:uuid"`
	Steps             approval.StepSnapshotList `gorm:"type:jsonb;not null"`
	CurrentStep       int                       `gorm:"not null;default:0"`
	CurrentApproverID *uuid.UUID                `gorm:"type:uuid;index"`

	HasConflict      bool             `gorm:"not null;default:false"`
	ConflictingTrips TripConflictList `gorm:"type:jsonb;not null;default:'[]'"`

	ReplacementID *uuid.UUID `gorm:"type:uuid"`
	DocumentURL   *string    `gorm:"type:text"`

	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CancelReason *string    `gorm:"type:text"`
	CancelledBy  *uuid.UUID `gorm:"type:uuid"`
	CancelledAt  *time.Time

	RevokeReason *string    `gorm:"type:text"`
	RevokedBy    *uuid.UUID `gorm:"type:uuid"`
	RevokedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Leave) TableName() string {
	return "leaves"
}
