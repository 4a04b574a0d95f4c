package leavetype

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccrualNone    = "NONE"
	AccrualAnnual  = "ANNUAL"
	AccrualMonthly = "MONTHLY"
)

// BlackoutPeriod is a date range during which this leave type cannot
// be applied for. Bounds are inclusive.
type BlackoutPeriod struct {
	Name string    `json:"name"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type BlackoutPeriodList []BlackoutPeriod

func (l BlackoutPeriodList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *BlackoutPeriodList) Scan(value any) error {
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
		return errors.New("unsupported type for BlackoutPeriodList")
	}
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value any) error {
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
		return errors.New("unsupported type for StringList")
	}
}

type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_types_company_code"`

	Code string `gorm:"type:varchar(30);not null;uniqueIndex:idx_leave_types_company_code"`
	Name string `gorm:"type:varchar(100);not null"`

	IsPaid             bool            `gorm:"not null;default:true"`
	MaxDaysPerYear     decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CarryForwardLimit  decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	MinNoticeDays      int             `gorm:"type:int;not null;default:0"`
	MaxConsecutiveDays int             `gorm:"type:int;not null;default:0"`

	ApplicableClasses StringList `gorm:"type:jsonb;not null;default:'[]'"`

	RequiresApproval bool `gorm:"not null;default:true"`
	RequiresDocument bool `gorm:"not null;default:false"`

	AccrualPolicy string          `gorm:"type:varchar(20);not null;default:'ANNUAL'"`
	AccrualAmount decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	BlackoutPeriods BlackoutPeriodList `gorm:"type:jsonb;not null;default:'[]'"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// AppliesTo reports whether the type is open to the given employee
// class. An empty class list means the type applies to everyone.
func (t LeaveType) AppliesTo(employeeClass string) bool {
	if len(t.ApplicableClasses) == 0 {
		return true
	}
	for _, c := range t.ApplicableClasses {
		if c == employeeClass {
			return true
		}
	}
	return false
}
