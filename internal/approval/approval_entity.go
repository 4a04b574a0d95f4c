package approval

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EntityType string

const (
	EntityLeave        EntityType = "LEAVE"
	EntityExpense      EntityType = "EXPENSE"
	EntityOvertime     EntityType = "OVERTIME"
	EntityTravel       EntityType = "TRAVEL"
	EntityDocument     EntityType = "DOCUMENT"
	EntitySalaryChange EntityType = "SALARY_CHANGE"
	EntityPromotion    EntityType = "PROMOTION"
	EntityTermination  EntityType = "TERMINATION"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityLeave, EntityExpense, EntityOvertime, EntityTravel,
		EntityDocument, EntitySalaryChange, EntityPromotion, EntityTermination:
		return true
	}
	return false
}

type ApproverType string

const (
	ApproverDirectManager  ApproverType = "DIRECT_MANAGER"
	ApproverDepartmentHead ApproverType = "DEPARTMENT_HEAD"
	ApproverHRManager      ApproverType = "HR_MANAGER"
	ApproverFinanceManager ApproverType = "FINANCE_MANAGER"
	ApproverUser           ApproverType = "USER"
	ApproverRole           ApproverType = "ROLE"
	ApproverCustom         ApproverType = "CUSTOM"
)

func (t ApproverType) Valid() bool {
	switch t {
	case ApproverDirectManager, ApproverDepartmentHead, ApproverHRManager,
		ApproverFinanceManager, ApproverUser, ApproverRole, ApproverCustom:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusApproved   RequestStatus = "APPROVED"
	StatusRejected   RequestStatus = "REJECTED"
	StatusCancelled  RequestStatus = "CANCELLED"
	StatusEscalated  RequestStatus = "ESCALATED"
)

// Terminal reports whether no further action may touch the request.
// ESCALATED is not terminal: the escalation target can still act.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

type ActionType string

const (
	ActionApproved  ActionType = "APPROVED"
	ActionRejected  ActionType = "REJECTED"
	ActionReturned  ActionType = "RETURNED"
	ActionDelegated ActionType = "DELEGATED"
	ActionSkipped   ActionType = "SKIPPED"
	ActionEscalated ActionType = "ESCALATED"
)

// StepStatus values inside a request's frozen step snapshot.
const (
	StepPending  = "PENDING"
	StepApproved = "APPROVED"
	StepRejected = "REJECTED"
	StepSkipped  = "SKIPPED"
)

// SystemActor is the actor recorded on sweep-synthesized actions.
const SystemActor = "system"

type ApprovalChain struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_approval_chains_company_entity"`
	Name       string     `gorm:"type:varchar(150);not null"`
	EntityType EntityType `gorm:"type:varchar(30);not null;index:idx_approval_chains_company_entity"`
	IsActive   bool       `gorm:"not null;default:true"`
	IsDefault  bool       `gorm:"not null;default:false"`

	Steps []ChainStep `gorm:"foreignKey:ChainID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ApprovalChain) TableName() string {
	return "approval_chains"
}

type ChainStep struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChainID   uuid.UUID `gorm:"type:uuid;not null;index"`
	StepOrder int       `gorm:"not null"`
	Name      string    `gorm:"type:varchar(150);not null"`

	ApproverType ApproverType `gorm:"type:varchar(30);not null"`
	ApproverID   *uuid.UUID   `gorm:"type:uuid"`
	ApproverRole *string      `gorm:"type:varchar(50)"`

	CanSkip       bool           `gorm:"not null;default:false"`
	SkipCondition *SkipCondition `gorm:"type:jsonb"`

	AutoApproveAfterDays *int       `gorm:"type:int"`
	EscalateAfterDays    *int       `gorm:"type:int"`
	EscalateTo           *uuid.UUID `gorm:"type:uuid"`

	RequiresComment bool             `gorm:"not null;default:false"`
	MinAmount       *decimal.Decimal `gorm:"type:numeric(14,2)"`
	MaxAmount       *decimal.Decimal `gorm:"type:numeric(14,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChainStep) TableName() string {
	return "approval_chain_steps"
}

// InBand reports whether the step applies to an entity with the given
// amount. Steps without a band apply to everything.
func (s ChainStep) InBand(amount decimal.Decimal) bool {
	if s.MinAmount != nil && amount.LessThan(*s.MinAmount) {
		return false
	}
	if s.MaxAmount != nil && amount.GreaterThan(*s.MaxAmount) {
		return false
	}
	return true
}

// StepSnapshot is the per-request frozen copy of a chain step. Edits to
// the chain definition after submission never change it. Skip is the
// skip condition pre-evaluated against the entity at submission time.
type StepSnapshot struct {
	Order           int        `json:"order"`
	Name            string     `json:"name"`
	ApproverID      string     `json:"approver_id"`
	ApproverName    string     `json:"approver_name"`
	Status          string     `json:"status"`
	Comment         string     `json:"comment,omitempty"`
	ActedBy         string     `json:"acted_by,omitempty"`
	ActedAt         *time.Time `json:"acted_at,omitempty"`
	Skip            bool       `json:"skip"`
	RequiresComment bool       `json:"requires_comment"`

	AutoApproveAfterDays *int   `json:"auto_approve_after_days,omitempty"`
	EscalateAfterDays    *int   `json:"escalate_after_days,omitempty"`
	EscalateTo           string `json:"escalate_to,omitempty"`
	EscalateToName       string `json:"escalate_to_name,omitempty"`
}

type StepSnapshotList []StepSnapshot

func (l StepSnapshotList) Value() (driver.Value, error) {
	if l == nil {
		l = StepSnapshotList{}
	}
	return json.Marshal(l)
}

func (l *StepSnapshotList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported step snapshot column type %T", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// Clone returns a deep copy so the engine can stay free of aliasing.
func (l StepSnapshotList) Clone() StepSnapshotList {
	out := make(StepSnapshotList, len(l))
	copy(out, l)
	return out
}

type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		m = Metadata{}
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported metadata column type %T", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, m)
}

// ApprovalRequest is one run of a chain against one entity. The step
// snapshot and the action log are the audit trail; current_approver_id,
// auto_approve_at and escalate_at are denormalized so the pending list
// and the timer sweep stay single-table queries.
type ApprovalRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_approval_requests_company_status"`
	ChainID     uuid.UUID  `gorm:"type:uuid;not null"`
	EntityType  EntityType `gorm:"type:varchar(30);not null"`
	EntityID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestorID uuid.UUID  `gorm:"type:uuid;not null"`

	Status            RequestStatus    `gorm:"type:varchar(20);not null;index:idx_approval_requests_company_status"`
	CurrentStep       int              `gorm:"not null;default:0"`
	CurrentApproverID *uuid.UUID       `gorm:"type:uuid;index"`
	Steps             StepSnapshotList `gorm:"type:jsonb;not null"`
	Meta              Metadata         `gorm:"type:jsonb"`

	StepActivatedAt time.Time
	AutoApproveAt   *time.Time `gorm:"index"`
	EscalateAt      *time.Time `gorm:"index"`

	SubmittedAt time.Time
	CompletedAt *time.Time

	Actions []ApprovalAction `gorm:"foreignKey:RequestID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ApprovalRequest) TableName() string {
	return "approval_requests"
}

// ApprovalAction rows are append-only. Nothing updates or deletes them.
type ApprovalAction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID  `gorm:"type:uuid;not null;index"`
	StepOrder int        `gorm:"not null"`
	ActorID   string     `gorm:"type:varchar(64);not null"`
	Action    ActionType `gorm:"type:varchar(20);not null"`
	Comment   string     `gorm:"type:text"`
	DelegToID *uuid.UUID `gorm:"column:delegated_to;type:uuid"`
	CreatedAt time.Time
}

func (ApprovalAction) TableName() string {
	return "approval_actions"
}
