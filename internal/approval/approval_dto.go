package approval

type ChainStepRequest struct {
	Name                 string         `json:"name" binding:"required"`
	ApproverType         string         `json:"approver_type" binding:"required"`
	ApproverID           string         `json:"approver_id,omitempty"`
	ApproverRole         string         `json:"approver_role,omitempty"`
	CanSkip              bool           `json:"can_skip"`
	SkipCondition        *SkipCondition `json:"skip_condition,omitempty"`
	AutoApproveAfterDays *int           `json:"auto_approve_after_days,omitempty"`
	EscalateAfterDays    *int           `json:"escalate_after_days,omitempty"`
	EscalateTo           string         `json:"escalate_to,omitempty"`
	RequiresComment      bool           `json:"requires_comment"`
	MinAmount            string         `json:"min_amount,omitempty"`
	MaxAmount            string         `json:"max_amount,omitempty"`
}

type CreateChainRequest struct {
	Name       string             `json:"name" binding:"required,min=2,max=150"`
	EntityType string             `json:"entity_type" binding:"required"`
	IsDefault  bool               `json:"is_default"`
	Steps      []ChainStepRequest `json:"steps" binding:"required,min=1,dive"`
}

type UpdateChainRequest struct {
	Name      string             `json:"name" binding:"required,min=2,max=150"`
	IsDefault bool               `json:"is_default"`
	Steps     []ChainStepRequest `json:"steps" binding:"required,min=1,dive"`
}

type ChainStepResponse struct {
	ID                   string         `json:"id"`
	StepOrder            int            `json:"step_order"`
	Name                 string         `json:"name"`
	ApproverType         string         `json:"approver_type"`
	ApproverID           string         `json:"approver_id,omitempty"`
	ApproverRole         string         `json:"approver_role,omitempty"`
	CanSkip              bool           `json:"can_skip"`
	SkipCondition        *SkipCondition `json:"skip_condition,omitempty"`
	AutoApproveAfterDays *int           `json:"auto_approve_after_days,omitempty"`
	EscalateAfterDays    *int           `json:"escalate_after_days,omitempty"`
	EscalateTo           string         `json:"escalate_to,omitempty"`
	RequiresComment      bool           `json:"requires_comment"`
	MinAmount            string         `json:"min_amount,omitempty"`
	MaxAmount            string         `json:"max_amount,omitempty"`
}

type ChainResponse struct {
	ID         string              `json:"id"`
	CompanyID  string              `json:"company_id"`
	Name       string              `json:"name"`
	EntityType string              `json:"entity_type"`
	IsActive   bool                `json:"is_active"`
	IsDefault  bool                `json:"is_default"`
	Steps      []ChainStepResponse `json:"steps"`
	CreatedAt  string              `json:"created_at"`
	UpdatedAt  string              `json:"updated_at"`
}

type SubmitRequestRequest struct {
	ChainID       string         `json:"chain_id,omitempty"`
	EntityType    string         `json:"entity_type" binding:"required"`
	EntityID      string         `json:"entity_id" binding:"required,uuid"`
	Amount        string         `json:"amount,omitempty"`
	TotalDays     string         `json:"total_days,omitempty"`
	EmployeeClass string         `json:"employee_class,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
}

type ActionRequest struct {
	Action     string `json:"action" binding:"required"`
	Comment    string `json:"comment,omitempty"`
	DelegateTo string `json:"delegate_to,omitempty"`
}

type CancelRequestRequest struct {
	Reason string `json:"reason,omitempty"`
}

type StepSnapshotResponse struct {
	Order        int    `json:"order"`
	Name         string `json:"name"`
	ApproverID   string `json:"approver_id"`
	ApproverName string `json:"approver_name"`
	Status       string `json:"status"`
	Comment      string `json:"comment,omitempty"`
	ActedBy      string `json:"acted_by,omitempty"`
	ActedAt      string `json:"acted_at,omitempty"`
}

type ActionResponse struct {
	StepOrder   int    `json:"step_order"`
	ActorID     string `json:"actor_id"`
	Action      string `json:"action"`
	Comment     string `json:"comment,omitempty"`
	DelegatedTo string `json:"delegated_to,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type RequestResponse struct {
	ID                string                 `json:"id"`
	CompanyID         string                 `json:"company_id"`
	ChainID           string                 `json:"chain_id"`
	EntityType        string                 `json:"entity_type"`
	EntityID          string                 `json:"entity_id"`
	RequestorID       string                 `json:"requestor_id"`
	Status            string                 `json:"status"`
	CurrentStep       int                    `json:"current_step"`
	CurrentApproverID string                 `json:"current_approver_id,omitempty"`
	Steps             []StepSnapshotResponse `json:"steps"`
	Actions           []ActionResponse       `json:"actions,omitempty"`
	SubmittedAt       string                 `json:"submitted_at"`
	CompletedAt       string                 `json:"completed_at,omitempty"`
}
