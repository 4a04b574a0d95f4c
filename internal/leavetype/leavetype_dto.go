package leavetype

type BlackoutPeriodPayload struct {
	Name string `json:"name" binding:"required"`
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type CreateLeaveTypeRequest struct {
	Code               string                  `json:"code" binding:"required,max=30"`
	Name               string                  `json:"name" binding:"required,max=100"`
	IsPaid             bool                    `json:"is_paid"`
	MaxDaysPerYear     string                  `json:"max_days_per_year" binding:"required"`
	CarryForwardLimit  string                  `json:"carry_forward_limit"`
	MinNoticeDays      int                     `json:"min_notice_days" binding:"min=0"`
	MaxConsecutiveDays int                     `json:"max_consecutive_days" binding:"min=0"`
	ApplicableClasses  []string                `json:"applicable_classes"`
	RequiresApproval   *bool                   `json:"requires_approval"`
	RequiresDocument   bool                    `json:"requires_document"`
	AccrualPolicy      string                  `json:"accrual_policy" binding:"omitempty,oneof=NONE ANNUAL MONTHLY"`
	AccrualAmount      string                  `json:"accrual_amount"`
	BlackoutPeriods    []BlackoutPeriodPayload `json:"blackout_periods"`
}

type UpdateLeaveTypeRequest struct {
	Name               string                  `json:"name" binding:"required,max=100"`
	IsPaid             bool                    `json:"is_paid"`
	MaxDaysPerYear     string                  `json:"max_days_per_year" binding:"required"`
	CarryForwardLimit  string                  `json:"carry_forward_limit"`
	MinNoticeDays      int                     `json:"min_notice_days" binding:"min=0"`
	MaxConsecutiveDays int                     `json:"max_consecutive_days" binding:"min=0"`
	ApplicableClasses  []string                `json:"applicable_classes"`
	RequiresApproval   *bool                   `json:"requires_approval"`
	RequiresDocument   bool                    `json:"requires_document"`
	AccrualPolicy      string                  `json:"accrual_policy" binding:"omitempty,oneof=NONE ANNUAL MONTHLY"`
	AccrualAmount      string                  `json:"accrual_amount"`
	BlackoutPeriods    []BlackoutPeriodPayload `json:"blackout_periods"`
}

type LeaveTypeResponse struct {
	ID                 string                  `json:"id"`
	CompanyID          string                  `json:"company_id"`
	Code               string                  `json:"code"`
	Name               string                  `json:"name"`
	IsPaid             bool                    `json:"is_paid"`
	MaxDaysPerYear     string                  `json:"max_days_per_year"`
	CarryForwardLimit  string                  `json:"carry_forward_limit"`
	MinNoticeDays      int                     `json:"min_notice_days"`
	MaxConsecutiveDays int                     `json:"max_consecutive_days"`
	ApplicableClasses  []string                `json:"applicable_classes"`
	RequiresApproval   bool                    `json:"requires_approval"`
	RequiresDocument   bool                    `json:"requires_document"`
	AccrualPolicy      string                  `json:"accrual_policy"`
	AccrualAmount      string                  `json:"accrual_amount"`
	BlackoutPeriods    []BlackoutPeriodPayload `json:"blackout_periods"`
	IsActive           bool                    `json:"is_active"`
}
