package leave

type CreateLeaveRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	HalfDay       bool   `json:"half_day"`
	HalfDaySide   string `json:"half_day_side,omitempty" binding:"omitempty,oneof=AM PM"`
	Reason        string `json:"reason" binding:"required,min=3"`
	ReplacementID string `json:"replacement_id,omitempty" binding:"omitempty,uuid"`
	DocumentURL   string `json:"document_url,omitempty" binding:"omitempty,url"`
}

type LeaveActionRequest struct {
	Action     string `json:"action" binding:"required,oneof=APPROVED REJECTED DELEGATED"`
	Comment    string `json:"comment,omitempty"`
	DelegateTo string `json:"delegate_to,omitempty" binding:"omitempty,uuid"`
}

type CancelLeaveRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RevokeLeaveRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}

type ApprovalStepResponse struct {
	Order        int    `json:"order"`
	Name         string `json:"name"`
	ApproverID   string `json:"approver_id"`
	ApproverName string `json:"approver_name"`
	Status       string `json:"status"`
	Comment      string `json:"comment,omitempty"`
	ActedBy      string `json:"acted_by,omitempty"`
	ActedAt      string `json:"acted_at,omitempty"`
}

type TripConflictResponse struct {
	TripID    string `json:"trip_id"`
	TripName  string `json:"trip_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type LeaveResponse struct {
	ID                string                 `json:"id"`
	CompanyID         string                 `json:"company_id"`
	EmployeeID        string                 `json:"employee_id"`
	LeaveTypeID       string                 `json:"leave_type_id"`
	StartDate         string                 `json:"start_date"`
	EndDate           string                 `json:"end_date"`
	HalfDay           bool                   `json:"half_day"`
	HalfDaySide       string                 `json:"half_day_side,omitempty"`
	TotalDays         string                 `json:"total_days"`
	Reason            string                 `json:"reason"`
	Status            string                 `json:"status"`
	CurrentStep       int                    `json:"current_step"`
	CurrentApproverID string                 `json:"current_approver_id,omitempty"`
	Steps             []ApprovalStepResponse `json:"steps"`
	HasConflict       bool                   `json:"has_conflict"`
	ConflictingTrips  []TripConflictResponse `json:"conflicting_trips,omitempty"`
	ReplacementID     string                 `json:"replacement_id,omitempty"`
	DocumentURL       string                 `json:"document_url,omitempty"`
	CancelReason      string                 `json:"cancel_reason,omitempty"`
	RevokeReason      string                 `json:"revoke_reason,omitempty"`
	CreatedAt         string                 `json:"created_at"`
	UpdatedAt         string                 `json:"updated_at"`
}
