package rbac

type EnforceRequest struct {
	EmployeeID string `json:"employee_id"`
	CompanyID  string `json:"company_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Resources guarded by this service. Kept here so routes and seeds use
// one vocabulary.
const (
	ResourceLeave           = "leave"
	ResourceLeaveType       = "leave_type"
	ResourceLeaveBalance    = "leave_balance"
	ResourceApprovalChain   = "approval_chain"
	ResourceApprovalRequest = "approval_request"
)
