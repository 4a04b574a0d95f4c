package leavebalance

type InitializeYearRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
}

type AdjustBalanceRequest struct {
	Delta  string `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type BalanceResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	EmployeeID   string `json:"employee_id"`
	LeaveTypeID  string `json:"leave_type_id"`
	Year         int    `json:"year"`
	Opening      string `json:"opening"`
	Accrued      string `json:"accrued"`
	Taken        string `json:"taken"`
	Pending      string `json:"pending"`
	Adjusted     string `json:"adjusted"`
	CarryForward string `json:"carry_forward"`
	Available    string `json:"available"`
}

type InitializeYearResponse struct {
	EmployeeID string            `json:"employee_id"`
	Year       int               `json:"year"`
	Created    int               `json:"created"`
	Skipped    int               `json:"skipped"`
	Balances   []BalanceResponse `json:"balances"`
}
