package approval

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

type SkipConditionType string

const (
	SkipAmountBelow     SkipConditionType = "AMOUNT_BELOW"
	SkipAmountAtLeast   SkipConditionType = "AMOUNT_AT_LEAST"
	SkipTotalDaysBelow  SkipConditionType = "TOTAL_DAYS_BELOW"
	SkipEmployeeClassIn SkipConditionType = "EMPLOYEE_CLASS_IN"
	SkipAlways          SkipConditionType = "ALWAYS"
)

// SkipCondition is the typed predicate a step may carry. Only the
// parameter matching the type is consulted.
type SkipCondition struct {
	Type    SkipConditionType `json:"type"`
	Amount  *decimal.Decimal  `json:"amount,omitempty"`
	Days    *decimal.Decimal  `json:"days,omitempty"`
	Classes []string          `json:"classes,omitempty"`
}

// EntityFacts is the slice of the governed entity the engine may look
// at when evaluating skip conditions and amount bands.
type EntityFacts struct {
	Amount        decimal.Decimal
	TotalDays     decimal.Decimal
	EmployeeClass string
}

func (c *SkipCondition) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Type {
	case SkipAmountBelow, SkipAmountAtLeast:
		if c.Amount == nil {
			return fmt.Errorf("skip condition %s requires an amount", c.Type)
		}
	case SkipTotalDaysBelow:
		if c.Days == nil {
			return fmt.Errorf("skip condition %s requires a day count", c.Type)
		}
	case SkipEmployeeClassIn:
		if len(c.Classes) == 0 {
			return fmt.Errorf("skip condition %s requires at least one class", c.Type)
		}
	case SkipAlways:
	default:
		return fmt.Errorf("unknown skip condition type %q", c.Type)
	}
	return nil
}

func (c *SkipCondition) Evaluate(f EntityFacts) bool {
	if c == nil {
		return false
	}
	switch c.Type {
	case SkipAmountBelow:
		return c.Amount != nil && f.Amount.LessThan(*c.Amount)
	case SkipAmountAtLeast:
		return c.Amount != nil && f.Amount.GreaterThanOrEqual(*c.Amount)
	case SkipTotalDaysBelow:
		return c.Days != nil && f.TotalDays.LessThan(*c.Days)
	case SkipEmployeeClassIn:
		return slices.Contains(c.Classes, f.EmployeeClass)
	case SkipAlways:
		return true
	}
	return false
}

func (c SkipCondition) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *SkipCondition) Scan(value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported skip condition column type %T", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, c)
}
