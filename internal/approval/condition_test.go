package approval

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSkipCondition_Evaluate(t *testing.T) {
	facts := EntityFacts{
		Amount:        decimal.RequireFromString("450.00"),
		TotalDays:     decimal.RequireFromString("2.5"),
		EmployeeClass: "SEASONAL_GUIDE",
	}

	tests := []struct {
		name string
		cond *SkipCondition
		want bool
	}{
		{"amount below threshold", &SkipCondition{Type: SkipAmountBelow, Amount: decPtr("500")}, true},
		{"amount not below threshold", &SkipCondition{Type: SkipAmountBelow, Amount: decPtr("450")}, false},
		{"amount at least threshold", &SkipCondition{Type: SkipAmountAtLeast, Amount: decPtr("450")}, true},
		{"amount under at-least threshold", &SkipCondition{Type: SkipAmountAtLeast, Amount: decPtr("451")}, false},
		{"days below threshold", &SkipCondition{Type: SkipTotalDaysBelow, Days: decPtr("3")}, true},
		{"days not below threshold", &SkipCondition{Type: SkipTotalDaysBelow, Days: decPtr("2.5")}, false},
		{"class in list", &SkipCondition{Type: SkipEmployeeClassIn, Classes: []string{"SEASONAL_GUIDE", "DRIVER"}}, true},
		{"class not in list", &SkipCondition{Type: SkipEmployeeClassIn, Classes: []string{"OFFICE"}}, false},
		{"always", &SkipCondition{Type: SkipAlways}, true},
		{"nil condition", nil, false},
		{"missing amount parameter", &SkipCondition{Type: SkipAmountBelow}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Evaluate(facts))
		})
	}
}

func TestSkipCondition_Validate(t *testing.T) {
	assert.NoError(t, (*SkipCondition)(nil).Validate())
	assert.NoError(t, (&SkipCondition{Type: SkipAlways}).Validate())
	assert.NoError(t, (&SkipCondition{Type: SkipAmountBelow, Amount: decPtr("100")}).Validate())

	assert.Error(t, (&SkipCondition{Type: SkipAmountBelow}).Validate())
	assert.Error(t, (&SkipCondition{Type: SkipAmountAtLeast}).Validate())
	assert.Error(t, (&SkipCondition{Type: SkipTotalDaysBelow}).Validate())
	assert.Error(t, (&SkipCondition{Type: SkipEmployeeClassIn}).Validate())
	assert.Error(t, (&SkipCondition{Type: SkipConditionType("WEATHER_GOOD")}).Validate())
}
