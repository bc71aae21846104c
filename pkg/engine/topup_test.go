package engine

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"topup/pkg/schema"
)

func TestComputeTopUpActiveUserOptedOut(t *testing.T) {
	tech := company(1, "Tech Corp", 50, true)
	u := user(1, "John", "Doe", 100, true, false)

	row := ComputeTopUp(u, tech)

	assert.Equal(t, "1", row.CompanyID.String())
	assert.Equal(t, "Tech Corp", row.CompanyName)
	assert.Equal(t, "Doe, John", row.FullName)
	assert.Equal(t, "John.Doe@x.com", row.Email)
	assert.Equal(t, "100", row.InitialBalance.String())
	assert.Equal(t, "150", row.UpdatedBalance.String())
	assert.False(t, row.EmailSent)
	assert.True(t, row.TopUpAmount().Equal(decimal.NewFromInt(50)))
}

func TestComputeTopUpInactiveUserKeepsBalance(t *testing.T) {
	u := user(1, "Jane", "Roe", 80, false, true)

	row := ComputeTopUp(u, company(1, "Tech Corp", 50, true))

	assert.True(t, row.UpdatedBalance.Equal(row.InitialBalance))
	assert.True(t, row.TopUpAmount().IsZero())
	assert.True(t, row.EmailSent)
}

func TestComputeTopUpEmailRequiresBoth(t *testing.T) {
	tests := []struct {
		company, user, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}

	for _, tt := range tests {
		row := ComputeTopUp(user(1, "A", "B", 0, true, tt.user), company(1, "", 1, tt.company))
		assert.Equal(t, tt.want, row.EmailSent, "company=%v user=%v", tt.company, tt.user)
	}
}

func TestComputeTopUpNegativeValuesFlowThrough(t *testing.T) {
	row := ComputeTopUp(user(1, "A", "B", 10, true, false), company(1, "", -30, false))

	assert.Equal(t, "-20", row.UpdatedBalance.String())
}

func TestComputeTopUpBeyondInt64(t *testing.T) {
	u := user(1, "Max", "Balance", math.MaxInt64, true, false)

	row := ComputeTopUp(u, company(1, "C", 1, false))

	assert.Equal(t, "9223372036854775807", row.InitialBalance.String())
	assert.Equal(t, "9223372036854775808", row.UpdatedBalance.String())
	assert.True(t, row.UpdatedBalance.IsPositive())

	low := ComputeTopUp(user(1, "Min", "Balance", math.MinInt64, true, false), company(1, "C", -1, false))
	assert.Equal(t, "-9223372036854775809", low.UpdatedBalance.String())
}

func TestComputeTopUpIsPure(t *testing.T) {
	pure := company(4, "Pure", 7, true)
	u := user(4, "Ada", "Lovelace", 3, true, true)

	assert.Equal(t, ComputeTopUp(u, pure), ComputeTopUp(u, pure))
	assert.Equal(t, "3", u.Tokens.String())
}

func TestComputedUserRowTopUpAmount(t *testing.T) {
	row := schema.ComputedUserRow{
		InitialBalance: decimal.NewFromInt(10),
		UpdatedBalance: decimal.NewFromInt(35),
	}

	assert.Equal(t, "25", row.TopUpAmount().String())
}
