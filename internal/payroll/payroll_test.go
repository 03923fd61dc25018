package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 18.38, Round2(18.3799999))
	assert.Equal(t, 0.01, Round2(0.005))
	assert.Equal(t, 100.0, Round2(100))
	assert.Equal(t, 135.62, Round2(135.615000001))
}

func TestIRPEFBrackets(t *testing.T) {
	tests := []struct {
		name  string
		gross float64
		want  float64
	}{
		{"zero", 0, 0},
		{"negative", -50, 0},
		{"first bracket", 200, 46.00},
		{"first bracket upper edge", 15000, 3450.00},
		{"second bracket", 20000, 4800.00},
		{"second bracket upper edge", 28000, 6960.00},
		{"third bracket", 40000, 11520.00},
		{"third bracket upper edge", 55000, 17220.00},
		{"top bracket", 60000, 19270.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, IRPEF(tt.gross), 1e-9)
		})
	}
}

func TestCompute(t *testing.T) {
	// 10 hours at 20.00/h.
	bd := Compute(10, 20)
	assert.Equal(t, 10.0, bd.TotalHours)
	assert.Equal(t, 20.0, bd.HourlyRate)
	assert.Equal(t, 200.00, bd.GrossAmount)
	assert.Equal(t, 18.38, bd.INPSAmount)
	assert.Equal(t, 46.00, bd.IRPEFAmount)
	assert.Equal(t, 135.62, bd.NetAmount)
}

func TestComputeComponentsAddUp(t *testing.T) {
	// Each component is rounded on its own, so the identity
	// net = gross - inps - irpef must hold exactly on the stored values.
	cases := []struct{ hours, rate float64 }{
		{10, 20}, {163.5, 15}, {0.5, 33.33}, {172, 87.5}, {40, 12.75},
	}
	for _, tc := range cases {
		bd := Compute(tc.hours, tc.rate)
		assert.Equal(t, bd.NetAmount, Round2(bd.GrossAmount-bd.INPSAmount-bd.IRPEFAmount))
		assert.Equal(t, bd.GrossAmount, Round2(tc.hours*tc.rate))
	}
}

func TestIssueDate(t *testing.T) {
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), IssueDate(3, 2025))
	// December rolls into January of the next year.
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), IssueDate(12, 2025))
}
