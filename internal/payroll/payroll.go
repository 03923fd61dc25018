// Package payroll computes gross and net pay from logged hours and an
// hourly rate. Deductions follow the Italian scheme: a flat INPS
// social-security contribution plus progressive IRPEF income-tax
// brackets applied to the gross amount.
package payroll

import (
	"math"
	"time"
)

// INPSRate is the flat social-security contribution withheld from
// the gross amount.
const INPSRate = 0.0919

// IRPEF brackets (annualized thresholds applied to the period gross).
const (
	irpefBand1Limit = 15000.0 // 23% up to here
	irpefBand2Limit = 28000.0 // 27% between band 1 and here
	irpefBand3Limit = 55000.0 // 38% between band 2 and here

	irpefRate1 = 0.23
	irpefRate2 = 0.27
	irpefRate3 = 0.38
	irpefRate4 = 0.41 // above band 3
)

// Breakdown is the full result of a payslip computation. All monetary
// fields are rounded to 2 decimal places.
type Breakdown struct {
	TotalHours  float64 `json:"total_hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	GrossAmount float64 `json:"gross_amount"`
	INPSAmount  float64 `json:"inps_amount"`
	IRPEFAmount float64 `json:"irpef_amount"`
	NetAmount   float64 `json:"net_amount"`
}

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IRPEF returns the progressive income tax due on a gross amount.
func IRPEF(gross float64) float64 {
	if gross <= 0 {
		return 0
	}
	tax := 0.0
	switch {
	case gross <= irpefBand1Limit:
		tax = gross * irpefRate1
	case gross <= irpefBand2Limit:
		tax = irpefBand1Limit*irpefRate1 + (gross-irpefBand1Limit)*irpefRate2
	case gross <= irpefBand3Limit:
		tax = irpefBand1Limit*irpefRate1 +
			(irpefBand2Limit-irpefBand1Limit)*irpefRate2 +
			(gross-irpefBand2Limit)*irpefRate3
	default:
		tax = irpefBand1Limit*irpefRate1 +
			(irpefBand2Limit-irpefBand1Limit)*irpefRate2 +
			(irpefBand3Limit-irpefBand2Limit)*irpefRate3 +
			(gross-irpefBand3Limit)*irpefRate4
	}
	return tax
}

// Compute derives the full salary breakdown for the given hours and
// hourly rate. Each monetary component is rounded independently so
// the persisted values always add up: net = gross - inps - irpef.
func Compute(totalHours, hourlyRate float64) Breakdown {
	gross := Round2(totalHours * hourlyRate)
	inps := Round2(gross * INPSRate)
	irpef := Round2(IRPEF(gross))
	return Breakdown{
		TotalHours:  totalHours,
		HourlyRate:  hourlyRate,
		GrossAmount: gross,
		INPSAmount:  inps,
		IRPEFAmount: irpef,
		NetAmount:   Round2(gross - inps - irpef),
	}
}

// IssueDate returns the first day of the month following the payroll
// period, in UTC.
func IssueDate(month, year int) time.Time {
	m, y := month+1, year
	if m > 12 {
		m = 1
		y++
	}
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}
