// Package employee implements the monthly and yearly cost-and-revenue
// calculator for internal employees. It combines the calendar/absence and
// project resolvers with contract terms and the HR parameter table into
// the itemized cost breakdown used by the company aggregator.
package employee

import (
	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/forecast"
)

// =============================================================================
// MONTHLY COST BREAKDOWN
// =============================================================================

// CostBreakdown itemizes one employee-month of employer cost. Line item
// names follow the payroll ledger (Dutch); the struct keeps them typed so
// the aggregator sums columns without string keys.
//
// Company-level management, administration and general overhead are NOT
// part of the breakdown; the aggregator adds them once per month.
type CostBreakdown struct {
	WorkerID forecast.WorkerID
	Name     string

	Remuneration         decimal.Decimal // Bezoldiging
	VacationPayProvision decimal.Decimal // Provisie vakantiegeld
	YearEndProvision     decimal.Decimal // Provisie eindejaarspremie
	SocialSecurity       decimal.Decimal // RSZ werkgever
	SectorPremium        decimal.Decimal // Premie-PC200, June only
	Bonus                decimal.Decimal // December only, tiered by seniority
	NetAllowance         decimal.Decimal // Nettovergoeding
	MealVouchers         decimal.Decimal // Maaltijdcheques
	EcoCheques           decimal.Decimal // ECO-cheques, May only
	Hospitalization      decimal.Decimal // Hospitalisatieverz.
	GroupInsurance       decimal.Decimal // Groepsverz.
	PayrollAdmin         decimal.Decimal // Administratie Securex
	LiabilityInsurance   decimal.Decimal // Verzekering BA
	AccidentInsurance    decimal.Decimal // Verzekering AO
	MobilityCost         decimal.Decimal // Mobiliteitskost
	Training             decimal.Decimal // Opleiding
	TeamEvents           decimal.Decimal // Attenties en activiteiten
	Prevention           decimal.Decimal // Preventie
	ICT                  decimal.Decimal // ICT
}

// Total sums every line item.
func (c CostBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range []decimal.Decimal{
		c.Remuneration, c.VacationPayProvision, c.YearEndProvision, c.SocialSecurity,
		c.SectorPremium, c.Bonus, c.NetAllowance, c.MealVouchers, c.EcoCheques,
		c.Hospitalization, c.GroupInsurance, c.PayrollAdmin, c.LiabilityInsurance,
		c.AccidentInsurance, c.MobilityCost, c.Training, c.TeamEvents, c.Prevention, c.ICT,
	} {
		total = total.Add(v)
	}
	return total
}

// Add returns the line-by-line sum of two breakdowns, used for totals rows.
func (c CostBreakdown) Add(o CostBreakdown) CostBreakdown {
	return CostBreakdown{
		WorkerID:             c.WorkerID,
		Name:                 c.Name,
		Remuneration:         c.Remuneration.Add(o.Remuneration),
		VacationPayProvision: c.VacationPayProvision.Add(o.VacationPayProvision),
		YearEndProvision:     c.YearEndProvision.Add(o.YearEndProvision),
		SocialSecurity:       c.SocialSecurity.Add(o.SocialSecurity),
		SectorPremium:        c.SectorPremium.Add(o.SectorPremium),
		Bonus:                c.Bonus.Add(o.Bonus),
		NetAllowance:         c.NetAllowance.Add(o.NetAllowance),
		MealVouchers:         c.MealVouchers.Add(o.MealVouchers),
		EcoCheques:           c.EcoCheques.Add(o.EcoCheques),
		Hospitalization:      c.Hospitalization.Add(o.Hospitalization),
		GroupInsurance:       c.GroupInsurance.Add(o.GroupInsurance),
		PayrollAdmin:         c.PayrollAdmin.Add(o.PayrollAdmin),
		LiabilityInsurance:   c.LiabilityInsurance.Add(o.LiabilityInsurance),
		AccidentInsurance:    c.AccidentInsurance.Add(o.AccidentInsurance),
		MobilityCost:         c.MobilityCost.Add(o.MobilityCost),
		Training:             c.Training.Add(o.Training),
		TeamEvents:           c.TeamEvents.Add(o.TeamEvents),
		Prevention:           c.Prevention.Add(o.Prevention),
		ICT:                  c.ICT.Add(o.ICT),
	}
}

// MonthlyResult pairs one employee-month cost breakdown with the matching
// revenue after MSP fee.
type MonthlyResult struct {
	WorkerID forecast.WorkerID
	Name     string
	Cost     CostBreakdown
	Revenue  decimal.Decimal // after MSP fee, rounded to 2 decimals
}

// =============================================================================
// YEARLY SIMULATION
// =============================================================================

// YearlyOverview is the one-row yearly cost table of the employee
// simulation. Unlike the monthly breakdown it includes the double
// holiday pay estimate and the company-level overhead lines, matching the
// manual salary-calculation spreadsheet it replaces.
type YearlyOverview struct {
	WorkerID forecast.WorkerID

	Remuneration     decimal.Decimal // Bezoldiging, 12 months
	MealVouchers     decimal.Decimal
	SocialSecurity   decimal.Decimal
	YearEndBonus     decimal.Decimal // Eindejaarspremie, full 13th month incl. employer rate
	SectorPremium    decimal.Decimal
	Bonus            decimal.Decimal
	DoubleHolidayPay decimal.Decimal // Dubbel vakantiegeld, rough 92% estimate
	NetAllowance     decimal.Decimal
	EcoCheques       decimal.Decimal
	Hospitalization  decimal.Decimal
	GroupInsurance   decimal.Decimal
	PayrollAdmin     decimal.Decimal
	Liability        decimal.Decimal
	Accident         decimal.Decimal
	MobilityCost     decimal.Decimal
	TrainingEvents   decimal.Decimal // Opleiding, attenties en activiteiten
	Prevention       decimal.Decimal
	ICT              decimal.Decimal
	Management       decimal.Decimal
	Administration   decimal.Decimal
	General          decimal.Decimal
}

// Total sums every yearly line item.
func (y YearlyOverview) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range []decimal.Decimal{
		y.Remuneration, y.MealVouchers, y.SocialSecurity, y.YearEndBonus, y.SectorPremium,
		y.Bonus, y.DoubleHolidayPay, y.NetAllowance, y.EcoCheques, y.Hospitalization,
		y.GroupInsurance, y.PayrollAdmin, y.Liability, y.Accident, y.MobilityCost,
		y.TrainingEvents, y.Prevention, y.ICT, y.Management, y.Administration, y.General,
	} {
		total = total.Add(v)
	}
	return total
}

// Parameters records the inputs of a yearly simulation for display and
// debugging alongside the result.
type Parameters struct {
	WorkerID      forecast.WorkerID
	Level         string // function category / seniority band
	Mobility      string
	MonthlySalary decimal.Decimal // inflated
	FTE           decimal.Decimal // contractual FTE times company-paid ratio
	BillableDays  decimal.Decimal
	DayRate       decimal.Decimal
	MSPFee        decimal.Decimal
}
