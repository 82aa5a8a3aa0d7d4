package employee

import (
	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/forecast"
)

// doubleHolidayRate is the rough double-holiday-pay estimate: 92% of one
// month's remuneration. It ignores what was actually worked the previous
// year, so the yearly simulation is an indicator, not a payroll statement.
var doubleHolidayRate = decimal.NewFromFloat(0.92)

// YearlyCostIncome simulates cost, income and margin of one employee for
// the full reference year. The contract and project situation as of the
// reference month is frozen and projected across all 12 months.
//
// With useRealCalendar the workday and billable-day counts come from the
// worker's actual calendar. Otherwise both equal the configured yearly
// workdays times contractual FTE times the company-paid ratio, matching
// the manual spreadsheet model this simulation replaces.
func (c *Calculator) YearlyCostIncome(worker forecast.WorkerID, useRealCalendar bool) (YearlyOverview, decimal.Decimal, Parameters, error) {
	params := c.snap.Params
	ref := c.cfg.Reference
	year := forecast.YearWindow(ref.Year)

	contract, err := c.snap.ActiveContract(worker, ref)
	if err != nil {
		return YearlyOverview{}, decimal.Zero, Parameters{}, err
	}
	if contract.BoundaryInPeriod(year) {
		c.logger.Info("contract starts or ends this year",
			"worker", int(worker), "year", ref.Year)
	}

	companyPaid, _, err := c.calendar.FTERatios(worker, year, false)
	if err != nil {
		return YearlyOverview{}, decimal.Zero, Parameters{}, err
	}

	var yearlyWorkdays, yearlyBillableDays decimal.Decimal
	if useRealCalendar {
		workHours, err := c.calendar.WorkHours(worker, year, false)
		if err != nil {
			return YearlyOverview{}, decimal.Zero, Parameters{}, err
		}
		billableHours, err := c.calendar.WorkHours(worker, year, true)
		if err != nil {
			return YearlyOverview{}, decimal.Zero, Parameters{}, err
		}
		yearlyWorkdays = workHours.Div(eight)
		yearlyBillableDays = billableHours.Div(eight)
	} else {
		yearlyBillableDays = decimal.NewFromInt(int64(c.cfg.YearlyWorkdays)).Mul(contract.FTE).Mul(companyPaid)
		// The spreadsheet model equates workdays and billable days.
		yearlyWorkdays = yearlyBillableDays
	}

	actualFTE := contract.FTE.Mul(companyPaid)

	var dayRate, mspFee decimal.Decimal
	if assignment, ok := c.projects.ActiveProject(worker, ref); ok {
		dayRate, mspFee = c.projects.Rate(assignment.ProjectID)
	}
	yearlyRevenue := yearlyBillableDays.Mul(dayRate).Mul(one.Sub(mspFee))

	remuneration := contract.MonthlySalary.Mul(companyPaid).Mul(c.cfg.Inflator)

	sectorPremium, err := c.sectorPremium(worker)
	if err != nil {
		return YearlyOverview{}, decimal.Zero, Parameters{}, err
	}
	bonus, err := c.yearEndBonus(contract)
	if err != nil {
		return YearlyOverview{}, decimal.Zero, Parameters{}, err
	}
	ecoCheques, err := c.ecoCheques(worker)
	if err != nil {
		return YearlyOverview{}, decimal.Zero, Parameters{}, err
	}

	overview := YearlyOverview{
		WorkerID:         worker,
		Remuneration:     remuneration.Mul(twelve).Round(2),
		MealVouchers:     params.MealVoucherValue.Mul(params.MealVoucherEmployerShare).Mul(yearlyWorkdays).Round(2),
		SocialSecurity:   remuneration.Mul(twelve).Mul(params.EmployerSocialRate).Round(2),
		YearEndBonus:     remuneration.Mul(one.Add(params.EmployerSocialRate)).Round(2),
		SectorPremium:    sectorPremium,
		Bonus:            bonus,
		DoubleHolidayPay: remuneration.Mul(doubleHolidayRate).Round(2),
		NetAllowance:     c.netAllowance(contract).Mul(twelve).Round(2),
		EcoCheques:       ecoCheques,
		Hospitalization:  params.HospitalizationPremium.Mul(hospitalizationTax).Round(2),
		GroupInsurance:   params.GroupInsuranceYearly.Mul(contract.FTE).Mul(companyPaid).Round(2),
		PayrollAdmin:     params.PayrollAdminYearly.Round(2),
		Liability:        params.LiabilityInsuranceRate.Mul(yearlyRevenue).Round(2),
		Accident:         params.AccidentInsuranceYearly.Round(2),
		MobilityCost:     contract.MonthlyMobility.Mul(twelve).Round(2),
		TrainingEvents:   params.TrainingYearly.Add(params.TeamEventsYearly()).Round(2),
		Prevention:       params.PreventionTotalYearly().Round(2),
		ICT:              params.ICTYearly().Round(2),
		Management:       params.ManagementYearly.Round(2),
		Administration:   params.AdministrationYearly.Round(2),
		General:          params.GeneralYearly.Round(2),
	}

	parameters := Parameters{
		WorkerID:      worker,
		Level:         contract.FunctionCategory,
		Mobility:      contract.MobilityType,
		MonthlySalary: contract.MonthlySalary.Mul(c.cfg.Inflator),
		FTE:           actualFTE,
		BillableDays:  yearlyBillableDays,
		DayRate:       dayRate,
		MSPFee:        mspFee,
	}

	return overview, yearlyRevenue, parameters, nil
}

// FirstWorkday exposes the worker's first scheduled day of the reference
// year, useful to callers deciding whether a simulation covers a full
// year.
func (c *Calculator) FirstWorkday(worker forecast.WorkerID) (forecast.Date, error) {
	return c.calendar.FirstWorkday(worker, c.cfg.Reference.Year)
}
