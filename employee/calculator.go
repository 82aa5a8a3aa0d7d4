package employee

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/forecast"
)

var (
	eight  = decimal.NewFromInt(8)
	twelve = decimal.NewFromInt(12)
	one    = decimal.NewFromInt(1)

	// vacationProvisionRate is the statutory provision for single and
	// double holiday pay built up on gross remuneration.
	vacationProvisionRate = decimal.NewFromFloat(0.182)

	// hospitalizationTax is the premium tax factor on the hospitalization
	// insurance.
	hospitalizationTax = decimal.NewFromFloat(1.25)
)

// Config carries the forecast-wide settings the calculator needs.
type Config struct {
	// Reference anchors the forecast: benefit reference windows and the
	// yearly simulation all freeze the situation as of this month.
	Reference forecast.RefMonth

	// Inflator is applied to contractual salaries to model upcoming
	// indexation.
	Inflator decimal.Decimal

	// YearlyWorkdays is the configured average number of billable days in
	// a full-time year, used when the yearly simulation does not follow
	// the real calendar.
	YearlyWorkdays int
}

// Calculator computes per-employee monthly and yearly cost and revenue.
type Calculator struct {
	snap     *forecast.Snapshot
	calendar *forecast.CalendarResolver
	projects *forecast.ProjectResolver
	cfg      Config
	logger   *slog.Logger
}

func New(snap *forecast.Snapshot, calendar *forecast.CalendarResolver, projects *forecast.ProjectResolver, cfg Config, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{snap: snap, calendar: calendar, projects: projects, cfg: cfg, logger: logger}
}

// =============================================================================
// MONTHLY COST
// =============================================================================

// MonthlyCost computes the itemized employer cost of one contract for one
// month. The monthlyRevenue argument is the month's gross billing and
// feeds the revenue-linked liability insurance line. Company-level
// overhead is excluded; the aggregator adds it once per month, not per
// employee.
func (c *Calculator) MonthlyCost(contract forecast.Contract, ref forecast.RefMonth, monthlyRevenue decimal.Decimal) (CostBreakdown, error) {
	params := c.snap.Params
	window := ref.Window()
	name := c.snap.WorkerName(contract.WorkerID)

	workHours, err := c.calendar.WorkHours(contract.WorkerID, window, false)
	if err != nil {
		return CostBreakdown{}, err
	}
	expectedWorkdays := workHours.Div(eight)

	// A contract starting or ending mid-month makes scheduled time an
	// unreliable denominator; switch the ratios to the company workday
	// calendar.
	boundary := contract.BoundaryInPeriod(window)
	if boundary {
		c.logger.Info("contract starts or ends this month",
			"worker", int(contract.WorkerID), "name", name, "month", ref.String())
	}
	companyPaid, vacationTime, err := c.calendar.FTERatios(contract.WorkerID, window, boundary)
	if err != nil {
		return CostBreakdown{}, err
	}

	var bonus, ecoCheques, sectorPremium decimal.Decimal
	switch ref.Month {
	case time.May:
		ecoCheques, err = c.ecoCheques(contract.WorkerID)
	case time.June:
		sectorPremium, err = c.sectorPremium(contract.WorkerID)
	case time.December:
		bonus, err = c.yearEndBonus(contract)
	}
	if err != nil {
		return CostBreakdown{}, err
	}

	// Remuneration excludes the single holiday pay part (the vacation
	// provision covers it), but social security is due on the full gross.
	remuneration := contract.MonthlySalary.Mul(companyPaid).Mul(one.Sub(vacationTime)).Mul(c.cfg.Inflator)
	socialBase := contract.MonthlySalary.Mul(companyPaid).Mul(c.cfg.Inflator)

	return CostBreakdown{
		WorkerID:             contract.WorkerID,
		Name:                 name,
		Remuneration:         remuneration.Round(2),
		VacationPayProvision: remuneration.Mul(vacationProvisionRate).Round(2),
		YearEndProvision:     remuneration.Mul(one.Add(params.EmployerSocialRate)).Div(twelve).Round(2),
		SocialSecurity:       socialBase.Mul(params.EmployerSocialRate).Round(2),
		SectorPremium:        sectorPremium,
		Bonus:                bonus,
		NetAllowance:         c.netAllowance(contract).Round(2),
		MealVouchers:         params.MealVoucherValue.Mul(params.MealVoucherEmployerShare).Mul(expectedWorkdays).Round(2),
		EcoCheques:           ecoCheques,
		Hospitalization:      params.HospitalizationPremium.Mul(hospitalizationTax).Div(twelve).Round(2),
		GroupInsurance:       params.GroupInsuranceYearly.Mul(contract.FTE).Mul(companyPaid).Div(twelve).Round(2),
		PayrollAdmin:         params.PayrollAdminYearly.Div(twelve).Round(2),
		LiabilityInsurance:   params.LiabilityInsuranceRate.Mul(monthlyRevenue).Round(2),
		AccidentInsurance:    params.AccidentInsuranceYearly.Div(twelve).Round(2),
		MobilityCost:         contract.MonthlyMobility.Round(2),
		Training:             params.TrainingYearly.Div(twelve).Round(2),
		TeamEvents:           params.TeamEventsYearly().Div(twelve).Round(2),
		Prevention:           params.PreventionTotalYearly().Div(twelve).Round(2),
		ICT:                  params.ICTYearly().Div(twelve).Round(2),
	}, nil
}

// =============================================================================
// MONTHLY REVENUE
// =============================================================================

// MonthlyRevenue computes the expected billing of one employee for one
// month, before and after the MSP fee. Billable hours run over the
// intersection of the month window and the project's own validity window,
// so projects starting or ending mid-month are pro-rated. No active
// project yields (0, 0).
func (c *Calculator) MonthlyRevenue(worker forecast.WorkerID, ref forecast.RefMonth) (gross, afterFee decimal.Decimal, err error) {
	assignment, ok := c.projects.ActiveProject(worker, ref)
	if !ok {
		return decimal.Zero, decimal.Zero, nil
	}
	dayRate, mspFee := c.projects.Rate(assignment.ProjectID)

	window := ref.Window()
	start := window.Start.Max(assignment.Window.Start)
	end := window.End.Min(assignment.Window.End).Max(start)

	hours, err := c.calendar.WorkHours(worker, forecast.Period{Start: start, End: end}, true)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	gross = hours.Mul(dayRate.Div(eight))
	return gross, gross.Mul(one.Sub(mspFee)), nil
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// MonthlySummary computes cost and revenue for every contract active in
// the month. Any fatal resolver error aborts the whole summary: partial
// results must not feed the aggregation.
func (c *Calculator) MonthlySummary(ref forecast.RefMonth) ([]MonthlyResult, error) {
	var results []MonthlyResult
	for _, contract := range c.snap.ContractsForMonth(ref) {
		// The liability insurance line is rated on gross billing; the MSP
		// fee only reduces the revenue side.
		gross, afterFee, err := c.MonthlyRevenue(contract.WorkerID, ref)
		if err != nil {
			return nil, err
		}
		cost, err := c.MonthlyCost(contract, ref, gross)
		if err != nil {
			return nil, err
		}
		results = append(results, MonthlyResult{
			WorkerID: contract.WorkerID,
			Name:     cost.Name,
			Cost:     cost,
			Revenue:  afterFee.Round(2),
		})
	}
	return results, nil
}

// =============================================================================
// BENEFITS - Pro-rated on their own reference windows
// =============================================================================

// benefitRatio computes the company-paid ratio over a benefit reference
// window. Benefit windows span two calendar years, so they are always
// measured against the company workday calendar.
func (c *Calculator) benefitRatio(worker forecast.WorkerID, window forecast.Period) (decimal.Decimal, error) {
	companyPaid, _, err := c.calendar.FTERatios(worker, window, true)
	return companyPaid, err
}

// bonusWindow is the year-end bonus reference period: December of the
// previous year through November of the reference year.
func (c *Calculator) bonusWindow() forecast.Period {
	year := c.cfg.Reference.Year
	return forecast.Period{
		Start: forecast.NewDate(year-1, time.December, 1),
		End:   forecast.NewDate(year, time.November, 30),
	}
}

// midYearWindow is the reference period of eco-cheques and the sector
// premium: June of the previous year through May of the reference year.
func (c *Calculator) midYearWindow() forecast.Period {
	year := c.cfg.Reference.Year
	return forecast.Period{
		Start: forecast.NewDate(year-1, time.June, 1),
		End:   forecast.NewDate(year, time.May, 31),
	}
}

// yearEndBonus returns the December bonus, tiered by the seniority band
// prefix of the function category and pro-rated by the company-paid ratio
// over the bonus reference period. Unknown bands get no bonus.
func (c *Calculator) yearEndBonus(contract forecast.Contract) (decimal.Decimal, error) {
	ratio, err := c.benefitRatio(contract.WorkerID, c.bonusWindow())
	if err != nil {
		return decimal.Zero, err
	}
	params := c.snap.Params
	var amount decimal.Decimal
	switch {
	case strings.HasPrefix(contract.FunctionCategory, "JUN"):
		amount = params.BonusJunior
	case strings.HasPrefix(contract.FunctionCategory, "EXP"):
		amount = params.BonusExperienced
	case strings.HasPrefix(contract.FunctionCategory, "SEN"), strings.HasPrefix(contract.FunctionCategory, "BUS"):
		amount = params.BonusSenior
	default:
		return decimal.Zero, nil
	}
	return amount.Mul(ratio).Round(2), nil
}

// ecoCheques returns the May eco-cheque grant pro-rated over its
// reference period.
func (c *Calculator) ecoCheques(worker forecast.WorkerID) (decimal.Decimal, error) {
	ratio, err := c.benefitRatio(worker, c.midYearWindow())
	if err != nil {
		return decimal.Zero, err
	}
	params := c.snap.Params
	return params.EcoChequeValue.Mul(params.EcoChequeCount).Mul(ratio).Round(2), nil
}

// sectorPremium returns the June PC200 premium pro-rated over its
// reference period.
func (c *Calculator) sectorPremium(worker forecast.WorkerID) (decimal.Decimal, error) {
	ratio, err := c.benefitRatio(worker, c.midYearWindow())
	if err != nil {
		return decimal.Zero, err
	}
	return c.snap.Params.SectorPremium.Mul(ratio).Round(2), nil
}

// netAllowance returns the monthly net expense allowance, which depends
// on the mobility arrangement.
func (c *Calculator) netAllowance(contract forecast.Contract) decimal.Decimal {
	if contract.MobilityType == "car" {
		return c.snap.Params.AllowanceCar
	}
	return c.snap.Params.AllowanceOther
}
