/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients

AMOUNT ENCODING:
  All euro amounts are serialized as decimal strings ("7207.50") to keep
  the precision of the underlying decimal values; clients must not parse
  them as floats for further arithmetic.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/company"
	"github.com/warp/forecast-engine/employee"
	"github.com/warp/forecast-engine/forecast"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// WorkerDTO represents a worker in API responses.
type WorkerDTO struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Team     string `json:"team,omitempty"`
}

// SummaryRowDTO is one worker's month in a population summary.
type SummaryRowDTO struct {
	WorkerID int    `json:"worker_id"`
	Name     string `json:"name"`
	Cost     string `json:"cost"`
	Revenue  string `json:"revenue"`
	Margin   string `json:"margin"`
}

// MonthRowDTO is one month of the company year forecast.
type MonthRowDTO struct {
	Month              string `json:"month"`
	EmployeeCost       string `json:"employee_cost"`
	FreelanceCost      string `json:"freelance_cost"`
	ManagementCost     string `json:"management_cost"`
	AdministrationCost string `json:"administration_cost"`
	GeneralCost        string `json:"general_cost"`
	TotalCost          string `json:"total_cost"`
	EmployeeRevenue    string `json:"employee_revenue"`
	FreelanceRevenue   string `json:"freelance_revenue"`
	TotalRevenue       string `json:"total_revenue"`
	GrossMargin        string `json:"gross_margin"`
}

// YearForecastDTO is the company-wide forecast response.
type YearForecastDTO struct {
	ReferenceYear  int           `json:"reference_year"`
	ReferenceMonth int           `json:"reference_month"`
	Months         []MonthRowDTO `json:"months"`
	Total          MonthRowDTO   `json:"total"`
}

// CostBreakdownDTO itemizes one employee's monthly cost.
type CostBreakdownDTO struct {
	Remuneration         string `json:"remuneration"`
	VacationPayProvision string `json:"vacation_pay_provision"`
	YearEndProvision     string `json:"year_end_provision"`
	SocialSecurity       string `json:"social_security"`
	SectorPremium        string `json:"sector_premium"`
	Bonus                string `json:"bonus"`
	NetAllowance         string `json:"net_allowance"`
	MealVouchers         string `json:"meal_vouchers"`
	EcoCheques           string `json:"eco_cheques"`
	Hospitalization      string `json:"hospitalization"`
	GroupInsurance       string `json:"group_insurance"`
	PayrollAdmin         string `json:"payroll_admin"`
	LiabilityInsurance   string `json:"liability_insurance"`
	AccidentInsurance    string `json:"accident_insurance"`
	MobilityCost         string `json:"mobility_cost"`
	Training             string `json:"training"`
	TeamEvents           string `json:"team_events"`
	Prevention           string `json:"prevention"`
	ICT                  string `json:"ict"`
}

// DetailRowDTO is one employee in the itemized month forecast.
type DetailRowDTO struct {
	WorkerID       int              `json:"worker_id"`
	Name           string           `json:"name"`
	Breakdown      CostBreakdownDTO `json:"breakdown"`
	IndividualCost string           `json:"individual_cost"`
	Overhead       string           `json:"overhead"`
	TotalCost      string           `json:"total_cost"`
	Revenue        string           `json:"revenue"`
	Margin         string           `json:"margin"`
	MarginPercent  string           `json:"margin_percent"`
}

// MonthDetailDTO is the itemized employee forecast for one month.
type MonthDetailDTO struct {
	Month string         `json:"month"`
	Rows  []DetailRowDTO `json:"rows"`
	Total DetailRowDTO   `json:"total"`
}

// YearlyOverviewDTO is the yearly cost/income simulation for one employee.
type YearlyOverviewDTO struct {
	WorkerID           int    `json:"worker_id"`
	Name               string `json:"name"`
	Remuneration       string `json:"remuneration"`
	MealVouchers       string `json:"meal_vouchers"`
	SocialSecurity     string `json:"social_security"`
	YearEndBonus       string `json:"year_end_bonus"`
	SectorPremium      string `json:"sector_premium"`
	Bonus              string `json:"bonus"`
	DoubleHolidayPay   string `json:"double_holiday_pay"`
	NetAllowance       string `json:"net_allowance"`
	EcoCheques         string `json:"eco_cheques"`
	Hospitalization    string `json:"hospitalization"`
	GroupInsurance     string `json:"group_insurance"`
	PayrollAdmin       string `json:"payroll_admin"`
	LiabilityInsurance string `json:"liability_insurance"`
	AccidentInsurance  string `json:"accident_insurance"`
	MobilityCost       string `json:"mobility_cost"`
	TrainingEvents     string `json:"training_events"`
	Prevention         string `json:"prevention"`
	ICT                string `json:"ict"`
	Management         string `json:"management"`
	Administration     string `json:"administration"`
	General            string `json:"general"`
	TotalCost          string `json:"total_cost"`
	Revenue            string `json:"revenue"`
	Margin             string `json:"margin"`

	Parameters SimulationParametersDTO `json:"parameters"`
}

// SimulationParametersDTO records the inputs of a yearly simulation.
type SimulationParametersDTO struct {
	Level         string `json:"level"`
	Mobility      string `json:"mobility,omitempty"`
	MonthlySalary string `json:"monthly_salary"`
	FTE           string `json:"fte"`
	BillableDays  string `json:"billable_days"`
	DayRate       string `json:"day_rate"`
	MSPFee        string `json:"msp_fee"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func euro(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toWorkerDTO(w forecast.Worker) WorkerDTO {
	return WorkerDTO{
		ID:       int(w.ID),
		Name:     w.Name,
		Category: string(w.Category),
		Team:     w.Team,
	}
}

func toSummaryRowDTO(r company.SummaryRow) SummaryRowDTO {
	return SummaryRowDTO{
		WorkerID: int(r.WorkerID),
		Name:     r.Name,
		Cost:     euro(r.Cost),
		Revenue:  euro(r.Revenue),
		Margin:   euro(r.Margin),
	}
}

func toSummaryRowDTOs(rows []company.SummaryRow) []SummaryRowDTO {
	dtos := make([]SummaryRowDTO, len(rows))
	for i, r := range rows {
		dtos[i] = toSummaryRowDTO(r)
	}
	return dtos
}

func toMonthRowDTO(r company.MonthRow) MonthRowDTO {
	return MonthRowDTO{
		Month:              r.Month,
		EmployeeCost:       r.EmployeeCost.StringFixed(0),
		FreelanceCost:      r.FreelanceCost.StringFixed(0),
		ManagementCost:     r.ManagementCost.StringFixed(0),
		AdministrationCost: r.AdministrationCost.StringFixed(0),
		GeneralCost:        r.GeneralCost.StringFixed(0),
		TotalCost:          r.TotalCost.StringFixed(0),
		EmployeeRevenue:    r.EmployeeRevenue.StringFixed(0),
		FreelanceRevenue:   r.FreelanceRevenue.StringFixed(0),
		TotalRevenue:       r.TotalRevenue.StringFixed(0),
		GrossMargin:        r.GrossMargin.StringFixed(0),
	}
}

func toCostBreakdownDTO(b employee.CostBreakdown) CostBreakdownDTO {
	return CostBreakdownDTO{
		Remuneration:         euro(b.Remuneration),
		VacationPayProvision: euro(b.VacationPayProvision),
		YearEndProvision:     euro(b.YearEndProvision),
		SocialSecurity:       euro(b.SocialSecurity),
		SectorPremium:        euro(b.SectorPremium),
		Bonus:                euro(b.Bonus),
		NetAllowance:         euro(b.NetAllowance),
		MealVouchers:         euro(b.MealVouchers),
		EcoCheques:           euro(b.EcoCheques),
		Hospitalization:      euro(b.Hospitalization),
		GroupInsurance:       euro(b.GroupInsurance),
		PayrollAdmin:         euro(b.PayrollAdmin),
		LiabilityInsurance:   euro(b.LiabilityInsurance),
		AccidentInsurance:    euro(b.AccidentInsurance),
		MobilityCost:         euro(b.MobilityCost),
		Training:             euro(b.Training),
		TeamEvents:           euro(b.TeamEvents),
		Prevention:           euro(b.Prevention),
		ICT:                  euro(b.ICT),
	}
}

func toDetailRowDTO(r company.DetailRow) DetailRowDTO {
	return DetailRowDTO{
		WorkerID:       int(r.WorkerID),
		Name:           r.Name,
		Breakdown:      toCostBreakdownDTO(r.Cost),
		IndividualCost: euro(r.IndividualCost),
		Overhead:       euro(r.Overhead),
		TotalCost:      euro(r.TotalCost),
		Revenue:        euro(r.Revenue),
		Margin:         euro(r.Margin),
		MarginPercent:  r.MarginPercent,
	}
}

func toMonthDetailDTO(d *company.MonthDetail) MonthDetailDTO {
	dto := MonthDetailDTO{
		Month: d.Month.String(),
		Rows:  make([]DetailRowDTO, len(d.Rows)),
		Total: toDetailRowDTO(d.Total),
	}
	for i, r := range d.Rows {
		dto.Rows[i] = toDetailRowDTO(r)
	}
	return dto
}

func toYearlyOverviewDTO(name string, o employee.YearlyOverview, revenue decimal.Decimal, p employee.Parameters) YearlyOverviewDTO {
	total := o.Total()
	return YearlyOverviewDTO{
		WorkerID:           int(o.WorkerID),
		Name:               name,
		Remuneration:       euro(o.Remuneration),
		MealVouchers:       euro(o.MealVouchers),
		SocialSecurity:     euro(o.SocialSecurity),
		YearEndBonus:       euro(o.YearEndBonus),
		SectorPremium:      euro(o.SectorPremium),
		Bonus:              euro(o.Bonus),
		DoubleHolidayPay:   euro(o.DoubleHolidayPay),
		NetAllowance:       euro(o.NetAllowance),
		EcoCheques:         euro(o.EcoCheques),
		Hospitalization:    euro(o.Hospitalization),
		GroupInsurance:     euro(o.GroupInsurance),
		PayrollAdmin:       euro(o.PayrollAdmin),
		LiabilityInsurance: euro(o.Liability),
		AccidentInsurance:  euro(o.Accident),
		MobilityCost:       euro(o.MobilityCost),
		TrainingEvents:     euro(o.TrainingEvents),
		Prevention:         euro(o.Prevention),
		ICT:                euro(o.ICT),
		Management:         euro(o.Management),
		Administration:     euro(o.Administration),
		General:            euro(o.General),
		TotalCost:          euro(total),
		Revenue:            euro(revenue),
		Margin:             euro(revenue.Sub(total)),
		Parameters: SimulationParametersDTO{
			Level:         p.Level,
			Mobility:      p.Mobility,
			MonthlySalary: euro(p.MonthlySalary),
			FTE:           p.FTE.String(),
			BillableDays:  p.BillableDays.String(),
			DayRate:       euro(p.DayRate),
			MSPFee:        p.MSPFee.String(),
		},
	}
}
