/*
params.go - Typed HR parameter table

PURPOSE:
  The HR system supplies a code-keyed table of numeric constants (voucher
  values, insurance premiums, overhead budgets, the employer social rate).
  Instead of deferring lookups to first use, every required code is
  resolved once at load time into a named field. A missing code fails the
  load immediately and names the code, so a forecast never runs against a
  partial parameter set.

CODES:
  The HR0xx/HR1xx/HR4xx codes are per-employee cost constants, the CS00x
  codes are company-level overhead budgets. Yearly amounts are divided by
  12 where a monthly figure is needed - that happens in the calculators,
  the table stores the constants as supplied.
*/
package forecast

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Parameter codes as used by the HR parameter snapshot.
const (
	CodeMealVoucherValue         = "HR010"
	CodeEcoChequeValue           = "HR011"
	CodeMealVoucherEmployerShare = "HR012"
	CodeEcoChequeCount           = "HR013"
	CodeBonusJunior              = "HR020"
	CodeBonusExperienced         = "HR021"
	CodeBonusSenior              = "HR022"
	CodeSectorPremium            = "HR025"
	CodeAllowanceCar             = "HR030"
	CodeAllowanceOther           = "HR031"
	CodeHospitalizationPremium   = "HR041"
	CodePayrollAdminYearly       = "HR100"
	CodeOccupationalHealthYearly = "HR101"
	CodeLiabilityInsuranceRate   = "HR110"
	CodeAccidentInsuranceYearly  = "HR111"
	CodeGroupInsuranceYearly     = "HR113"
	CodeTrainingYearly           = "HR120"
	CodePreventionYearly         = "HR130"
	CodeAttentionsYearly         = "HR140"
	CodeActivitiesYearly         = "HR141"
	CodeICTWorkstationYearly     = "HR150"
	CodeICTLicensesYearly        = "HR151"
	CodeICTHostingYearly         = "HR152"
	CodeICTTelecomYearly         = "HR153"
	CodeEmployerSocialRate       = "HR401"
	CodeManagementYearly         = "CS001"
	CodeAdministrationYearly     = "CS002"
	CodeGeneralYearly            = "CS003"
)

// Params is the resolved HR parameter table. All fields are populated or
// NewParams fails; calculators read them without further existence checks.
type Params struct {
	// Benefits
	MealVoucherValue         decimal.Decimal // face value of one meal voucher
	MealVoucherEmployerShare decimal.Decimal // employer-paid fraction of the voucher
	EcoChequeValue           decimal.Decimal
	EcoChequeCount           decimal.Decimal // cheques granted per year at full time
	BonusJunior              decimal.Decimal // year-end bonus per seniority band
	BonusExperienced         decimal.Decimal
	BonusSenior              decimal.Decimal
	SectorPremium            decimal.Decimal // PC200 premium, paid in June
	AllowanceCar             decimal.Decimal // monthly net allowance, car mobility
	AllowanceOther           decimal.Decimal // monthly net allowance, other mobility

	// Insurance and payroll services (yearly unless noted)
	HospitalizationPremium   decimal.Decimal
	GroupInsuranceYearly     decimal.Decimal // per full-time equivalent
	PayrollAdminYearly       decimal.Decimal
	OccupationalHealthYearly decimal.Decimal
	LiabilityInsuranceRate   decimal.Decimal // fraction of revenue
	AccidentInsuranceYearly  decimal.Decimal

	// Per-employee overhead budgets (yearly)
	TrainingYearly       decimal.Decimal
	PreventionYearly     decimal.Decimal
	AttentionsYearly     decimal.Decimal
	ActivitiesYearly     decimal.Decimal
	ICTWorkstationYearly decimal.Decimal
	ICTLicensesYearly    decimal.Decimal
	ICTHostingYearly     decimal.Decimal
	ICTTelecomYearly     decimal.Decimal

	// Rates
	EmployerSocialRate decimal.Decimal // employer social-contribution rate

	// Company-level overhead budgets (yearly), applied only at aggregation
	ManagementYearly     decimal.Decimal
	AdministrationYearly decimal.Decimal
	GeneralYearly        decimal.Decimal
}

// NewParams resolves every required code from the raw snapshot. Missing
// codes are collected and reported together so one load attempt surfaces
// the full gap, not just the first code.
func NewParams(values map[string]decimal.Decimal) (Params, error) {
	var p Params
	fields := map[string]*decimal.Decimal{
		CodeMealVoucherValue:         &p.MealVoucherValue,
		CodeEcoChequeValue:           &p.EcoChequeValue,
		CodeMealVoucherEmployerShare: &p.MealVoucherEmployerShare,
		CodeEcoChequeCount:           &p.EcoChequeCount,
		CodeBonusJunior:              &p.BonusJunior,
		CodeBonusExperienced:         &p.BonusExperienced,
		CodeBonusSenior:              &p.BonusSenior,
		CodeSectorPremium:            &p.SectorPremium,
		CodeAllowanceCar:             &p.AllowanceCar,
		CodeAllowanceOther:           &p.AllowanceOther,
		CodeHospitalizationPremium:   &p.HospitalizationPremium,
		CodePayrollAdminYearly:       &p.PayrollAdminYearly,
		CodeOccupationalHealthYearly: &p.OccupationalHealthYearly,
		CodeLiabilityInsuranceRate:   &p.LiabilityInsuranceRate,
		CodeAccidentInsuranceYearly:  &p.AccidentInsuranceYearly,
		CodeGroupInsuranceYearly:     &p.GroupInsuranceYearly,
		CodeTrainingYearly:           &p.TrainingYearly,
		CodePreventionYearly:         &p.PreventionYearly,
		CodeAttentionsYearly:         &p.AttentionsYearly,
		CodeActivitiesYearly:         &p.ActivitiesYearly,
		CodeICTWorkstationYearly:     &p.ICTWorkstationYearly,
		CodeICTLicensesYearly:        &p.ICTLicensesYearly,
		CodeICTHostingYearly:         &p.ICTHostingYearly,
		CodeICTTelecomYearly:         &p.ICTTelecomYearly,
		CodeEmployerSocialRate:       &p.EmployerSocialRate,
		CodeManagementYearly:         &p.ManagementYearly,
		CodeAdministrationYearly:     &p.AdministrationYearly,
		CodeGeneralYearly:            &p.GeneralYearly,
	}

	var missing []string
	for code, dst := range fields {
		v, ok := values[code]
		if !ok {
			missing = append(missing, code)
			continue
		}
		*dst = v
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Params{}, &ParameterError{Codes: missing}
	}
	return p, nil
}

// ICTYearly sums the ICT budget components.
func (p Params) ICTYearly() decimal.Decimal {
	return p.ICTWorkstationYearly.Add(p.ICTLicensesYearly).
		Add(p.ICTHostingYearly).Add(p.ICTTelecomYearly)
}

// TeamEventsYearly sums the attentions and activities budgets.
func (p Params) TeamEventsYearly() decimal.Decimal {
	return p.AttentionsYearly.Add(p.ActivitiesYearly)
}

// PreventionTotalYearly sums the prevention and occupational-health budgets.
func (p Params) PreventionTotalYearly() decimal.Decimal {
	return p.PreventionYearly.Add(p.OccupationalHealthYearly)
}

// OverheadYearly sums the company-level overhead budgets applied by the
// aggregator.
func (p Params) OverheadYearly() decimal.Decimal {
	return p.ManagementYearly.Add(p.AdministrationYearly).Add(p.GeneralYearly)
}
