package company

import (
	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/employee"
	"github.com/warp/forecast-engine/forecast"
)

// DetailRow is one employee in the itemized month forecast: the full cost
// breakdown, the individual cost total, the employee's share of the fixed
// overhead budgets, and the resulting margin.
type DetailRow struct {
	WorkerID       forecast.WorkerID
	Name           string
	Cost           employee.CostBreakdown
	IndividualCost decimal.Decimal
	Overhead       decimal.Decimal
	TotalCost      decimal.Decimal
	Revenue        decimal.Decimal
	Margin         decimal.Decimal
	MarginPercent  string
}

// MonthDetail is the itemized employee forecast for one month, with a
// totals row across all employees.
type MonthDetail struct {
	Month forecast.RefMonth
	Rows  []DetailRow
	Total DetailRow
}

// EmployeeMonthForecast builds the itemized employee table for one month.
// The yearly overhead budgets are allocated evenly: a twelfth of the
// combined budget, divided over the employees left after the ignore list
// is applied.
func (a *Aggregator) EmployeeMonthForecast(ref forecast.RefMonth) (*MonthDetail, error) {
	results, err := a.employees.MonthlySummary(ref)
	if err != nil {
		return nil, err
	}

	summaries := make([]SummaryRow, 0, len(results))
	byWorker := make(map[forecast.WorkerID]employee.CostBreakdown, len(results))
	for _, r := range results {
		byWorker[r.WorkerID] = r.Cost
		summaries = append(summaries, SummaryRow{
			WorkerID: r.WorkerID,
			Name:     r.Name,
			Cost:     r.Cost.Total().Round(2),
			Revenue:  r.Revenue,
		})
	}
	summaries = a.dropIgnored(summaries)
	sortRows(summaries)

	detail := &MonthDetail{
		Month: ref,
		Total: DetailRow{Name: "Totaal"},
	}
	overhead := decimal.Zero
	if len(summaries) > 0 {
		headcount := decimal.NewFromInt(int64(len(summaries)))
		overhead = a.snap.Params.OverheadYearly().Div(twelve).Div(headcount).Round(2)
	}
	for _, s := range summaries {
		total := s.Cost.Add(overhead)
		margin := s.Revenue.Sub(total).Round(2)
		detail.Rows = append(detail.Rows, DetailRow{
			WorkerID:       s.WorkerID,
			Name:           s.Name,
			Cost:           byWorker[s.WorkerID],
			IndividualCost: s.Cost,
			Overhead:       overhead,
			TotalCost:      total,
			Revenue:        s.Revenue,
			Margin:         margin,
			MarginPercent:  marginPercent(margin, s.Revenue),
		})
		detail.Total.Cost = detail.Total.Cost.Add(byWorker[s.WorkerID])
		detail.Total.IndividualCost = detail.Total.IndividualCost.Add(s.Cost)
		detail.Total.Overhead = detail.Total.Overhead.Add(overhead)
		detail.Total.TotalCost = detail.Total.TotalCost.Add(total)
		detail.Total.Revenue = detail.Total.Revenue.Add(s.Revenue)
		detail.Total.Margin = detail.Total.Margin.Add(margin)
	}
	detail.Total.MarginPercent = marginPercent(detail.Total.Margin, detail.Total.Revenue)
	return detail, nil
}

func marginPercent(margin, revenue decimal.Decimal) string {
	if revenue.IsZero() {
		return "0.00%"
	}
	return margin.Div(revenue).Mul(hundred).StringFixed(2) + "%"
}
