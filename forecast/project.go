/*
project.go - Project assignment resolution

PURPOSE:
  Resolves which project covers a worker in a reference month and that
  project's billing terms. A worker without an active project is a normal
  business situation (on the bench, between assignments), so "no project"
  is an explicit not-found result, never an error: downstream calculators
  treat it as zero rate and zero revenue.

RESOLUTION ORDER:
  When several projects of one worker overlap the month, the most recently
  started wins, ties broken by the higher project id. The model assumes a
  single assignment per month; overlaps usually mean one project hands over
  to the next mid-month, and the newer one is the billing reality.
*/
package forecast

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
)

var eight = decimal.NewFromInt(8)

// Assignment is the resolved active project of a worker for one month.
type Assignment struct {
	ProjectID ProjectID
	Window    Period
}

// ProjectResolver resolves project assignments and billing terms from the
// snapshot.
type ProjectResolver struct {
	Snapshot *Snapshot
	Logger   *slog.Logger
}

func NewProjectResolver(snap *Snapshot, logger *slog.Logger) *ProjectResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectResolver{Snapshot: snap, Logger: logger}
}

// ActiveProject returns the worker's project overlapping the reference
// month, or ok=false when none does.
func (r *ProjectResolver) ActiveProject(worker WorkerID, ref RefMonth) (Assignment, bool) {
	window := ref.Window()
	var candidates []Project
	for _, p := range r.Snapshot.Projects {
		if p.WorkerID != worker {
			continue
		}
		if p.Start.BeforeOrEqual(window.End) && p.End.AfterOrEqual(window.Start) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		r.Logger.Info("no active project for worker",
			"worker", int(worker), "name", r.Snapshot.WorkerName(worker), "month", ref.String())
		return Assignment{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].Start.Equal(candidates[j].Start) {
			return candidates[i].Start.After(candidates[j].Start)
		}
		return candidates[i].ID > candidates[j].ID
	})
	chosen := candidates[0]
	return Assignment{ProjectID: chosen.ID, Window: chosen.Window()}, true
}

// Rate returns the project's day rate (hourly rate times 8) and MSP fee
// fraction. An unknown project id yields zero rate with a warning.
func (r *ProjectResolver) Rate(id ProjectID) (dayRate, mspFee decimal.Decimal) {
	for _, p := range r.Snapshot.Projects {
		if p.ID == id {
			return p.HourlyRate.Mul(eight), p.MSPFee
		}
	}
	r.Logger.Warn("no rate for project, falling back to zero", "project", int(id))
	return decimal.Zero, decimal.Zero
}

// FTE returns the fraction of a full-time schedule the project occupies.
// An unknown project id defaults to full time with a warning.
func (r *ProjectResolver) FTE(id ProjectID) decimal.Decimal {
	for _, p := range r.Snapshot.Projects {
		if p.ID == id {
			return p.FTE
		}
	}
	r.Logger.Warn("no fte percentage for project, defaulting to 1.00", "project", int(id))
	return decimal.NewFromInt(1)
}
