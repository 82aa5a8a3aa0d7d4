/*
snapshot.go - Immutable reference-data bundle

PURPOSE:
  A Snapshot holds every reference table a forecast needs: workers,
  calendars, saldi, contracts, projects and the HR parameter table. It is
  built once per process run by a store (or test fixture) and passed
  explicitly into each calculator - there is no hidden global state. All
  calculations re-derive their results from the snapshot, so "load once,
  compute many times" holds without any synchronization.

INVARIANTS ENFORCED AT BUILD TIME:
  - calendars are grouped per worker and sorted by date
  - negative saldi are clamped to zero (warning logged)
  - the generic workday calendar is built for the reference year

INVARIANTS ENFORCED AT LOOKUP TIME:
  - exactly one active contract per worker per reference month
  - exactly one freelance contract per freelance worker
*/
package forecast

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CALENDAR - Per-worker day records
// =============================================================================

// Calendar indexes day records per worker, sorted by date.
type Calendar map[WorkerID][]CalendarDay

// NewCalendar groups day records by worker and sorts each worker's rows
// by date.
func NewCalendar(days []CalendarDay) Calendar {
	cal := make(Calendar)
	for _, d := range days {
		cal[d.WorkerID] = append(cal[d.WorkerID], d)
	}
	for id := range cal {
		rows := cal[id]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	}
	return cal
}

// Has reports whether the calendar holds any rows for the worker.
func (c Calendar) Has(id WorkerID) bool { return len(c[id]) > 0 }

// Range returns the worker's day records within the closed window.
func (c Calendar) Range(id WorkerID, p Period) []CalendarDay {
	rows := c[id]
	lo := sort.Search(len(rows), func(i int) bool { return rows[i].Date.AfterOrEqual(p.Start) })
	hi := sort.Search(len(rows), func(i int) bool { return rows[i].Date.After(p.End) })
	return rows[lo:hi]
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// SnapshotInput carries the raw reference tables as materialized by a
// store.
type SnapshotInput struct {
	RefYear int
	Workers []Worker

	// CalendarDays covers the reference year; MultiyearDays covers the
	// reference year and the preceding one (benefit reference windows span
	// both).
	CalendarDays  []CalendarDay
	MultiyearDays []CalendarDay

	Saldi              []Saldi
	Contracts          []Contract
	FreelanceContracts []FreelanceContract
	Projects           []Project
	ParamValues        map[string]decimal.Decimal
}

// Snapshot is the immutable reference-data bundle consumed by the
// calculators. Nothing in the engine mutates it after construction.
type Snapshot struct {
	RefYear int

	Workers            map[WorkerID]Worker
	Calendar           Calendar
	Multiyear          Calendar
	Saldi              map[WorkerID]Saldi
	Contracts          []Contract
	FreelanceContracts []FreelanceContract
	Projects           []Project
	Params             Params
	Workdays           *WorkdayCalendar
}

// NewSnapshot validates and indexes the raw tables. The parameter table is
// resolved here, so a missing HR code fails the load rather than the first
// forecast that needs it.
func NewSnapshot(in SnapshotInput, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	params, err := NewParams(in.ParamValues)
	if err != nil {
		return nil, err
	}

	workers := make(map[WorkerID]Worker, len(in.Workers))
	for _, w := range in.Workers {
		workers[w.ID] = w
	}

	saldi := make(map[WorkerID]Saldi, len(in.Saldi))
	for _, s := range in.Saldi {
		saldi[s.WorkerID] = clampSaldi(s, logger)
	}

	return &Snapshot{
		RefYear:            in.RefYear,
		Workers:            workers,
		Calendar:           NewCalendar(in.CalendarDays),
		Multiyear:          NewCalendar(in.MultiyearDays),
		Saldi:              saldi,
		Contracts:          in.Contracts,
		FreelanceContracts: in.FreelanceContracts,
		Projects:           in.Projects,
		Params:             params,
		Workdays:           BuildWorkdayCalendar(in.RefYear),
	}, nil
}

// clampSaldi clamps negative remaining balances to zero. A negative saldo
// means more absence was taken than the yearly entitlement; the upstream
// data should be corrected but the forecast continues.
func clampSaldi(s Saldi, logger *slog.Logger) Saldi {
	clamp := func(category string, m Minutes) Minutes {
		if m < 0 {
			logger.Warn("negative remaining saldo clamped to zero",
				"worker", int(s.WorkerID), "category", category, "minutes", int64(m))
			return 0
		}
		return m
	}
	s.Training = clamp("training", s.Training)
	s.Vacation = clamp("vacation", s.Vacation)
	s.Holiday = clamp("holiday", s.Holiday)
	s.ADV = clamp("adv", s.ADV)
	s.ExtralegalVacation = clamp("extralegal_vacation", s.ExtralegalVacation)
	s.Sickness = clamp("sickness", s.Sickness)
	return s
}

// WorkerName resolves a worker's display name, falling back to an empty
// string for unknown ids.
func (s *Snapshot) WorkerName(id WorkerID) string {
	return s.Workers[id].Name
}

// WorkersByCategory returns the workers of one category sorted by name.
func (s *Snapshot) WorkersByCategory(cat WorkerCategory) []Worker {
	var out []Worker
	for _, w := range s.Workers {
		if w.Category == cat {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ContractsForMonth returns all internal contracts covering the reference
// month, in contract-id order.
func (s *Snapshot) ContractsForMonth(ref RefMonth) []Contract {
	var out []Contract
	for _, c := range s.Contracts {
		if c.CoversMonth(ref) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveContract returns the single contract covering the worker for the
// reference month. Zero or several matches violate the single-assignment
// model and are fatal.
func (s *Snapshot) ActiveContract(worker WorkerID, ref RefMonth) (Contract, error) {
	var matches []Contract
	for _, c := range s.Contracts {
		if c.WorkerID == worker && c.CoversMonth(ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Contract{}, &ContractError{WorkerID: worker, Month: ref, Count: 0, kind: ErrNoActiveContract}
	default:
		return Contract{}, &ContractError{WorkerID: worker, Month: ref, Count: len(matches), kind: ErrMultipleContracts}
	}
}

// FreelanceContract returns the single rate contract of a freelance
// worker. Zero or several is a hard error.
func (s *Snapshot) FreelanceContract(worker WorkerID) (FreelanceContract, error) {
	var matches []FreelanceContract
	for _, fc := range s.FreelanceContracts {
		if fc.WorkerID == worker {
			matches = append(matches, fc)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return FreelanceContract{}, &ContractError{WorkerID: worker, Count: 0, kind: ErrNoFreelanceContract}
	default:
		return FreelanceContract{}, &ContractError{WorkerID: worker, Count: len(matches), kind: ErrMultipleFreelanceContracts}
	}
}
