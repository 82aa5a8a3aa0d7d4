/*
errors.go - Centralized error types for the forecast engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calculator packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Missing reference data - calendar, saldi or parameter table gaps.
     Fatal: a forecast cannot proceed without them.
  2. Structural violations - contract multiplicity, cross-year
     amortization. Fatal: the snapshot contradicts a core invariant.
  3. Soft lookup misses - no active project, missing rate or FTE.
     Recoverable: logged, computation continues with a zero fallback.

USAGE:
  if errors.Is(err, forecast.ErrCrossYearForecast) { ... }

  Fatal errors abort the whole forecast run; no partial aggregation is
  trusted. Recoverable conditions never surface as errors at all - the
  resolvers log them and return fallback values.
*/
package forecast

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCalendarMissing is returned when a worker has no calendar rows in
	// the snapshot for the requested window's year.
	ErrCalendarMissing = errors.New("worker calendar missing from snapshot")

	// ErrSaldiMissing is returned when forward amortization needs a
	// worker's leave balances and the snapshot has none.
	ErrSaldiMissing = errors.New("worker saldi missing from snapshot")

	// ErrCrossYearForecast is returned when a window requires amortizing
	// remaining leave balances into a later year than the resolver clock.
	// Balances are per-year; spreading them across a year boundary is
	// explicitly unsupported.
	ErrCrossYearForecast = errors.New("cannot forecast absence into a future year")

	// ErrParameterMissing is returned when a required HR parameter code is
	// absent from the parameter snapshot.
	ErrParameterMissing = errors.New("hr parameter code missing")

	// ErrNoActiveContract is returned when no contract covers a worker for
	// the reference month.
	ErrNoActiveContract = errors.New("no active contract for worker")

	// ErrMultipleContracts is returned when more than one contract covers
	// a worker for the reference month. The model is single-assignment.
	ErrMultipleContracts = errors.New("multiple active contracts for worker")

	// ErrNoFreelanceContract is returned when a freelance worker has no
	// rate contract in the snapshot.
	ErrNoFreelanceContract = errors.New("no freelance contract for worker")

	// ErrMultipleFreelanceContracts is returned when a freelance worker has
	// more than one rate contract.
	ErrMultipleFreelanceContracts = errors.New("multiple freelance contracts for worker")

	// ErrInvalidPeriod is returned when a window is malformed (end before
	// start or zero dates).
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// WorkerDataError reports missing per-worker reference data.
type WorkerDataError struct {
	WorkerID WorkerID
	Window   Period
	missing  error
}

func (e *WorkerDataError) Error() string {
	return fmt.Sprintf("%v: worker %d, window %s", e.missing, e.WorkerID, e.Window)
}

func (e *WorkerDataError) Unwrap() error { return e.missing }

func newCalendarMissing(id WorkerID, w Period) error {
	return &WorkerDataError{WorkerID: id, Window: w, missing: ErrCalendarMissing}
}

func newSaldiMissing(id WorkerID, w Period) error {
	return &WorkerDataError{WorkerID: id, Window: w, missing: ErrSaldiMissing}
}

// ParameterError reports the HR parameter codes missing from one load
// attempt, collected so a single error names the full gap.
type ParameterError struct {
	Codes []string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s", ErrParameterMissing, strings.Join(e.Codes, ", "))
}

func (e *ParameterError) Unwrap() error { return ErrParameterMissing }

// ContractError reports a contract multiplicity violation.
type ContractError struct {
	WorkerID WorkerID
	Month    RefMonth
	Count    int
	kind     error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%v: worker %d, month %s, %d contracts", e.kind, e.WorkerID, e.Month, e.Count)
}

func (e *ContractError) Unwrap() error { return e.kind }

// =============================================================================
// CLASSIFICATION
// =============================================================================

// IsFatal reports whether the error must abort the whole forecast run.
// Every error the forecast package returns is fatal; recoverable
// conditions are logged and absorbed by the resolvers instead.
func IsFatal(err error) bool {
	return errors.Is(err, ErrCalendarMissing) ||
		errors.Is(err, ErrSaldiMissing) ||
		errors.Is(err, ErrCrossYearForecast) ||
		errors.Is(err, ErrParameterMissing) ||
		errors.Is(err, ErrNoActiveContract) ||
		errors.Is(err, ErrMultipleContracts) ||
		errors.Is(err, ErrNoFreelanceContract) ||
		errors.Is(err, ErrMultipleFreelanceContracts) ||
		errors.Is(err, ErrInvalidPeriod)
}
