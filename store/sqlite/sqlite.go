/*
Package sqlite provides SQLite-backed persistence for the forecast
reference data.

PURPOSE:
  Stores the HR reference data the engine forecasts from - workers,
  contracts, projects, the materialized per-day calendar, remaining leave
  saldi and the HR parameter values - and loads it back as a single
  snapshot input. The calculators never read the database directly; they
  work from the immutable snapshot built at load time.

KEY TABLES:
  workers:             Internal employees and freelance contractors
  contracts:           Employment terms per internal worker (dated)
  freelance_contracts: Hourly rate per freelance worker
  projects:            Client assignments with day rate and MSP fee
  calendar_days:       One row per (worker, date) with minute columns
  saldi:               Remaining leave-balance minutes per worker
  hr_values:           HR parameter amounts and rates, keyed by code

DATE AND MONEY ENCODING:
  Dates are stored as YYYY-MM-DD text; a NULL contract end date means
  open-ended. Money and rates are stored as decimal text and parsed with
  shopspring/decimal, never as floats.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/forecast.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  input, err := store.LoadSnapshotInput(ctx, 2026)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - forecast/snapshot.go: the snapshot built from the loaded input
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/forecast"
)

// Store persists and loads the forecast reference data using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Workers (internal employees and freelance contractors)
	CREATE TABLE IF NOT EXISTS workers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		team TEXT NOT NULL DEFAULT ''
	);

	-- Employment contracts for internal workers
	CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY,
		worker_id INTEGER NOT NULL REFERENCES workers(id),
		function_category TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		monthly_salary TEXT NOT NULL,
		mobility_type TEXT NOT NULL DEFAULT '',
		monthly_mobility TEXT NOT NULL DEFAULT '0',
		fte TEXT NOT NULL DEFAULT '1'
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_worker
		ON contracts(worker_id, start_date);

	-- Freelance rates, one row per freelance worker
	CREATE TABLE IF NOT EXISTS freelance_contracts (
		worker_id INTEGER PRIMARY KEY REFERENCES workers(id),
		hourly_rate TEXT NOT NULL
	);

	-- Client assignments
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY,
		worker_id INTEGER NOT NULL REFERENCES workers(id),
		client TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		msp_fee TEXT NOT NULL DEFAULT '0',
		fte TEXT NOT NULL DEFAULT '1'
	);

	CREATE INDEX IF NOT EXISTS idx_projects_worker
		ON projects(worker_id, start_date);

	-- Materialized calendar: one row per (worker, date), minute columns
	CREATE TABLE IF NOT EXISTS calendar_days (
		worker_id INTEGER NOT NULL REFERENCES workers(id),
		date TEXT NOT NULL,
		scheduled INTEGER NOT NULL DEFAULT 0,
		training INTEGER NOT NULL DEFAULT 0,
		vacation INTEGER NOT NULL DEFAULT 0,
		holiday INTEGER NOT NULL DEFAULT 0,
		adv INTEGER NOT NULL DEFAULT 0,
		extralegal_vacation INTEGER NOT NULL DEFAULT 0,
		paid_leave_total INTEGER NOT NULL DEFAULT 0,
		unpaid_leave_total INTEGER NOT NULL DEFAULT 0,
		paid_sick INTEGER NOT NULL DEFAULT 0,
		unpaid_sick INTEGER NOT NULL DEFAULT 0,
		sick_total INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (worker_id, date)
	);

	-- Hot path: range scans per worker over the reference window
	CREATE INDEX IF NOT EXISTS idx_calendar_days_date
		ON calendar_days(date);

	-- Remaining leave balances for the reference year
	CREATE TABLE IF NOT EXISTS saldi (
		worker_id INTEGER PRIMARY KEY REFERENCES workers(id),
		training INTEGER NOT NULL DEFAULT 0,
		vacation INTEGER NOT NULL DEFAULT 0,
		holiday INTEGER NOT NULL DEFAULT 0,
		adv INTEGER NOT NULL DEFAULT 0,
		extralegal_vacation INTEGER NOT NULL DEFAULT 0,
		sickness INTEGER NOT NULL DEFAULT 0
	);

	-- HR parameter values keyed by code (HR010, CS001, ...)
	CREATE TABLE IF NOT EXISTS hr_values (
		code TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT LOADING
// =============================================================================

// LoadSnapshotInput loads all reference data for the given reference year.
// Calendar days cover the reference year; the multiyear set additionally
// covers the preceding year, for benefit windows that span both.
func (s *Store) LoadSnapshotInput(ctx context.Context, refYear int) (forecast.SnapshotInput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in := forecast.SnapshotInput{RefYear: refYear}

	var err error
	if in.Workers, err = s.loadWorkers(ctx); err != nil {
		return in, err
	}
	yearlyFrom := fmt.Sprintf("%04d-01-01", refYear)
	multiFrom := fmt.Sprintf("%04d-01-01", refYear-1)
	to := fmt.Sprintf("%04d-12-31", refYear)
	if in.CalendarDays, err = s.loadCalendarDays(ctx, yearlyFrom, to); err != nil {
		return in, err
	}
	if in.MultiyearDays, err = s.loadCalendarDays(ctx, multiFrom, to); err != nil {
		return in, err
	}
	if in.Saldi, err = s.loadSaldi(ctx); err != nil {
		return in, err
	}
	if in.Contracts, err = s.loadContracts(ctx); err != nil {
		return in, err
	}
	if in.FreelanceContracts, err = s.loadFreelanceContracts(ctx); err != nil {
		return in, err
	}
	if in.Projects, err = s.loadProjects(ctx); err != nil {
		return in, err
	}
	if in.ParamValues, err = s.loadParamValues(ctx); err != nil {
		return in, err
	}
	return in, nil
}

func (s *Store) loadWorkers(ctx context.Context) ([]forecast.Worker, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, team FROM workers ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []forecast.Worker
	for rows.Next() {
		var w forecast.Worker
		var category string
		if err := rows.Scan(&w.ID, &w.Name, &category, &w.Team); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		w.Category = forecast.WorkerCategory(category)
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

func (s *Store) loadCalendarDays(ctx context.Context, from, to string) ([]forecast.CalendarDay, error) {
	query := `
		SELECT worker_id, date, scheduled, training, vacation, holiday, adv,
		       extralegal_vacation, paid_leave_total, unpaid_leave_total,
		       paid_sick, unpaid_sick, sick_total
		FROM calendar_days
		WHERE date >= ? AND date <= ?
		ORDER BY worker_id, date
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar days: %w", err)
	}
	defer rows.Close()

	var days []forecast.CalendarDay
	for rows.Next() {
		var d forecast.CalendarDay
		var date string
		if err := rows.Scan(
			&d.WorkerID, &date, &d.Scheduled, &d.Training, &d.Vacation,
			&d.Holiday, &d.ADV, &d.ExtralegalVacation, &d.PaidLeaveTotal,
			&d.UnpaidLeaveTotal, &d.PaidSick, &d.UnpaidSick, &d.SickTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calendar day: %w", err)
		}
		if d.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Store) loadSaldi(ctx context.Context) ([]forecast.Saldi, error) {
	query := `
		SELECT worker_id, training, vacation, holiday, adv, extralegal_vacation, sickness
		FROM saldi ORDER BY worker_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query saldi: %w", err)
	}
	defer rows.Close()

	var saldi []forecast.Saldi
	for rows.Next() {
		var sa forecast.Saldi
		if err := rows.Scan(&sa.WorkerID, &sa.Training, &sa.Vacation,
			&sa.Holiday, &sa.ADV, &sa.ExtralegalVacation, &sa.Sickness); err != nil {
			return nil, fmt.Errorf("failed to scan saldi: %w", err)
		}
		saldi = append(saldi, sa)
	}
	return saldi, rows.Err()
}

func (s *Store) loadContracts(ctx context.Context) ([]forecast.Contract, error) {
	query := `
		SELECT id, worker_id, function_category, start_date, end_date,
		       monthly_salary, mobility_type, monthly_mobility, fte
		FROM contracts ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []forecast.Contract
	for rows.Next() {
		var c forecast.Contract
		var start string
		var end sql.NullString
		var salary, mobility, fte string
		if err := rows.Scan(&c.ID, &c.WorkerID, &c.FunctionCategory,
			&start, &end, &salary, &c.MobilityType, &mobility, &fte); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		if c.Start, err = parseDate(start); err != nil {
			return nil, err
		}
		if end.Valid {
			if c.End, err = parseDate(end.String); err != nil {
				return nil, err
			}
		}
		if c.MonthlySalary, err = parseDecimal("monthly_salary", salary); err != nil {
			return nil, err
		}
		if c.MonthlyMobility, err = parseDecimal("monthly_mobility", mobility); err != nil {
			return nil, err
		}
		if c.FTE, err = parseDecimal("fte", fte); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (s *Store) loadFreelanceContracts(ctx context.Context) ([]forecast.FreelanceContract, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT worker_id, hourly_rate FROM freelance_contracts ORDER BY worker_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query freelance contracts: %w", err)
	}
	defer rows.Close()

	var contracts []forecast.FreelanceContract
	for rows.Next() {
		var c forecast.FreelanceContract
		var rate string
		if err := rows.Scan(&c.WorkerID, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan freelance contract: %w", err)
		}
		if c.HourlyRate, err = parseDecimal("hourly_rate", rate); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (s *Store) loadProjects(ctx context.Context) ([]forecast.Project, error) {
	query := `
		SELECT id, worker_id, client, start_date, end_date, hourly_rate, msp_fee, fte
		FROM projects ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []forecast.Project
	for rows.Next() {
		var p forecast.Project
		var start, end, rate, fee, fte string
		if err := rows.Scan(&p.ID, &p.WorkerID, &p.Client,
			&start, &end, &rate, &fee, &fte); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if p.Start, err = parseDate(start); err != nil {
			return nil, err
		}
		if p.End, err = parseDate(end); err != nil {
			return nil, err
		}
		if p.HourlyRate, err = parseDecimal("hourly_rate", rate); err != nil {
			return nil, err
		}
		if p.MSPFee, err = parseDecimal("msp_fee", fee); err != nil {
			return nil, err
		}
		if p.FTE, err = parseDecimal("fte", fte); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) loadParamValues(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT code, value FROM hr_values")
	if err != nil {
		return nil, fmt.Errorf("failed to query hr values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]decimal.Decimal)
	for rows.Next() {
		var code, value string
		if err := rows.Scan(&code, &value); err != nil {
			return nil, fmt.Errorf("failed to scan hr value: %w", err)
		}
		v, err := parseDecimal(code, value)
		if err != nil {
			return nil, err
		}
		values[code] = v
	}
	return values, rows.Err()
}

// =============================================================================
// SEEDING
// =============================================================================

// SaveWorker inserts or updates a worker.
func (s *Store) SaveWorker(ctx context.Context, w forecast.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO workers (id, name, category, team)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			team = excluded.team
	`

	_, err := s.db.ExecContext(ctx, query, int(w.ID), w.Name, string(w.Category), w.Team)
	return err
}

// SaveContract inserts or updates an employment contract.
func (s *Store) SaveContract(ctx context.Context, c forecast.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO contracts
		(id, worker_id, function_category, start_date, end_date,
		 monthly_salary, mobility_type, monthly_mobility, fte)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			worker_id = excluded.worker_id,
			function_category = excluded.function_category,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			monthly_salary = excluded.monthly_salary,
			mobility_type = excluded.mobility_type,
			monthly_mobility = excluded.monthly_mobility,
			fte = excluded.fte
	`

	_, err := s.db.ExecContext(ctx, query,
		int(c.ID), int(c.WorkerID), c.FunctionCategory,
		c.Start.String(), nullDate(c.End),
		c.MonthlySalary.String(), c.MobilityType,
		c.MonthlyMobility.String(), c.FTE.String(),
	)
	return err
}

// SaveFreelanceContract inserts or updates a freelance rate.
func (s *Store) SaveFreelanceContract(ctx context.Context, c forecast.FreelanceContract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO freelance_contracts (worker_id, hourly_rate)
		VALUES (?, ?)
		ON CONFLICT(worker_id) DO UPDATE SET
			hourly_rate = excluded.hourly_rate
	`

	_, err := s.db.ExecContext(ctx, query, int(c.WorkerID), c.HourlyRate.String())
	return err
}

// SaveProject inserts or updates a project.
func (s *Store) SaveProject(ctx context.Context, p forecast.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO projects
		(id, worker_id, client, start_date, end_date, hourly_rate, msp_fee, fte)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			worker_id = excluded.worker_id,
			client = excluded.client,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			hourly_rate = excluded.hourly_rate,
			msp_fee = excluded.msp_fee,
			fte = excluded.fte
	`

	_, err := s.db.ExecContext(ctx, query,
		int(p.ID), int(p.WorkerID), p.Client,
		p.Start.String(), p.End.String(),
		p.HourlyRate.String(), p.MSPFee.String(), p.FTE.String(),
	)
	return err
}

// SaveCalendarDays inserts or updates calendar rows atomically.
func (s *Store) SaveCalendarDays(ctx context.Context, days []forecast.CalendarDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO calendar_days
		(worker_id, date, scheduled, training, vacation, holiday, adv,
		 extralegal_vacation, paid_leave_total, unpaid_leave_total,
		 paid_sick, unpaid_sick, sick_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(worker_id, date) DO UPDATE SET
			scheduled = excluded.scheduled,
			training = excluded.training,
			vacation = excluded.vacation,
			holiday = excluded.holiday,
			adv = excluded.adv,
			extralegal_vacation = excluded.extralegal_vacation,
			paid_leave_total = excluded.paid_leave_total,
			unpaid_leave_total = excluded.unpaid_leave_total,
			paid_sick = excluded.paid_sick,
			unpaid_sick = excluded.unpaid_sick,
			sick_total = excluded.sick_total
	`

	for _, d := range days {
		if _, err := tx.ExecContext(ctx, query,
			int(d.WorkerID), d.Date.String(),
			int64(d.Scheduled), int64(d.Training), int64(d.Vacation),
			int64(d.Holiday), int64(d.ADV), int64(d.ExtralegalVacation),
			int64(d.PaidLeaveTotal), int64(d.UnpaidLeaveTotal),
			int64(d.PaidSick), int64(d.UnpaidSick), int64(d.SickTotal),
		); err != nil {
			return fmt.Errorf("failed to save calendar day: %w", err)
		}
	}
	return tx.Commit()
}

// SaveSaldi inserts or updates a worker's leave balances.
func (s *Store) SaveSaldi(ctx context.Context, sa forecast.Saldi) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO saldi
		(worker_id, training, vacation, holiday, adv, extralegal_vacation, sickness)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(worker_id) DO UPDATE SET
			training = excluded.training,
			vacation = excluded.vacation,
			holiday = excluded.holiday,
			adv = excluded.adv,
			extralegal_vacation = excluded.extralegal_vacation,
			sickness = excluded.sickness
	`

	_, err := s.db.ExecContext(ctx, query,
		int(sa.WorkerID), int64(sa.Training), int64(sa.Vacation),
		int64(sa.Holiday), int64(sa.ADV), int64(sa.ExtralegalVacation),
		int64(sa.Sickness),
	)
	return err
}

// SaveParamValue inserts or updates an HR parameter.
func (s *Store) SaveParamValue(ctx context.Context, code string, value decimal.Decimal, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO hr_values (code, value, description)
		VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			value = excluded.value,
			description = excluded.description
	`

	_, err := s.db.ExecContext(ctx, query, code, value.String(), description)
	return err
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"calendar_days", "saldi", "projects",
		"freelance_contracts", "contracts", "hr_values", "workers"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func parseDate(s string) (forecast.Date, error) {
	d, err := forecast.ParseDate(s)
	if err != nil {
		return forecast.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal for %s: %q", field, s)
	}
	return v, nil
}

func nullDate(d forecast.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}
