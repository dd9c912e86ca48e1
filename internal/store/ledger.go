// Package store provides the SQLite-backed income ledger.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = "2006-01-02"

// Ledger stores filing profiles and income entries per tax year.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path. The special
// path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Ledger, error) {
	dsn := ":memory:"
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("creating ledger dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	// an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// SaveProfile inserts or replaces the filing profile for p.Year.
func (l *Ledger) SaveProfile(ctx context.Context, p domain.FilingProfile) error {
	if !p.FilingStatus.Valid() {
		return fmt.Errorf("invalid filing status %q", p.FilingStatus)
	}
	_, err := l.db.ExecContext(ctx, `INSERT OR REPLACE INTO profiles
		(year, filing_status, standard_deduction) VALUES (?, ?, ?)`,
		p.Year, string(p.FilingStatus), domain.NonNegative(p.StandardDeduction).String(),
	)
	if err != nil {
		return fmt.Errorf("saving profile %d: %w", p.Year, err)
	}
	return nil
}

// Profile returns the filing profile for year. ok is false when none exists.
func (l *Ledger) Profile(ctx context.Context, year int) (domain.FilingProfile, bool, error) {
	var status, deduction string
	err := l.db.QueryRowContext(ctx,
		"SELECT filing_status, standard_deduction FROM profiles WHERE year = ?", year,
	).Scan(&status, &deduction)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FilingProfile{}, false, nil
	}
	if err != nil {
		return domain.FilingProfile{}, false, fmt.Errorf("loading profile %d: %w", year, err)
	}

	fs, err := domain.ParseFilingStatus(status)
	if err != nil {
		return domain.FilingProfile{}, false, err
	}
	std, err := decimal.NewFromString(deduction)
	if err != nil {
		return domain.FilingProfile{}, false, fmt.Errorf("profile %d: bad standard deduction: %w", year, err)
	}
	return domain.FilingProfile{Year: year, FilingStatus: fs, StandardDeduction: std}, true, nil
}

// Profiles returns every stored profile ordered by year.
func (l *Ledger) Profiles(ctx context.Context) ([]domain.FilingProfile, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT year FROM profiles ORDER BY year")
	if err != nil {
		return nil, err
	}
	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			_ = rows.Close()
			return nil, err
		}
		years = append(years, y)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	profiles := make([]domain.FilingProfile, 0, len(years))
	for _, y := range years {
		p, _, err := l.Profile(ctx, y)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// AddIncome records an entry and returns it with its assigned ID.
func (l *Ledger) AddIncome(ctx context.Context, e domain.IncomeEntry) (domain.IncomeEntry, error) {
	if e.Year == 0 {
		return e, fmt.Errorf("income entry year is required")
	}
	if e.Source == "" {
		e.Source = domain.SourceOther
	}
	date := ""
	if !e.Date.IsZero() {
		date = e.Date.Format(dateLayout)
	}

	res, err := l.db.ExecContext(ctx, `INSERT INTO income_entries
		(year, source, amount, description, entry_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Year, string(e.Source), e.Amount.String(), e.Description, date,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return e, fmt.Errorf("adding income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return e, err
	}
	e.ID = id
	return e, nil
}

// ListIncome returns the entries for year in insertion order.
func (l *Ledger) ListIncome(ctx context.Context, year int) ([]domain.IncomeEntry, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, year, source, amount, description, entry_date
		FROM income_entries WHERE year = ? ORDER BY id`, year)
	if err != nil {
		return nil, fmt.Errorf("listing income: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.IncomeEntry
	for rows.Next() {
		var (
			e              domain.IncomeEntry
			source, amount string
			date           string
		)
		if err := rows.Scan(&e.ID, &e.Year, &source, &amount, &e.Description, &date); err != nil {
			return nil, err
		}
		if e.Source, err = domain.ParseIncomeSource(source); err != nil {
			return nil, err
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("entry %d: bad amount: %w", e.ID, err)
		}
		if date != "" {
			e.Date, _ = time.Parse(dateLayout, date)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteIncome removes an entry by ID.
func (l *Ledger) DeleteIncome(ctx context.Context, id int64) error {
	res, err := l.db.ExecContext(ctx, "DELETE FROM income_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting income %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("income entry %d not found", id)
	}
	return nil
}

// Summary totals the year's entries against its profile. It returns
// domain.ErrMissingProfile when the year has no profile.
func (l *Ledger) Summary(ctx context.Context, year int) (domain.IncomeSummary, error) {
	profile, ok, err := l.Profile(ctx, year)
	if err != nil {
		return domain.IncomeSummary{Year: year}, err
	}
	if !ok {
		return domain.IncomeSummary{Year: year}, fmt.Errorf("%w %d", domain.ErrMissingProfile, year)
	}

	entries, err := l.ListIncome(ctx, year)
	if err != nil {
		return domain.IncomeSummary{Year: year}, err
	}
	return domain.SummarizeLedger(profile, entries), nil
}

// ImportLedger stores profiles and entries in one transaction. Profiles
// replace existing ones for the same year; entries are appended.
func (l *Ledger) ImportLedger(ctx context.Context, profiles []domain.FilingProfile, entries []domain.IncomeEntry) (int, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range profiles {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO profiles
			(year, filing_status, standard_deduction) VALUES (?, ?, ?)`,
			p.Year, string(p.FilingStatus), domain.NonNegative(p.StandardDeduction).String(),
		); err != nil {
			return 0, fmt.Errorf("importing profile %d: %w", p.Year, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, e := range entries {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format(dateLayout)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO income_entries
			(year, source, amount, description, entry_date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.Year, string(e.Source), e.Amount.String(), e.Description, date, now,
		); err != nil {
			return 0, fmt.Errorf("importing entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}
