package config

import (
	"context"
	"fmt"
	"os"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// LedgerFile is a YAML income ledger: filing profiles per year plus the
// income entries recorded against them.
type LedgerFile struct {
	Profiles []domain.FilingProfile `yaml:"profiles"`
	Income   []domain.IncomeEntry   `yaml:"income"`
}

// EquityFile is a YAML list of planned equity events with an optional
// additional adjustment.
type EquityFile struct {
	Adjustment domain.ScenarioInputs `yaml:"adjustment"`
	Events     []domain.EquityEvent  `yaml:"events"`
}

// InputParser handles parsing of input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadLedger loads and validates a ledger file
func (ip *InputParser) LoadLedger(filename string) (*LedgerFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var ledger LedgerFile
	if err := yaml.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateLedger(&ledger); err != nil {
		return nil, fmt.Errorf("ledger validation failed: %w", err)
	}

	return &ledger, nil
}

// ValidateLedger validates a loaded ledger
func (ip *InputParser) ValidateLedger(ledger *LedgerFile) error {
	seen := map[int]bool{}
	for i, p := range ledger.Profiles {
		if err := ip.validateProfile(&p); err != nil {
			return fmt.Errorf("profile %d validation failed: %w", i, err)
		}
		if seen[p.Year] {
			return fmt.Errorf("duplicate profile for year %d", p.Year)
		}
		seen[p.Year] = true
	}

	for i, e := range ledger.Income {
		if err := ip.validateEntry(&e); err != nil {
			return fmt.Errorf("income entry %d validation failed: %w", i, err)
		}
	}
	return nil
}

// validateProfile validates a single filing profile
func (ip *InputParser) validateProfile(p *domain.FilingProfile) error {
	if p.Year < 1913 || p.Year > 2100 {
		return fmt.Errorf("year %d is out of range", p.Year)
	}
	if !p.FilingStatus.Valid() {
		return fmt.Errorf("filing status is required")
	}
	if p.StandardDeduction.LessThan(decimal.Zero) {
		return fmt.Errorf("standard deduction cannot be negative")
	}
	return nil
}

// validateEntry validates a single income entry
func (ip *InputParser) validateEntry(e *domain.IncomeEntry) error {
	if e.Year == 0 {
		return fmt.Errorf("year is required")
	}
	if e.Source == "" {
		return fmt.Errorf("source is required")
	}
	// negative amounts are allowed for losses and corrections
	return nil
}

// LoadEquityEvents loads and validates an equity events file
func (ip *InputParser) LoadEquityEvents(filename string) (*EquityFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file EquityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, e := range file.Events {
		if err := ip.validateEquityEvent(&e); err != nil {
			return nil, fmt.Errorf("equity event %d (%s) validation failed: %w", i, e.Label, err)
		}
	}
	return &file, nil
}

// validateEquityEvent validates the price fields an event kind needs
func (ip *InputParser) validateEquityEvent(e *domain.EquityEvent) error {
	if e.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if e.Shares.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("shares must be positive")
	}
	switch e.Kind {
	case domain.EventNSOExercise, domain.EventISOExercise:
		if e.StrikePrice.LessThan(decimal.Zero) {
			return fmt.Errorf("strike price cannot be negative")
		}
		if e.FairMarketValue.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("fair market value must be positive")
		}
	case domain.EventRSUVest:
		if e.FairMarketValue.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("fair market value must be positive")
		}
	case domain.EventShareSale:
		if e.SalePrice.LessThan(decimal.Zero) {
			return fmt.Errorf("sale price cannot be negative")
		}
		if e.CostBasis.LessThan(decimal.Zero) {
			return fmt.Errorf("cost basis cannot be negative")
		}
	}
	return nil
}

// Profile returns the filing profile for year, if any.
func (l *LedgerFile) Profile(year int) (domain.FilingProfile, bool) {
	for _, p := range l.Profiles {
		if p.Year == year {
			return p, true
		}
	}
	return domain.FilingProfile{}, false
}

// Summary totals the year's entries. It returns domain.ErrMissingProfile
// when the file has no profile for the year.
func (l *LedgerFile) Summary(_ context.Context, year int) (domain.IncomeSummary, error) {
	profile, ok := l.Profile(year)
	if !ok {
		return domain.IncomeSummary{Year: year}, fmt.Errorf("%w %d", domain.ErrMissingProfile, year)
	}
	return domain.SummarizeLedger(profile, l.Income), nil
}
