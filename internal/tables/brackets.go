// Package tables loads the static bracket and threshold data the calculators
// consume. Tables ship embedded in the binary and may be overridden by a
// directory with the same layout.
package tables

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data
var embedded embed.FS

// DefaultFS returns the embedded data directory.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}
	return sub
}

// bracketFileEntry is one per-status table in a brackets/<year>.yaml file.
type bracketFileEntry struct {
	FilingStatus      domain.FilingStatus `yaml:"filing_status"`
	StandardDeduction decimal.Decimal     `yaml:"standard_deduction"`
	Brackets          []bracketFileRow    `yaml:"brackets"`
}

type bracketFileRow struct {
	Lower decimal.Decimal  `yaml:"lower"`
	Upper *decimal.Decimal `yaml:"upper"`
	Rate  decimal.Decimal  `yaml:"rate"`
}

type tableKey struct {
	year   int
	status domain.FilingStatus
}

// Provider serves bracket tables by year and filing status. Each year file is
// parsed on first use; parsed tables are immutable and cached.
type Provider struct {
	fsys  fs.FS
	cache sync.Map // tableKey -> domain.BracketTable
}

// NewProvider creates a provider reading brackets/<year>.yaml from fsys.
func NewProvider(fsys fs.FS) *Provider {
	return &Provider{fsys: fsys}
}

// NewDefaultProvider creates a provider over the embedded tables.
func NewDefaultProvider() *Provider {
	return NewProvider(DefaultFS())
}

// BracketTable returns the table for year and status. The error wraps
// domain.ErrTablesUnavailable when no such table exists.
func (p *Provider) BracketTable(year int, status domain.FilingStatus) (domain.BracketTable, error) {
	key := tableKey{year: year, status: status}
	if cached, ok := p.cache.Load(key); ok {
		return cached.(domain.BracketTable), nil
	}

	tables, err := p.loadYear(year)
	if err != nil {
		return domain.BracketTable{}, err
	}
	// Concurrent misses may both load; the parsed value is identical so
	// whichever store lands first wins.
	var found *domain.BracketTable
	for i := range tables {
		actual, _ := p.cache.LoadOrStore(tableKey{year: year, status: tables[i].FilingStatus}, tables[i])
		if tables[i].FilingStatus == status {
			t := actual.(domain.BracketTable)
			found = &t
		}
	}
	if found == nil {
		return domain.BracketTable{}, fmt.Errorf("%w: no %s brackets for %d", domain.ErrTablesUnavailable, status, year)
	}
	return *found, nil
}

// loadYear parses and validates every table in one year file.
func (p *Provider) loadYear(year int) ([]domain.BracketTable, error) {
	name := path.Join("brackets", strconv.Itoa(year)+".yaml")
	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: no bracket file for %d", domain.ErrTablesUnavailable, year)
	}

	var entries []bracketFileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	tables := make([]domain.BracketTable, 0, len(entries))
	for _, e := range entries {
		t := domain.BracketTable{
			Year:              year,
			FilingStatus:      e.FilingStatus,
			StandardDeduction: e.StandardDeduction,
		}
		for _, row := range e.Brackets {
			b := domain.TaxBracket{Lower: row.Lower, Rate: row.Rate}
			if row.Upper != nil {
				b.Upper = domain.Amount(*row.Upper)
			}
			t.Brackets = append(t.Brackets, b)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		t.Brackets = t.Sorted()
		tables = append(tables, t)
	}
	return tables, nil
}

// Years lists the tax years with a bracket file, ascending.
func (p *Provider) Years() ([]int, error) {
	entries, err := fs.ReadDir(p.fsys, "brackets")
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket files: %w", err)
	}
	var years []int
	for _, e := range entries {
		base, ok := strings.CutSuffix(e.Name(), ".yaml")
		if !ok || e.IsDir() {
			continue
		}
		if y, err := strconv.Atoi(base); err == nil {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years, nil
}

// DefaultStandardDeduction returns the deduction published with the table,
// used to prefill new profiles.
func (p *Provider) DefaultStandardDeduction(year int, status domain.FilingStatus) (decimal.Decimal, error) {
	t, err := p.BracketTable(year, status)
	if err != nil {
		return decimal.Zero, err
	}
	return t.StandardDeduction, nil
}
