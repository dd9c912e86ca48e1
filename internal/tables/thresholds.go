package tables

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/rgehrsitz/headroom/internal/domain"
	"gopkg.in/yaml.v3"
)

const thresholdsFile = "thresholds.yaml"

type thresholdsDocument struct {
	Years []thresholdsYear `yaml:"years"`
}

type thresholdsYear struct {
	Year     int                `yaml:"year"`
	Statuses []thresholdsStatus `yaml:"statuses"`
}

type thresholdsStatus struct {
	FilingStatus     domain.FilingStatus      `yaml:"filing_status"`
	MeansTestedTiers []domain.ThresholdDetail `yaml:"means_tested_tiers"`
	Surtax           domain.ThresholdDetail   `yaml:"surtax"`
	QBIPhaseIn       domain.ThresholdDetail   `yaml:"qbi_phase_in"`
}

// ThresholdSet is the immutable secondary-threshold dataset keyed by year and
// filing status.
type ThresholdSet struct {
	byKey map[tableKey]domain.TaxThresholds
	years []int
}

// LoadThresholds parses thresholds.yaml from fsys.
func LoadThresholds(fsys fs.FS) (*ThresholdSet, error) {
	data, err := fs.ReadFile(fsys, thresholdsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", thresholdsFile, err)
	}
	var doc thresholdsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", thresholdsFile, err)
	}
	return NewThresholdSet(doc.toThresholds())
}

// LoadDefaultThresholds parses the embedded dataset.
func LoadDefaultThresholds() (*ThresholdSet, error) {
	return LoadThresholds(DefaultFS())
}

func (doc thresholdsDocument) toThresholds() []domain.TaxThresholds {
	var out []domain.TaxThresholds
	for _, y := range doc.Years {
		for _, s := range y.Statuses {
			t := domain.TaxThresholds{
				Year:         y.Year,
				FilingStatus: s.FilingStatus,
				Surtax:       s.Surtax,
				QBIPhaseIn:   s.QBIPhaseIn,
			}
			t.Surtax.Kind = domain.KindSurtax
			t.QBIPhaseIn.Kind = domain.KindQBIPhaseIn
			for _, tier := range s.MeansTestedTiers {
				tier.Kind = domain.KindMeansTestedTier
				t.MeansTestedTiers = append(t.MeansTestedTiers, tier)
			}
			out = append(out, t)
		}
	}
	return out
}

// NewThresholdSet indexes the given thresholds. Means-tested tiers are sorted
// ascending by limit. Duplicate (year, status) pairs are rejected.
func NewThresholdSet(all []domain.TaxThresholds) (*ThresholdSet, error) {
	set := &ThresholdSet{byKey: make(map[tableKey]domain.TaxThresholds, len(all))}
	seenYear := map[int]bool{}
	for _, t := range all {
		if !t.FilingStatus.Valid() {
			return nil, fmt.Errorf("thresholds for %d: invalid filing status %q", t.Year, t.FilingStatus)
		}
		key := tableKey{year: t.Year, status: t.FilingStatus}
		if _, dup := set.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate thresholds for %d/%s", t.Year, t.FilingStatus)
		}
		tiers := make([]domain.ThresholdDetail, len(t.MeansTestedTiers))
		copy(tiers, t.MeansTestedTiers)
		sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].Limit.LessThan(tiers[j].Limit) })
		t.MeansTestedTiers = tiers
		set.byKey[key] = t
		if !seenYear[t.Year] {
			seenYear[t.Year] = true
			set.years = append(set.years, t.Year)
		}
	}
	sort.Ints(set.years)
	return set, nil
}

// Years lists the years present in the dataset, ascending.
func (s *ThresholdSet) Years() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// Lookup returns the thresholds for year and status. When the exact year is
// missing it falls back to the nearest lower year, then the nearest higher
// year, among years that carry the requested status.
func (s *ThresholdSet) Lookup(year int, status domain.FilingStatus) (domain.TaxThresholds, bool) {
	if t, ok := s.byKey[tableKey{year: year, status: status}]; ok {
		return t, true
	}

	// s.years is ascending: the last year below wins, else the first above
	lower, higher := 0, 0
	hasLower, hasHigher := false, false
	for _, y := range s.years {
		if _, ok := s.byKey[tableKey{year: y, status: status}]; !ok {
			continue
		}
		if y < year {
			lower, hasLower = y, true
		} else if y > year && !hasHigher {
			higher, hasHigher = y, true
		}
	}
	switch {
	case hasLower:
		return s.byKey[tableKey{year: lower, status: status}], true
	case hasHigher:
		return s.byKey[tableKey{year: higher, status: status}], true
	}
	return domain.TaxThresholds{}, false
}

