package domain

import "github.com/shopspring/decimal"

// ThresholdKind identifies which secondary threshold a detail describes.
type ThresholdKind string

const (
	KindMeansTestedTier ThresholdKind = "means_tested_tier"
	KindSurtax          ThresholdKind = "surtax"
	KindQBIPhaseIn      ThresholdKind = "qbi_phase_in"
)

// ThresholdStatus is how close income is to a threshold.
type ThresholdStatus int

const (
	StatusExceeded ThresholdStatus = iota
	StatusApproaching
	StatusClear
)

func (s ThresholdStatus) String() string {
	switch s {
	case StatusExceeded:
		return "exceeded"
	case StatusApproaching:
		return "approaching"
	case StatusClear:
		return "clear"
	default:
		return "unknown"
	}
}

// MarshalText lets the status render by name in JSON output.
func (s ThresholdStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ThresholdDetail is one static gross-income threshold.
type ThresholdDetail struct {
	Key   string          `yaml:"key" json:"key"`
	Label string          `yaml:"label" json:"label"`
	Limit decimal.Decimal `yaml:"limit" json:"limit"`
	Kind  ThresholdKind   `yaml:"kind" json:"kind"`
}

// ThresholdInsight is the evaluated position of income relative to a
// threshold. Proximity is limit minus income and goes negative once exceeded.
type ThresholdInsight struct {
	Detail    ThresholdDetail `json:"detail"`
	Status    ThresholdStatus `json:"status"`
	Proximity decimal.Decimal `json:"proximity"`
}

// TaxThresholds groups the secondary thresholds for one year and status.
type TaxThresholds struct {
	Year             int               `json:"year"`
	FilingStatus     FilingStatus      `json:"filingStatus"`
	MeansTestedTiers []ThresholdDetail `json:"meansTestedTiers"`
	Surtax           ThresholdDetail   `json:"surtax"`
	QBIPhaseIn       ThresholdDetail   `json:"qbiPhaseIn"`
}
