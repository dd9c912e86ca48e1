package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EquityEventKind is the type of equity-compensation event.
type EquityEventKind string

const (
	EventNSOExercise EquityEventKind = "nso_exercise"
	EventISOExercise EquityEventKind = "iso_exercise"
	EventRSUVest     EquityEventKind = "rsu_vest"
	EventShareSale   EquityEventKind = "share_sale"
)

// ParseEquityEventKind accepts canonical names and a few common spellings.
func ParseEquityEventKind(s string) (EquityEventKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nso_exercise", "nso", "nqso", "nqso_exercise":
		return EventNSOExercise, nil
	case "iso_exercise", "iso":
		return EventISOExercise, nil
	case "rsu_vest", "rsu", "vest":
		return EventRSUVest, nil
	case "share_sale", "sale", "sell":
		return EventShareSale, nil
	}
	return "", fmt.Errorf("unknown equity event kind %q", s)
}

// UnmarshalYAML decodes a kind through ParseEquityEventKind.
func (k *EquityEventKind) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseEquityEventKind(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// EquityEvent is a planned exercise, vest or sale. Only the price fields
// relevant to Kind are read.
type EquityEvent struct {
	Kind            EquityEventKind `yaml:"kind" json:"kind"`
	Label           string          `yaml:"label" json:"label"`
	Shares          decimal.Decimal `yaml:"shares" json:"shares"`
	StrikePrice     decimal.Decimal `yaml:"strike_price" json:"strikePrice"`
	FairMarketValue decimal.Decimal `yaml:"fair_market_value" json:"fairMarketValue"`
	SalePrice       decimal.Decimal `yaml:"sale_price" json:"salePrice"`
	CostBasis       decimal.Decimal `yaml:"cost_basis" json:"costBasis"`
	LongTerm        bool            `yaml:"long_term" json:"longTerm"`
}
