package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFilingStatus(t *testing.T) {
	tests := []struct {
		in   string
		want FilingStatus
	}{
		{"single", Single},
		{"MFJ", MarriedFilingJointly},
		{"marriedJoint", MarriedFilingJointly},
		{"married filing jointly", MarriedFilingJointly},
		{"married-filing-separately", MarriedFilingSeparately},
		{"hoh", HeadOfHousehold},
		{" headOfHousehold ", HeadOfHousehold},
	}
	for _, tt := range tests {
		got, err := ParseFilingStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFilingStatus("widowed")
	assert.Error(t, err)
	assert.False(t, FilingStatus("").Valid())
}

func TestParseIncomeSource(t *testing.T) {
	tests := map[string]IncomeSource{
		"wages":         SourceWages,
		"Salary":        SourceWages,
		"W-2":           SourceWages,
		"1099":          SourceSelfEmployment,
		"RSU":           SourceEquityCompensation,
		"stock options": SourceEquityCompensation,
		"401k":          SourceRetirement,
		"lottery":       SourceOther,
	}
	for in, want := range tests {
		got, err := ParseIncomeSource(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseIncomeSource("  ")
	assert.Error(t, err)
}

func TestIncomeEntry_YAMLLenientDecoding(t *testing.T) {
	var entries []IncomeEntry
	err := yaml.Unmarshal([]byte(`
- {year: 2025, source: salary, amount: 85000.50, description: day job}
- {year: 2025, source: nso, amount: 4000}
`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, SourceWages, entries[0].Source)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("85000.50")))
	assert.Equal(t, SourceEquityCompensation, entries[1].Source)
}

func TestNewIncomeSummary_ClampsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := NewIncomeSummary(2025, Single, v, v)
		assert.True(t, s.TotalIncome.IsZero())
		assert.True(t, s.StandardDeduction.IsZero())
	}
	s := NewIncomeSummary(2025, Single, -5, 1234.5)
	assert.True(t, s.StandardDeduction.IsZero(), "negative deduction floors at zero")
	assert.True(t, s.TotalIncome.Equal(decimal.NewFromFloat(1234.5)))
}

func TestSummarizeLedger(t *testing.T) {
	profile := FilingProfile{Year: 2025, FilingStatus: Single, StandardDeduction: decimal.NewFromInt(15750)}
	entries := []IncomeEntry{
		{Year: 2025, Source: SourceWages, Amount: decimal.NewFromInt(90000)},
		{Year: 2025, Source: SourceInterest, Amount: decimal.NewFromInt(1200)},
		{Year: 2024, Source: SourceWages, Amount: decimal.NewFromInt(70000)},
	}
	s := SummarizeLedger(profile, entries)
	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(91200)))
	assert.True(t, s.HasProfile())

	totals := TotalsBySource(entries)
	assert.True(t, totals[SourceWages].Equal(decimal.NewFromInt(160000)))
}

func TestScenarioInputs(t *testing.T) {
	a := NewScenarioInputs(1000, 250.5)
	b := ScenarioInputs{AdditionalOrdinaryIncome: decimal.NewFromInt(1000), AdditionalLongTermCapitalGains: decimal.RequireFromString("250.50")}

	assert.True(t, a.Equal(b))
	assert.True(t, a.TotalAdjustment().Equal(decimal.RequireFromString("1250.5")))
	assert.False(t, a.IsZero())
	assert.True(t, ScenarioInputs{}.IsZero())
	assert.True(t, NewScenarioInputs(math.NaN(), math.Inf(1)).IsZero())
	assert.False(t, a.Equal(ScenarioInputs{}))
	assert.True(t, a.Add(a).TotalAdjustment().Equal(decimal.NewFromInt(2501)))
}

func TestBracketTable_Validate(t *testing.T) {
	d := decimal.NewFromInt
	rate := decimal.NewFromFloat
	valid := BracketTable{Year: 2025, FilingStatus: Single, Brackets: []TaxBracket{
		{Lower: d(10000), Upper: Unbounded, Rate: rate(0.2)},
		{Lower: d(0), Upper: Amount(d(10000)), Rate: rate(0.1)},
	}}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		brackets []TaxBracket
		wantErr  string
	}{
		{"empty", nil, "has no brackets"},
		{"gap", []TaxBracket{{Lower: d(0), Upper: Amount(d(100)), Rate: rate(0.1)}, {Lower: d(200), Upper: Unbounded, Rate: rate(0.2)}}, "does not meet"},
		{"no top", []TaxBracket{{Lower: d(0), Upper: Amount(d(100)), Rate: rate(0.1)}}, "exactly one unbounded"},
		{"two tops", []TaxBracket{{Lower: d(0), Upper: Unbounded, Rate: rate(0.1)}, {Lower: d(100), Upper: Unbounded, Rate: rate(0.2)}}, "must be the highest"},
		{"duplicate lower", []TaxBracket{{Lower: d(0), Upper: Amount(d(100)), Rate: rate(0.1)}, {Lower: d(0), Upper: Unbounded, Rate: rate(0.2)}}, "duplicate lower bound"},
		{"rate of one", []TaxBracket{{Lower: d(0), Upper: Unbounded, Rate: rate(1)}}, "must be in [0, 1)"},
		{"negative lower", []TaxBracket{{Lower: d(-1), Upper: Unbounded, Rate: rate(0.1)}}, "cannot be negative"},
		{"inverted", []TaxBracket{{Lower: d(100), Upper: Amount(d(50)), Rate: rate(0.1)}, {Lower: d(200), Upper: Unbounded, Rate: rate(0.1)}}, "must exceed lower bound"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BracketTable{Brackets: tt.brackets}.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestThresholdStatus_String(t *testing.T) {
	assert.Equal(t, "exceeded", StatusExceeded.String())
	assert.Equal(t, "approaching", StatusApproaching.String())
	assert.Equal(t, "clear", StatusClear.String())
	text, err := StatusClear.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "clear", string(text))
}
