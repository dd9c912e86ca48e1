package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/tables"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *CompareEngine {
	t.Helper()
	thresholds, err := tables.LoadDefaultThresholds()
	require.NoError(t, err)
	return NewCompareEngine(calculation.NewEngine(tables.NewDefaultProvider(), thresholds))
}

func single2024() domain.IncomeSummary {
	return domain.NewIncomeSummary(2024, domain.Single, 14600, 100000)
}

func compareDefault(t *testing.T) *ComparisonSet {
	t.Helper()
	set, err := newEngine(t).Compare(single2024(), domain.ScenarioInputs{}, CompareOptions{
		Templates:  []string{"roth_10k", "roth_25k", "defer_10k"},
		Transforms: []string{"add_ordinary:2000"},
	})
	require.NoError(t, err)
	return set
}

func TestCompare_BaseResult(t *testing.T) {
	set := compareDefault(t)

	assert.Equal(t, 2024, set.Year)
	assert.Equal(t, "base", set.BaseScenarioName)
	require.NotNil(t, set.BaseResult)
	base := set.BaseResult
	assert.True(t, base.Headroom.TaxableIncome.Equal(decimal.NewFromInt(85400)))
	assert.True(t, base.Headroom.BracketRate.Equal(decimal.NewFromFloat(0.22)))
	assert.True(t, base.Headroom.DollarsToNextBracket.Decimal.Equal(decimal.NewFromInt(15125)))
	assert.Equal(t, 0, base.Exceeded)
	assert.Equal(t, 1, base.Approaching)
	assert.Equal(t, "Current ledger", base.Description)
}

func TestCompare_Alternatives(t *testing.T) {
	set := compareDefault(t)
	require.Len(t, set.AlternativeResults, 4)

	names := make([]string, 0, 4)
	for _, alt := range set.AlternativeResults {
		names = append(names, alt.ScenarioName)
	}
	assert.Equal(t, []string{"roth_10k", "roth_25k", "defer_10k", "add_ordinary:2000"}, names)

	roth10 := set.AlternativeResults[0]
	assert.True(t, roth10.TaxableDiffFromBase.Equal(decimal.NewFromInt(10000)))
	assert.True(t, roth10.RateDiffFromBase.IsZero())
	assert.False(t, roth10.CrossesBracket)
	require.True(t, roth10.HeadroomDiffFromBase.Valid)
	assert.True(t, roth10.HeadroomDiffFromBase.Decimal.Equal(decimal.NewFromInt(-10000)))
	require.Len(t, roth10.NewlyExceeded, 1)
	assert.Equal(t, "irmaa_tier_1", roth10.NewlyExceeded[0].Key)

	roth25 := set.AlternativeResults[1]
	assert.True(t, roth25.CrossesBracket)
	assert.True(t, roth25.Headroom.BracketRate.Equal(decimal.NewFromFloat(0.24)))
	assert.True(t, roth25.RateDiffFromBase.Equal(decimal.NewFromFloat(0.02)))
	assert.Equal(t, 1, roth25.Approaching)

	deferred := set.AlternativeResults[2]
	assert.True(t, deferred.TaxableDiffFromBase.Equal(decimal.NewFromInt(-10000)))
	assert.Empty(t, deferred.NewlyExceeded)

	adhoc := set.AlternativeResults[3]
	assert.Equal(t, "Add $2000 ordinary income", adhoc.Description)
	assert.Empty(t, adhoc.NewlyExceeded)
}

func TestCompare_Recommendations(t *testing.T) {
	set := compareDefault(t)

	assert.Equal(t, []string{
		"Most Room Used: add_ordinary:2000 adds $2,000.00 of taxable income and stays in the 22.0% bracket",
		"Threshold Crossed: roth_10k exceeds IRMAA tier 1 ($103,000.00)",
		"Bracket Change: roth_25k moves income into the 24.0% bracket",
		"Threshold Crossed: roth_25k exceeds IRMAA tier 1 ($103,000.00)",
	}, set.Recommendations)
}

func TestCompare_SurtaxCrossing(t *testing.T) {
	ce := newEngine(t)
	income := domain.NewIncomeSummary(2024, domain.Single, 14600, 190000)

	set, err := ce.Compare(income, domain.ScenarioInputs{}, CompareOptions{Transforms: []string{"harvest_gains:amount=20000"}})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)

	keys := []string{}
	for _, d := range set.AlternativeResults[0].NewlyExceeded {
		keys = append(keys, d.Key)
	}
	assert.Contains(t, keys, "niit")
	assert.Contains(t, keys, "qbi_phase_in")
}

func TestCompare_Errors(t *testing.T) {
	ce := newEngine(t)

	_, err := ce.Compare(single2024(), domain.ScenarioInputs{}, CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = ce.Compare(single2024(), domain.ScenarioInputs{}, CompareOptions{Transforms: []string{"bogus:amount=1"}})
	assert.ErrorContains(t, err, "unknown transform")

	_, err = ce.Compare(domain.IncomeSummary{Year: 2024}, domain.ScenarioInputs{}, CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingProfile)

	_, err = ce.Compare(domain.NewIncomeSummary(2019, domain.Single, 12200, 50000), domain.ScenarioInputs{}, CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrTablesUnavailable)
}

func TestCompare_BaseAdjustmentCarriesThrough(t *testing.T) {
	ce := newEngine(t)
	base := domain.NewScenarioInputs(5000, 0)

	set, err := ce.Compare(single2024(), base, CompareOptions{BaseScenarioName: "bonus", Templates: []string{"harvest_10k"}})
	require.NoError(t, err)

	assert.Equal(t, "bonus", set.BaseScenarioName)
	assert.Equal(t, "Current ledger with adjustment", set.BaseResult.Description)
	alt := set.AlternativeResults[0]
	assert.True(t, alt.Adjustment.AdditionalOrdinaryIncome.Equal(decimal.NewFromInt(5000)))
	assert.True(t, alt.Adjustment.AdditionalLongTermCapitalGains.Equal(decimal.NewFromInt(10000)))
	assert.True(t, alt.Headroom.TaxableIncome.Equal(decimal.NewFromInt(100400)))
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}}))
}

func TestFormatters(t *testing.T) {
	set := compareDefault(t)

	t.Run("table", func(t *testing.T) {
		out := (&TableFormatter{}).Format(set)
		assert.Contains(t, out, "HEADROOM SCENARIO COMPARISON 2024 (Single)")
		assert.Contains(t, out, "base (base)")
		assert.Contains(t, out, "RECOMMENDATIONS")
		assert.Contains(t, out, "roth_25k: Convert $25000 to Roth")
		assert.Contains(t, out, "  Marginal Rate:    +2.0%")
	})

	t.Run("compact", func(t *testing.T) {
		out := (&TableFormatter{}).FormatCompact(set)
		assert.True(t, strings.HasPrefix(out, "Base: base | roth_10k: 22.0%"))
		assert.Contains(t, out, "roth_25k: 24.0%*")
	})

	t.Run("csv", func(t *testing.T) {
		out, err := (&CSVFormatter{}).Format(set)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 6)
		assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,"))
		assert.Equal(t, "base,base,0.00,0.00,85400.00,0.2200,15125.00,0,1,0.00,0.0000,false", lines[1])
		assert.Equal(t, "roth_25k,alternative,25000.00,0.00,110400.00,0.2400,81550.00,0,1,25000.00,0.0200,true", lines[3])
	})

	t.Run("json", func(t *testing.T) {
		out, err := (&JSONFormatter{Pretty: true}).Format(set)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "base", decoded["baseScenarioName"])
		assert.Len(t, decoded["alternativeResults"], 4)
	})
}
