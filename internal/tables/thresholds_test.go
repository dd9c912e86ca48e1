package tables

import (
	"testing"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thresholdsFor(year int) domain.TaxThresholds {
	return domain.TaxThresholds{
		Year:         year,
		FilingStatus: domain.Single,
		Surtax:       domain.ThresholdDetail{Key: "niit", Limit: decimal.NewFromInt(200000), Kind: domain.KindSurtax},
	}
}

func TestLoadDefaultThresholds(t *testing.T) {
	set, err := LoadDefaultThresholds()
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025, 2026}, set.Years())

	th, ok := set.Lookup(2025, domain.MarriedFilingJointly)
	require.True(t, ok)
	require.Len(t, th.MeansTestedTiers, 5)
	assert.True(t, th.MeansTestedTiers[0].Limit.Equal(decimal.NewFromInt(212000)))
	assert.Equal(t, domain.KindMeansTestedTier, th.MeansTestedTiers[0].Kind)
	assert.True(t, th.Surtax.Limit.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, domain.KindSurtax, th.Surtax.Kind)
	assert.Equal(t, domain.KindQBIPhaseIn, th.QBIPhaseIn.Kind)
}

func TestThresholdSet_Fallback(t *testing.T) {
	set, err := NewThresholdSet([]domain.TaxThresholds{thresholdsFor(2022), thresholdsFor(2024), thresholdsFor(2026)})
	require.NoError(t, err)

	tests := []struct {
		name     string
		year     int
		wantYear int
	}{
		{"exact year", 2024, 2024},
		{"nearest lower year", 2025, 2024},
		{"nearest lower beyond latest", 2030, 2026},
		{"nearest higher when none lower", 2019, 2022},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, ok := set.Lookup(tt.year, domain.Single)
			require.True(t, ok)
			assert.Equal(t, tt.wantYear, th.Year)
		})
	}

	_, ok := set.Lookup(2024, domain.HeadOfHousehold)
	assert.False(t, ok, "no year carries head of household")
}

func TestNewThresholdSet_SortsTiersAndRejectsDuplicates(t *testing.T) {
	th := thresholdsFor(2024)
	th.MeansTestedTiers = []domain.ThresholdDetail{
		{Key: "t2", Limit: decimal.NewFromInt(200)},
		{Key: "t1", Limit: decimal.NewFromInt(100)},
	}
	set, err := NewThresholdSet([]domain.TaxThresholds{th})
	require.NoError(t, err)
	got, _ := set.Lookup(2024, domain.Single)
	assert.Equal(t, "t1", got.MeansTestedTiers[0].Key)
	assert.Equal(t, "t2", th.MeansTestedTiers[0].Key, "input slice untouched")

	_, err = NewThresholdSet([]domain.TaxThresholds{thresholdsFor(2024), thresholdsFor(2024)})
	assert.Error(t, err)
}
