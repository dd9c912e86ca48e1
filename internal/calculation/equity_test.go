package calculation

import (
	"testing"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEquityEventImpact(t *testing.T) {
	tests := []struct {
		name         string
		event        domain.EquityEvent
		wantOrdinary int64
		wantLTCG     int64
	}{
		{
			name:         "NSO exercise taxes the spread",
			event:        domain.EquityEvent{Kind: domain.EventNSOExercise, Shares: dec(100), StrikePrice: dec(10), FairMarketValue: dec(35)},
			wantOrdinary: 2500,
		},
		{
			name:  "underwater NSO adds nothing",
			event: domain.EquityEvent{Kind: domain.EventNSOExercise, Shares: dec(100), StrikePrice: dec(40), FairMarketValue: dec(35)},
		},
		{
			name:  "ISO exercise has no regular income",
			event: domain.EquityEvent{Kind: domain.EventISOExercise, Shares: dec(500), StrikePrice: dec(1), FairMarketValue: dec(50)},
		},
		{
			name:         "RSU vest is ordinary at FMV",
			event:        domain.EquityEvent{Kind: domain.EventRSUVest, Shares: dec(40), FairMarketValue: dec(125)},
			wantOrdinary: 5000,
		},
		{
			name:     "long-term sale is capital gain",
			event:    domain.EquityEvent{Kind: domain.EventShareSale, Shares: dec(10), SalePrice: dec(300), CostBasis: dec(100), LongTerm: true},
			wantLTCG: 2000,
		},
		{
			name:         "short-term sale is ordinary",
			event:        domain.EquityEvent{Kind: domain.EventShareSale, Shares: dec(10), SalePrice: dec(300), CostBasis: dec(100)},
			wantOrdinary: 2000,
		},
		{
			name:     "long-term loss is negative",
			event:    domain.EquityEvent{Kind: domain.EventShareSale, Shares: dec(10), SalePrice: dec(50), CostBasis: dec(100), LongTerm: true},
			wantLTCG: -500,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impact := EquityEventImpact(tt.event)
			assert.True(t, impact.OrdinaryIncome.Equal(dec(tt.wantOrdinary)), "ordinary = %s", impact.OrdinaryIncome)
			assert.True(t, impact.LongTermCapitalGain.Equal(dec(tt.wantLTCG)), "ltcg = %s", impact.LongTermCapitalGain)
		})
	}
}

func TestEquityAdjustment(t *testing.T) {
	events := []domain.EquityEvent{
		{Kind: domain.EventRSUVest, Shares: dec(40), FairMarketValue: dec(125)},
		{Kind: domain.EventShareSale, Shares: dec(10), SalePrice: dec(300), CostBasis: dec(100), LongTerm: true},
	}
	adj, impacts := EquityAdjustment(events)

	assert.Len(t, impacts, 2)
	assert.True(t, adj.AdditionalOrdinaryIncome.Equal(dec(5000)))
	assert.True(t, adj.AdditionalLongTermCapitalGains.Equal(dec(2000)))
	assert.True(t, adj.TotalAdjustment().Equal(dec(7000)))

	none, impacts := EquityAdjustment(nil)
	assert.True(t, none.IsZero())
	assert.Empty(t, impacts)
	assert.True(t, none.TotalAdjustment().Equal(decimal.Zero))
}
