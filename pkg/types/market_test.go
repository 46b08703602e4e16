package types

import "testing"

func TestMarketWincasePairs(t *testing.T) {
	m := Market{Kind: MarketTotal, Threshold: 2500}

	pairs := m.WincasePairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}

	p := pairs[0]
	if p.First.Kind != TotalOver || p.Second.Kind != TotalUnder {
		t.Errorf("pair = %v/%v, want total_over/total_under", p.First.Kind, p.Second.Kind)
	}
	if p.First.Threshold != 2500 || p.Second.Threshold != 2500 {
		t.Error("pair must inherit the market threshold")
	}
	if p.Second != CreateOpposite(p.First) {
		t.Error("pair sides must be opposites")
	}

	if pairs := (Market{Kind: MarketUnset}).WincasePairs(); pairs != nil {
		t.Errorf("unknown market produced pairs: %v", pairs)
	}
}

func TestMarketValidate(t *testing.T) {
	tests := []struct {
		name      string
		market    Market
		expectErr bool
	}{
		{name: "plain-result", market: Market{Kind: MarketResultHome}},
		{name: "total-half-unit", market: Market{Kind: MarketTotal, Threshold: 2500}},
		{name: "total-whole-unit", market: Market{Kind: MarketTotal, Threshold: 2000}},
		{name: "handicap-negative", market: Market{Kind: MarketHandicap, Threshold: -500}},
		{name: "correct-score", market: Market{Kind: MarketCorrectScore, Home: 2, Away: 1}},
		{name: "unknown-kind", market: Market{Kind: MarketUnset}, expectErr: true},
		{name: "threshold-not-half-unit", market: Market{Kind: MarketTotal, Threshold: 2300}, expectErr: true},
		{name: "negative-total", market: Market{Kind: MarketTotal, Threshold: -500}, expectErr: true},
		{name: "threshold-on-result", market: Market{Kind: MarketResultHome, Threshold: 500}, expectErr: true},
		{name: "score-on-total", market: Market{Kind: MarketTotal, Threshold: 500, Home: 1}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.market.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("expected error for %v", tt.market)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error for %v: %v", tt.market, err)
			}
		})
	}
}

func TestOpErrorCode(t *testing.T) {
	err := NewOpError(CodeNotFound, "abc", "no such game")
	if !IsCode(err, CodeNotFound) {
		t.Error("IsCode must match the carried code")
	}
	if IsCode(err, CodePrecondition) {
		t.Error("IsCode must reject other codes")
	}
	if IsCode(nil, CodeNotFound) {
		t.Error("IsCode(nil) must be false")
	}
}
