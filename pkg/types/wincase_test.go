package types

import "testing"

func allWincaseKinds() []WincaseKind {
	kinds := make([]WincaseKind, 0, len(wincaseNames))
	for k := ResultHome; k <= TotalGoalsAwayUnder; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func TestCreateOppositeIsInvolution(t *testing.T) {
	for _, k := range allWincaseKinds() {
		w := Wincase{Kind: k, Threshold: 500, Home: 2, Away: 1}
		opp := CreateOpposite(w)

		if opp.Kind == w.Kind {
			t.Errorf("%s is its own opposite", k)
		}
		if opp.Threshold != w.Threshold || opp.Home != w.Home || opp.Away != w.Away {
			t.Errorf("opposite of %v changed parameters: %v", w, opp)
		}
		if back := CreateOpposite(opp); back != w {
			t.Errorf("double opposite of %v gave %v", w, back)
		}
	}
}

func TestWincaseMarket(t *testing.T) {
	tests := []struct {
		name    string
		wincase Wincase
		want    MarketKind
	}{
		{name: "result-home-side", wincase: Wincase{Kind: ResultHome}, want: MarketResultHome},
		{name: "result-draw-away-side", wincase: Wincase{Kind: ResultDrawAway}, want: MarketResultHome},
		{name: "total-over", wincase: Wincase{Kind: TotalOver, Threshold: 2500}, want: MarketTotal},
		{name: "handicap-under", wincase: Wincase{Kind: HandicapUnder, Threshold: -500}, want: MarketHandicap},
		{name: "correct-score", wincase: Wincase{Kind: CorrectScoreYes, Home: 2, Away: 1}, want: MarketCorrectScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.wincase.Market()
			if m.Kind != tt.want {
				t.Errorf("Market() kind = %s, want %s", m.Kind, tt.want)
			}
			if m.Threshold != tt.wincase.Threshold || m.Home != tt.wincase.Home || m.Away != tt.wincase.Away {
				t.Errorf("Market() dropped parameters: %v from %v", m, tt.wincase)
			}
		})
	}

	// Both sides of every pair map to the same market.
	for _, k := range allWincaseKinds() {
		w := Wincase{Kind: k, Threshold: 1000}
		if w.Market() != CreateOpposite(w).Market() {
			t.Errorf("%v and its opposite derive different markets", w)
		}
	}
}

func TestWincaseHasThirdState(t *testing.T) {
	tests := []struct {
		name    string
		wincase Wincase
		want    bool
	}{
		{name: "total-whole-unit", wincase: Wincase{Kind: TotalOver, Threshold: 2000}, want: true},
		{name: "total-half-unit", wincase: Wincase{Kind: TotalOver, Threshold: 2500}, want: false},
		{name: "handicap-zero", wincase: Wincase{Kind: HandicapOver, Threshold: 0}, want: true},
		{name: "handicap-negative-whole", wincase: Wincase{Kind: HandicapUnder, Threshold: -1000}, want: true},
		{name: "result-never", wincase: Wincase{Kind: ResultHome}, want: false},
		{name: "correct-score-never", wincase: Wincase{Kind: CorrectScoreYes, Home: 1, Away: 1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wincase.HasThirdState(); got != tt.want {
				t.Errorf("HasThirdState(%v) = %v, want %v", tt.wincase, got, tt.want)
			}
		})
	}
}

func TestWincaseLess(t *testing.T) {
	a := Wincase{Kind: ResultHome}
	b := Wincase{Kind: TotalOver, Threshold: 500}
	c := Wincase{Kind: TotalOver, Threshold: 1500}

	if !a.Less(b) || b.Less(a) {
		t.Error("kind must order first")
	}
	if !b.Less(c) || c.Less(b) {
		t.Error("threshold must break kind ties")
	}
	if a.Less(a) {
		t.Error("Less must be irreflexive")
	}
}
