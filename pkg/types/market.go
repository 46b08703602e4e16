package types

import "fmt"

// MarketKind enumerates the closed set of market families.
type MarketKind uint8

const (
	MarketUnset MarketKind = iota
	MarketResultHome
	MarketResultDraw
	MarketResultAway
	MarketRound
	MarketHandicap
	MarketCorrectScore
	MarketGoalHome
	MarketGoalBoth
	MarketGoalAway
	MarketTotal
	MarketTotalGoalsHome
	MarketTotalGoalsAway
)

var marketNames = map[MarketKind]string{
	MarketResultHome:     "result_home",
	MarketResultDraw:     "result_draw",
	MarketResultAway:     "result_away",
	MarketRound:          "round",
	MarketHandicap:       "handicap",
	MarketCorrectScore:   "correct_score",
	MarketGoalHome:       "goal_home",
	MarketGoalBoth:       "goal_both",
	MarketGoalAway:       "goal_away",
	MarketTotal:          "total",
	MarketTotalGoalsHome: "total_goals_home",
	MarketTotalGoalsAway: "total_goals_away",
}

func (k MarketKind) String() string {
	if s, ok := marketNames[k]; ok {
		return s
	}

	return fmt.Sprintf("market(%d)", uint8(k))
}

// Market is a family of mutually covering wincases along one dimension
// of a game's outcome space. Like Wincase it is a comparable tagged
// union usable as an index key.
type Market struct {
	Kind      MarketKind `json:"kind"`
	Threshold int32      `json:"threshold,omitempty"`
	Home      uint16     `json:"home,omitempty"`
	Away      uint16     `json:"away,omitempty"`
}

// WincasePair is a two-state pair that must jointly decide the market.
type WincasePair struct {
	First  Wincase `json:"first"`
	Second Wincase `json:"second"`
}

var marketWincases = map[MarketKind][2]WincaseKind{
	MarketResultHome:     {ResultHome, ResultDrawAway},
	MarketResultDraw:     {ResultDraw, ResultHomeAway},
	MarketResultAway:     {ResultAway, ResultHomeDraw},
	MarketRound:          {RoundHome, RoundAway},
	MarketHandicap:       {HandicapOver, HandicapUnder},
	MarketCorrectScore:   {CorrectScoreYes, CorrectScoreNo},
	MarketGoalHome:       {GoalHomeYes, GoalHomeNo},
	MarketGoalBoth:       {GoalBothYes, GoalBothNo},
	MarketGoalAway:       {GoalAwayYes, GoalAwayNo},
	MarketTotal:          {TotalOver, TotalUnder},
	MarketTotalGoalsHome: {TotalGoalsHomeOver, TotalGoalsHomeUnder},
	MarketTotalGoalsAway: {TotalGoalsAwayOver, TotalGoalsAwayUnder},
}

// WincasePairs derives the exhaustive wincase pairs the market offers.
func (m Market) WincasePairs() []WincasePair {
	kinds, ok := marketWincases[m.Kind]
	if !ok {
		return nil
	}

	first := Wincase{Kind: kinds[0], Threshold: m.Threshold, Home: m.Home, Away: m.Away}

	return []WincasePair{{First: first, Second: CreateOpposite(first)}}
}

// hasThreshold reports whether the market kind is parameterized by a
// numeric threshold.
func (m Market) hasThreshold() bool {
	switch m.Kind {
	case MarketHandicap, MarketTotal, MarketTotalGoalsHome, MarketTotalGoalsAway:
		return true
	default:
		return false
	}
}

// Validate checks the market is internally consistent.
func (m Market) Validate() error {
	if _, ok := marketWincases[m.Kind]; !ok {
		return NewOpError(CodePrecondition, m.Kind.String(), "unknown market kind")
	}

	if m.hasThreshold() {
		if m.Threshold%(ThresholdFactor/2) != 0 {
			return NewOpError(CodePrecondition, m.Kind.String(),
				"threshold %d is not a half-unit multiple", m.Threshold)
		}
		if m.Kind != MarketHandicap && m.Threshold < 0 {
			return NewOpError(CodePrecondition, m.Kind.String(),
				"threshold %d must not be negative", m.Threshold)
		}
	} else if m.Threshold != 0 {
		return NewOpError(CodePrecondition, m.Kind.String(), "market does not take a threshold")
	}

	if m.Kind != MarketCorrectScore && (m.Home != 0 || m.Away != 0) {
		return NewOpError(CodePrecondition, m.Kind.String(), "market does not take a score")
	}

	return nil
}

// Less orders markets by (kind, threshold, home, away).
func (m Market) Less(o Market) bool {
	if m.Kind != o.Kind {
		return m.Kind < o.Kind
	}
	if m.Threshold != o.Threshold {
		return m.Threshold < o.Threshold
	}
	if m.Home != o.Home {
		return m.Home < o.Home
	}

	return m.Away < o.Away
}

func (m Market) String() string {
	return fmt.Sprintf("%s{%d,%d:%d}", m.Kind, m.Threshold, m.Home, m.Away)
}
