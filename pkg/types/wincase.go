package types

import "fmt"

// ThresholdFactor scales market thresholds: a stored threshold of 500
// means 0.5 goals/points. Whole-unit thresholds (multiples of 1000) on
// handicap and total markets admit a third "push" state.
const ThresholdFactor = 1000

// WincaseKind enumerates the closed set of atomic outcome predicates.
type WincaseKind uint8

const (
	WincaseUnset WincaseKind = iota
	ResultHome
	ResultDrawAway
	ResultDraw
	ResultHomeAway
	ResultAway
	ResultHomeDraw
	RoundHome
	RoundAway
	HandicapOver
	HandicapUnder
	CorrectScoreYes
	CorrectScoreNo
	GoalHomeYes
	GoalHomeNo
	GoalBothYes
	GoalBothNo
	GoalAwayYes
	GoalAwayNo
	TotalOver
	TotalUnder
	TotalGoalsHomeOver
	TotalGoalsHomeUnder
	TotalGoalsAwayOver
	TotalGoalsAwayUnder
)

var wincaseNames = map[WincaseKind]string{
	ResultHome:          "result_home",
	ResultDrawAway:      "result_draw_away",
	ResultDraw:          "result_draw",
	ResultHomeAway:      "result_home_away",
	ResultAway:          "result_away",
	ResultHomeDraw:      "result_home_draw",
	RoundHome:           "round_home",
	RoundAway:           "round_away",
	HandicapOver:        "handicap_over",
	HandicapUnder:       "handicap_under",
	CorrectScoreYes:     "correct_score_yes",
	CorrectScoreNo:      "correct_score_no",
	GoalHomeYes:         "goal_home_yes",
	GoalHomeNo:          "goal_home_no",
	GoalBothYes:         "goal_both_yes",
	GoalBothNo:          "goal_both_no",
	GoalAwayYes:         "goal_away_yes",
	GoalAwayNo:          "goal_away_no",
	TotalOver:           "total_over",
	TotalUnder:          "total_under",
	TotalGoalsHomeOver:  "total_goals_home_over",
	TotalGoalsHomeUnder: "total_goals_home_under",
	TotalGoalsAwayOver:  "total_goals_away_over",
	TotalGoalsAwayUnder: "total_goals_away_under",
}

func (k WincaseKind) String() string {
	if s, ok := wincaseNames[k]; ok {
		return s
	}

	return fmt.Sprintf("wincase(%d)", uint8(k))
}

// Wincase is an atomic predicate on a game result. It is a tagged
// union: Kind selects the variant, Threshold/Home/Away carry the
// variant's parameters (zero where the variant has none). The struct is
// comparable and totally ordered, so it can serve as an index key.
type Wincase struct {
	Kind      WincaseKind `json:"kind"`
	Threshold int32       `json:"threshold,omitempty"`
	Home      uint16      `json:"home,omitempty"`
	Away      uint16      `json:"away,omitempty"`
}

// opposites pairs every wincase kind with its complement. The relation
// is an involution: CreateOpposite(CreateOpposite(w)) == w.
var opposites = map[WincaseKind]WincaseKind{
	ResultHome:          ResultDrawAway,
	ResultDrawAway:      ResultHome,
	ResultDraw:          ResultHomeAway,
	ResultHomeAway:      ResultDraw,
	ResultAway:          ResultHomeDraw,
	ResultHomeDraw:      ResultAway,
	RoundHome:           RoundAway,
	RoundAway:           RoundHome,
	HandicapOver:        HandicapUnder,
	HandicapUnder:       HandicapOver,
	CorrectScoreYes:     CorrectScoreNo,
	CorrectScoreNo:      CorrectScoreYes,
	GoalHomeYes:         GoalHomeNo,
	GoalHomeNo:          GoalHomeYes,
	GoalBothYes:         GoalBothNo,
	GoalBothNo:          GoalBothYes,
	GoalAwayYes:         GoalAwayNo,
	GoalAwayNo:          GoalAwayYes,
	TotalOver:           TotalUnder,
	TotalUnder:          TotalOver,
	TotalGoalsHomeOver:  TotalGoalsHomeUnder,
	TotalGoalsHomeUnder: TotalGoalsHomeOver,
	TotalGoalsAwayOver:  TotalGoalsAwayUnder,
	TotalGoalsAwayUnder: TotalGoalsAwayOver,
}

// CreateOpposite returns the complementary wincase within the same
// market, preserving the variant parameters.
func CreateOpposite(w Wincase) Wincase {
	opp := w
	opp.Kind = opposites[w.Kind]

	return opp
}

// HasThirdState reports whether the wincase's market admits a "push"
// outcome that voids both sides: handicap and total style wincases with
// a whole-unit threshold.
func (w Wincase) HasThirdState() bool {
	switch w.Kind {
	case HandicapOver, HandicapUnder,
		TotalOver, TotalUnder,
		TotalGoalsHomeOver, TotalGoalsHomeUnder,
		TotalGoalsAwayOver, TotalGoalsAwayUnder:
		return w.Threshold%ThresholdFactor == 0
	default:
		return false
	}
}

// Market derives the market a wincase belongs to.
func (w Wincase) Market() Market {
	m := Market{Threshold: w.Threshold, Home: w.Home, Away: w.Away}

	switch w.Kind {
	case ResultHome, ResultDrawAway:
		m.Kind = MarketResultHome
	case ResultDraw, ResultHomeAway:
		m.Kind = MarketResultDraw
	case ResultAway, ResultHomeDraw:
		m.Kind = MarketResultAway
	case RoundHome, RoundAway:
		m.Kind = MarketRound
	case HandicapOver, HandicapUnder:
		m.Kind = MarketHandicap
	case CorrectScoreYes, CorrectScoreNo:
		m.Kind = MarketCorrectScore
	case GoalHomeYes, GoalHomeNo:
		m.Kind = MarketGoalHome
	case GoalBothYes, GoalBothNo:
		m.Kind = MarketGoalBoth
	case GoalAwayYes, GoalAwayNo:
		m.Kind = MarketGoalAway
	case TotalOver, TotalUnder:
		m.Kind = MarketTotal
	case TotalGoalsHomeOver, TotalGoalsHomeUnder:
		m.Kind = MarketTotalGoalsHome
	case TotalGoalsAwayOver, TotalGoalsAwayUnder:
		m.Kind = MarketTotalGoalsAway
	}

	return m
}

// Less orders wincases by (kind, threshold, home, away); the ordering
// backs the book's game+wincase index and set intersections.
func (w Wincase) Less(o Wincase) bool {
	if w.Kind != o.Kind {
		return w.Kind < o.Kind
	}
	if w.Threshold != o.Threshold {
		return w.Threshold < o.Threshold
	}
	if w.Home != o.Home {
		return w.Home < o.Home
	}

	return w.Away < o.Away
}

func (w Wincase) String() string {
	return fmt.Sprintf("%s{%d,%d:%d}", w.Kind, w.Threshold, w.Home, w.Away)
}
