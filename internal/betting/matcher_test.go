package betting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/internal/store"
	"github.com/openwager/betchain/pkg/types"
)

var (
	testTime = time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC)

	homeWin = types.Wincase{Kind: types.ResultHome}
	awayWin = types.Wincase{Kind: types.ResultDrawAway}
)

type matcherFixture struct {
	store   *store.Store
	rec     *events.Recorder
	matcher *Matcher
	game    uuid.UUID
}

func newMatcherFixture(t *testing.T) *matcherFixture {
	t.Helper()

	st := store.New("moderator", 24*time.Hour)
	st.SetHeadBlockTime(testTime)
	rec := &events.Recorder{}

	return &matcherFixture{
		store:   st,
		rec:     rec,
		matcher: NewMatcher(st, rec, zap.NewNop()),
		game:    uuid.New(),
	}
}

func (f *matcherFixture) placeBet(better string, w types.Wincase, odds types.Odds, stake int64) *types.PendingBet {
	return f.store.PendingBets.Create(func(b *types.PendingBet) {
		b.GameUUID = f.game
		b.Kind = types.BetLive
		b.Data = types.BetData{
			UUID:    uuid.New(),
			Better:  better,
			Created: testTime,
			Wincase: w,
			Odds:    odds,
			Stake:   types.NewAsset(stake),
		}
		b.RestStake = types.NewAsset(stake)
	})
}

func TestMatchEmptyBook(t *testing.T) {
	f := newMatcherFixture(t)
	bet := f.placeBet("alice", homeWin, types.MustOdds(3, 2), 10)

	retire, err := f.matcher.Match(bet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retire) != 0 {
		t.Errorf("empty book must retire nothing, got %d", len(retire))
	}
	if f.store.MatchedBets.Count() != 0 {
		t.Error("no matched bets expected")
	}
}

func TestMatchZeroStakeWithEmptyBook(t *testing.T) {
	f := newMatcherFixture(t)
	bet := f.placeBet("alice", homeWin, types.MustOdds(3, 2), 0)

	retire, err := f.matcher.Match(bet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Nothing to match against, so the bet is not even retired.
	if len(retire) != 0 {
		t.Errorf("got %d retired bets, want 0", len(retire))
	}
}

func TestMatchZeroStakeWithCandidate(t *testing.T) {
	f := newMatcherFixture(t)
	f.placeBet("alice", homeWin, types.MustOdds(3, 2), 10)
	zero := f.placeBet("bob", awayWin, types.MustOdds(3, 1), 0)

	retire, err := f.matcher.Match(zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retire) != 1 || retire[0] != zero {
		t.Fatal("zero-stake bet must be retired as soon as a candidate exists")
	}
	if f.store.MatchedBets.Count() != 0 {
		t.Error("zero-stake bet must never produce a matched record")
	}
}

func TestMatchIgnoresSameWincase(t *testing.T) {
	f := newMatcherFixture(t)
	f.placeBet("alice", homeWin, types.MustOdds(3, 2), 10)
	bet := f.placeBet("bob", homeWin, types.MustOdds(3, 2), 10)

	retire, err := f.matcher.Match(bet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retire) != 0 || f.store.MatchedBets.Count() != 0 {
		t.Error("same-side bets must never match")
	}
}

func TestMatchIgnoresNonInverseOdds(t *testing.T) {
	f := newMatcherFixture(t)
	f.placeBet("alice", homeWin, types.MustOdds(3, 2), 10)
	bet := f.placeBet("bob", awayWin, types.MustOdds(4, 1), 10)

	retire, err := f.matcher.Match(bet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retire) != 0 || f.store.MatchedBets.Count() != 0 {
		t.Error("non-inverse odds must never match")
	}
}

func TestMatchPartialConsumesSmallerPotential(t *testing.T) {
	f := newMatcherFixture(t)
	bet1 := f.placeBet("alice", homeWin, types.MustOdds(3, 2), 10)
	bet2 := f.placeBet("bob", awayWin, types.MustOdds(3, 1), 10)

	retire, err := f.matcher.Match(bet2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Potentials 15 vs 30: bet1 commits all 10, bet2 commits 5.
	if len(retire) != 1 || retire[0] != bet1 {
		t.Fatalf("only the fully consumed bet1 must retire, got %d", len(retire))
	}
	if bet1.RestStake.Amount != 0 {
		t.Errorf("bet1 rest = %d, want 0", bet1.RestStake.Amount)
	}
	if bet2.RestStake.Amount != 5 {
		t.Errorf("bet2 rest = %d, want 5", bet2.RestStake.Amount)
	}

	matched := f.store.MatchedBets.GetByGame(f.game)
	if len(matched) != 1 {
		t.Fatalf("got %d matched records, want 1", len(matched))
	}
	mb := matched[0]
	if mb.Bet1Data.Stake.Amount != 10 || mb.Bet2Data.Stake.Amount != 5 {
		t.Errorf("matched stakes = %d/%d, want 10/5", mb.Bet1Data.Stake.Amount, mb.Bet2Data.Stake.Amount)
	}
	if mb.Bet1Payout.Amount != 15 || mb.Bet2Payout.Amount != 15 {
		t.Errorf("payouts = %d/%d, want 15/15", mb.Bet1Payout.Amount, mb.Bet2Payout.Amount)
	}
	if mb.Market.Kind != types.MarketResultHome {
		t.Errorf("market = %s, want result_home", mb.Market.Kind)
	}
}

func TestMatchEqualPotentialsRetiresBoth(t *testing.T) {
	f := newMatcherFixture(t)
	bet1 := f.placeBet("alice", homeWin, types.MustOdds(3, 1), 1000)
	bet2 := f.placeBet("bob", awayWin, types.MustOdds(3, 2), 2000)

	retire, err := f.matcher.Match(bet2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retire) != 2 || retire[0] != bet1 || retire[1] != bet2 {
		t.Fatalf("both bets must retire, got %d", len(retire))
	}
	if bet1.RestStake.Amount != 0 || bet2.RestStake.Amount != 0 {
		t.Error("equal potentials must consume both stakes exactly")
	}

	matched := f.store.MatchedBets.GetByGame(f.game)
	if len(matched) != 1 {
		t.Fatalf("got %d matched records, want 1", len(matched))
	}
	if matched[0].Bet1Payout.Amount != 3000 || matched[0].Bet2Payout.Amount != 3000 {
		t.Errorf("payouts = %d/%d, want 3000/3000",
			matched[0].Bet1Payout.Amount, matched[0].Bet2Payout.Amount)
	}
}

func TestMatchWalksCandidatesOldestFirst(t *testing.T) {
	f := newMatcherFixture(t)
	first := f.placeBet("alice", homeWin, types.MustOdds(2, 1), 30)
	second := f.placeBet("bob", homeWin, types.MustOdds(2, 1), 30)
	third := f.placeBet("carol", homeWin, types.MustOdds(2, 1), 30)
	taker := f.placeBet("dave", awayWin, types.MustOdds(2, 1), 70)

	retire, err := f.matcher.Match(taker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 30+30 consumed whole, 10 from the third; the taker exhausts.
	if first.RestStake.Amount != 0 || second.RestStake.Amount != 0 {
		t.Error("oldest candidates must be consumed first")
	}
	if third.RestStake.Amount != 20 {
		t.Errorf("third rest = %d, want 20", third.RestStake.Amount)
	}
	if taker.RestStake.Amount != 0 {
		t.Errorf("taker rest = %d, want 0", taker.RestStake.Amount)
	}

	if len(retire) != 3 || retire[0] != first || retire[1] != second || retire[2] != taker {
		t.Fatalf("retire list = %d entries, want first, second, taker", len(retire))
	}
	if f.store.MatchedBets.Count() != 3 {
		t.Errorf("matched records = %d, want 3", f.store.MatchedBets.Count())
	}
}

func TestMatchEventOrder(t *testing.T) {
	f := newMatcherFixture(t)
	bet1 := f.placeBet("alice", homeWin, types.MustOdds(3, 2), 10)
	bet2 := f.placeBet("bob", awayWin, types.MustOdds(3, 1), 10)

	if _, err := f.matcher.Match(bet2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evs := f.rec.Drain()
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3", len(evs))
	}

	upd1, ok := evs[0].(events.BetUpdated)
	if !ok || upd1.BetUUID != bet1.Data.UUID || upd1.NewRestStake.Amount != 0 {
		t.Errorf("event 0 = %#v, want candidate bet updated to rest 0", evs[0])
	}
	upd2, ok := evs[1].(events.BetUpdated)
	if !ok || upd2.BetUUID != bet2.Data.UUID || upd2.NewRestStake.Amount != 5 {
		t.Errorf("event 1 = %#v, want taker bet updated to rest 5", evs[1])
	}
	m, ok := evs[2].(events.BetsMatched)
	if !ok || m.Bet1UUID != bet1.Data.UUID || m.Bet2UUID != bet2.Data.UUID {
		t.Errorf("event 2 = %#v, want bets matched", evs[2])
	}
	if m.MatchedBet1Stake.Amount != 10 || m.MatchedBet2Stake.Amount != 5 {
		t.Errorf("matched stakes on event = %d/%d, want 10/5",
			m.MatchedBet1Stake.Amount, m.MatchedBet2Stake.Amount)
	}
}
