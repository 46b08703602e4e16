package events

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecorderPreservesEmissionOrder(t *testing.T) {
	r := &Recorder{}
	g := uuid.New()

	r.Emit(GameStatusChanged{GameUUID: g})
	r.Emit(BetCancelled{GameUUID: g})
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	evs := r.Drain()
	if len(evs) != 2 {
		t.Fatalf("drained %d events, want 2", len(evs))
	}
	if _, ok := evs[0].(GameStatusChanged); !ok {
		t.Errorf("event 0 = %#v, want the first emitted", evs[0])
	}
	if _, ok := evs[1].(BetCancelled); !ok {
		t.Errorf("event 1 = %#v, want the second emitted", evs[1])
	}

	if r.Len() != 0 {
		t.Error("drain must reset the recorder")
	}
	if evs := r.Drain(); len(evs) != 0 {
		t.Errorf("second drain returned %d events", len(evs))
	}
}

func TestEventNames(t *testing.T) {
	names := map[string]Event{
		"bet_updated":         BetUpdated{},
		"bets_matched":        BetsMatched{},
		"bet_cancelled":       BetCancelled{},
		"bet_resolved":        BetResolved{},
		"game_resolved":       GameResolved{},
		"game_status_changed": GameStatusChanged{},
		"game_cancelled":      GameCancelled{},
	}

	for want, ev := range names {
		if got := ev.Name(); got != want {
			t.Errorf("%T.Name() = %q, want %q", ev, got, want)
		}
	}
}
