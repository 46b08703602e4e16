package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameKind selects the sport, which constrains the markets a game may
// offer.
type GameKind uint8

const (
	SoccerGame GameKind = iota + 1
	HockeyGame
)

func (k GameKind) String() string {
	switch k {
	case SoccerGame:
		return "soccer"
	case HockeyGame:
		return "hockey"
	default:
		return fmt.Sprintf("game(%d)", uint8(k))
	}
}

// GameStatus is the game state machine: created -> started -> finished,
// terminal thereafter. Cancellation deletes the record instead.
type GameStatus uint8

const (
	GameCreated GameStatus = iota + 1
	GameStarted
	GameFinished
)

func (s GameStatus) String() string {
	switch s {
	case GameCreated:
		return "created"
	case GameStarted:
		return "started"
	case GameFinished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Game is a real-world event bets are placed on.
type Game struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	Moderator string    `json:"moderator"`
	Kind      GameKind  `json:"kind"`

	Start      time.Time `json:"start"`
	LastUpdate time.Time `json:"last_update"`

	// AutoResolveTime is the deadline for posting results; cleared
	// (zeroed) once the game is finished.
	AutoResolveTime time.Time `json:"auto_resolve_time"`

	// BetsResolveTime is set on finish; results can be re-posted until
	// it elapses, after which settlement may proceed.
	BetsResolveTime time.Time `json:"bets_resolve_time"`

	Status  GameStatus `json:"status"`
	Markets []Market   `json:"markets"` // sorted by Market.Less
	Results []Wincase  `json:"results"` // sorted by Wincase.Less, empty until finished
}

// HasMarket reports whether the game offers the given market.
func (g *Game) HasMarket(m Market) bool {
	for _, gm := range g.Markets {
		if gm == m {
			return true
		}
	}

	return false
}
