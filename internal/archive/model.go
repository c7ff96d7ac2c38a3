package archive

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
)

// GameResult is one finished game. Standings are kept as a JSON column so
// the table does not need a child row per player.
type GameResult struct {
	ID         uint   `gorm:"primaryKey"`
	LobbyID    string `gorm:"size:16;index"`
	Theme      string `gorm:"size:32"`
	WinnerID   string `gorm:"size:64"`
	WinnerName string `gorm:"size:64"`
	Players    int
	Standings  datatypes.JSON
	StartedAt  time.Time
	FinishedAt time.Time `gorm:"index"`
	CreatedAt  time.Time
}

func fromResult(r lobby.Result) (GameResult, error) {
	standings, err := json.Marshal(r.Standings)
	if err != nil {
		return GameResult{}, fmt.Errorf("encode standings: %w", err)
	}
	return GameResult{
		LobbyID:    r.LobbyID,
		Theme:      r.Theme,
		WinnerID:   r.WinnerID,
		WinnerName: r.WinnerName,
		Players:    len(r.Standings),
		Standings:  datatypes.JSON(standings),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}, nil
}

func (g GameResult) toResult() (lobby.Result, error) {
	r := lobby.Result{
		LobbyID:    g.LobbyID,
		Theme:      g.Theme,
		WinnerID:   g.WinnerID,
		WinnerName: g.WinnerName,
		StartedAt:  g.StartedAt,
		FinishedAt: g.FinishedAt,
	}
	if len(g.Standings) > 0 {
		var standings []engine.Standing
		if err := json.Unmarshal(g.Standings, &standings); err != nil {
			return lobby.Result{}, fmt.Errorf("decode standings of result %d: %w", g.ID, err)
		}
		r.Standings = standings
	}
	return r, nil
}
