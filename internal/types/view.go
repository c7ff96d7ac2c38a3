package types

import (
	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
)

type PlayerView struct {
	engine.Player
	IsHost        bool `json:"isHost"`
	IsCurrentTurn bool `json:"isCurrentTurn"`
}

// LobbyView is the snapshot one member sees. Pending trades are limited
// to the ones the viewer is party to.
type LobbyView struct {
	ID            string                 `json:"id"`
	You           string                 `json:"you"`
	HostID        string                 `json:"hostId"`
	Country       string                 `json:"country"`
	CountryName   string                 `json:"countryName"`
	Currency      string                 `json:"currency"`
	Players       []PlayerView           `json:"players"`
	CurrentTurn   int                    `json:"currentTurn"`
	Started       bool                   `json:"started"`
	Rules         engine.Rules           `json:"rules"`
	Turn          engine.Turn            `json:"turn"`
	Board         []board.Space          `json:"board"`
	Properties    []engine.PropertyState `json:"properties"`
	PendingTrades []engine.TradeOffer    `json:"pendingTrades"`
	Winner        string                 `json:"winner,omitempty"`
	Log           []engine.LogEntry      `json:"log"`
	MaxPlayers    int                    `json:"maxPlayers"`
	HasPassword   bool                   `json:"hasPassword"`
}

func NewLobbyView(s engine.State, viewer string) *LobbyView {
	v := &LobbyView{
		ID:            s.ID,
		You:           viewer,
		HostID:        s.HostID,
		Country:       s.Theme,
		CurrentTurn:   s.CurrentTurn,
		Started:       s.Started,
		Rules:         s.Rules,
		Turn:          s.Turn,
		Properties:    s.Properties,
		PendingTrades: s.PendingTradesFor(viewer),
		Winner:        s.Winner,
		Log:           s.Log,
		MaxPlayers:    s.MaxPlayers,
		HasPassword:   s.Locked,
		Players:       make([]PlayerView, 0, len(s.Players)),
	}
	if s.Board != nil {
		v.CountryName = s.Board.Name
		v.Currency = s.Board.Currency
		v.Board = s.Board.Spaces
	}
	for i, p := range s.Players {
		v.Players = append(v.Players, PlayerView{
			Player:        p,
			IsHost:        p.ID == s.HostID,
			IsCurrentTurn: s.Started && i == s.CurrentTurn,
		})
	}
	if v.PendingTrades == nil {
		v.PendingTrades = []engine.TradeOffer{}
	}
	return v
}
