package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
)

func TestRulesPayload_OverlaysDefaults(t *testing.T) {
	var nilPayload *RulesPayload
	assert.Equal(t, engine.DefaultRules(), nilPayload.Rules())

	var p RulesPayload
	require.NoError(t, json.Unmarshal([]byte(`{"initialMoney":3000,"taxFree":true}`), &p))
	got := p.Rules()

	want := engine.DefaultRules()
	want.StartingCash = 3000
	want.TaxFree = true
	assert.Equal(t, want, got)
}

func TestErrorMessage(t *testing.T) {
	m := ErrorMessage(engine.ErrWrongTurn)
	assert.Equal(t, MsgError, m.Type)
	assert.Equal(t, "forbidden", m.Code)
	assert.Equal(t, "it is not your turn", m.Error)

	m = ErrorMessage(errors.New("boom"))
	assert.Equal(t, "internal", m.Code)
	assert.Equal(t, "internal server error", m.Error)
}

func TestFromEvent(t *testing.T) {
	view := &LobbyView{ID: "L1"}
	cases := []struct {
		name  string
		event engine.Event
		check func(t *testing.T, m ServerMessage)
	}{
		{
			name:  "roster change carries the view",
			event: engine.Event{Type: engine.EvtPlayerJoined, PlayerID: "p2"},
			check: func(t *testing.T, m ServerMessage) {
				assert.Equal(t, MsgLobbyUpdated, m.Type)
				assert.Same(t, view, m.Lobby)
			},
		},
		{
			name:  "property events keep a zero level",
			event: engine.Event{Type: engine.EvtPropertyBought, PlayerID: "p1", PropertyID: 1, Amount: 60},
			check: func(t *testing.T, m ServerMessage) {
				assert.Equal(t, MsgPropertyBought, m.Type)
				require.NotNil(t, m.PropertyID)
				require.NotNil(t, m.Level)
				assert.Equal(t, 1, *m.PropertyID)
				assert.Zero(t, *m.Level)
				assert.Equal(t, 60, m.Amount)
				assert.Nil(t, m.Lobby)
			},
		},
		{
			name:  "turn ended names the next seat",
			event: engine.Event{Type: engine.EvtTurnEnded, Amount: 0},
			check: func(t *testing.T, m ServerMessage) {
				assert.Equal(t, MsgTurnEnded, m.Type)
				require.NotNil(t, m.CurrentTurn)
				assert.Zero(t, *m.CurrentTurn)
			},
		},
		{
			name:  "trade offer",
			event: engine.Event{Type: engine.EvtTradeProposed, Trade: &engine.TradeOffer{ID: "t1"}},
			check: func(t *testing.T, m ServerMessage) {
				assert.Equal(t, MsgTradeOffer, m.Type)
				assert.Equal(t, "t1", m.Trade.ID)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := FromEvent(tc.event, 4, view)
			require.True(t, ok)
			assert.Equal(t, 4, m.Version)
			tc.check(t, m)
		})
	}

	_, ok := FromEvent(engine.Event{Type: "mystery"}, 1, view)
	assert.False(t, ok)
}

func TestNewLobbyView(t *testing.T) {
	b := board.DefaultCatalog().Lookup("germany")
	s := engine.NewState(engine.Options{ID: "L1", Board: b, Host: engine.Seat{ID: "p1", Name: "Ann"}})

	v := NewLobbyView(s, "p1")
	assert.Equal(t, "germany", v.Country)
	assert.Equal(t, b.Name, v.CountryName)
	assert.Equal(t, b.Currency, v.Currency)
	assert.Len(t, v.Board, len(b.Spaces))
	require.Len(t, v.Players, 1)
	assert.True(t, v.Players[0].IsHost)
	assert.False(t, v.Players[0].IsCurrentTurn)
	assert.NotNil(t, v.PendingTrades)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"money":1500`)
	assert.Contains(t, string(raw), `"isHost":true`)
}
