package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
	"github.com/DoyleJ11/monopoly-lobby/internal/hub"
	"github.com/DoyleJ11/monopoly-lobby/internal/types"
)

func newServer(t *testing.T) (*httptest.Server, *hub.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.NewHub(ctx, hub.Options{})
	srv := httptest.NewServer(Handler(h, Options{}))
	t.Cleanup(srv.Close)
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return c
}

func send(t *testing.T, c *websocket.Conn, m types.ClientMessage) {
	t.Helper()
	payload, err := json.Marshal(m)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Write(ctx, websocket.MessageText, payload))
}

// readUntil skips messages until one of the wanted type arrives.
func readUntil(t *testing.T, c *websocket.Conn, typ string) types.ServerMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		_, data, err := c.Read(ctx)
		require.NoError(t, err, "waiting for %s", typ)
		var m types.ServerMessage
		require.NoError(t, json.Unmarshal(data, &m))
		if m.Type == typ {
			return m
		}
	}
}

func TestHandler_CreateThenJoin(t *testing.T) {
	srv, h := newServer(t)
	host := dial(t, srv)

	send(t, host, types.ClientMessage{Type: types.MsgCreateLobby, Name: "Ann", Country: "japan"})
	created := readUntil(t, host, types.MsgLobbyCreated)
	require.NotNil(t, created.Lobby)
	assert.NotEmpty(t, created.LobbyID)
	assert.Equal(t, "japan", created.Lobby.Country)
	require.Len(t, created.Lobby.Players, 1)
	assert.True(t, created.Lobby.Players[0].IsHost)

	guest := dial(t, srv)
	send(t, guest, types.ClientMessage{Type: types.MsgGetLobbies})
	list := readUntil(t, guest, types.MsgLobbiesList)
	require.Len(t, list.Lobbies, 1)
	assert.Equal(t, created.LobbyID, list.Lobbies[0].ID)

	send(t, guest, types.ClientMessage{Type: types.MsgJoinLobby, LobbyID: created.LobbyID, Name: "Bob"})
	upd := readUntil(t, host, types.MsgLobbyUpdated)
	require.NotNil(t, upd.Lobby)
	assert.Len(t, upd.Lobby.Players, 2)

	state := readUntil(t, guest, types.MsgGameState)
	require.NotNil(t, state.Lobby)
	assert.NotEmpty(t, state.Lobby.You)
	assert.NotEqual(t, created.Lobby.You, state.Lobby.You)

	assert.NotNil(t, h.Get(created.LobbyID))
}

func TestHandler_ErrorsGoToTheSender(t *testing.T) {
	srv, _ := newServer(t)
	c := dial(t, srv)

	send(t, c, types.ClientMessage{Type: types.MsgRollDice})
	m := readUntil(t, c, types.MsgError)
	assert.Equal(t, engine.ErrNotFound.Error(), m.Code)
	assert.Equal(t, errNotInLobby.Msg, m.Error)

	send(t, c, types.ClientMessage{Type: "dance"})
	m = readUntil(t, c, types.MsgError)
	assert.Equal(t, engine.ErrUnsupported.Msg, m.Error)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte("{not json")))
	m = readUntil(t, c, types.MsgError)
	assert.Equal(t, errBadMessage.Msg, m.Error)
}

func TestHandler_JoinUnknownLobby(t *testing.T) {
	srv, _ := newServer(t)
	c := dial(t, srv)

	send(t, c, types.ClientMessage{Type: types.MsgJoinLobby, LobbyID: "NOPE"})
	m := readUntil(t, c, types.MsgError)
	assert.Equal(t, engine.ErrNotFound.Error(), m.Code)
}

func TestHandler_WrongPassword(t *testing.T) {
	srv, _ := newServer(t)
	host := dial(t, srv)
	send(t, host, types.ClientMessage{Type: types.MsgCreateLobby, Name: "Ann", Password: "hunter2"})
	created := readUntil(t, host, types.MsgLobbyCreated)

	guest := dial(t, srv)
	send(t, guest, types.ClientMessage{Type: types.MsgJoinLobby, LobbyID: created.LobbyID, Password: "nope"})
	m := readUntil(t, guest, types.MsgError)
	assert.Equal(t, engine.ErrBadCredential.Error(), m.Code)
}

func TestHandler_DisconnectLeavesLobby(t *testing.T) {
	srv, h := newServer(t)
	host := dial(t, srv)
	send(t, host, types.ClientMessage{Type: types.MsgCreateLobby, Name: "Ann"})
	created := readUntil(t, host, types.MsgLobbyCreated)

	host.Close(websocket.StatusNormalClosure, "")
	assert.Eventually(t, func() bool { return h.Get(created.LobbyID) == nil }, 2*time.Second, 20*time.Millisecond)
}

func TestHandler_StartGameFlow(t *testing.T) {
	srv, _ := newServer(t)
	host := dial(t, srv)
	send(t, host, types.ClientMessage{Type: types.MsgCreateLobby, Name: "Ann"})
	created := readUntil(t, host, types.MsgLobbyCreated)

	guest := dial(t, srv)
	send(t, guest, types.ClientMessage{Type: types.MsgJoinLobby, LobbyID: created.LobbyID, Name: "Bob"})
	readUntil(t, guest, types.MsgGameState)

	money := 3000
	send(t, host, types.ClientMessage{Type: types.MsgStartGame, Rules: &types.RulesPayload{InitialMoney: &money}})
	started := readUntil(t, guest, types.MsgGameStarted)
	require.NotNil(t, started.Lobby)
	assert.True(t, started.Lobby.Started)
	for _, p := range started.Lobby.Players {
		assert.Equal(t, 3000, p.Cash)
	}
}

func TestToEngineCommand(t *testing.T) {
	cmd, ok := toEngineCommand(types.ClientMessage{Type: types.MsgProposeTrade, To: "p2", MyPropIDs: []int{1}, OfferCash: 10})
	require.True(t, ok)
	assert.Equal(t, engine.CmdProposeTrade, cmd.Type)
	assert.Equal(t, engine.TradeRequest{To: "p2", OfferProperties: []int{1}, OfferCash: 10}, cmd.Trade)

	cmd, ok = toEngineCommand(types.ClientMessage{Type: types.MsgStartGame})
	require.True(t, ok)
	require.NotNil(t, cmd.Rules)
	assert.Equal(t, engine.DefaultRules(), *cmd.Rules)

	_, ok = toEngineCommand(types.ClientMessage{Type: types.MsgCreateLobby})
	assert.False(t, ok)
}
