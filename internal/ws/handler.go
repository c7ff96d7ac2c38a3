package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
	"github.com/DoyleJ11/monopoly-lobby/internal/hub"
	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
	"github.com/DoyleJ11/monopoly-lobby/internal/types"
)

var (
	errBadMessage  = &engine.RuleError{Kind: engine.ErrInvalidState, Msg: "malformed message"}
	errNotInLobby  = &engine.RuleError{Kind: engine.ErrNotFound, Msg: "you are not in a lobby"}
	errRateLimited = &engine.RuleError{Kind: engine.ErrInvalidState, Msg: "too many messages, slow down"}
	errUnavailable = &engine.RuleError{Kind: engine.ErrInternal, Msg: "server is shutting down"}
)

const (
	writeTimeout = 3 * time.Second
	pingInterval = 30 * time.Second
	outboxSize   = 64
	sendQueue    = 256
)

type Options struct {
	Catalog        *board.Catalog
	Logger         *zap.Logger
	OriginPatterns []string
	MessageRate    float64
	MessageBurst   int
}

func Handler(h *hub.Hub, opts Options) http.HandlerFunc {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Catalog == nil {
		opts.Catalog = board.DefaultCatalog()
	}
	if opts.MessageRate <= 0 {
		opts.MessageRate = 10
	}
	if opts.MessageBurst <= 0 {
		opts.MessageBurst = 20
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			opts.Logger.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		s := &session{
			id:      uuid.NewString(),
			conn:    conn,
			hub:     h,
			catalog: opts.Catalog,
			send:    make(chan types.ServerMessage, sendQueue),
			limiter: rate.NewLimiter(rate.Limit(opts.MessageRate), opts.MessageBurst),
			ctx:     ctx,
			cancel:  cancel,
		}
		s.log = opts.Logger.With(zap.String("conn_id", s.id))
		s.log.Debug("connection opened")

		go s.writeLoop()
		go s.keepAlive()
		defer s.disconnect()
		s.readLoop()
	}
}

type session struct {
	id      string
	conn    *websocket.Conn
	hub     *hub.Hub
	catalog *board.Catalog
	log     *zap.Logger
	send    chan types.ServerMessage
	limiter *rate.Limiter
	ctx     context.Context
	cancel  context.CancelFunc

	// current is only touched by the reader goroutine.
	current *lobby.Lobby
}

func (s *session) readLoop() {
	for {
		_, data, err := s.conn.Read(s.ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				s.log.Debug("connection closed by client")
			default:
				s.log.Debug("read failed", zap.Error(err))
			}
			return
		}

		if !s.limiter.Allow() {
			s.push(types.ErrorMessage(errRateLimited))
			continue
		}

		var cm types.ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			s.push(types.ErrorMessage(errBadMessage))
			continue
		}
		if err := s.dispatch(cm); err != nil {
			s.push(types.ErrorMessage(err))
		}
	}
}

func (s *session) writeLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case msg := <-s.send:
			payload, err := json.Marshal(msg)
			if err != nil {
				s.log.Error("marshal server message", zap.String("type", msg.Type), zap.Error(err))
				continue
			}
			ctx, cancel := context.WithTimeout(s.ctx, writeTimeout)
			err = s.conn.Write(ctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				s.log.Debug("write failed", zap.Error(err))
				s.cancel()
				return
			}
		}
	}
}

func (s *session) keepAlive() {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(s.ctx, pingInterval/2)
			err := s.conn.Ping(ctx)
			cancel()
			if err != nil {
				s.log.Debug("ping failed", zap.Error(err))
				s.cancel()
				return
			}
		}
	}
}

// push queues msg for the writer. A client that cannot keep up is cut off.
func (s *session) push(msg types.ServerMessage) {
	select {
	case s.send <- msg:
	case <-s.ctx.Done():
	default:
		s.log.Warn("send queue full, closing connection")
		s.cancel()
	}
}

// disconnect runs the supervisor path once the socket is gone.
func (s *session) disconnect() {
	s.cancel()
	lb := s.hub.Unbind(s.id)
	if lb == nil {
		lb = s.current
	}
	if lb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		_ = lb.Send(ctx, lobby.Leave{PlayerID: s.id})
	}
	s.log.Debug("connection closed")
}

func (s *session) dispatch(cm types.ClientMessage) error {
	switch cm.Type {
	case types.MsgCreateLobby:
		return s.createLobby(cm)
	case types.MsgJoinLobby:
		return s.joinLobby(cm)
	case types.MsgGetLobbies:
		s.push(types.ServerMessage{Type: types.MsgLobbiesList, Lobbies: s.hub.Open()})
		return nil
	case types.MsgLeaveLobby:
		if s.current == nil {
			return errNotInLobby
		}
		s.leaveCurrent()
		return nil
	}

	cmd, ok := toEngineCommand(cm)
	if !ok {
		return engine.ErrUnsupported
	}
	if s.current == nil {
		return errNotInLobby
	}
	cmd.PlayerID = s.id
	return s.current.Do(s.ctx, cmd)
}

func (s *session) seat(cm types.ClientMessage) engine.Seat {
	return engine.Seat{ID: s.id, Name: cm.Name, Appearance: cm.Appearance, Color: cm.Color}
}

func (s *session) createLobby(cm types.ClientMessage) error {
	hash, err := lobby.HashPassword(cm.Password)
	if err != nil {
		s.log.Error("hash lobby password", zap.Error(err))
		return engine.ErrInternal
	}
	s.leaveCurrent()

	out := make(chan lobby.Update, outboxSize)
	lb := s.hub.Create(lobby.Config{
		Board:        s.catalog.Lookup(cm.Country),
		Host:         s.seat(cm),
		HostOutbox:   out,
		PasswordHash: hash,
	})
	if lb == nil {
		return errUnavailable
	}
	s.attach(lb, out)
	return nil
}

func (s *session) joinLobby(cm types.ClientMessage) error {
	lb := s.hub.Get(cm.LobbyID)
	if lb == nil {
		return lobby.ErrClosed
	}
	if s.current == lb {
		return &engine.RuleError{Kind: engine.ErrInvalidState, Msg: "you are already in this lobby"}
	}

	out := make(chan lobby.Update, outboxSize)
	if err := lb.JoinSeat(s.ctx, s.seat(cm), cm.Password, out); err != nil {
		return err
	}
	s.leaveCurrent()
	s.hub.Bind(s.id, lb.ID())
	s.attach(lb, out)
	return nil
}

func (s *session) leaveCurrent() {
	if s.current == nil {
		return
	}
	lb := s.current
	s.current = nil
	s.hub.Unbind(s.id)
	if err := lb.Send(s.ctx, lobby.Leave{PlayerID: s.id}); err != nil {
		s.log.Debug("leave not delivered", zap.String("lobby_id", lb.ID()), zap.Error(err))
	}
}

func (s *session) attach(lb *lobby.Lobby, out <-chan lobby.Update) {
	s.current = lb
	go s.pump(lb.ID(), out)
}

// pump turns lobby updates into wire messages until the lobby closes the
// outbox, which happens on leave, on drop and on shutdown.
func (s *session) pump(lobbyID string, out <-chan lobby.Update) {
	for u := range out {
		view := types.NewLobbyView(u.State, s.id)
		if u.Version == 0 && len(u.Events) == 0 {
			s.push(types.ServerMessage{Type: types.MsgLobbyCreated, LobbyID: lobbyID, Lobby: view})
		}
		for _, e := range u.Events {
			if m, ok := types.FromEvent(e, u.Version, view); ok {
				m.LobbyID = lobbyID
				s.push(m)
			}
		}
		s.push(types.ServerMessage{Type: types.MsgGameState, LobbyID: lobbyID, Version: u.Version, Lobby: view})
	}
	s.push(types.ServerMessage{Type: types.MsgLobbyClosed, LobbyID: lobbyID})
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case types.MsgUpdatePlayer:
		return engine.Command{Type: engine.CmdUpdatePlayer, Seat: engine.Seat{Name: m.Name, Appearance: m.Appearance, Color: m.Color}}, true
	case types.MsgStartGame:
		rules := m.Rules.Rules()
		return engine.Command{Type: engine.CmdStartGame, Rules: &rules}, true
	case types.MsgRollDice:
		return engine.Command{Type: engine.CmdRollDice}, true
	case types.MsgRollForJail:
		return engine.Command{Type: engine.CmdRollForJail}, true
	case types.MsgPayJailFine:
		return engine.Command{Type: engine.CmdPayJailFine}, true
	case types.MsgUseJailCard:
		return engine.Command{Type: engine.CmdUseJailCard}, true
	case types.MsgBuyProperty:
		return engine.Command{Type: engine.CmdBuyProperty, PropertyID: m.PropertyID}, true
	case types.MsgBuildHouse:
		return engine.Command{Type: engine.CmdBuildHouse, PropertyID: m.PropertyID}, true
	case types.MsgSellHouse:
		return engine.Command{Type: engine.CmdSellHouse, PropertyID: m.PropertyID}, true
	case types.MsgAdvanceTurn:
		return engine.Command{Type: engine.CmdAdvanceTurn}, true
	case types.MsgProposeTrade:
		return engine.Command{Type: engine.CmdProposeTrade, Trade: engine.TradeRequest{
			To:                m.To,
			OfferProperties:   m.MyPropIDs,
			RequestProperties: m.TheirPropIDs,
			OfferCash:         m.OfferCash,
			RequestCash:       m.RequestCash,
		}}, true
	case types.MsgRespondTrade:
		return engine.Command{Type: engine.CmdRespondTrade, TradeID: m.TradeID, Accept: m.Accept}, true
	case types.MsgDeclareBankruptcy:
		return engine.Command{Type: engine.CmdDeclareBankruptcy}, true
	default:
		return engine.Command{}, false
	}
}
