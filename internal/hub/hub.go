package hub

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
)

type HubMsg interface{ isHubMsg() }

// CreateLobby spawns a lobby. The hub fills in the id, the registry and
// the shared sinks; the caller supplies board, host and password.
type CreateLobby struct {
	Config lobby.Config
	Reply  chan *lobby.Lobby
}

type GetLobby struct {
	ID    string
	Reply chan *lobby.Lobby
}

type ListOpen struct {
	Reply chan []lobby.Summary
}

// BindConnection records which lobby a connection currently sits in.
type BindConnection struct {
	ConnID  string
	LobbyID string
}

// RemoveConnection forgets the connection and replies with the lobby it
// was bound to, or nil. The caller is expected to send the lobby a Leave.
type RemoveConnection struct {
	ConnID string
	Reply  chan *lobby.Lobby
}

type SummaryChanged struct {
	Summary lobby.Summary
}

type RemoveLobby struct {
	ID string
}

type ShutdownHub struct{}

func (CreateLobby) isHubMsg()      {}
func (GetLobby) isHubMsg()         {}
func (ListOpen) isHubMsg()         {}
func (BindConnection) isHubMsg()   {}
func (RemoveConnection) isHubMsg() {}
func (SummaryChanged) isHubMsg()   {}
func (RemoveLobby) isHubMsg()      {}
func (ShutdownHub) isHubMsg()      {}

type Options struct {
	Logger      *zap.Logger
	MaxPlayers  int
	TurnTimeout time.Duration
	TradeTTL    time.Duration
	Results     lobby.ResultRecorder
	Actions     lobby.ActionPublisher
}

type Hub struct {
	inbox     chan HubMsg
	lobbies   map[string]*lobby.Lobby
	summaries map[string]lobby.Summary
	conns     map[string]string // connection id -> lobby id
	opts      Options
	log       *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewHub(parent context.Context, opts Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &Hub{
		inbox:     make(chan HubMsg, 64),
		lobbies:   make(map[string]*lobby.Lobby),
		summaries: make(map[string]lobby.Summary),
		conns:     make(map[string]string),
		opts:      opts,
		log:       opts.Logger.Named("hub"),
		ctx:       ctx,
		cancel:    cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			clear(h.lobbies)
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				msg.Reply <- h.create(msg.Config)

			case GetLobby:
				msg.Reply <- h.lobbies[msg.ID] // May be nil

			case ListOpen:
				msg.Reply <- h.open()

			case BindConnection:
				if _, ok := h.lobbies[msg.LobbyID]; ok {
					h.conns[msg.ConnID] = msg.LobbyID
				}

			case RemoveConnection:
				id, ok := h.conns[msg.ConnID]
				delete(h.conns, msg.ConnID)
				if !ok {
					msg.Reply <- nil
					break
				}
				msg.Reply <- h.lobbies[id]

			case SummaryChanged:
				// Late updates from a lobby that already closed are dropped.
				if _, ok := h.lobbies[msg.Summary.ID]; ok {
					h.summaries[msg.Summary.ID] = msg.Summary
				}

			case RemoveLobby:
				h.remove(msg.ID)

			case ShutdownHub:
				h.log.Info("shutting down", zap.Int("lobbies", len(h.lobbies)))
				h.cancel()
			}
		}
	}
}

func (h *Hub) create(cfg lobby.Config) *lobby.Lobby {
	cfg.ID = h.newID()
	cfg.Registry = h
	cfg.Logger = h.opts.Logger
	cfg.Results = h.opts.Results
	cfg.Actions = h.opts.Actions
	if cfg.MaxPlayers == 0 {
		cfg.MaxPlayers = h.opts.MaxPlayers
	}
	if cfg.TurnTimeout == 0 {
		cfg.TurnTimeout = h.opts.TurnTimeout
	}
	if cfg.TradeTTL == 0 {
		cfg.TradeTTL = h.opts.TradeTTL
	}

	lb := lobby.NewLobby(h.ctx, cfg)
	h.lobbies[cfg.ID] = lb
	h.summaries[cfg.ID] = lb.InitialSummary()
	h.conns[cfg.Host.ID] = cfg.ID
	h.log.Info("lobby created", zap.String("lobby_id", cfg.ID), zap.String("host", cfg.Host.ID))
	return lb
}

func (h *Hub) remove(id string) {
	if _, ok := h.lobbies[id]; !ok {
		return
	}
	delete(h.lobbies, id)
	delete(h.summaries, id)
	for conn, lid := range h.conns {
		if lid == id {
			delete(h.conns, conn)
		}
	}
	h.log.Info("lobby removed", zap.String("lobby_id", id))
}

// open lists lobbies that can still be joined, oldest id first.
func (h *Hub) open() []lobby.Summary {
	out := make([]lobby.Summary, 0, len(h.summaries))
	for _, s := range h.summaries {
		if s.Open() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (h *Hub) newID() string {
	for {
		id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		if _, taken := h.lobbies[id]; !taken {
			return id
		}
	}
}

// send never blocks past hub shutdown.
func (h *Hub) send(m HubMsg) bool {
	select {
	case h.inbox <- m:
		return true
	case <-h.ctx.Done():
		return false
	}
}

// UpdateSummary and Remove make the hub a lobby.Registry.
func (h *Hub) UpdateSummary(s lobby.Summary) { h.send(SummaryChanged{Summary: s}) }

func (h *Hub) Remove(id string) { h.send(RemoveLobby{ID: id}) }

func (h *Hub) Create(cfg lobby.Config) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	if !h.send(CreateLobby{Config: cfg, Reply: reply}) {
		return nil
	}
	return h.await(reply)
}

func (h *Hub) Get(id string) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	if !h.send(GetLobby{ID: id, Reply: reply}) {
		return nil
	}
	return h.await(reply)
}

func (h *Hub) Open() []lobby.Summary {
	reply := make(chan []lobby.Summary, 1)
	if !h.send(ListOpen{Reply: reply}) {
		return nil
	}
	select {
	case s := <-reply:
		return s
	case <-h.ctx.Done():
		return nil
	}
}

func (h *Hub) Bind(connID, lobbyID string) { h.send(BindConnection{ConnID: connID, LobbyID: lobbyID}) }

func (h *Hub) Unbind(connID string) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	if !h.send(RemoveConnection{ConnID: connID, Reply: reply}) {
		return nil
	}
	return h.await(reply)
}

func (h *Hub) Shutdown() { h.send(ShutdownHub{}) }

func (h *Hub) await(reply chan *lobby.Lobby) *lobby.Lobby {
	select {
	case lb := <-reply:
		return lb
	case <-h.ctx.Done():
		return nil
	}
}
