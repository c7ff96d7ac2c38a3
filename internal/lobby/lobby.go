package lobby

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
)

// ErrClosed is returned when a message is sent to a lobby that has shut down.
var ErrClosed = &engine.RuleError{Kind: engine.ErrNotFound, Msg: "lobby not found"}

type Msg interface{ isLobbyMsg() }

type Join struct {
	Seat       engine.Seat
	PasswordOK bool
	Outbox     chan Update // where this player receives updates
	Reply      chan error
}

func (Join) isLobbyMsg() {}

type FromClient struct {
	Cmd   engine.Command
	Reply chan error // optional
}

func (FromClient) isLobbyMsg() {}

type Leave struct{ PlayerID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

// TimerFired is delivered by the turn timer. Fires from an older
// generation are dropped.
type TimerFired struct{ Gen int }

func (TimerFired) isLobbyMsg() {}

// Update is what a member receives after every accepted change.
type Update struct {
	Version int
	Events  []engine.Event // already filtered for the recipient
	State   engine.State
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

type Summary struct {
	ID         string `json:"id"`
	HostName   string `json:"hostName"`
	Theme      string `json:"country"`
	ThemeName  string `json:"countryName"`
	Players    int    `json:"playerCount"`
	MaxPlayers int    `json:"maxPlayers"`
	Started    bool   `json:"started"`
	Locked     bool   `json:"hasPassword"`
}

// Open reports whether the lobby should appear in public listings.
func (s Summary) Open() bool { return !s.Started && s.Players < s.MaxPlayers }

// Registry is told about summary changes and about the lobby going away.
type Registry interface {
	UpdateSummary(Summary)
	Remove(id string)
}

type Result struct {
	LobbyID    string            `json:"lobbyId"`
	Theme      string            `json:"country"`
	WinnerID   string            `json:"winnerId"`
	WinnerName string            `json:"winnerName"`
	Standings  []engine.Standing `json:"standings"`
	StartedAt  time.Time         `json:"startedAt"`
	FinishedAt time.Time         `json:"finishedAt"`
}

type ResultRecorder interface {
	RecordResult(ctx context.Context, r Result) error
}

type Action struct {
	LobbyID  string    `json:"lobbyId"`
	Version  int       `json:"version"`
	Command  string    `json:"command"`
	PlayerID string    `json:"playerId"`
	Events   []string  `json:"events"`
	At       time.Time `json:"at"`
}

type ActionPublisher interface {
	Publish(ctx context.Context, a Action) error
}

type Config struct {
	ID           string
	Board        *board.Board
	Host         engine.Seat
	HostOutbox   chan Update
	PasswordHash string
	MaxPlayers   int
	TurnTimeout  time.Duration
	TradeTTL     time.Duration

	Registry Registry
	Results  ResultRecorder
	Actions  ActionPublisher
	Logger   *zap.Logger
	Rand     engine.Rand
	Now      func() time.Time
}

const (
	sinkTimeout   = 3 * time.Second
	actionBacklog = 256
)

type Lobby struct {
	id      string
	hash    string
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Update
	ctx     context.Context
	cancel  context.CancelFunc

	initial   Summary
	timeout   time.Duration
	timer     *time.Timer
	timerGen  int
	startedAt time.Time

	registry Registry
	results  ResultRecorder
	actions  ActionPublisher
	actionQ  chan Action
	log      *zap.Logger
	rng      engine.Rand
	now      func() time.Time
}

func NewLobby(parent context.Context, cfg Config) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	l := &Lobby{
		id:       cfg.ID,
		hash:     cfg.PasswordHash,
		inbox:    make(chan Msg, 64),
		clients:  make(map[string]chan Update),
		ctx:      ctx,
		cancel:   cancel,
		timeout:  cfg.TurnTimeout,
		registry: cfg.Registry,
		results:  cfg.Results,
		actions:  cfg.Actions,
		log:      cfg.Logger.With(zap.String("lobby_id", cfg.ID)),
		rng:      cfg.Rand,
		now:      cfg.Now,
	}
	l.state = engine.NewState(engine.Options{
		ID:         cfg.ID,
		Board:      cfg.Board,
		Host:       cfg.Host,
		MaxPlayers: cfg.MaxPlayers,
		Locked:     cfg.PasswordHash != "",
		TradeTTL:   cfg.TradeTTL,
		At:         l.now(),
	})
	if cfg.HostOutbox != nil {
		l.clients[cfg.Host.ID] = cfg.HostOutbox
		select {
		case cfg.HostOutbox <- Update{Version: 0, State: l.state}:
		default:
		}
	}
	l.initial = l.summary()

	if l.actions != nil {
		l.actionQ = make(chan Action, actionBacklog)
		go l.publishLoop()
	}
	go l.loop()
	return l
}

func (l *Lobby) ID() string { return l.id }

// Inbox exposes the inbox so tests or the WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

func (l *Lobby) Done() <-chan struct{} { return l.ctx.Done() }

// InitialSummary describes the lobby as it was created.
func (l *Lobby) InitialSummary() Summary { return l.initial }

// CheckPassword is safe to call from any goroutine; the hash never changes.
func (l *Lobby) CheckPassword(password string) bool { return checkPassword(password, l.hash) }

func (l *Lobby) Locked() bool { return l.hash != "" }

// Send delivers m unless the lobby or ctx finishes first.
func (l *Lobby) Send(ctx context.Context, m Msg) error {
	select {
	case l.inbox <- m:
		return nil
	case <-l.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do applies cmd and waits for the verdict.
func (l *Lobby) Do(ctx context.Context, cmd engine.Command) error {
	reply := make(chan error, 1)
	if err := l.Send(ctx, FromClient{Cmd: cmd, Reply: reply}); err != nil {
		return err
	}
	return l.await(ctx, reply)
}

// JoinSeat seats a player and registers outbox for their updates. The
// password is checked here, on the caller's goroutine.
func (l *Lobby) JoinSeat(ctx context.Context, seat engine.Seat, password string, outbox chan Update) error {
	reply := make(chan error, 1)
	msg := Join{Seat: seat, PasswordOK: l.CheckPassword(password), Outbox: outbox, Reply: reply}
	if err := l.Send(ctx, msg); err != nil {
		return err
	}
	return l.await(ctx, reply)
}

func (l *Lobby) await(ctx context.Context, reply chan error) error {
	select {
	case err := <-reply:
		return err
	case <-l.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Lobby) loop() {
	defer l.shutdown()
	for {
		select {
		case <-l.ctx.Done():
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				cmd := engine.Command{Type: engine.CmdJoin, PlayerID: msg.Seat.ID, Seat: msg.Seat, PasswordOK: msg.PasswordOK}
				err := l.apply(cmd, func() {
					if msg.Outbox != nil {
						l.clients[msg.Seat.ID] = msg.Outbox
					}
				})
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case FromClient:
				err := l.apply(msg.Cmd, nil)
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case Leave:
				l.leave(msg.PlayerID)

			case TimerFired:
				if msg.Gen != l.timerGen {
					break
				}
				if cur := l.state.Current(); cur != nil {
					if err := l.apply(engine.Command{Type: engine.CmdTimeoutAdvance, PlayerID: cur.ID}, nil); err != nil {
						l.log.Debug("turn timeout ignored", zap.Error(err))
					}
				}

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.state,
				}

			case Shutdown:
				return
			}

			if len(l.state.Players) == 0 {
				l.log.Info("lobby empty, closing")
				if l.registry != nil {
					l.registry.Remove(l.id)
				}
				return
			}
		}
	}
}

func (l *Lobby) shutdown() {
	if l.timer != nil {
		l.timer.Stop()
	}
	for id, ch := range l.clients {
		close(ch) // no more updates
		delete(l.clients, id)
	}
	if l.actionQ != nil {
		close(l.actionQ) // publishLoop finishes the backlog
	}
	l.cancel()
}

// apply runs cmd through the engine. register, if set, runs after the state
// is accepted and before the broadcast.
func (l *Lobby) apply(cmd engine.Command, register func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("panic while applying command",
				zap.String("command", string(cmd.Type)),
				zap.String("player_id", cmd.PlayerID),
				zap.Any("panic", r),
				zap.Stack("stack"))
			err = fmt.Errorf("%w: %v", engine.ErrInternal, r)
		}
	}()

	if cmd.At.IsZero() {
		cmd.At = l.now()
	}
	if cmd.Type == engine.CmdProposeTrade && cmd.Trade.ID == "" {
		cmd.Trade.ID = uuid.NewString()
	}

	events, next, err := engine.Apply(l.state, cmd, l.rng)
	if err != nil {
		l.log.Debug("command rejected",
			zap.String("command", string(cmd.Type)),
			zap.String("player_id", cmd.PlayerID),
			zap.Error(err))
		return err
	}

	wasOver := l.state.Over()
	l.state = next
	l.version++
	if register != nil {
		register()
	}
	if engine.ContainsEvent(events, engine.EvtGameStarted) {
		l.startedAt = cmd.At
	}

	l.logLifecycle(events)

	dropped := l.broadcast(events)
	l.publish(cmd, events)
	if !wasOver && l.state.Over() {
		l.recordResult(cmd.At)
	}
	if l.registry != nil {
		l.registry.UpdateSummary(l.summary())
	}
	l.armTimer()
	for _, id := range dropped {
		l.log.Warn("dropping slow client", zap.String("player_id", id))
		l.leave(id)
	}
	return nil
}

func (l *Lobby) logLifecycle(events []engine.Event) {
	for _, e := range events {
		switch e.Type {
		case engine.EvtPlayerJoined, engine.EvtPlayerLeft, engine.EvtPlayerBankrupt:
			l.log.Info(string(e.Type), zap.String("player_id", e.PlayerID), zap.Int("players", len(l.state.Players)))
		case engine.EvtGameStarted:
			l.log.Info("game started", zap.Int("players", len(l.state.Players)))
		case engine.EvtGameWon:
			l.log.Info("game won", zap.String("player_id", e.PlayerID), zap.Int("version", l.version))
		}
	}
}

func (l *Lobby) leave(playerID string) {
	if ch, ok := l.clients[playerID]; ok {
		close(ch)
		delete(l.clients, playerID)
	}
	err := l.apply(engine.Command{Type: engine.CmdLeave, PlayerID: playerID}, nil)
	if err != nil {
		l.log.Debug("leave ignored", zap.String("player_id", playerID), zap.Error(err))
	}
}

// broadcast returns the players whose outbox was full. Their channel is
// already closed.
func (l *Lobby) broadcast(events []engine.Event) []string {
	var dropped []string
	for id, ch := range l.clients {
		u := Update{Version: l.version, Events: engine.EventsFor(events, id), State: l.state}
		select {
		case ch <- u:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

// armTimer restarts the turn deadline. Every accepted action lands here.
func (l *Lobby) armTimer() {
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timerGen++
	if l.timeout <= 0 || !l.state.Started || l.state.Over() {
		return
	}
	gen := l.timerGen
	l.timer = time.AfterFunc(l.timeout, func() {
		select {
		case l.inbox <- TimerFired{Gen: gen}:
		case <-l.ctx.Done():
		}
	})
}

// publish queues the action for publishLoop, which delivers in version
// order. A full queue drops the action rather than stall the game.
func (l *Lobby) publish(cmd engine.Command, events []engine.Event) {
	if l.actionQ == nil {
		return
	}
	a := Action{LobbyID: l.id, Version: l.version, Command: string(cmd.Type), PlayerID: cmd.PlayerID, At: cmd.At}
	for _, e := range events {
		a.Events = append(a.Events, string(e.Type))
	}
	select {
	case l.actionQ <- a:
	default:
		l.log.Warn("action queue full, dropping", zap.Int("version", a.Version))
	}
}

// publishLoop drains actionQ until shutdown closes it.
func (l *Lobby) publishLoop() {
	for a := range l.actionQ {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		if err := l.actions.Publish(ctx, a); err != nil {
			l.log.Warn("publish action failed", zap.Int("version", a.Version), zap.Error(err))
		}
		cancel()
	}
}

func (l *Lobby) recordResult(at time.Time) {
	if l.results == nil {
		return
	}
	r := Result{
		LobbyID:    l.id,
		Theme:      l.state.Theme,
		WinnerID:   l.state.Winner,
		Standings:  l.state.Standings(),
		StartedAt:  l.startedAt,
		FinishedAt: at,
	}
	if w := l.state.Player(l.state.Winner); w != nil {
		r.WinnerName = w.Name
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()
		if err := l.results.RecordResult(ctx, r); err != nil {
			l.log.Error("record result failed", zap.Error(err))
		}
	}()
}

func (l *Lobby) summary() Summary {
	s := Summary{
		ID:         l.id,
		Theme:      l.state.Theme,
		ThemeName:  l.state.Base.Name,
		Players:    len(l.state.Players),
		MaxPlayers: l.state.MaxPlayers,
		Started:    l.state.Started,
		Locked:     l.state.Locked,
	}
	if h := l.state.Host(); h != nil {
		s.HostName = h.Name
	}
	return s
}
