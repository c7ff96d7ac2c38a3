package lobby

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
)

// helper: receive one update with a timeout so tests never hang
func recvUpdate(t *testing.T, ch <-chan Update, within time.Duration) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return u
	case <-time.After(within):
		t.Fatalf("timed out waiting for update")
		return Update{} // unreachable
	}
}

func recvNoUpdate(t *testing.T, ch <-chan Update, within time.Duration) {
	t.Helper()
	select {
	case u, ok := <-ch:
		if !ok {
			return
		}
		t.Fatalf("expected no update within %v, but got version %d", within, u.Version)
	case <-time.After(within):
	}
}

func recvView(t *testing.T, l *Lobby) View {
	t.Helper()
	reply := make(chan View, 1)
	l.Inbox() <- GetState{Reply: reply}
	select {
	case v := <-reply:
		return v
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for view")
		return View{}
	}
}

type fakeRegistry struct {
	mu        sync.Mutex
	summaries []Summary
	removed   chan string
}

func newFakeRegistry() *fakeRegistry { return &fakeRegistry{removed: make(chan string, 1)} }

func (r *fakeRegistry) UpdateSummary(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
}

func (r *fakeRegistry) Remove(id string) { r.removed <- id }

func (r *fakeRegistry) last() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summaries[len(r.summaries)-1]
}

type recorder struct{ got chan Result }

func (r recorder) RecordResult(_ context.Context, res Result) error {
	r.got <- res
	return nil
}

type publisher struct{ got chan Action }

func (p publisher) Publish(_ context.Context, a Action) error {
	p.got <- a
	return nil
}

type fixedRand []int

func (f fixedRand) IntN(n int) int { return f[0] % n }

type panicRand struct{}

func (panicRand) IntN(int) int { panic("boom") }

func newTestLobby(t *testing.T, cfg Config) (*Lobby, chan Update) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if cfg.Board == nil {
		cfg.Board = board.DefaultCatalog().Lookup("usa")
	}
	if cfg.Host.ID == "" {
		cfg.Host = engine.Seat{ID: "A", Name: "Alice"}
	}
	if cfg.MaxPlayers == 0 {
		cfg.MaxPlayers = 6
	}
	out := make(chan Update, 16)
	cfg.HostOutbox = out
	l := NewLobby(ctx, cfg)
	first := recvUpdate(t, out, 100*time.Millisecond)
	require.Equal(t, 0, first.Version)
	return l, out
}

func join(t *testing.T, l *Lobby, id string) chan Update {
	t.Helper()
	out := make(chan Update, 16)
	require.NoError(t, l.JoinSeat(context.Background(), engine.Seat{ID: id, Name: id}, "", out))
	recvUpdate(t, out, 100*time.Millisecond)
	return out
}

func TestLobby_JoinBroadcastsAndVersionIncrements(t *testing.T) {
	l, hostOut := newTestLobby(t, Config{})

	bobOut := make(chan Update, 4)
	require.NoError(t, l.JoinSeat(context.Background(), engine.Seat{ID: "B", Name: "Bob"}, "", bobOut))

	for _, ch := range []chan Update{hostOut, bobOut} {
		u := recvUpdate(t, ch, 100*time.Millisecond)
		assert.Equal(t, 1, u.Version)
		assert.Len(t, u.State.Players, 2)
		assert.True(t, engine.ContainsEvent(u.Events, engine.EvtPlayerJoined))
	}
}

func TestLobby_RejectedCommandRepliesOnlyToRequester(t *testing.T) {
	l, hostOut := newTestLobby(t, Config{})
	bobOut := join(t, l, "B")
	recvUpdate(t, hostOut, 100*time.Millisecond)

	err := l.Do(context.Background(), engine.Command{Type: engine.CmdStartGame, PlayerID: "B"})
	require.ErrorIs(t, err, engine.ErrForbidden)

	recvNoUpdate(t, hostOut, 50*time.Millisecond)
	recvNoUpdate(t, bobOut, 50*time.Millisecond)
	assert.Equal(t, 1, recvView(t, l).Version)
}

func TestLobby_DropSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hostOut := make(chan Update, 1)
	l := NewLobby(ctx, Config{
		Board:      board.DefaultCatalog().Lookup("usa"),
		Host:       engine.Seat{ID: "A", Name: "Alice"},
		HostOutbox: hostOut,
		MaxPlayers: 6,
	})
	// hostOut still holds the initial update, so the join broadcast overflows it.
	bobOut := make(chan Update, 8)
	require.NoError(t, l.JoinSeat(ctx, engine.Seat{ID: "B", Name: "Bob"}, "", bobOut))

	view := recvView(t, l)
	assert.Equal(t, 1, view.NumClients)
	require.Len(t, view.State.Players, 1)
	assert.Equal(t, "B", view.State.HostID, "dropped host is replaced")
}

func TestLobby_TurnTimerForcesAdvance(t *testing.T) {
	l, hostOut := newTestLobby(t, Config{TurnTimeout: 50 * time.Millisecond})
	_ = join(t, l, "B")
	recvUpdate(t, hostOut, 100*time.Millisecond)

	require.NoError(t, l.Do(context.Background(), engine.Command{Type: engine.CmdStartGame, PlayerID: "A"}))
	started := recvUpdate(t, hostOut, 100*time.Millisecond)
	require.Equal(t, "A", started.State.Current().ID)

	timedOut := recvUpdate(t, hostOut, 500*time.Millisecond)
	assert.True(t, engine.ContainsEvent(timedOut.Events, engine.EvtTurnEnded))
	assert.Equal(t, "B", timedOut.State.Current().ID)
}

func TestLobby_TimerGen_DropsStaleFires(t *testing.T) {
	l, hostOut := newTestLobby(t, Config{TurnTimeout: time.Hour})
	_ = join(t, l, "B")
	recvUpdate(t, hostOut, 100*time.Millisecond)
	require.NoError(t, l.Do(context.Background(), engine.Command{Type: engine.CmdStartGame, PlayerID: "A"}))
	recvUpdate(t, hostOut, 100*time.Millisecond)

	l.Inbox() <- TimerFired{Gen: -1}
	recvNoUpdate(t, hostOut, 50*time.Millisecond)
	v := recvView(t, l)
	assert.Equal(t, "A", v.State.Current().ID)
}

func TestLobby_LastLeaveClosesLobby(t *testing.T) {
	reg := newFakeRegistry()
	l, hostOut := newTestLobby(t, Config{ID: "L1", Registry: reg})

	l.Inbox() <- Leave{PlayerID: "A"}

	select {
	case id := <-reg.removed:
		assert.Equal(t, "L1", id)
	case <-time.After(time.Second):
		t.Fatal("lobby never unregistered")
	}
	<-l.Done()
	_, ok := <-hostOut
	assert.False(t, ok, "leaver's outbox is closed")
	assert.ErrorIs(t, l.Do(context.Background(), engine.Command{Type: engine.CmdRollDice, PlayerID: "A"}), engine.ErrNotFound)
}

func TestLobby_SummaryTracksRoster(t *testing.T) {
	reg := newFakeRegistry()
	l, _ := newTestLobby(t, Config{ID: "L1", Registry: reg, MaxPlayers: 2})
	assert.Equal(t, Summary{ID: "L1", HostName: "Alice", Theme: "usa", ThemeName: l.InitialSummary().ThemeName, Players: 1, MaxPlayers: 2}, l.InitialSummary())

	_ = join(t, l, "B")
	recvView(t, l)
	last := reg.last()
	assert.Equal(t, 2, last.Players)
	assert.False(t, last.Open(), "full lobbies are not listed")
}

func TestLobby_PasswordProtected(t *testing.T) {
	PasswordParams = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	l, _ := newTestLobby(t, Config{PasswordHash: hash})
	assert.True(t, l.Locked())

	err = l.JoinSeat(context.Background(), engine.Seat{ID: "B"}, "wrong", make(chan Update, 4))
	assert.ErrorIs(t, err, engine.ErrBadCredential)
	assert.NoError(t, l.JoinSeat(context.Background(), engine.Seat{ID: "B"}, "hunter2", make(chan Update, 4)))
}

func TestLobby_FinishedGameIsRecordedAndActionsPublished(t *testing.T) {
	rec := recorder{got: make(chan Result, 1)}
	pub := publisher{got: make(chan Action, 16)}
	l, _ := newTestLobby(t, Config{ID: "L1", Results: rec, Actions: pub})
	_ = join(t, l, "B")

	ctx := context.Background()
	require.NoError(t, l.Do(ctx, engine.Command{Type: engine.CmdStartGame, PlayerID: "A"}))
	require.NoError(t, l.Do(ctx, engine.Command{Type: engine.CmdDeclareBankruptcy, PlayerID: "B"}))

	select {
	case res := <-rec.got:
		assert.Equal(t, "L1", res.LobbyID)
		assert.Equal(t, "A", res.WinnerID)
		assert.Equal(t, "Alice", res.WinnerName)
		require.Len(t, res.Standings, 2)
		assert.False(t, res.StartedAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("result never recorded")
	}

	seen := map[string]bool{}
	for range 3 {
		select {
		case a := <-pub.got:
			seen[a.Command] = true
		case <-time.After(time.Second):
			t.Fatal("missing published action")
		}
	}
	assert.True(t, seen[string(engine.CmdDeclareBankruptcy)])
}

// slowPublisher takes longer on even versions so any concurrent delivery
// would reorder the log.
type slowPublisher struct{ got chan Action }

func (p slowPublisher) Publish(_ context.Context, a Action) error {
	if a.Version%2 == 0 {
		time.Sleep(20 * time.Millisecond)
	}
	p.got <- a
	return nil
}

func TestLobby_ActionsPublishInVersionOrder(t *testing.T) {
	pub := slowPublisher{got: make(chan Action, 32)}
	l, _ := newTestLobby(t, Config{Actions: pub})
	for _, id := range []string{"B", "C", "D"} {
		_ = join(t, l, id)
	}
	ctx := context.Background()
	for _, color := range []string{"#000001", "#000002", "#000003"} {
		require.NoError(t, l.Do(ctx, engine.Command{Type: engine.CmdUpdatePlayer, PlayerID: "B", Seat: engine.Seat{Color: color}}))
	}

	for want := 1; want <= 6; want++ {
		select {
		case a := <-pub.got:
			require.Equal(t, want, a.Version)
		case <-time.After(time.Second):
			t.Fatalf("action %d never published", want)
		}
	}
}

func TestLobby_PanicIsContained(t *testing.T) {
	l, _ := newTestLobby(t, Config{Rand: panicRand{}})
	_ = join(t, l, "B")
	ctx := context.Background()
	require.NoError(t, l.Do(ctx, engine.Command{Type: engine.CmdStartGame, PlayerID: "A"}))

	err := l.Do(ctx, engine.Command{Type: engine.CmdRollDice, PlayerID: "A"})
	require.ErrorIs(t, err, engine.ErrInternal)
	assert.Equal(t, "internal server error", engine.Message(err))

	view := recvView(t, l)
	assert.Equal(t, 0, view.State.Players[0].Position)
}

func TestLobby_TradeIdsAreAssigned(t *testing.T) {
	l, hostOut := newTestLobby(t, Config{Rand: fixedRand{0}})
	bobOut := join(t, l, "B")
	recvUpdate(t, hostOut, 100*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, l.Do(ctx, engine.Command{Type: engine.CmdStartGame, PlayerID: "A"}))
	recvUpdate(t, hostOut, 100*time.Millisecond)
	recvUpdate(t, bobOut, 100*time.Millisecond)

	require.NoError(t, l.Do(ctx, engine.Command{Type: engine.CmdProposeTrade, PlayerID: "A",
		Trade: engine.TradeRequest{To: "B", OfferCash: 10}}))
	u := recvUpdate(t, bobOut, 100*time.Millisecond)
	e, ok := engine.FindEvent(u.Events, engine.EvtTradeProposed)
	require.True(t, ok)
	assert.NotEmpty(t, e.Trade.ID)
}
