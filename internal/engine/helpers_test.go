package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// script replays fixed values; dice faces are stored as face-1.
type script struct {
	vals []int
	i    int
}

func (r *script) IntN(n int) int {
	if r.i >= len(r.vals) {
		panic("script exhausted")
	}
	v := r.vals[r.i]
	r.i++
	return v % n
}

// faces scripts dice rolls given as pairs of die faces.
func faces(pairs ...int) *script {
	r := &script{}
	for _, f := range pairs {
		r.vals = append(r.vals, f-1)
	}
	return r
}

// then appends raw values, used for card draws.
func (r *script) then(vals ...int) *script {
	r.vals = append(r.vals, vals...)
	return r
}

func lobbyWith(t *testing.T, names ...string) State {
	t.Helper()
	s := NewState(Options{
		ID:         "L1",
		Board:      board.DefaultCatalog().Lookup("usa"),
		Host:       Seat{ID: names[0], Name: names[0]},
		MaxPlayers: 6,
		At:         t0,
	})
	for _, n := range names[1:] {
		var err error
		_, s, err = Apply(s, Command{Type: CmdJoin, PlayerID: n, Seat: Seat{Name: n}, At: t0}, nil)
		require.NoError(t, err)
	}
	return s
}

func startedGame(t *testing.T, names ...string) State {
	t.Helper()
	s := lobbyWith(t, names...)
	_, s, err := Apply(s, Command{Type: CmdStartGame, PlayerID: names[0], At: t0}, nil)
	require.NoError(t, err)
	return s
}

func mustApply(t *testing.T, s State, cmd Command, rng Rand) ([]Event, State) {
	t.Helper()
	if cmd.At.IsZero() {
		cmd.At = t0
	}
	events, next, err := Apply(s, cmd, rng)
	require.NoError(t, err, "%s by %s", cmd.Type, cmd.PlayerID)
	return events, next
}

// give assigns properties directly, bypassing purchase.
func give(s *State, owner string, ids ...int) {
	p := s.Player(owner)
	for _, id := range ids {
		s.Properties[id].Owner = owner
		p.Properties = append(p.Properties, id)
	}
}

func rollOf(t *testing.T, events []Event) *RollOutcome {
	t.Helper()
	e, ok := FindEvent(events, EvtDiceRolled)
	require.True(t, ok, "no dice event in %v", events)
	return e.Roll
}
