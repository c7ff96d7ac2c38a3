package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
)

func newHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, Options{MaxPlayers: 2})
}

func hostConfig(id string) (lobby.Config, chan lobby.Update) {
	out := make(chan lobby.Update, 16)
	return lobby.Config{
		Board:      board.DefaultCatalog().Lookup("japan"),
		Host:       engine.Seat{ID: id, Name: id},
		HostOutbox: out,
	}, out
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	h := newHub(t)
	cfg, _ := hostConfig("c1")
	lb1 := h.Create(cfg)
	require.NotNil(t, lb1)

	lb2 := h.Get(lb1.ID())
	assert.Same(t, lb1, lb2)
	assert.Nil(t, h.Get("missing"))
}

func TestHub_OpenListingExcludesFullAndStarted(t *testing.T) {
	h := newHub(t)
	cfg, _ := hostConfig("c1")
	lb := h.Create(cfg)

	open := h.Open()
	require.Len(t, open, 1)
	assert.Equal(t, lobby.Summary{
		ID: lb.ID(), HostName: "c1", Theme: "japan", ThemeName: open[0].ThemeName, Players: 1, MaxPlayers: 2,
	}, open[0])

	require.NoError(t, lb.JoinSeat(context.Background(), engine.Seat{ID: "c2"}, "", make(chan lobby.Update, 8)))
	assert.Eventually(t, func() bool { return len(h.Open()) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_RemoveConnectionRepliesWithBoundLobby(t *testing.T) {
	h := newHub(t)
	cfg, _ := hostConfig("c1")
	lb := h.Create(cfg)

	assert.Same(t, lb, h.Unbind("c1"), "host is bound on create")
	assert.Nil(t, h.Unbind("c1"))

	h.Bind("c2", lb.ID())
	assert.Same(t, lb, h.Unbind("c2"))
	h.Bind("c3", "missing")
	assert.Nil(t, h.Unbind("c3"))
}

func TestHub_EmptyLobbyIsRemoved(t *testing.T) {
	h := newHub(t)
	cfg, _ := hostConfig("c1")
	lb := h.Create(cfg)

	lb.Inbox() <- lobby.Leave{PlayerID: "c1"}
	<-lb.Done()
	assert.Eventually(t, func() bool { return h.Get(lb.ID()) == nil }, time.Second, 10*time.Millisecond)
	assert.Empty(t, h.Open())
}

func TestHub_ShutdownClosesLobbies(t *testing.T) {
	h := newHub(t)
	cfg, out := hostConfig("c1")
	lb := h.Create(cfg)
	<-out

	h.Shutdown()
	select {
	case <-lb.Done():
	case <-time.After(time.Second):
		t.Fatal("lobby still running after hub shutdown")
	}
	assert.Eventually(t, func() bool {
		_, ok := <-out
		return !ok
	}, time.Second, 10*time.Millisecond)
	assert.Nil(t, h.Create(cfg))
}
