package engine

import (
	"fmt"
	"time"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
)

const (
	MaxLevel       = 5 // hotel
	MaxLogEntries  = 50
	JailTurnsLimit = 3
	DoublesLimit   = 3
	// ReferenceCash is the starting cash the catalog prices are tuned for.
	ReferenceCash = 1500
)

// Palette is handed out in order when a requested color is taken.
var Palette = []string{"#FF0000", "#0000FF", "#00FF00", "#FFFF00", "#FF00FF", "#00FFFF", "#FF8800", "#8800FF"}

type Rules struct {
	StartingCash   int     `json:"startingCash"`
	PassGoBonus    int     `json:"passGoBonus"`
	TaxFree        bool    `json:"taxFree"`
	AutoBankruptcy bool    `json:"autoBankruptcy"`
	JailFine       int     `json:"jailFine"`
	ParkingBonus   int     `json:"parkingBonus"`
	HouseCostRatio float64 `json:"houseCostRatio"`
}

func DefaultRules() Rules {
	return Rules{
		StartingCash:   ReferenceCash,
		PassGoBonus:    200,
		JailFine:       50,
		ParkingBonus:   100,
		HouseCostRatio: 0.6,
	}
}

// merged fills unset or out of range fields from the defaults.
func (r Rules) merged() Rules {
	d := DefaultRules()
	if r.StartingCash <= 0 {
		r.StartingCash = d.StartingCash
	}
	if r.PassGoBonus < 0 {
		r.PassGoBonus = d.PassGoBonus
	}
	if r.JailFine <= 0 {
		r.JailFine = d.JailFine
	}
	if r.ParkingBonus < 0 {
		r.ParkingBonus = d.ParkingBonus
	}
	if r.HouseCostRatio <= 0 || r.HouseCostRatio > 2 {
		r.HouseCostRatio = d.HouseCostRatio
	}
	return r
}

type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Appearance string `json:"appearance"`
	Cash       int    `json:"money"`
	Position   int    `json:"position"`
	Properties []int  `json:"properties"`
	InJail     bool   `json:"inJail"`
	JailTurns  int    `json:"jailTurns"`
	Doubles    int    `json:"doubles"`
	Bankrupt   bool   `json:"bankrupt"`
	JailCards  int    `json:"jailCards"`
}

type PropertyState struct {
	ID        int    `json:"id"`
	Owner     string `json:"owner,omitempty"`
	Level     int    `json:"houses"`
	Mortgaged bool   `json:"mortgaged"`
}

type TradeOffer struct {
	ID                string    `json:"tradeId"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	OfferProperties   []int     `json:"myPropIds"`
	RequestProperties []int     `json:"theirPropIds"`
	OfferCash         int       `json:"offerCash"`
	RequestCash       int       `json:"requestCash"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Turn tracks progress of the current player's turn.
type Turn struct {
	Rolled    bool `json:"rolled"`
	RollAgain bool `json:"rollAgain"`
	LastTotal int  `json:"lastTotal"`
}

type LogEntry struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Seat describes a player joining or updating their appearance.
type Seat struct {
	ID         string
	Name       string
	Appearance string
	Color      string
}

type State struct {
	ID          string                `json:"id"`
	HostID      string                `json:"hostId"`
	Theme       string                `json:"country"`
	Players     []Player              `json:"players"`
	CurrentTurn int                   `json:"currentTurn"`
	Started     bool                  `json:"started"`
	Rules       Rules                 `json:"rules"`
	Properties  []PropertyState       `json:"properties"`
	Trades      map[string]TradeOffer `json:"-"`
	Turn        Turn                  `json:"turn"`
	Winner      string                `json:"winner,omitempty"`
	Log         []LogEntry            `json:"log"`
	MaxPlayers  int                   `json:"maxPlayers"`
	Locked      bool                  `json:"locked"`
	TradeTTL    time.Duration         `json:"-"`

	// Board is the board in play: the base board until the game starts,
	// then the copy scaled to the starting cash.
	Board *board.Board `json:"-"`
	Base  *board.Board `json:"-"`
}

type Options struct {
	ID         string
	Board      *board.Board
	Host       Seat
	MaxPlayers int
	Locked     bool
	TradeTTL   time.Duration
	At         time.Time
}

// NewState seats the host and prepares an unowned board.
func NewState(o Options) State {
	if o.MaxPlayers < 2 {
		o.MaxPlayers = 6
	}
	s := State{
		ID:         o.ID,
		HostID:     o.Host.ID,
		Theme:      o.Board.Key,
		Rules:      DefaultRules(),
		Trades:     map[string]TradeOffer{},
		MaxPlayers: o.MaxPlayers,
		Locked:     o.Locked,
		TradeTTL:   o.TradeTTL,
		Board:      o.Board,
		Base:       o.Board,
		Properties: make([]PropertyState, len(o.Board.Spaces)),
	}
	for i := range s.Properties {
		s.Properties[i] = PropertyState{ID: i}
	}
	s.seatPlayer(o.Host)
	s.logf(o.At, "%s created the lobby", s.Players[0].Name)
	return s
}

// Clone returns a deep copy. Apply works on a clone so a rejected command
// never leaks a partial mutation.
func (s State) Clone() State {
	c := s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Properties = append([]int(nil), p.Properties...)
		c.Players[i] = p
	}
	c.Properties = append([]PropertyState(nil), s.Properties...)
	c.Trades = make(map[string]TradeOffer, len(s.Trades))
	for id, t := range s.Trades {
		c.Trades[id] = t
	}
	c.Log = append([]LogEntry(nil), s.Log...)
	return c
}

func (s *State) seatOf(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) Player(id string) *Player {
	if i := s.seatOf(id); i >= 0 {
		return &s.Players[i]
	}
	return nil
}

// Current returns the player whose turn it is, or nil for an empty roster.
func (s *State) Current() *Player {
	if s.CurrentTurn < 0 || s.CurrentTurn >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentTurn]
}

// ActivePlayers counts seated players that are not bankrupt.
func (s *State) ActivePlayers() int {
	n := 0
	for _, p := range s.Players {
		if !p.Bankrupt {
			n++
		}
	}
	return n
}

func (s *State) Host() *Player { return s.Player(s.HostID) }

func (s *State) Over() bool { return s.Winner != "" }

func (s *State) logf(at time.Time, format string, args ...any) {
	s.Log = append(s.Log, LogEntry{At: at, Text: fmt.Sprintf(format, args...)})
	if n := len(s.Log); n > MaxLogEntries {
		s.Log = append([]LogEntry(nil), s.Log[n-MaxLogEntries:]...)
	}
}

// requireActive admits any seated, solvent player of a running game.
func (s *State) requireActive(id string) (*Player, error) {
	if !s.Started {
		return nil, ErrNotStarted
	}
	if s.Over() {
		return nil, ErrGameOver
	}
	p := s.Player(id)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Bankrupt {
		return nil, ErrBankrupt
	}
	return p, nil
}

// requireTurn additionally demands that id holds the current turn.
func (s *State) requireTurn(id string) (*Player, error) {
	p, err := s.requireActive(id)
	if err != nil {
		return nil, err
	}
	if cur := s.Current(); cur == nil || cur.ID != id {
		return nil, ErrWrongTurn
	}
	return p, nil
}

func (s *State) space(i int) (board.Space, error) {
	sp, ok := s.Board.Space(i)
	if !ok || i >= len(s.Properties) {
		return board.Space{}, ErrUnknownSpace
	}
	return sp, nil
}

func removeInt(xs []int, v int) []int {
	out := xs[:0]
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
