package engine

import (
	"fmt"
	"strings"
)

const maxNameLen = 24

func (s *State) seatPlayer(seat Seat) *Player {
	name := strings.TrimSpace(seat.Name)
	if name == "" {
		name = fmt.Sprintf("Player %d", len(s.Players)+1)
	}
	s.Players = append(s.Players, Player{
		ID:         seat.ID,
		Name:       clampName(name),
		Appearance: seat.Appearance,
		Color:      s.pickColor(seat.Color, seat.ID),
		Cash:       s.Rules.StartingCash,
	})
	return &s.Players[len(s.Players)-1]
}

// clampName cuts at maxNameLen characters, never inside one.
func clampName(name string) string {
	if r := []rune(name); len(r) > maxNameLen {
		return string(r[:maxNameLen])
	}
	return name
}

func (s *State) colorTaken(color, except string) bool {
	for _, p := range s.Players {
		if p.ID != except && strings.EqualFold(p.Color, color) {
			return true
		}
	}
	return false
}

// pickColor honors the requested color when free, otherwise hands out the
// first unused palette entry.
func (s *State) pickColor(requested, playerID string) string {
	if requested != "" && !s.colorTaken(requested, playerID) {
		return requested
	}
	for _, c := range Palette {
		if !s.colorTaken(c, playerID) {
			return c
		}
	}
	return "#FFFFFF"
}

func (s *State) join(cmd Command) ([]Event, error) {
	if s.Started {
		return nil, ErrAlreadyStarted
	}
	if s.Player(cmd.PlayerID) != nil {
		return nil, ruleErr(ErrInvalidState, "you are already in this lobby")
	}
	if len(s.Players) >= s.MaxPlayers {
		return nil, ErrLobbyFull
	}
	if s.Locked && !cmd.PasswordOK {
		return nil, ErrBadPassword
	}

	cmd.Seat.ID = cmd.PlayerID
	p := s.seatPlayer(cmd.Seat)
	s.logf(cmd.At, "%s joined", p.Name)
	return []Event{{Type: EvtPlayerJoined, PlayerID: p.ID, Message: p.Name}}, nil
}

func (s *State) updatePlayer(cmd Command) ([]Event, error) {
	p := s.Player(cmd.PlayerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if s.Started {
		return nil, ErrAlreadyStarted
	}
	if c := cmd.Seat.Color; c != "" {
		if s.colorTaken(c, p.ID) {
			return nil, ErrColorTaken
		}
		p.Color = c
	}
	if name := strings.TrimSpace(cmd.Seat.Name); name != "" {
		p.Name = clampName(name)
	}
	if cmd.Seat.Appearance != "" {
		p.Appearance = cmd.Seat.Appearance
	}
	return []Event{{Type: EvtPlayerUpdated, PlayerID: p.ID}}, nil
}

// leave removes the player entirely. An empty roster is a valid result;
// the owner of the state is expected to discard the lobby then.
func (s *State) leave(cmd Command) ([]Event, error) {
	idx := s.seatOf(cmd.PlayerID)
	if idx < 0 {
		return nil, ErrUnknownPlayer
	}
	gone := s.Players[idx]
	wasCurrent := idx == s.CurrentTurn
	wasActive := !gone.Bankrupt
	before := s.ActivePlayers()

	s.releaseHoldings(&s.Players[idx])
	s.dropTradesOf(gone.ID)
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	s.logf(cmd.At, "%s left", gone.Name)

	events := []Event{{Type: EvtPlayerLeft, PlayerID: gone.ID, Message: gone.Name}}
	if len(s.Players) == 0 {
		s.CurrentTurn = 0
		return events, nil
	}

	if s.HostID == gone.ID {
		s.HostID = s.Players[0].ID
		events = append(events, Event{Type: EvtHostChanged, PlayerID: s.HostID})
	}

	switch {
	case idx < s.CurrentTurn:
		s.CurrentTurn--
	case wasCurrent:
		// The seat after the leaver slid into idx.
		s.CurrentTurn = idx % len(s.Players)
		if s.Started && !s.Over() {
			if s.Players[s.CurrentTurn].Bankrupt {
				s.CurrentTurn = s.nextActive(s.CurrentTurn)
			}
			s.Turn = Turn{}
			events = append(events, s.turnEnded(cmd.At))
		}
	}

	// A player walking out of a running game forfeits.
	if s.Started && wasActive && before >= 2 {
		events = append(events, s.checkWinner(cmd.At, true)...)
	}
	return events, nil
}
