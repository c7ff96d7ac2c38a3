package engine

import "time"

func (s *State) startGame(cmd Command) ([]Event, error) {
	if s.Player(cmd.PlayerID) == nil {
		return nil, ErrUnknownPlayer
	}
	if cmd.PlayerID != s.HostID {
		return nil, ErrNotHost
	}
	if s.Started {
		return nil, ErrAlreadyStarted
	}
	if len(s.Players) < 2 {
		return nil, ErrNotEnoughSeats
	}

	rules := DefaultRules()
	if cmd.Rules != nil {
		rules = cmd.Rules.merged()
	}
	s.Rules = rules
	s.Board = s.Base.Scaled(float64(rules.StartingCash) / ReferenceCash)

	for i := range s.Players {
		p := &s.Players[i]
		p.Cash = rules.StartingCash
		p.Position = 0
		p.Properties = nil
		p.InJail, p.JailTurns, p.Doubles, p.JailCards = false, 0, 0, 0
		p.Bankrupt = false
	}
	s.Started = true
	s.CurrentTurn = 0
	s.Turn = Turn{}
	s.logf(cmd.At, "game started, %s goes first", s.Players[0].Name)
	return []Event{{Type: EvtGameStarted, PlayerID: s.Players[0].ID, Amount: rules.StartingCash}}, nil
}

func (s *State) advance(cmd Command) ([]Event, error) {
	p, err := s.requireTurn(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	// A jailed player may sit the turn out; endTurn counts it as served.
	if !s.Turn.Rolled && !p.InJail {
		return nil, ErrMustRoll
	}
	return s.endTurn(cmd.At), nil
}

// timeoutAdvance is issued by the turn timer on behalf of the current
// player. A timer that fired for an older turn is rejected as wrong turn.
func (s *State) timeoutAdvance(cmd Command) ([]Event, error) {
	if !s.Started {
		return nil, ErrNotStarted
	}
	if s.Over() {
		return nil, ErrGameOver
	}
	cur := s.Current()
	if cur == nil || cur.ID != cmd.PlayerID {
		return nil, ErrWrongTurn
	}
	s.logf(cmd.At, "%s ran out of time", cur.Name)
	return s.endTurn(cmd.At), nil
}

// endTurn hands the turn to the next solvent seat. A jailed player who
// never rolled still serves the turn.
func (s *State) endTurn(at time.Time) []Event {
	var events []Event
	if p := s.Current(); p != nil {
		if p.InJail && !s.Turn.Rolled {
			p.JailTurns++
			if p.JailTurns >= JailTurnsLimit {
				s.release(p)
				s.logf(at, "%s served their sentence", p.Name)
				events = append(events, Event{Type: EvtJailReleased, PlayerID: p.ID, Message: "served"})
			}
		}
		p.Doubles = 0
	}
	s.CurrentTurn = s.nextActive(s.CurrentTurn)
	s.Turn = Turn{}
	return append(events, s.turnEnded(at))
}

func (s *State) turnEnded(at time.Time) Event {
	cur := s.Current()
	s.logf(at, "%s's turn", cur.Name)
	return Event{Type: EvtTurnEnded, PlayerID: cur.ID, Amount: s.CurrentTurn}
}

// nextActive returns the first non-bankrupt seat after from, wrapping.
// If nobody else is solvent it returns from.
func (s *State) nextActive(from int) int {
	n := len(s.Players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !s.Players[i].Bankrupt {
			return i
		}
	}
	return from
}
