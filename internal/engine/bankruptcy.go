package engine

import (
	"sort"
	"time"
)

func (s *State) declareBankruptcy(cmd Command) ([]Event, error) {
	p, err := s.requireActive(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	events := s.bankrupt(p, cmd.At)
	return append(events, s.afterBankruptcy(cmd.At)...), nil
}

// bankrupt zeroes p and hands every holding back to the bank.
func (s *State) bankrupt(p *Player, at time.Time) []Event {
	debt := p.Cash
	s.releaseHoldings(p)
	p.Bankrupt = true
	p.Cash = 0
	p.InJail, p.JailTurns, p.Doubles = false, 0, 0
	s.dropTradesOf(p.ID)
	s.logf(at, "%s went bankrupt", p.Name)
	return []Event{{Type: EvtPlayerBankrupt, PlayerID: p.ID, Amount: debt}}
}

func (s *State) releaseHoldings(p *Player) {
	for _, id := range p.Properties {
		s.Properties[id] = PropertyState{ID: id}
	}
	p.Properties = nil
}

// afterBankruptcy moves the turn off a bankrupt seat and checks for a winner.
func (s *State) afterBankruptcy(at time.Time) []Event {
	var events []Event
	if cur := s.Current(); cur != nil && cur.Bankrupt && s.ActivePlayers() > 0 {
		s.CurrentTurn = s.nextActive(s.CurrentTurn)
		s.Turn = Turn{}
		events = append(events, s.turnEnded(at))
	}
	return append(events, s.checkWinner(at, false)...)
}

// settle runs after every roll. With AutoBankruptcy set, anyone left with
// negative cash is declared bankrupt.
func (s *State) settle(at time.Time, events []Event) []Event {
	if !s.Rules.AutoBankruptcy {
		return events
	}
	hit := false
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Bankrupt && p.Cash < 0 {
			events = append(events, s.bankrupt(p, at)...)
			hit = true
		}
	}
	if hit {
		events = append(events, s.afterBankruptcy(at)...)
	}
	return events
}

// checkWinner ends the game once one solvent player is left. forfeit
// allows a lone remaining seat to win after the others walked out.
func (s *State) checkWinner(at time.Time, forfeit bool) []Event {
	if !s.Started || s.Over() {
		return nil
	}
	if len(s.Players) < 2 && !(forfeit && len(s.Players) == 1) {
		return nil
	}
	if s.ActivePlayers() != 1 {
		return nil
	}
	for _, p := range s.Players {
		if !p.Bankrupt {
			s.Winner = p.ID
			s.logf(at, "%s wins", p.Name)
			return []Event{{Type: EvtGameWon, PlayerID: p.ID, Standings: s.Standings()}}
		}
	}
	return nil
}

// Standings lists the winner first, then everyone else by cash.
func (s *State) Standings() []Standing {
	out := make([]Standing, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, Standing{
			PlayerID:   p.ID,
			Name:       p.Name,
			Cash:       p.Cash,
			Properties: len(p.Properties),
			Bankrupt:   p.Bankrupt,
			Winner:     p.ID == s.Winner,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Winner != out[j].Winner {
			return out[i].Winner
		}
		return out[i].Cash > out[j].Cash
	})
	return out
}
