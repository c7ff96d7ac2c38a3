package engine

import (
	"fmt"
	"time"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
)

func rollDice(rng Rand) (int, int) {
	return rng.IntN(6) + 1, rng.IntN(6) + 1
}

func (s *State) roll(cmd Command, rng Rand) ([]Event, error) {
	p, err := s.requireTurn(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	if s.Turn.Rolled && !s.Turn.RollAgain {
		return nil, ErrAlreadyRolled
	}
	if p.InJail {
		return s.rollInJail(p, cmd.At, rng), nil
	}
	if cmd.Type == CmdRollForJail {
		return nil, ErrNotInJail
	}

	d1, d2 := rollDice(rng)
	out := &RollOutcome{Dice: [2]int{d1, d2}, Total: d1 + d2, Doubles: d1 == d2, From: p.Position}
	s.Turn = Turn{Rolled: true, LastTotal: out.Total}

	if out.Doubles {
		p.Doubles++
	} else {
		p.Doubles = 0
	}

	if p.Doubles >= DoublesLimit {
		out.Messages = append(out.Messages, "Three doubles in a row. Go to jail.")
		s.sendToJail(p, out)
		out.Landed = s.Board.Spaces[p.Position]
		out.Special = true
		s.logf(cmd.At, "%s rolled doubles three times and went to jail", p.Name)
		return s.settle(cmd.At, []Event{{Type: EvtDiceRolled, PlayerID: p.ID, Roll: out}}), nil
	}

	s.move(p, out.Total, out)
	s.resolveLanding(p, out, rng, 0)
	if out.Doubles && !p.InJail {
		s.Turn.RollAgain = true
		out.RollAgain = true
	}
	s.logf(cmd.At, "%s rolled %d and landed on %s", p.Name, out.Total, out.Landed.Name)
	return s.settle(cmd.At, []Event{{Type: EvtDiceRolled, PlayerID: p.ID, Roll: out}}), nil
}

// rollInJail frees the player on doubles and moves them by the roll.
// Otherwise the attempt is counted and the turn ends.
func (s *State) rollInJail(p *Player, at time.Time, rng Rand) []Event {
	d1, d2 := rollDice(rng)
	out := &RollOutcome{Dice: [2]int{d1, d2}, Total: d1 + d2, Doubles: d1 == d2, From: p.Position}
	s.Turn = Turn{Rolled: true, LastTotal: out.Total}
	p.Doubles = 0

	if out.Doubles {
		s.release(p)
		s.move(p, out.Total, out)
		s.resolveLanding(p, out, rng, 0)
		s.logf(at, "%s rolled doubles and left jail", p.Name)
		events := []Event{
			{Type: EvtJailReleased, PlayerID: p.ID, Message: "doubles"},
			{Type: EvtDiceRolled, PlayerID: p.ID, Roll: out},
		}
		return s.settle(at, events)
	}

	p.JailTurns++
	out.Position = p.Position
	out.Landed = s.Board.Spaces[p.Position]
	out.Special = true
	if p.JailTurns >= JailTurnsLimit {
		s.release(p)
		s.logf(at, "%s served their sentence", p.Name)
		return []Event{
			{Type: EvtDiceRolled, PlayerID: p.ID, Roll: out},
			{Type: EvtJailReleased, PlayerID: p.ID, Message: "served"},
		}
	}

	msg := fmt.Sprintf("No doubles. Still in jail (%d/%d).", p.JailTurns, JailTurnsLimit)
	out.Messages = append(out.Messages, msg)
	s.logf(at, "%s failed to roll out of jail", p.Name)
	events := []Event{
		{Type: EvtDiceRolled, PlayerID: p.ID, Roll: out},
		{Type: EvtJailRollFailed, PlayerID: p.ID, Amount: p.JailTurns, Message: msg},
	}
	return append(events, s.endTurn(at)...)
}

// move advances p by steps, paying the GO bonus when the walk crosses or
// lands on GO.
func (s *State) move(p *Player, steps int, out *RollOutcome) {
	n := len(s.Board.Spaces)
	if p.Position+steps >= n {
		p.Cash += s.Rules.PassGoBonus
		out.PassedGo = true
		out.Messages = append(out.Messages, fmt.Sprintf("Passed GO. Collect %d.", s.Rules.PassGoBonus))
	}
	p.Position = (p.Position + steps) % n
}

func (s *State) resolveLanding(p *Player, out *RollOutcome, rng Rand, hop int) {
	sp := s.Board.Spaces[p.Position]
	out.Position = p.Position
	out.Landed = sp

	switch sp.Kind {
	case board.KindTax:
		if s.Rules.TaxFree {
			out.Messages = append(out.Messages, "Tax free game. Nothing to pay.")
			break
		}
		p.Cash -= sp.Tax
		out.Tax += sp.Tax
		out.Messages = append(out.Messages, fmt.Sprintf("Paid %d in %s.", sp.Tax, sp.Name))
	case board.KindGoToJail:
		out.Messages = append(out.Messages, "Go to jail.")
		s.sendToJail(p, out)
	case board.KindParking:
		if s.Rules.ParkingBonus > 0 {
			p.Cash += s.Rules.ParkingBonus
			out.Messages = append(out.Messages, fmt.Sprintf("Free parking. Collect %d.", s.Rules.ParkingBonus))
		}
	case board.KindChance:
		s.drawCard(p, ChanceDeck, out, rng, hop)
	case board.KindChest:
		s.drawCard(p, ChestDeck, out, rng, hop)
	case board.KindProperty, board.KindRailroad, board.KindUtility:
		s.chargeRent(p, sp, out)
	}

	// A card may have moved the player on.
	final := s.Board.Spaces[p.Position]
	out.Position = p.Position
	out.Landed = final
	out.Buyable = !p.InJail && final.Kind.Purchasable() && s.Properties[final.Index].Owner == ""
	out.Special = !out.Buyable
}

func (s *State) chargeRent(p *Player, sp board.Space, out *RollOutcome) {
	prop := s.Properties[sp.Index]
	if prop.Owner == "" || prop.Owner == p.ID || prop.Mortgaged {
		return
	}
	owner := s.Player(prop.Owner)
	if owner == nil || owner.Bankrupt {
		return
	}
	rent := s.rent(sp.Index, s.Turn.LastTotal)
	p.Cash -= rent
	owner.Cash += rent
	out.Rent = &RentPaid{From: p.ID, To: owner.ID, PropertyID: sp.Index, Amount: rent}
	out.Messages = append(out.Messages, fmt.Sprintf("Paid %d rent to %s.", rent, owner.Name))
}

func (s *State) sendToJail(p *Player, out *RollOutcome) {
	p.Position = board.JailIndex
	p.InJail = true
	p.JailTurns = 0
	p.Doubles = 0
	s.Turn.RollAgain = false
	if out != nil {
		out.Jailed = true
		out.Position = p.Position
	}
}

func (s *State) release(p *Player) {
	p.InJail = false
	p.JailTurns = 0
}

func (s *State) payJailFine(cmd Command) ([]Event, error) {
	p, err := s.requireTurn(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	if !p.InJail {
		return nil, ErrNotInJail
	}
	if s.Turn.Rolled {
		return nil, ErrAlreadyRolled
	}
	fine := s.Rules.JailFine
	if p.Cash < fine {
		return nil, ErrInsufficient
	}
	p.Cash -= fine
	s.release(p)
	s.logf(cmd.At, "%s paid %d to leave jail", p.Name, fine)
	return []Event{{Type: EvtJailReleased, PlayerID: p.ID, Amount: fine, Message: "fine"}}, nil
}

func (s *State) useJailCard(cmd Command) ([]Event, error) {
	p, err := s.requireTurn(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	if !p.InJail {
		return nil, ErrNotInJail
	}
	if s.Turn.Rolled {
		return nil, ErrAlreadyRolled
	}
	if p.JailCards == 0 {
		return nil, ErrNoJailCard
	}
	p.JailCards--
	s.release(p)
	s.logf(cmd.At, "%s used a get out of jail card", p.Name)
	return []Event{{Type: EvtJailReleased, PlayerID: p.ID, Message: "card"}}, nil
}
