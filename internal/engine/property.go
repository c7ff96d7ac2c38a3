package engine

import (
	"math"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
)

// HouseCost is what one building level costs on space i.
func (s *State) HouseCost(i int) int {
	sp, ok := s.Board.Space(i)
	if !ok {
		return 0
	}
	return int(math.Round(float64(sp.Price) * s.Rules.HouseCostRatio))
}

func (s *State) buy(cmd Command) ([]Event, error) {
	p, err := s.requireTurn(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	sp, err := s.space(cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.Position != sp.Index {
		return nil, ErrNotOnSpace
	}
	if !sp.Kind.Purchasable() {
		return nil, ErrNotPurchasable
	}
	if s.Properties[sp.Index].Owner != "" {
		return nil, ErrAlreadyOwned
	}
	if p.Cash < sp.Price {
		return nil, ErrInsufficient
	}

	p.Cash -= sp.Price
	p.Properties = append(p.Properties, sp.Index)
	s.Properties[sp.Index] = PropertyState{ID: sp.Index, Owner: p.ID}
	s.logf(cmd.At, "%s bought %s for %d", p.Name, sp.Name, sp.Price)
	return []Event{{Type: EvtPropertyBought, PlayerID: p.ID, PropertyID: sp.Index, Amount: sp.Price}}, nil
}

func (s *State) build(cmd Command) ([]Event, error) {
	p, err := s.requireTurn(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	sp, err := s.space(cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	prop := &s.Properties[sp.Index]
	if prop.Owner != p.ID {
		return nil, ErrNotOwner
	}
	if sp.Kind != board.KindProperty {
		return nil, ErrNotBuildable
	}
	if !s.ownsGroup(p.ID, sp.Group) {
		return nil, ErrNoMonopoly
	}
	if prop.Level >= MaxLevel {
		return nil, ErrMaxBuildings
	}
	cost := s.HouseCost(sp.Index)
	if p.Cash < cost {
		return nil, ErrInsufficient
	}

	p.Cash -= cost
	prop.Level++
	s.logf(cmd.At, "%s built on %s (level %d)", p.Name, sp.Name, prop.Level)
	return []Event{{Type: EvtHouseBuilt, PlayerID: p.ID, PropertyID: sp.Index, Level: prop.Level, Amount: cost}}, nil
}

func (s *State) sell(cmd Command) ([]Event, error) {
	p, err := s.requireTurn(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	sp, err := s.space(cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	prop := &s.Properties[sp.Index]
	if prop.Owner != p.ID {
		return nil, ErrNotOwner
	}
	if prop.Level == 0 {
		return nil, ErrNoBuildings
	}

	refund := s.HouseCost(sp.Index) / 2
	p.Cash += refund
	prop.Level--
	s.logf(cmd.At, "%s sold a building on %s", p.Name, sp.Name)
	return []Event{{Type: EvtHouseSold, PlayerID: p.ID, PropertyID: sp.Index, Level: prop.Level, Amount: refund}}, nil
}
