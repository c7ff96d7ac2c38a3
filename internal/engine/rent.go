package engine

import "github.com/DoyleJ11/monopoly-lobby/internal/board"

// rent owed for landing on space i. diceTotal is the roll that moved the
// visitor; only utilities use it.
func (s *State) rent(i int, diceTotal int) int {
	sp := s.Board.Spaces[i]
	prop := s.Properties[i]
	switch sp.Kind {
	case board.KindProperty:
		if len(sp.Rent) == 0 {
			return 0
		}
		lvl := min(prop.Level, len(sp.Rent)-1)
		return sp.Rent[lvl]
	case board.KindRailroad:
		n := s.ownedOfKind(prop.Owner, board.KindRailroad)
		if n == 0 || len(sp.Rent) == 0 {
			return 0
		}
		return sp.Rent[min(n, len(sp.Rent))-1]
	case board.KindUtility:
		if s.ownedOfKind(prop.Owner, board.KindUtility) >= 2 {
			return diceTotal * 10
		}
		return diceTotal * 4
	}
	return 0
}

func (s *State) ownedOfKind(owner string, k board.Kind) int {
	if owner == "" {
		return 0
	}
	n := 0
	for _, sp := range s.Board.Spaces {
		if sp.Kind == k && s.Properties[sp.Index].Owner == owner {
			n++
		}
	}
	return n
}

// ownsGroup reports whether owner holds every space of the group.
func (s *State) ownsGroup(owner, group string) bool {
	ids := s.Board.Group(group)
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if s.Properties[id].Owner != owner {
			return false
		}
	}
	return true
}
