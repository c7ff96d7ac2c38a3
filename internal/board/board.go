package board

import "math"

// Size is the number of spaces on every board.
const Size = 40

// JailIndex is where jailed players sit.
const JailIndex = 10

type Kind string

const (
	KindGo       Kind = "go"
	KindProperty Kind = "property"
	KindRailroad Kind = "railroad"
	KindUtility  Kind = "utility"
	KindChance   Kind = "chance"
	KindChest    Kind = "chest"
	KindTax      Kind = "tax"
	KindJail     Kind = "jail"
	KindParking  Kind = "parking"
	KindGoToJail Kind = "gotojail"
)

// Purchasable reports whether spaces of this kind can be bought.
func (k Kind) Purchasable() bool {
	return k == KindProperty || k == KindRailroad || k == KindUtility
}

type Space struct {
	Index int    `json:"id"`
	Name  string `json:"name"`
	Kind  Kind   `json:"type"`
	Price int    `json:"price"`
	Rent  []int  `json:"rent,omitempty"`
	Group string `json:"color,omitempty"`
	Tax   int    `json:"amount,omitempty"`
}

// Board is immutable once built. Lobbies share it by pointer.
type Board struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Currency string  `json:"currency"`
	Spaces   []Space `json:"spaces"`
}

func (b *Board) Space(i int) (Space, bool) {
	if i < 0 || i >= len(b.Spaces) {
		return Space{}, false
	}
	return b.Spaces[i], true
}

// Group returns the indexes of every space sharing the group key.
func (b *Board) Group(key string) []int {
	if key == "" {
		return nil
	}
	var out []int
	for _, s := range b.Spaces {
		if s.Group == key {
			out = append(out, s.Index)
		}
	}
	return out
}

// Nearest returns the first space of kind k strictly after from, wrapping.
func (b *Board) Nearest(from int, k Kind) (int, bool) {
	n := len(b.Spaces)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if b.Spaces[i].Kind == k {
			return i, true
		}
	}
	return 0, false
}

// Scaled returns a copy with prices and rents multiplied by factor and
// rounded to the nearest multiple of 10. Taxes are left as they are.
// A factor of 1 (or less than or equal to 0) returns the receiver.
func (b *Board) Scaled(factor float64) *Board {
	if factor <= 0 || factor == 1 {
		return b
	}
	out := &Board{Key: b.Key, Name: b.Name, Currency: b.Currency, Spaces: make([]Space, len(b.Spaces))}
	for i, s := range b.Spaces {
		s.Price = scale(s.Price, factor)
		if len(s.Rent) > 0 {
			rent := make([]int, len(s.Rent))
			for j, r := range s.Rent {
				rent[j] = scale(r, factor)
			}
			s.Rent = rent
		}
		out.Spaces[i] = s
	}
	return out
}

func scale(v int, factor float64) int {
	if v == 0 {
		return 0
	}
	r := int(math.Round(float64(v)*factor/10)) * 10
	if r < 10 {
		return 10
	}
	return r
}
