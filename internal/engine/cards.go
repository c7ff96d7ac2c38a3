package engine

import "github.com/DoyleJ11/monopoly-lobby/internal/board"

type CardAction string

const (
	CardCash        CardAction = "cash"
	CardMoveTo      CardAction = "moveTo"
	CardMoveBy      CardAction = "moveBy"
	CardNearest     CardAction = "nearest"
	CardJail        CardAction = "jail"
	CardJailRelease CardAction = "jailRelease"
	CardCollectEach CardAction = "collectEach"
	CardRepairs     CardAction = "repairs"
)

type Card struct {
	Deck   board.Kind `json:"deck"`
	Text   string     `json:"text"`
	Action CardAction `json:"action"`
	Amount int        `json:"amount,omitempty"`
	Target int        `json:"target,omitempty"`
	Steps  int        `json:"steps,omitempty"`
	Kind   board.Kind `json:"kind,omitempty"`
	// Repairs
	HouseFee int `json:"houseFee,omitempty"`
	HotelFee int `json:"hotelFee,omitempty"`
}

var ChanceDeck = []Card{
	{Deck: board.KindChance, Text: "Advance to GO. Collect 200.", Action: CardMoveTo, Target: 0, Amount: 200},
	{Deck: board.KindChance, Text: "Bank pays you a dividend of 200.", Action: CardCash, Amount: 200},
	{Deck: board.KindChance, Text: "Pay a speeding fine of 50.", Action: CardCash, Amount: -50},
	{Deck: board.KindChance, Text: "Pay school fees of 150.", Action: CardCash, Amount: -150},
	{Deck: board.KindChance, Text: "Go directly to jail.", Action: CardJail},
	{Deck: board.KindChance, Text: "You found 20 on the street.", Action: CardCash, Amount: 20},
	{Deck: board.KindChance, Text: "Pay a hospital bill of 100.", Action: CardCash, Amount: -100},
	{Deck: board.KindChance, Text: "It is your birthday. Collect 10 from every player.", Action: CardCollectEach, Amount: 10},
	{Deck: board.KindChance, Text: "Make general repairs: 25 per house, 100 per hotel.", Action: CardRepairs, HouseFee: 25, HotelFee: 100},
	{Deck: board.KindChance, Text: "Advance to the nearest railroad.", Action: CardNearest, Kind: board.KindRailroad},
	{Deck: board.KindChance, Text: "Advance to the nearest utility.", Action: CardNearest, Kind: board.KindUtility},
	{Deck: board.KindChance, Text: "Go back three spaces.", Action: CardMoveBy, Steps: -3},
	{Deck: board.KindChance, Text: "Get out of jail free.", Action: CardJailRelease},
}

var ChestDeck = []Card{
	{Deck: board.KindChest, Text: "Bank error in your favor. Collect 200.", Action: CardCash, Amount: 200},
	{Deck: board.KindChest, Text: "Doctor's fee. Pay 50.", Action: CardCash, Amount: -50},
	{Deck: board.KindChest, Text: "From sale of stock you get 50.", Action: CardCash, Amount: 50},
	{Deck: board.KindChest, Text: "Go directly to jail.", Action: CardJail},
	{Deck: board.KindChest, Text: "Holiday fund matures. Receive 50.", Action: CardCash, Amount: 50},
	{Deck: board.KindChest, Text: "Pay hospital fees of 100.", Action: CardCash, Amount: -100},
	{Deck: board.KindChest, Text: "Receive a consultancy fee of 25.", Action: CardCash, Amount: 25},
	{Deck: board.KindChest, Text: "You won second prize in a beauty contest. Collect 10.", Action: CardCash, Amount: 10},
	{Deck: board.KindChest, Text: "Get out of jail free.", Action: CardJailRelease},
}

// maxCardHops bounds how many card moves one roll may chain.
const maxCardHops = 3

func (s *State) drawCard(p *Player, deck []Card, out *RollOutcome, rng Rand, hop int) {
	c := deck[rng.IntN(len(deck))]
	out.Cards = append(out.Cards, c)
	out.Messages = append(out.Messages, c.Text)

	switch c.Action {
	case CardCash:
		p.Cash += c.Amount
	case CardMoveTo:
		p.Position = c.Target
		p.Cash += c.Amount
		s.resolveAfterCard(p, out, rng, hop)
	case CardMoveBy:
		p.Position = ((p.Position+c.Steps)%len(s.Board.Spaces) + len(s.Board.Spaces)) % len(s.Board.Spaces)
		s.resolveAfterCard(p, out, rng, hop)
	case CardNearest:
		if i, ok := s.Board.Nearest(p.Position, c.Kind); ok {
			p.Position = i
			s.resolveAfterCard(p, out, rng, hop)
		}
	case CardJail:
		s.sendToJail(p, out)
	case CardJailRelease:
		p.JailCards++
	case CardCollectEach:
		for i := range s.Players {
			o := &s.Players[i]
			if o.ID == p.ID || o.Bankrupt {
				continue
			}
			o.Cash -= c.Amount
			p.Cash += c.Amount
		}
	case CardRepairs:
		fee := 0
		for _, id := range p.Properties {
			switch lvl := s.Properties[id].Level; {
			case lvl == MaxLevel:
				fee += c.HotelFee
			case lvl > 0:
				fee += lvl * c.HouseFee
			}
		}
		p.Cash -= fee
	}
}

// Card moves never credit passing GO.
func (s *State) resolveAfterCard(p *Player, out *RollOutcome, rng Rand, hop int) {
	if hop+1 >= maxCardHops {
		out.Position = p.Position
		out.Landed = s.Board.Spaces[p.Position]
		return
	}
	s.resolveLanding(p, out, rng, hop+1)
}
