package engine

import (
	"time"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
)

// Rand is the randomness source for dice and card draws.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type CommandType string

const (
	CmdJoin              CommandType = "Join"
	CmdLeave             CommandType = "Leave"
	CmdUpdatePlayer      CommandType = "UpdatePlayer"
	CmdStartGame         CommandType = "StartGame"
	CmdRollDice          CommandType = "RollDice"
	CmdRollForJail       CommandType = "RollForJail"
	CmdPayJailFine       CommandType = "PayJailFine"
	CmdUseJailCard       CommandType = "UseJailCard"
	CmdBuyProperty       CommandType = "BuyProperty"
	CmdBuildHouse        CommandType = "BuildHouse"
	CmdSellHouse         CommandType = "SellHouse"
	CmdAdvanceTurn       CommandType = "AdvanceTurn"
	CmdTimeoutAdvance    CommandType = "TimeoutAdvance"
	CmdProposeTrade      CommandType = "ProposeTrade"
	CmdRespondTrade      CommandType = "RespondTrade"
	CmdDeclareBankruptcy CommandType = "DeclareBankruptcy"
)

type TradeRequest struct {
	ID                string
	To                string
	OfferProperties   []int
	RequestProperties []int
	OfferCash         int
	RequestCash       int
}

type Command struct {
	Type     CommandType
	PlayerID string
	At       time.Time

	Seat       Seat // join, update
	PasswordOK bool // join; set once the lobby verified the password
	Rules      *Rules
	PropertyID int
	Trade      TradeRequest
	TradeID    string
	Accept     bool
}

type EventType string

const (
	EvtPlayerJoined    EventType = "PlayerJoined"
	EvtPlayerLeft      EventType = "PlayerLeft"
	EvtPlayerUpdated   EventType = "PlayerUpdated"
	EvtHostChanged     EventType = "HostChanged"
	EvtGameStarted     EventType = "GameStarted"
	EvtDiceRolled      EventType = "DiceRolled"
	EvtJailReleased    EventType = "JailReleased"
	EvtJailRollFailed  EventType = "JailRollFailed"
	EvtPropertyBought  EventType = "PropertyBought"
	EvtHouseBuilt      EventType = "HouseBuilt"
	EvtHouseSold       EventType = "HouseSold"
	EvtTurnEnded       EventType = "TurnEnded"
	EvtTradeProposed   EventType = "TradeProposed"
	EvtTradeCompleted  EventType = "TradeCompleted"
	EvtTradeRejected   EventType = "TradeRejected"
	EvtTradeFailed     EventType = "TradeFailed"
	EvtPlayerBankrupt  EventType = "PlayerBankrupt"
	EvtGameWon         EventType = "GameWon"
)

// RentPaid records a rent transfer caused by a landing.
type RentPaid struct {
	From       string `json:"from"`
	To         string `json:"to"`
	PropertyID int    `json:"propertyId"`
	Amount     int    `json:"amount"`
}

// RollOutcome describes everything that happened after one roll.
type RollOutcome struct {
	Dice     [2]int      `json:"dice"`
	Total    int         `json:"total"`
	Doubles  bool        `json:"doubles"`
	From     int         `json:"from"`
	Position int         `json:"position"`
	PassedGo bool        `json:"passedGo"`
	Landed   board.Space `json:"space"`
	Cards    []Card      `json:"cards,omitempty"`
	Rent     *RentPaid   `json:"rent,omitempty"`
	Tax      int         `json:"tax,omitempty"`
	Jailed   bool        `json:"jailed"`
	Buyable  bool        `json:"isBuyableProperty"`
	Special  bool        `json:"isSpecialSpace"`
	// RollAgain is set after doubles.
	RollAgain bool     `json:"rollAgain"`
	Messages  []string `json:"messages,omitempty"`
}

type Standing struct {
	PlayerID   string `json:"playerId"`
	Name       string `json:"name"`
	Cash       int    `json:"money"`
	Properties int    `json:"properties"`
	Bankrupt   bool   `json:"bankrupt"`
	Winner     bool   `json:"winner"`
}

type Event struct {
	Type     EventType
	PlayerID string
	// To restricts delivery to the listed players. Empty means everyone.
	To         []string
	PropertyID int
	Amount     int
	Level      int
	Message    string
	Roll       *RollOutcome
	Trade      *TradeOffer
	Standings  []Standing
}

// Apply validates cmd against s and returns the resulting events and state.
// s is never mutated. On error the returned state is s.
func Apply(s State, cmd Command, rng Rand) ([]Event, State, error) {
	next := s.Clone()
	var (
		events []Event
		err    error
	)

	switch cmd.Type {
	case CmdJoin:
		events, err = next.join(cmd)
	case CmdLeave:
		events, err = next.leave(cmd)
	case CmdUpdatePlayer:
		events, err = next.updatePlayer(cmd)
	case CmdStartGame:
		events, err = next.startGame(cmd)
	case CmdRollDice, CmdRollForJail:
		events, err = next.roll(cmd, rng)
	case CmdPayJailFine:
		events, err = next.payJailFine(cmd)
	case CmdUseJailCard:
		events, err = next.useJailCard(cmd)
	case CmdBuyProperty:
		events, err = next.buy(cmd)
	case CmdBuildHouse:
		events, err = next.build(cmd)
	case CmdSellHouse:
		events, err = next.sell(cmd)
	case CmdAdvanceTurn:
		events, err = next.advance(cmd)
	case CmdTimeoutAdvance:
		events, err = next.timeoutAdvance(cmd)
	case CmdProposeTrade:
		events, err = next.proposeTrade(cmd)
	case CmdRespondTrade:
		events, err = next.respondTrade(cmd)
	case CmdDeclareBankruptcy:
		events, err = next.declareBankruptcy(cmd)
	default:
		err = ErrUnsupported
	}

	if err != nil {
		return nil, s, err
	}
	return events, next, nil
}
