package types

import (
	"github.com/DoyleJ11/monopoly-lobby/internal/engine"
	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
)

// Client -> server message types.
const (
	MsgCreateLobby       = "createLobby"
	MsgJoinLobby         = "joinLobby"
	MsgGetLobbies        = "getLobbies"
	MsgLeaveLobby        = "leaveLobby"
	MsgUpdatePlayer      = "updatePlayer"
	MsgStartGame         = "startGame"
	MsgRollDice          = "rollDice"
	MsgRollForJail       = "rollForJail"
	MsgPayJailFine       = "payJailFine"
	MsgUseJailCard       = "useJailCard"
	MsgBuyProperty       = "buyProperty"
	MsgBuildHouse        = "buildHouse"
	MsgSellHouse         = "sellHouse"
	MsgAdvanceTurn       = "advanceTurn"
	MsgProposeTrade      = "proposeTrade"
	MsgRespondTrade      = "respondTrade"
	MsgDeclareBankruptcy = "declareBankruptcy"
)

// Server -> client message types.
const (
	MsgLobbyCreated   = "lobbyCreated"
	MsgLobbyUpdated   = "lobbyUpdated"
	MsgLobbiesList    = "lobbiesList"
	MsgLobbyClosed    = "lobbyClosed"
	MsgGameState      = "gameState"
	MsgGameStarted    = "gameStarted"
	MsgDiceRolled     = "diceRolled"
	MsgJailReleased   = "jailReleased"
	MsgJailRollFailed = "jailRollFailed"
	MsgPropertyBought = "propertyBought"
	MsgHouseBuilt     = "houseBuilt"
	MsgHouseSold      = "houseSold"
	MsgTurnEnded      = "turnEnded"
	MsgTradeOffer     = "tradeOffer"
	MsgTradeCompleted = "tradeCompleted"
	MsgTradeRejected  = "tradeRejected"
	MsgTradeFailed    = "tradeFailed"
	MsgPlayerBankrupt = "playerBankrupt"
	MsgGameWon        = "gameWon"
	MsgError          = "errorMessage"
)

type ClientMessage struct {
	Type       string        `json:"type"`
	LobbyID    string        `json:"lobbyId,omitempty"`
	Name       string        `json:"name,omitempty"`
	Country    string        `json:"country,omitempty"`
	Appearance string        `json:"appearance,omitempty"`
	Color      string        `json:"color,omitempty"`
	Password   string        `json:"password,omitempty"`
	Rules      *RulesPayload `json:"rules,omitempty"`

	PropertyID   int    `json:"propertyId,omitempty"`
	To           string `json:"to,omitempty"`
	MyPropIDs    []int  `json:"myPropIds,omitempty"`
	TheirPropIDs []int  `json:"theirPropIds,omitempty"`
	OfferCash    int    `json:"offerCash,omitempty"`
	RequestCash  int    `json:"requestCash,omitempty"`
	TradeID      string `json:"tradeId,omitempty"`
	Accept       bool   `json:"accept,omitempty"`
}

// RulesPayload carries the host's startGame options. Absent fields keep
// the engine defaults.
type RulesPayload struct {
	InitialMoney   *int  `json:"initialMoney,omitempty"`
	GoMoney        *int  `json:"goMoney,omitempty"`
	TaxFree        *bool `json:"taxFree,omitempty"`
	AutoBankruptcy *bool `json:"autoBankruptcy,omitempty"`
	JailFine       *int  `json:"jailFine,omitempty"`
	ParkingBonus   *int  `json:"parkingBonus,omitempty"`
}

func (p *RulesPayload) Rules() engine.Rules {
	r := engine.DefaultRules()
	if p == nil {
		return r
	}
	if p.InitialMoney != nil {
		r.StartingCash = *p.InitialMoney
	}
	if p.GoMoney != nil {
		r.PassGoBonus = *p.GoMoney
	}
	if p.TaxFree != nil {
		r.TaxFree = *p.TaxFree
	}
	if p.AutoBankruptcy != nil {
		r.AutoBankruptcy = *p.AutoBankruptcy
	}
	if p.JailFine != nil {
		r.JailFine = *p.JailFine
	}
	if p.ParkingBonus != nil {
		r.ParkingBonus = *p.ParkingBonus
	}
	return r
}

type ServerMessage struct {
	Type    string          `json:"type"`
	LobbyID string          `json:"lobbyId,omitempty"`
	Version int             `json:"version,omitempty"`
	Lobby   *LobbyView      `json:"lobby,omitempty"`
	Lobbies []lobby.Summary `json:"lobbies,omitempty"`

	PlayerID    string              `json:"playerId,omitempty"`
	PropertyID  *int                `json:"propertyId,omitempty"`
	Amount      int                 `json:"amount,omitempty"`
	Level       *int                `json:"houses,omitempty"`
	Message     string              `json:"message,omitempty"`
	Roll        *engine.RollOutcome `json:"roll,omitempty"`
	Trade       *engine.TradeOffer  `json:"trade,omitempty"`
	Standings   []engine.Standing   `json:"standings,omitempty"`
	CurrentTurn *int                `json:"currentTurn,omitempty"`

	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Code: engine.Code(err), Error: engine.Message(err)}
}

var eventNames = map[engine.EventType]string{
	engine.EvtPlayerJoined:   MsgLobbyUpdated,
	engine.EvtPlayerLeft:     MsgLobbyUpdated,
	engine.EvtPlayerUpdated:  MsgLobbyUpdated,
	engine.EvtHostChanged:    MsgLobbyUpdated,
	engine.EvtGameStarted:    MsgGameStarted,
	engine.EvtDiceRolled:     MsgDiceRolled,
	engine.EvtJailReleased:   MsgJailReleased,
	engine.EvtJailRollFailed: MsgJailRollFailed,
	engine.EvtPropertyBought: MsgPropertyBought,
	engine.EvtHouseBuilt:     MsgHouseBuilt,
	engine.EvtHouseSold:      MsgHouseSold,
	engine.EvtTurnEnded:      MsgTurnEnded,
	engine.EvtTradeProposed:  MsgTradeOffer,
	engine.EvtTradeCompleted: MsgTradeCompleted,
	engine.EvtTradeRejected:  MsgTradeRejected,
	engine.EvtTradeFailed:    MsgTradeFailed,
	engine.EvtPlayerBankrupt: MsgPlayerBankrupt,
	engine.EvtGameWon:        MsgGameWon,
}

// FromEvent names an engine event for the wire. Roster changes carry the
// lobby view so clients can re-render the waiting room.
func FromEvent(e engine.Event, version int, view *LobbyView) (ServerMessage, bool) {
	name, ok := eventNames[e.Type]
	if !ok {
		return ServerMessage{}, false
	}
	m := ServerMessage{
		Type:      name,
		Version:   version,
		PlayerID:  e.PlayerID,
		Amount:    e.Amount,
		Message:   e.Message,
		Roll:      e.Roll,
		Trade:     e.Trade,
		Standings: e.Standings,
	}
	switch e.Type {
	case engine.EvtPropertyBought, engine.EvtHouseBuilt, engine.EvtHouseSold:
		id, lvl := e.PropertyID, e.Level
		m.PropertyID, m.Level = &id, &lvl
	case engine.EvtTurnEnded:
		turn := e.Amount
		m.CurrentTurn = &turn
		m.Amount = 0
	}
	if name == MsgLobbyUpdated || name == MsgGameStarted {
		m.Lobby = view
	}
	return m, true
}
