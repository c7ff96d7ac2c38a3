package engine

import "errors"

// Error classes. Every rejection wraps exactly one of these.
var (
	ErrNotFound      = errors.New("not_found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidState  = errors.New("invalid_state")
	ErrFull          = errors.New("full")
	ErrBadCredential = errors.New("bad_credential")
	ErrInternal      = errors.New("internal")
)

// RuleError carries a human readable message for the requester.
type RuleError struct {
	Kind error
	Msg  string
}

func (e *RuleError) Error() string { return e.Msg }
func (e *RuleError) Unwrap() error { return e.Kind }

func ruleErr(kind error, msg string) *RuleError { return &RuleError{Kind: kind, Msg: msg} }

var (
	ErrUnknownPlayer   = ruleErr(ErrNotFound, "player is not seated in this lobby")
	ErrUnknownSpace    = ruleErr(ErrNotFound, "no such board space")
	ErrUnknownTrade    = ruleErr(ErrNotFound, "trade offer not found")
	ErrTradeExpired    = ruleErr(ErrNotFound, "trade offer expired")
	ErrWrongTurn       = ruleErr(ErrForbidden, "it is not your turn")
	ErrNotHost         = ruleErr(ErrForbidden, "only the host can do that")
	ErrNotCounterparty = ruleErr(ErrForbidden, "only the receiving player can answer this offer")
	ErrAlreadyStarted  = ruleErr(ErrInvalidState, "game already started")
	ErrNotStarted      = ruleErr(ErrInvalidState, "game has not started")
	ErrGameOver        = ruleErr(ErrInvalidState, "game is over")
	ErrNotEnoughSeats  = ruleErr(ErrInvalidState, "at least two players are needed to start")
	ErrAlreadyRolled   = ruleErr(ErrInvalidState, "you have already rolled this turn")
	ErrMustRoll        = ruleErr(ErrInvalidState, "you must roll the dice first")
	ErrNotInJail       = ruleErr(ErrInvalidState, "you are not in jail")
	ErrNoJailCard      = ruleErr(ErrInvalidState, "you have no get out of jail card")
	ErrNotOnSpace      = ruleErr(ErrInvalidState, "you can only buy the space you are standing on")
	ErrNotPurchasable  = ruleErr(ErrInvalidState, "this space cannot be bought")
	ErrAlreadyOwned    = ruleErr(ErrInvalidState, "this property already has an owner")
	ErrInsufficient    = ruleErr(ErrInvalidState, "not enough money")
	ErrNotOwner        = ruleErr(ErrInvalidState, "you do not own this property")
	ErrNotBuildable    = ruleErr(ErrInvalidState, "houses can only be built on color properties")
	ErrNoMonopoly      = ruleErr(ErrInvalidState, "you must own the whole color group to build")
	ErrMaxBuildings    = ruleErr(ErrInvalidState, "this property already has a hotel")
	ErrNoBuildings     = ruleErr(ErrInvalidState, "there is nothing to sell on this property")
	ErrBankrupt        = ruleErr(ErrInvalidState, "bankrupt players cannot act")
	ErrColorTaken      = ruleErr(ErrInvalidState, "that color is already taken")
	ErrBadTrade        = ruleErr(ErrInvalidState, "trade offer is not valid")
	ErrTradeBuildings  = ruleErr(ErrInvalidState, "sell the buildings in this color group before trading")
	ErrLobbyFull       = ruleErr(ErrFull, "lobby is full")
	ErrBadPassword     = ruleErr(ErrBadCredential, "wrong lobby password")
	ErrUnsupported     = ruleErr(ErrInvalidState, "unsupported command")
)

// Code maps an error to the short code sent on the wire.
func Code(err error) string {
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrInvalidState, ErrFull, ErrBadCredential} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ErrInternal.Error()
}

// Message returns the text shown to the requester.
func Message(err error) string {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Msg
	}
	return "internal server error"
}
