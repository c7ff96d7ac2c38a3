// Package types holds the client wire protocol.
//
// Client -> Server (every message is {"type": ..., fields}):
//
//	createLobby:   name, country, appearance, color, password?
//	joinLobby:     lobbyId, name, appearance, color, password?
//	getLobbies:    {}
//	leaveLobby:    {}
//	updatePlayer:  name?, appearance?, color?
//	startGame:     rules{initialMoney, goMoney, taxFree, autoBankruptcy, jailFine, parkingBonus}
//	rollDice, rollForJail, payJailFine, useJailCard, advanceTurn, declareBankruptcy: {}
//	buyProperty, buildHouse, sellHouse: propertyId
//	proposeTrade:  to, myPropIds, theirPropIds, offerCash, requestCash
//	respondTrade:  tradeId, accept
//
// Server -> Client:
//
//	lobbyCreated / lobbyUpdated / gameStarted: lobby
//	lobbiesList: lobbies
//	gameState:   version, lobby (sent after every accepted change)
//	diceRolled:  roll{dice, total, from, position, passedGo, space, cards, rent, tax, isBuyableProperty, isSpecialSpace, rollAgain, messages}
//	propertyBought / houseBuilt / houseSold: playerId, propertyId, houses, amount
//	turnEnded:   playerId, currentTurn
//	tradeOffer / tradeCompleted / tradeRejected / tradeFailed: trade, message?
//	jailReleased / jailRollFailed: playerId, message, amount
//	playerBankrupt: playerId
//	gameWon:     playerId, standings
//	lobbyClosed: the member was removed from the lobby
//	errorMessage: code, error (requester only)
package types
