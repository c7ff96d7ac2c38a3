package engine

import (
	"fmt"
	"slices"
	"time"
)

func (s *State) proposeTrade(cmd Command) ([]Event, error) {
	from, err := s.requireActive(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	req := cmd.Trade
	to := s.Player(req.To)
	if to == nil {
		return nil, ErrUnknownPlayer
	}
	if to.Bankrupt {
		return nil, ErrBankrupt
	}
	if to.ID == from.ID || req.OfferCash < 0 || req.RequestCash < 0 {
		return nil, ErrBadTrade
	}
	if len(req.OfferProperties)+len(req.RequestProperties) == 0 && req.OfferCash == 0 && req.RequestCash == 0 {
		return nil, ErrBadTrade
	}
	if hasDuplicates(req.OfferProperties) || hasDuplicates(req.RequestProperties) {
		return nil, ErrBadTrade
	}
	if err := s.checkHoldings(from.ID, req.OfferProperties, ErrNotOwner); err != nil {
		return nil, err
	}
	if err := s.checkHoldings(to.ID, req.RequestProperties, ErrBadTrade); err != nil {
		return nil, err
	}

	s.purgeExpiredTrades(cmd.At)
	id := req.ID
	if id == "" {
		id = fmt.Sprintf("trade-%d-%d", cmd.At.UnixNano(), len(s.Trades))
	}
	if _, dup := s.Trades[id]; dup {
		return nil, ErrBadTrade
	}
	offer := TradeOffer{
		ID:                id,
		From:              from.ID,
		To:                to.ID,
		OfferProperties:   slices.Clone(req.OfferProperties),
		RequestProperties: slices.Clone(req.RequestProperties),
		OfferCash:         req.OfferCash,
		RequestCash:       req.RequestCash,
		CreatedAt:         cmd.At,
	}
	s.Trades[id] = offer
	s.logf(cmd.At, "%s offered a trade to %s", from.Name, to.Name)
	return []Event{{Type: EvtTradeProposed, PlayerID: from.ID, To: []string{to.ID, from.ID}, Trade: &offer}}, nil
}

// respondTrade settles an offer. Any outcome past the counterparty check
// consumes the offer, so failures are reported as events, not errors.
func (s *State) respondTrade(cmd Command) ([]Event, error) {
	resp, err := s.requireActive(cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	offer, ok := s.Trades[cmd.TradeID]
	if !ok {
		return nil, ErrUnknownTrade
	}
	if offer.To != resp.ID {
		return nil, ErrNotCounterparty
	}
	delete(s.Trades, offer.ID)
	parties := []string{offer.From, offer.To}

	if s.tradeExpired(offer, cmd.At) {
		return []Event{{Type: EvtTradeFailed, PlayerID: resp.ID, To: parties, Trade: &offer, Message: ErrTradeExpired.Msg}}, nil
	}
	if !cmd.Accept {
		s.logf(cmd.At, "%s declined a trade", resp.Name)
		return []Event{{Type: EvtTradeRejected, PlayerID: resp.ID, To: []string{offer.From}, Trade: &offer}}, nil
	}
	if err := s.validateTrade(offer); err != nil {
		return []Event{{Type: EvtTradeFailed, PlayerID: resp.ID, To: parties, Trade: &offer, Message: Message(err)}}, nil
	}

	from, to := s.Player(offer.From), s.Player(offer.To)
	for _, id := range offer.OfferProperties {
		s.transfer(id, from, to)
	}
	for _, id := range offer.RequestProperties {
		s.transfer(id, to, from)
	}
	from.Cash += offer.RequestCash - offer.OfferCash
	to.Cash += offer.OfferCash - offer.RequestCash
	s.logf(cmd.At, "%s and %s completed a trade", from.Name, to.Name)
	return []Event{{Type: EvtTradeCompleted, PlayerID: resp.ID, Trade: &offer}}, nil
}

func (s *State) validateTrade(t TradeOffer) error {
	from, to := s.Player(t.From), s.Player(t.To)
	if from == nil || to == nil {
		return ErrUnknownPlayer
	}
	if from.Bankrupt || to.Bankrupt {
		return ErrBankrupt
	}
	if err := s.checkHoldings(from.ID, t.OfferProperties, ErrNotOwner); err != nil {
		return err
	}
	if err := s.checkHoldings(to.ID, t.RequestProperties, ErrNotOwner); err != nil {
		return err
	}
	if from.Cash < t.OfferCash || to.Cash < t.RequestCash {
		return ErrInsufficient
	}
	return nil
}

// checkHoldings verifies owner holds every id and that no group involved
// has buildings on it.
func (s *State) checkHoldings(owner string, ids []int, notOwned error) error {
	for _, id := range ids {
		sp, err := s.space(id)
		if err != nil {
			return err
		}
		if s.Properties[id].Owner != owner {
			return notOwned
		}
		if s.Properties[id].Level > 0 {
			return ErrTradeBuildings
		}
		for _, g := range s.Board.Group(sp.Group) {
			if s.Properties[g].Level > 0 {
				return ErrTradeBuildings
			}
		}
	}
	return nil
}

func (s *State) transfer(id int, from, to *Player) {
	from.Properties = removeInt(from.Properties, id)
	to.Properties = append(to.Properties, id)
	s.Properties[id].Owner = to.ID
}

func (s *State) tradeExpired(t TradeOffer, at time.Time) bool {
	return s.TradeTTL > 0 && at.Sub(t.CreatedAt) > s.TradeTTL
}

func (s *State) purgeExpiredTrades(at time.Time) {
	for id, t := range s.Trades {
		if s.tradeExpired(t, at) {
			delete(s.Trades, id)
		}
	}
}

func (s *State) dropTradesOf(playerID string) {
	for id, t := range s.Trades {
		if t.From == playerID || t.To == playerID {
			delete(s.Trades, id)
		}
	}
}

func hasDuplicates(ids []int) bool {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
