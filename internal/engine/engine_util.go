package engine

import "sort"

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func FindEvent(events []Event, eventType EventType) (Event, bool) {
	for _, event := range events {
		if event.Type == eventType {
			return event, true
		}
	}
	return Event{}, false
}

// VisibleTo reports whether playerID should receive e.
func (e Event) VisibleTo(playerID string) bool {
	if len(e.To) == 0 {
		return true
	}
	for _, id := range e.To {
		if id == playerID {
			return true
		}
	}
	return false
}

// EventsFor filters events down to what playerID may see.
func EventsFor(events []Event, playerID string) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.VisibleTo(playerID) {
			out = append(out, e)
		}
	}
	return out
}

// PendingTradesFor lists offers where playerID is either party.
func (s *State) PendingTradesFor(playerID string) []TradeOffer {
	var out []TradeOffer
	for _, t := range s.Trades {
		if t.From == playerID || t.To == playerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
