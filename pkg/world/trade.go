package world

import (
	"errors"
	"time"
)

// ErrTradeExpired is returned when executing a TradeSession past its
// ExpiresAt deadline.
var ErrTradeExpired = errors.New("world: trade session expired")

// ErrTradeNotAccepted is returned when executing a trade neither side
// has accepted yet.
var ErrTradeNotAccepted = errors.New("world: trade not accepted by both parties")

// ErrInsufficientItems is returned when a trade offer promises more
// currency, or more of an item stack, than the offerer actually holds.
var ErrInsufficientItems = errors.New("world: insufficient item stock for trade")

// ExecuteTrade performs the two-phase commit described for TinyMUSH
// trading: validate both sides can honor their offer, then apply both
// currency and item transfers and persist both player records. A
// validation failure leaves both records untouched; the trade session
// is removed from the store on either outcome.
func (s *Store) ExecuteTrade(t TradeSession, now time.Time) error {
	defer s.DeleteTradeSession(t.ID)

	if now.After(t.ExpiresAt) {
		return ErrTradeExpired
	}
	if !t.OfferA.Accepted || !t.OfferB.Accepted {
		return ErrTradeNotAccepted
	}

	a, err := s.GetPlayer(t.PlayerA)
	if err != nil {
		return err
	}
	b, err := s.GetPlayer(t.PlayerB)
	if err != nil {
		return err
	}

	if err := validateOffer(a, t.OfferA); err != nil {
		return err
	}
	if err := validateOffer(b, t.OfferB); err != nil {
		return err
	}

	aAfterPay, err := a.Currency.Subtract(Decimal(t.OfferA.Currency))
	if err != nil {
		return err
	}
	bAfterPay, err := b.Currency.Subtract(Decimal(t.OfferB.Currency))
	if err != nil {
		return err
	}
	aFinal, err := aAfterPay.Add(Decimal(t.OfferB.Currency))
	if err != nil {
		return err
	}
	bFinal, err := bAfterPay.Add(Decimal(t.OfferA.Currency))
	if err != nil {
		return err
	}

	for _, stack := range t.OfferA.Items {
		removeInventoryStack(&a, stack.ObjectID, stack.Quantity)
		addInventoryStack(&b, stack.ObjectID, stack.Quantity)
	}
	for _, stack := range t.OfferB.Items {
		removeInventoryStack(&b, stack.ObjectID, stack.Quantity)
		addInventoryStack(&a, stack.ObjectID, stack.Quantity)
	}
	a.Currency = aFinal
	b.Currency = bFinal
	a.TradeHistory = append(a.TradeHistory, TradeHistoryEntry{
		Partner: b.Username, GaveCurrency: t.OfferA.Currency, GotCurrency: t.OfferB.Currency, At: now,
	})
	b.TradeHistory = append(b.TradeHistory, TradeHistoryEntry{
		Partner: a.Username, GaveCurrency: t.OfferB.Currency, GotCurrency: t.OfferA.Currency, At: now,
	})

	if err := s.PutPlayer(a); err != nil {
		return err
	}
	return s.PutPlayer(b)
}

func validateOffer(p PlayerRecord, offer TradeOffer) error {
	if !p.Currency.CanAfford(Decimal(offer.Currency)) {
		return ErrInsufficientItems
	}
	for _, stack := range offer.Items {
		held := 0
		for _, s := range p.InventoryStacks {
			if s.ObjectID == stack.ObjectID {
				held = s.Quantity
				break
			}
		}
		if held < stack.Quantity {
			return ErrInsufficientItems
		}
	}
	return nil
}

func removeInventoryStack(p *PlayerRecord, objectID string, qty int) {
	for i := range p.InventoryStacks {
		if p.InventoryStacks[i].ObjectID == objectID {
			p.InventoryStacks[i].Quantity -= qty
			if p.InventoryStacks[i].Quantity <= 0 {
				p.InventoryStacks = append(p.InventoryStacks[:i], p.InventoryStacks[i+1:]...)
			}
			return
		}
	}
}
