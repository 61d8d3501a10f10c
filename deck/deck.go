// Package deck implements an immutable draw pile.
package deck

import (
	"railway/bag"
	"railway/utils"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Deck is an ordered pile whose first element is the top card.
type Deck[T bag.Element[T]] struct {
	cards []T
}

// Of shuffles the contents of b into a new deck.
func Of[T bag.Element[T]](b bag.Bag[T], rng *rand.Rand) Deck[T] {
	cards := b.ToSlice()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return Deck[T]{cards: cards}
}

func (d Deck[T]) Size() int {
	return len(d.cards)
}

func (d Deck[T]) IsEmpty() bool {
	return len(d.cards) == 0
}

func (d Deck[T]) TopCard() T {
	utils.CheckArgument(!d.IsEmpty(), "deck is empty")
	return d.cards[0]
}

func (d Deck[T]) WithoutTopCard() Deck[T] {
	utils.CheckArgument(!d.IsEmpty(), "deck is empty")
	return Deck[T]{cards: d.cards[1:]}
}

// TopCards returns the n top cards as a bag.
func (d Deck[T]) TopCards(n int) bag.Bag[T] {
	utils.CheckRange(n, len(d.cards))
	return bag.Of(d.cards[:n]...)
}

func (d Deck[T]) WithoutTopCards(n int) Deck[T] {
	utils.CheckRange(n, len(d.cards))
	return Deck[T]{cards: d.cards[n:]}
}

// Cards returns the pile from top to bottom.
func (d Deck[T]) Cards() []T {
	return slices.Clone(d.cards)
}
