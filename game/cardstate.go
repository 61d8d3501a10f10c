package game

import (
	"railway/bag"
	"railway/deck"
	"railway/meta"
	"railway/utils"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// PublicCardState is the part of the card state visible to both players.
type PublicCardState struct {
	faceUpCards  []Card
	deckSize     int
	discardsSize int
}

func NewPublicCardState(faceUpCards []Card, deckSize, discardsSize int) PublicCardState {
	utils.CheckArgument(len(faceUpCards) == meta.FACE_UP_CARDS_COUNT,
		"expected %d face-up cards, got %d", meta.FACE_UP_CARDS_COUNT, len(faceUpCards))
	utils.CheckArgument(deckSize >= 0 && discardsSize >= 0, "negative pile size")
	return PublicCardState{
		faceUpCards:  slices.Clone(faceUpCards),
		deckSize:     deckSize,
		discardsSize: discardsSize,
	}
}

func (s PublicCardState) FaceUpCards() []Card {
	return slices.Clone(s.faceUpCards)
}

func (s PublicCardState) FaceUpCard(slot int) Card {
	return s.faceUpCards[utils.CheckIndex(slot, meta.FACE_UP_CARDS_COUNT)]
}

func (s PublicCardState) DeckSize() int {
	return s.deckSize
}

func (s PublicCardState) IsDeckEmpty() bool {
	return s.deckSize == 0
}

func (s PublicCardState) DiscardsSize() int {
	return s.discardsSize
}

// TotalSize counts every card outside the players' hands.
func (s PublicCardState) TotalSize() int {
	return len(s.faceUpCards) + s.deckSize + s.discardsSize
}

// CardState adds the hidden draw pile and discards to the public view.
type CardState struct {
	PublicCardState
	deck     deck.Deck[Card]
	discards bag.Bag[Card]
}

func newCardState(faceUp []Card, d deck.Deck[Card], discards bag.Bag[Card]) CardState {
	return CardState{
		PublicCardState: NewPublicCardState(faceUp, d.Size(), discards.Size()),
		deck:            d,
		discards:        discards,
	}
}

// InitialCardState turns the top cards of d face up.
func InitialCardState(d deck.Deck[Card]) CardState {
	utils.CheckArgument(d.Size() >= meta.FACE_UP_CARDS_COUNT,
		"need %d cards, deck has %d", meta.FACE_UP_CARDS_COUNT, d.Size())
	faceUp := make([]Card, meta.FACE_UP_CARDS_COUNT)
	for i := range faceUp {
		faceUp[i] = d.TopCard()
		d = d.WithoutTopCard()
	}
	return newCardState(faceUp, d, bag.Bag[Card]{})
}

// WithDrawnFaceUpCard replaces the card in slot with the top of the pile.
func (s CardState) WithDrawnFaceUpCard(slot int) CardState {
	utils.CheckIndex(slot, meta.FACE_UP_CARDS_COUNT)
	utils.CheckArgument(!s.deck.IsEmpty(), "deck is empty")
	faceUp := s.FaceUpCards()
	faceUp[slot] = s.deck.TopCard()
	return newCardState(faceUp, s.deck.WithoutTopCard(), s.discards)
}

func (s CardState) TopDeckCard() Card {
	utils.CheckArgument(!s.deck.IsEmpty(), "deck is empty")
	return s.deck.TopCard()
}

func (s CardState) WithoutTopDeckCard() CardState {
	utils.CheckArgument(!s.deck.IsEmpty(), "deck is empty")
	return newCardState(s.faceUpCards, s.deck.WithoutTopCard(), s.discards)
}

// WithDeckRecreatedFromDiscards shuffles the discards into a new pile.
func (s CardState) WithDeckRecreatedFromDiscards(rng *rand.Rand) CardState {
	utils.CheckArgument(s.deck.IsEmpty(), "deck is not empty")
	return newCardState(s.faceUpCards, deck.Of(s.discards, rng), bag.Bag[Card]{})
}

func (s CardState) WithMoreDiscardedCards(cards bag.Bag[Card]) CardState {
	return newCardState(s.faceUpCards, s.deck, s.discards.Union(cards))
}

func (s CardState) Discards() bag.Bag[Card] {
	return s.discards
}
