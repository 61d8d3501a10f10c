package game

import (
	"railway/bag"
	"railway/meta"
)

// Color is the color of a car card or of a route.
type Color int

const (
	Black Color = iota
	Violet
	Blue
	Green
	Yellow
	Orange
	Red
	White
)

// NoColor marks a route that can be claimed with cards of any single color.
const NoColor Color = -1

var Colors = []Color{Black, Violet, Blue, Green, Yellow, Orange, Red, White}

var colorNames = []string{"BLACK", "VIOLET", "BLUE", "GREEN", "YELLOW", "ORANGE", "RED", "WHITE"}

func (c Color) String() string {
	if c == NoColor {
		return "NEUTRAL"
	}
	return colorNames[c]
}

type Card int

const (
	BlackCard Card = iota
	VioletCard
	BlueCard
	GreenCard
	YellowCard
	OrangeCard
	RedCard
	WhiteCard
	Locomotive
)

// Cards lists every card kind in its canonical order.
var Cards = []Card{BlackCard, VioletCard, BlueCard, GreenCard, YellowCard, OrangeCard, RedCard, WhiteCard, Locomotive}

// CarCards lists the card kinds that carry a color.
var CarCards = Cards[:len(Colors)]

// CardOf returns the car card of the given color.
func CardOf(c Color) Card {
	return Card(c)
}

// Color returns the color of a car card, or NoColor for a locomotive.
func (c Card) Color() Color {
	if c == Locomotive {
		return NoColor
	}
	return Color(c)
}

func (c Card) Compare(other Card) int {
	return int(c) - int(other)
}

func (c Card) String() string {
	if c == Locomotive {
		return "LOCOMOTIVE"
	}
	return c.Color().String()
}

// AllCards returns the full supply of cards used to build the draw pile.
func AllCards() bag.Bag[Card] {
	builder := bag.NewBuilder[Card]()
	for _, c := range CarCards {
		builder.AddN(meta.CAR_CARDS_COUNT, c)
	}
	return builder.AddN(meta.LOCOMOTIVE_CARDS_COUNT, Locomotive).Build()
}
