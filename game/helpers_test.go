package game

import (
	"railway/bag"
)

func recoverError(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}

var (
	lausanne  = Station{ID: 0, Name: "Lausanne"}
	fribourg  = Station{ID: 1, Name: "Fribourg"}
	berne     = Station{ID: 2, Name: "Berne"}
	interlak  = Station{ID: 3, Name: "Interlaken"}
	lucerne   = Station{ID: 4, Name: "Lucerne"}
	zurich    = Station{ID: 5, Name: "Zürich"}
	neuchatel = Station{ID: 6, Name: "Neuchâtel"}
)

func cards(cs ...Card) bag.Bag[Card] {
	return bag.Of(cs...)
}
