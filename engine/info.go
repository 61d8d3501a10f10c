package engine

import (
	"fmt"
	"railway/bag"
	"railway/game"
	"strings"
)

// Info builds the announcements concerning one player.
type Info struct {
	name string
}

func NewInfo(name string) Info {
	return Info{name: name}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func cardName(c game.Card, count int) string {
	if c == game.Locomotive {
		return "locomotive" + plural(count)
	}
	return strings.ToLower(c.String())
}

// describeCards lists a bag of cards as "2 red, 1 blue and 1 locomotive".
func describeCards(cards bag.Bag[game.Card]) string {
	var parts []string
	for _, c := range cards.Distinct() {
		n := cards.CountOf(c)
		parts = append(parts, fmt.Sprintf("%d %s", n, cardName(c, n)))
	}
	if len(parts) <= 1 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func Draw(names []string, points int) string {
	return fmt.Sprintf("%s are tied with %d points each!", strings.Join(names, " and "), points)
}

func (i Info) WillPlayFirst() string {
	return fmt.Sprintf("%s will play first.", i.name)
}

func (i Info) KeptTickets(count int) string {
	return fmt.Sprintf("%s kept %d ticket%s.", i.name, count, plural(count))
}

func (i Info) CanPlay() string {
	return fmt.Sprintf("It is %s's turn.", i.name)
}

func (i Info) DrewTickets(count int) string {
	return fmt.Sprintf("%s drew %d ticket%s.", i.name, count, plural(count))
}

func (i Info) DrewBlindCard() string {
	return fmt.Sprintf("%s drew a card from the pile.", i.name)
}

func (i Info) DrewVisibleCard(c game.Card) string {
	return fmt.Sprintf("%s drew a face-up %s card.", i.name, cardName(c, 1))
}

func (i Info) ClaimedRoute(r *game.Route, cards bag.Bag[game.Card]) string {
	return fmt.Sprintf("%s claimed the route %s with %s.", i.name, r, describeCards(cards))
}

func (i Info) AttemptsTunnelClaim(r *game.Route, initialCards bag.Bag[game.Card]) string {
	return fmt.Sprintf("%s wants to claim the tunnel %s with %s!", i.name, r, describeCards(initialCards))
}

func (i Info) DrewAdditionalCards(drawn bag.Bag[game.Card], additionalCost int) string {
	drew := fmt.Sprintf("The additional cards are %s. ", describeCards(drawn))
	if additionalCost == 0 {
		return drew + "They add no cost."
	}
	return drew + fmt.Sprintf("They add a cost of %d card%s.", additionalCost, plural(additionalCost))
}

func (i Info) DidNotClaimRoute(r *game.Route) string {
	return fmt.Sprintf("%s did not claim the route %s.", i.name, r)
}

func (i Info) LastTurnBegins(carCount int) string {
	return fmt.Sprintf("%s has only %d car%s left, the last turn begins!", i.name, carCount, plural(carCount))
}

func (i Info) GetsLongestTrailBonus(trail game.Trail) string {
	return fmt.Sprintf("%s gets the bonus for the longest trail %s.", i.name, trail)
}

func (i Info) Won(points, loserPoints int) string {
	return fmt.Sprintf("%s wins with %d point%s against %d point%s!", i.name, points, plural(points), loserPoints, plural(loserPoints))
}
