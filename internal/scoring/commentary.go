package scoring

import (
	"fmt"

	"github.com/cricstack/tournament-service/internal/model"
)

// shotDescriptions flavors boundary commentary by shot location.
var shotDescriptions = map[string]string{
	"cover":     "beautiful cover drive",
	"midwicket": "powerful shot to midwicket",
	"square":    "cracked through square",
	"fine":      "delicate fine leg glance",
	"straight":  "straight down the ground",
}

// Commentary renders a descriptive line for one delivery. The text is
// cosmetic and never parsed back, so changes here are always safe.
func Commentary(runs int, isWicket bool, extraType, shotLocation string) string {
	if isWicket {
		return "OUT! What a breakthrough!"
	}
	switch extraType {
	case model.ExtraWide:
		return "Wide ball, extra run given"
	case model.ExtraNoBall:
		return "No ball! Free hit coming up"
	case model.ExtraBye:
		return fmt.Sprintf("Sneaky, %d bye%s taken", runsOrOne(runs), plural(runs))
	case model.ExtraLegBye:
		return fmt.Sprintf("Off the pads, %d leg bye%s", runsOrOne(runs), plural(runs))
	}
	switch runs {
	case 4:
		if d, ok := shotDescriptions[shotLocation]; ok {
			return fmt.Sprintf("FOUR! %s to the boundary", d)
		}
		return "FOUR! excellent shot to the boundary"
	case 6:
		if d, ok := shotDescriptions[shotLocation]; ok {
			return fmt.Sprintf("SIX! Massive hit with a %s", d)
		}
		return "SIX! Massive hit"
	case 0:
		return "No run"
	}
	return fmt.Sprintf("%d run%s taken", runs, plural(runs))
}

func runsOrOne(runs int) int {
	if runs < 1 {
		return 1
	}
	return runs
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
