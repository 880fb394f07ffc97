package game

import "unicode"

// Hint describes a revealed letter for the presentation layer to render.
type Hint struct {
	Letter rune
	Slot   int
	TileID int
}

// RevealHint places the scrambled tile matching the target's first letter
// into slot 0 and returns what was placed. The reveal is only valid while
// no tiles have been placed; once any slot is occupied it is a no-op
// returning false, so at most one hint is meaningful per round.
func RevealHint(p *Puzzle) (Hint, bool) {
	if p == nil || len(p.slots) == 0 || p.PlacedCount() > 0 {
		return Hint{}, false
	}
	first := []rune(p.target)[0]
	for _, tile := range p.PoolTiles() {
		if unicode.ToLower(tile.Letter) == unicode.ToLower(first) {
			p.PlaceTile(tile.ID, 0)
			return Hint{Letter: tile.Letter, Slot: 0, TileID: tile.ID}, true
		}
	}
	return Hint{}, false
}
