package game

import (
	"fmt"
	"strings"
)

// EmptySlot marks a slot that holds no tile.
const EmptySlot = -1

// Tile is one draggable scrambled letter, tracked by identity so that
// duplicate letters stay distinguishable when the player reorders them.
type Tile struct {
	ID     int
	Letter rune
}

// Puzzle tracks slot-by-slot placement of a scrambled word's letter tiles
// and decides solve correctness. One slot exists per character of the
// target; tiles start in the pool and move between pool and slots. The
// multiset of letters across slots and pool always equals the letters of
// the scrambled form.
type Puzzle struct {
	target    string
	scrambled string
	tiles     []Tile // indexed by tile ID
	slots     []int  // tile ID per slot, or EmptySlot
	inSlot    []int  // slot index per tile ID, or EmptySlot when pooled
}

// NewPuzzle creates an empty puzzle; call Start to load a word.
func NewPuzzle() *Puzzle {
	return &Puzzle{}
}

// Start resets the puzzle for a new round: one empty slot per character
// of target, and a pool tile for each character of scrambled.
func (p *Puzzle) Start(target, scrambled string) {
	p.target = target
	p.scrambled = scrambled
	letters := []rune(scrambled)
	p.tiles = make([]Tile, len(letters))
	p.inSlot = make([]int, len(letters))
	for i, r := range letters {
		p.tiles[i] = Tile{ID: i, Letter: r}
		p.inSlot[i] = EmptySlot
	}
	p.slots = make([]int, len([]rune(target)))
	for i := range p.slots {
		p.slots[i] = EmptySlot
	}
}

// PlaceTile moves a tile from the pool, or from another slot, into the
// given slot. Placing into an occupied slot, or with an unknown tile or
// slot, is a no-op returning false; the caller prevents overwrites the
// same way a drop is only accepted on an empty box.
func (p *Puzzle) PlaceTile(tileID, slot int) bool {
	if slot < 0 || slot >= len(p.slots) || tileID < 0 || tileID >= len(p.tiles) {
		return false
	}
	if p.slots[slot] != EmptySlot {
		return false
	}
	if prev := p.inSlot[tileID]; prev != EmptySlot {
		p.slots[prev] = EmptySlot
	}
	p.slots[slot] = tileID
	p.inSlot[tileID] = slot
	return true
}

// RemoveTile empties a slot and returns the removed tile to the pool.
// The second return is false when the slot was already empty or invalid.
func (p *Puzzle) RemoveTile(slot int) (int, bool) {
	if slot < 0 || slot >= len(p.slots) || p.slots[slot] == EmptySlot {
		return 0, false
	}
	tileID := p.slots[slot]
	p.slots[slot] = EmptySlot
	p.inSlot[tileID] = EmptySlot
	return tileID, true
}

// IsComplete reports whether every slot holds a tile.
func (p *Puzzle) IsComplete() bool {
	for _, id := range p.slots {
		if id == EmptySlot {
			return false
		}
	}
	return len(p.slots) > 0
}

// CurrentAnswer concatenates the placed letters in slot order. Empty
// slots contribute nothing, so the answer is only meaningful once the
// puzzle is complete.
func (p *Puzzle) CurrentAnswer() string {
	var sb strings.Builder
	for _, id := range p.slots {
		if id != EmptySlot {
			sb.WriteRune(p.tiles[id].Letter)
		}
	}
	return sb.String()
}

// CheckAnswer is the authoritative win condition: true iff every slot is
// filled and the assembled answer equals the target case-insensitively.
// Incomplete puzzles are always false; a partial answer never compares
// against the full target.
func (p *Puzzle) CheckAnswer() bool {
	if !p.IsComplete() {
		return false
	}
	return strings.EqualFold(p.CurrentAnswer(), p.target)
}

// PlacedCount reports how many slots currently hold a tile.
func (p *Puzzle) PlacedCount() int {
	n := 0
	for _, id := range p.slots {
		if id != EmptySlot {
			n++
		}
	}
	return n
}

// Target returns the word being assembled.
func (p *Puzzle) Target() string { return p.target }

// Scrambled returns the scrambled form the tiles were dealt from.
func (p *Puzzle) Scrambled() string { return p.scrambled }

// Slots returns a copy of the slot assignments (tile ID or EmptySlot).
func (p *Puzzle) Slots() []int {
	out := make([]int, len(p.slots))
	copy(out, p.slots)
	return out
}

// PoolTiles returns the tiles not currently placed, in tile ID order.
func (p *Puzzle) PoolTiles() []Tile {
	var out []Tile
	for id, slot := range p.inSlot {
		if slot == EmptySlot {
			out = append(out, p.tiles[id])
		}
	}
	return out
}

// Tiles returns all tiles, placed or pooled, in tile ID order.
func (p *Puzzle) Tiles() []Tile {
	out := make([]Tile, len(p.tiles))
	copy(out, p.tiles)
	return out
}

// Restore rebuilds a puzzle from a persisted snapshot of slot
// assignments. Slot values must be EmptySlot or valid tile IDs with no
// tile in two slots, otherwise an error is returned and the puzzle is
// reset to the unplaced state.
func (p *Puzzle) Restore(target, scrambled string, slots []int) error {
	p.Start(target, scrambled)
	if len(slots) != len(p.slots) {
		return fmt.Errorf("snapshot has %d slots, puzzle has %d", len(slots), len(p.slots))
	}
	for slot, tileID := range slots {
		if tileID == EmptySlot {
			continue
		}
		if tileID < 0 || tileID >= len(p.tiles) {
			p.Start(target, scrambled)
			return fmt.Errorf("snapshot references unknown tile %d", tileID)
		}
		if p.inSlot[tileID] != EmptySlot {
			p.Start(target, scrambled)
			return fmt.Errorf("snapshot places tile %d twice", tileID)
		}
		p.slots[slot] = tileID
		p.inSlot[tileID] = slot
	}
	return nil
}
