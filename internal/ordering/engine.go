// Package ordering maintains the dense 1..N position invariant for ordered
// sibling sets (columns under a board, cards under a column). All functions
// are pure: they plan position writes from a snapshot of the sibling set and
// leave the IO to the calling service, which runs the plan inside one
// serializable transaction.
package ordering

import (
	"fmt"

	"tilboard/internal/domain"
)

// Item is one member of a sibling set
type Item struct {
	ID       string
	Position int
}

// Update is a position assignment for a single item
type Update struct {
	ID       string
	Position int
}

// NextPosition returns the position a new sibling is appended at.
// Positions are dense, so the current count is always the highest position.
func NextPosition(count int) int {
	return count + 1
}

// PlanCompact re-ranks items, given in position order, to 1..N and returns
// assignments only for items whose position actually changes. Compacting an
// already-contiguous set returns nothing, which makes it safe to run after
// every deletion.
func PlanCompact(items []Item) []Update {
	var updates []Update
	for i, item := range items {
		if want := i + 1; item.Position != want {
			updates = append(updates, Update{ID: item.ID, Position: want})
		}
	}
	return updates
}

// MovePlan describes the position shifts a single-item move requires.
type MovePlan struct {
	// NoOp is set when the item already sits at the requested slot
	NoOp bool

	// SameParent selects which of the two shift descriptions applies
	SameParent bool

	// Same-parent move: one relative shift over the interval between the
	// old and new slot. Running the generic close-gap/open-slot passes here
	// would double-shift the moved item's former neighbours.
	ShiftFrom  int
	ShiftTo    int
	ShiftDelta int

	// Cross-parent move: close the gap the item leaves in the old parent
	// (positions > CloseGapAfter decrement) and open a slot in the new one
	// (positions >= OpenSlotFrom increment).
	CloseGapAfter int
	OpenSlotFrom  int
}

// PlanMove plans relocating an item from oldPos to newPos, possibly under a
// different parent. The caller persists the shifts first and writes the moved
// item's parent and position last.
func PlanMove(sameParent bool, oldPos, newPos int) MovePlan {
	if sameParent && oldPos == newPos {
		return MovePlan{NoOp: true}
	}

	if !sameParent {
		return MovePlan{
			CloseGapAfter: oldPos,
			OpenSlotFrom:  newPos,
		}
	}

	plan := MovePlan{SameParent: true}
	if newPos > oldPos {
		// moving down: everything in (oldPos, newPos] steps up one rank
		plan.ShiftFrom = oldPos + 1
		plan.ShiftTo = newPos
		plan.ShiftDelta = -1
	} else {
		// moving up: everything in [newPos, oldPos) steps down one rank
		plan.ShiftFrom = newPos
		plan.ShiftTo = oldPos - 1
		plan.ShiftDelta = 1
	}
	return plan
}

// ValidateReplace checks that requested is a permutation of the current
// sibling ids. A length mismatch or a duplicated id is a structural error.
// Ids absent from the sibling set are returned so the caller can decide
// whether they name a missing resource or a sibling of some other parent.
func ValidateReplace(current []Item, requested []string) ([]string, error) {
	if len(requested) != len(current) {
		return nil, fmt.Errorf("expected %d ids, got %d: %w", len(current), len(requested), domain.ErrStructural)
	}

	known := make(map[string]bool, len(current))
	for _, item := range current {
		known[item.ID] = true
	}

	seen := make(map[string]bool, len(requested))
	var foreign []string
	for _, id := range requested {
		if seen[id] {
			return nil, fmt.Errorf("duplicate id %s in order: %w", id, domain.ErrStructural)
		}
		seen[id] = true
		if !known[id] {
			foreign = append(foreign, id)
		}
	}
	return foreign, nil
}

// PlanReplace assigns position i+1 to the item at index i of requested,
// returning assignments only for items whose position changes. Call
// ValidateReplace first; requested must be a permutation of the sibling ids.
func PlanReplace(current []Item, requested []string) []Update {
	positions := make(map[string]int, len(current))
	for _, item := range current {
		positions[item.ID] = item.Position
	}

	var updates []Update
	for i, id := range requested {
		if want := i + 1; positions[id] != want {
			updates = append(updates, Update{ID: id, Position: want})
		}
	}
	return updates
}
