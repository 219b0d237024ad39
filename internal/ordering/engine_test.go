package ordering

import (
	"errors"
	"reflect"
	"testing"

	"tilboard/internal/domain"
)

func TestNextPosition(t *testing.T) {
	if got := NextPosition(0); got != 1 {
		t.Errorf("NextPosition(0) = %d, want 1", got)
	}
	if got := NextPosition(4); got != 5 {
		t.Errorf("NextPosition(4) = %d, want 5", got)
	}
}

func TestPlanCompact(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  []Update
	}{
		{
			name: "gap after deletion",
			items: []Item{
				{ID: "todo", Position: 1},
				{ID: "done", Position: 3},
			},
			want: []Update{{ID: "done", Position: 2}},
		},
		{
			name: "already contiguous is a no-op",
			items: []Item{
				{ID: "a", Position: 1},
				{ID: "b", Position: 2},
				{ID: "c", Position: 3},
			},
			want: nil,
		},
		{
			name:  "empty set",
			items: nil,
			want:  nil,
		},
		{
			name: "multiple gaps",
			items: []Item{
				{ID: "a", Position: 2},
				{ID: "b", Position: 5},
				{ID: "c", Position: 9},
			},
			want: []Update{
				{ID: "a", Position: 1},
				{ID: "b", Position: 2},
				{ID: "c", Position: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanCompact(tt.items)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlanCompact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlanCompactIdempotent(t *testing.T) {
	items := []Item{
		{ID: "a", Position: 1},
		{ID: "b", Position: 4},
		{ID: "c", Position: 6},
	}

	first := PlanCompact(items)
	if len(first) != 2 {
		t.Fatalf("first compact planned %d writes, want 2", len(first))
	}

	// Apply the plan and compact again: no further writes.
	applied := applyUpdates(items, first)
	if second := PlanCompact(applied); second != nil {
		t.Errorf("second compact planned writes: %v, want none", second)
	}
}

func TestPlanMove(t *testing.T) {
	tests := []struct {
		name       string
		sameParent bool
		oldPos     int
		newPos     int
		want       MovePlan
	}{
		{
			name:       "same slot is a no-op",
			sameParent: true,
			oldPos:     2,
			newPos:     2,
			want:       MovePlan{NoOp: true},
		},
		{
			name:       "same parent moving down",
			sameParent: true,
			oldPos:     2,
			newPos:     4,
			want:       MovePlan{SameParent: true, ShiftFrom: 3, ShiftTo: 4, ShiftDelta: -1},
		},
		{
			name:       "same parent moving up",
			sameParent: true,
			oldPos:     4,
			newPos:     2,
			want:       MovePlan{SameParent: true, ShiftFrom: 2, ShiftTo: 3, ShiftDelta: 1},
		},
		{
			name:       "cross parent",
			sameParent: false,
			oldPos:     2,
			newPos:     1,
			want:       MovePlan{CloseGapAfter: 2, OpenSlotFrom: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanMove(tt.sameParent, tt.oldPos, tt.newPos)
			if got != tt.want {
				t.Errorf("PlanMove() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Simulates a full same-column move end to end and checks the sibling set
// stays dense with the moved item at its requested slot.
func TestPlanMoveSameParentKeepsDensity(t *testing.T) {
	tests := []struct {
		name   string
		oldPos int
		newPos int
	}{
		{"down adjacent", 1, 2},
		{"down far", 1, 5},
		{"up adjacent", 3, 2},
		{"up far", 5, 1},
		{"middle down", 2, 4},
		{"middle up", 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []Item{
				{ID: "c1", Position: 1},
				{ID: "c2", Position: 2},
				{ID: "c3", Position: 3},
				{ID: "c4", Position: 4},
				{ID: "c5", Position: 5},
			}
			movedID := items[tt.oldPos-1].ID

			plan := PlanMove(true, tt.oldPos, tt.newPos)
			result := applyMovePlan(items, plan, movedID, tt.newPos)

			assertDense(t, result)
			for _, item := range result {
				if item.ID == movedID && item.Position != tt.newPos {
					t.Errorf("moved item at position %d, want %d", item.Position, tt.newPos)
				}
			}
		})
	}
}

func TestValidateReplace(t *testing.T) {
	current := []Item{
		{ID: "id1", Position: 1},
		{ID: "id2", Position: 2},
		{ID: "id3", Position: 3},
	}

	tests := []struct {
		name        string
		requested   []string
		wantForeign []string
		wantErr     bool
	}{
		{
			name:      "valid permutation",
			requested: []string{"id3", "id1", "id2"},
		},
		{
			name:      "size mismatch",
			requested: []string{"id1", "id2"},
			wantErr:   true,
		},
		{
			name:      "duplicate id",
			requested: []string{"id1", "id1", "id2"},
			wantErr:   true,
		},
		{
			name:        "foreign id reported",
			requested:   []string{"id1", "id2", "other"},
			wantForeign: []string{"other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foreign, err := ValidateReplace(current, tt.requested)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrStructural) {
					t.Errorf("ValidateReplace() error = %v, want ErrStructural", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateReplace() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(foreign, tt.wantForeign) {
				t.Errorf("ValidateReplace() foreign = %v, want %v", foreign, tt.wantForeign)
			}
		})
	}
}

func TestPlanReplace(t *testing.T) {
	current := []Item{
		{ID: "id1", Position: 1},
		{ID: "id2", Position: 2},
		{ID: "id3", Position: 3},
	}

	got := PlanReplace(current, []string{"id3", "id1", "id2"})
	want := []Update{
		{ID: "id3", Position: 1},
		{ID: "id1", Position: 2},
		{ID: "id2", Position: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlanReplace() = %v, want %v", got, want)
	}

	// Re-submitting the current order writes nothing.
	if got := PlanReplace(current, []string{"id1", "id2", "id3"}); got != nil {
		t.Errorf("PlanReplace() with unchanged order = %v, want nil", got)
	}
}

// applyUpdates returns a copy of items with the planned positions applied,
// sorted by position.
func applyUpdates(items []Item, updates []Update) []Item {
	result := make([]Item, len(items))
	copy(result, items)
	for _, u := range updates {
		for i := range result {
			if result[i].ID == u.ID {
				result[i].Position = u.Position
			}
		}
	}
	sortByPosition(result)
	return result
}

// applyMovePlan simulates the service-side execution order for a same-parent
// move: shift the interval, then write the moved item last.
func applyMovePlan(items []Item, plan MovePlan, movedID string, newPos int) []Item {
	result := make([]Item, len(items))
	copy(result, items)
	if !plan.NoOp && plan.SameParent {
		for i := range result {
			if result[i].ID == movedID {
				continue
			}
			if result[i].Position >= plan.ShiftFrom && result[i].Position <= plan.ShiftTo {
				result[i].Position += plan.ShiftDelta
			}
		}
	}
	for i := range result {
		if result[i].ID == movedID {
			result[i].Position = newPos
		}
	}
	sortByPosition(result)
	return result
}

func sortByPosition(items []Item) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j-1].Position > items[j].Position; j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}

func assertDense(t *testing.T, items []Item) {
	t.Helper()
	for i, item := range items {
		if item.Position != i+1 {
			t.Errorf("position %d at index %d, want %d (set: %v)", item.Position, i, i+1, items)
		}
	}
}
