package game

import (
	"testing"
)

func TestNewEventTable_CoversEveryCellExceptStart(t *testing.T) {
	table := NewEventTable()

	if _, ok := table.Lookup(0); ok {
		t.Fatalf("start cell must not carry an event")
	}

	for cell := 1; cell < BOARD_CELLS_COUNT; cell++ {
		ev, ok := table.Lookup(cell)
		if !ok {
			t.Fatalf("cell %d has no event configured", cell)
		}

		if ev.Cell != cell {
			t.Fatalf("event on cell %d reports cell %d", cell, ev.Cell)
		}

		if ev.ID == "" || ev.Title == "" {
			t.Fatalf("event on cell %d missing id or title", cell)
		}
	}
}

func TestNewEventTable_ModeMatchesOutcomeLists(t *testing.T) {
	for _, ev := range NewEventTable().All() {
		switch ev.ResolutionMode {
		case MODE_FIXED:
			if len(ev.FixedOutcomes) == 0 {
				t.Fatalf("fixed event on cell %d has no fixed outcomes", ev.Cell)
			}
			if len(ev.RollOutcomes) != 0 {
				t.Fatalf("fixed event on cell %d carries roll outcomes", ev.Cell)
			}

		case MODE_ROLL:
			if len(ev.RollOutcomes) == 0 {
				t.Fatalf("roll event on cell %d has no roll outcomes", ev.Cell)
			}
			if len(ev.FixedOutcomes) != 0 {
				t.Fatalf("roll event on cell %d carries fixed outcomes", ev.Cell)
			}

		default:
			t.Fatalf("cell %d has unknown resolution mode %q", ev.Cell, ev.ResolutionMode)
		}
	}
}

// 每个 Roll 事件的区间必须不重叠且完整覆盖 1-6，
// 否则 matchRoll 会让屏障在运行期卡死
func TestNewEventTable_RollRangesCoverAllDiceValues(t *testing.T) {
	for _, ev := range NewEventTable().All() {
		if ev.ResolutionMode != MODE_ROLL {
			continue
		}

		for value := 1; value <= 6; value++ {
			hits := 0

			for _, entry := range ev.RollOutcomes {
				if entry.InRange(value) {
					hits++
				}
			}

			if hits != 1 {
				t.Fatalf("cell %d: dice value %d matched %d ranges, want exactly 1", ev.Cell, value, hits)
			}
		}
	}
}

func TestNewEventTable_AllIsSortedByCell(t *testing.T) {
	all := NewEventTable().All()

	if len(all) != BOARD_CELLS_COUNT-1 {
		t.Fatalf("want %d events, got %d", BOARD_CELLS_COUNT-1, len(all))
	}

	for i := 1; i < len(all); i++ {
		if all[i-1].Cell >= all[i].Cell {
			t.Fatalf("events not sorted at index %d: %d >= %d", i, all[i-1].Cell, all[i].Cell)
		}
	}
}
