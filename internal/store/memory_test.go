package store

import (
	"context"
	"testing"

	"github.com/pitchside/live-engine/internal/model"
)

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	seed := DefaultSeed().Fixtures
	ms := NewMemoryStore(seed)

	// Mutating the seed after construction must not leak in.
	seed[0].Score.Team2.Runs = 999

	got := ms.Matches()
	if got[0].Score.Team2.Runs == 999 {
		t.Fatal("store shares scorecard with its seed")
	}

	// Mutating a read must not leak back.
	got[0].Score.Team2.Wickets = 9
	got[0].Status = model.StatusCompleted
	again := ms.Matches()
	if again[0].Score.Team2.Wickets == 9 || again[0].Status == model.StatusCompleted {
		t.Fatal("store shares state with a reader")
	}
}

func TestMemoryStore_ReplaceMatches(t *testing.T) {
	ms := NewMemoryStore(DefaultSeed().Fixtures)
	before := ms.Matches()

	next := ms.Matches()
	next[0].Score.Team2.Runs += 4
	ms.ReplaceMatches(next)

	if before[0].Score.Team2.Runs+4 != ms.Matches()[0].Score.Team2.Runs {
		t.Error("replace did not publish the new snapshot")
	}
	if before[0].Score.Team2.Runs == ms.Matches()[0].Score.Team2.Runs {
		t.Error("earlier snapshot should be unaffected by replace")
	}
}

func TestMemoryStore_Empty(t *testing.T) {
	ms := &MemoryStore{}
	if got := ms.Matches(); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestMemoryReference(t *testing.T) {
	ref := NewMemoryReference(DefaultSeed())
	ctx := context.Background()

	table, err := ref.PointsTable(ctx)
	if err != nil || len(table) != 10 {
		t.Fatalf("expected 10 standings rows, got %d (%v)", len(table), err)
	}
	table[0].Form[0] = "X"
	again, _ := ref.PointsTable(ctx)
	if again[0].Form[0] == "X" {
		t.Error("points table form shared with caller")
	}

	schedule, err := ref.Schedule(ctx)
	if err != nil || len(schedule) == 0 {
		t.Fatalf("expected schedule rows, got %d (%v)", len(schedule), err)
	}

	fixtures, err := ref.Fixtures(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range fixtures {
		if m.Status == model.StatusUpcoming && m.Score != nil {
			t.Errorf("upcoming match %d should have no score", m.ID)
		}
		if m.Status != model.StatusCompleted && m.Result != "" {
			t.Errorf("match %d has a result but is %s", m.ID, m.Status)
		}
	}

	if err := ref.InvalidateTag(ctx, TagPointsTable); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
