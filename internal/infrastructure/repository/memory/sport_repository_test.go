package memory

import (
	"context"
	"testing"
)

func TestSportRepository_ListPreservesSeedOrder(t *testing.T) {
	t.Parallel()

	repo := NewSportRepository(SeedSports())
	sports, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list sports: %v", err)
	}

	if len(sports) != 4 {
		t.Fatalf("expected four seeded sports, got %d", len(sports))
	}
	if sports[0].ID != SportIDNHL {
		t.Fatalf("expected nhl first, got %s", sports[0].ID)
	}
}

func TestSportRepository_GetByID(t *testing.T) {
	t.Parallel()

	repo := NewSportRepository(SeedSports())

	s, ok, err := repo.GetByID(context.Background(), SportIDMLB)
	if err != nil {
		t.Fatalf("get sport: %v", err)
	}
	if !ok {
		t.Fatalf("expected mlb to exist")
	}
	if s.Label != "MLB - Baseball" {
		t.Fatalf("unexpected label: %s", s.Label)
	}

	if _, ok, _ := repo.GetByID(context.Background(), "cricket"); ok {
		t.Fatalf("expected unknown sport to miss")
	}
}
