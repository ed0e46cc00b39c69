package awards

import (
	"testing"

	"pranerpujo/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMergeWinnersNewYear(t *testing.T) {
	p1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()

	merged := MergeWinners(nil, 2024, []primitive.ObjectID{p1, p2, p1})
	if len(merged) != 1 {
		t.Fatalf("expected one entry, got %d", len(merged))
	}
	entry := merged[0]
	if entry.Year != 2024 {
		t.Fatalf("wrong year: %d", entry.Year)
	}
	if len(entry.Pandels) != 2 || entry.Pandels[0] != p1 || entry.Pandels[1] != p2 {
		t.Fatalf("expected deduplicated [p1 p2], got %v", entry.Pandels)
	}
	if entry.ID.IsZero() {
		t.Fatal("new entry must get an id")
	}
}

func TestMergeWinnersUnionsExistingYear(t *testing.T) {
	p1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()
	p3 := primitive.NewObjectID()

	existing := []models.WinnerEntry{
		{ID: primitive.NewObjectID(), Year: 2023, Pandels: []primitive.ObjectID{p1}},
		{ID: primitive.NewObjectID(), Year: 2024, Pandels: []primitive.ObjectID{p1, p2}},
	}

	merged := MergeWinners(existing, 2024, []primitive.ObjectID{p2, p3})
	if len(merged) != 2 {
		t.Fatalf("expected two entries, got %d", len(merged))
	}
	if len(merged[0].Pandels) != 1 {
		t.Fatal("2023 entry must be untouched")
	}
	got := merged[1].Pandels
	if len(got) != 3 || got[0] != p1 || got[1] != p2 || got[2] != p3 {
		t.Fatalf("expected union [p1 p2 p3], got %v", got)
	}
}

func TestMergeWinnersIdempotent(t *testing.T) {
	p1 := primitive.NewObjectID()
	ids := []primitive.ObjectID{p1}

	merged := MergeWinners(nil, 2024, ids)
	merged = MergeWinners(merged, 2024, ids)
	if len(merged) != 1 || len(merged[0].Pandels) != 1 {
		t.Fatalf("repeat merge changed result: %v", merged)
	}
}
