package artists

import (
	"testing"

	"pranerpujo/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSortWorksByYear(t *testing.T) {
	works := []models.Work{
		{ID: primitive.NewObjectID(), Year: 2024},
		{ID: primitive.NewObjectID(), Year: 2019},
		{ID: primitive.NewObjectID(), Year: 2022},
	}
	SortWorksByYear(works)

	years := []int{works[0].Year, works[1].Year, works[2].Year}
	if years[0] != 2019 || years[1] != 2022 || years[2] != 2024 {
		t.Fatalf("works not sorted ascending: %v", years)
	}
}

func TestSortWorksByYearStable(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	works := []models.Work{
		{ID: a, Year: 2024},
		{ID: b, Year: 2024},
	}
	SortWorksByYear(works)
	if works[0].ID != a || works[1].ID != b {
		t.Fatal("equal years must keep insertion order")
	}
}
