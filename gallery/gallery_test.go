package gallery

import (
	"testing"

	"pranerpujo/models"
)

func TestSortByPandelName(t *testing.T) {
	views := []models.GalleryView{
		{Pandel: &models.PandelRef{Name: "delta Sangha"}},
		{Pandel: nil},
		{Pandel: &models.PandelRef{Name: "Alpha Club"}},
		{Pandel: &models.PandelRef{Name: "beta Committee"}},
	}
	SortByPandelName(views)

	want := []string{"Alpha Club", "beta Committee", "delta Sangha"}
	for i, name := range want {
		if views[i].Pandel == nil || views[i].Pandel.Name != name {
			t.Fatalf("position %d: expected %q, got %+v", i, name, views[i].Pandel)
		}
	}
	if views[3].Pandel != nil {
		t.Fatal("unresolved pandel must sort last")
	}
}

func TestNextPhotoIndex(t *testing.T) {
	if got := NextPhotoIndex(nil); got != 1 {
		t.Fatalf("empty gallery should start at 1, got %d", got)
	}

	// photo 2 was removed; the next index must step past the surviving
	// photo 3, not reuse its name
	photos := []string{
		"/static/uploads/pandels/507f1f77bcf86cd799439011-2024-photo-1.jpg",
		"/static/uploads/pandels/507f1f77bcf86cd799439011-2024-photo-3.jpg",
	}
	if got := NextPhotoIndex(photos); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestNextPhotoIndexIgnoresForeignNames(t *testing.T) {
	photos := []string{
		"/static/uploads/pandels/logo_test_sangha.png",
		"not-a-url",
	}
	if got := NextPhotoIndex(photos); got != 1 {
		t.Fatalf("unrecognized names must not affect the index, got %d", got)
	}
}
