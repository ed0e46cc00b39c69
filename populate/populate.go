// Package populate resolves reference fields to minimal projections at
// read time. A reference to a deleted entity resolves to nil, never an
// error: callers render it as null.
package populate

import (
	"context"

	"pranerpujo/db"
	"pranerpujo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var pandelProjection = bson.M{"name": 1, "zone": 1, "logo": 1, "address": 1}
var artistProjection = bson.M{"name": 1, "role": 1, "image": 1}
var themeProjection = bson.M{"title": 1, "year": 1, "mainImage": 1}

func Pandel(ctx context.Context, id primitive.ObjectID) *models.PandelRef {
	if id.IsZero() {
		return nil
	}
	var ref models.PandelRef
	err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(pandelProjection)).Decode(&ref)
	if err != nil {
		return nil
	}
	return &ref
}

func Artist(ctx context.Context, id primitive.ObjectID) *models.ArtistRef {
	if id.IsZero() {
		return nil
	}
	var ref models.ArtistRef
	err := db.ArtistsCollection.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(artistProjection)).Decode(&ref)
	if err != nil {
		return nil
	}
	return &ref
}

func ThemeRef(ctx context.Context, id primitive.ObjectID) *models.ThemeRef {
	if id.IsZero() {
		return nil
	}
	var ref models.ThemeRef
	err := db.ThemesCollection.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(themeProjection)).Decode(&ref)
	if err != nil {
		return nil
	}
	return &ref
}

// Pandels resolves a reference list, dropping ids that no longer
// resolve rather than erroring.
func Pandels(ctx context.Context, ids []primitive.ObjectID) []models.PandelRef {
	refs := make([]models.PandelRef, 0, len(ids))
	for _, id := range ids {
		if ref := Pandel(ctx, id); ref != nil {
			refs = append(refs, *ref)
		}
	}
	return refs
}

func Theme(ctx context.Context, t models.Theme) models.ThemeView {
	view := models.ThemeView{
		ID:          t.ID,
		Title:       t.Title,
		Concept:     t.Concept,
		MainImage:   t.MainImage,
		Year:        t.Year,
		Pandel:      Pandel(ctx, t.Pandel),
		Artists:     make([]models.ThemeArtistView, 0, len(t.Artists)),
		Gallery:     t.Gallery,
		YoutubeLink: t.YoutubeLink,
	}
	if view.Gallery == nil {
		view.Gallery = []string{}
	}
	for _, ta := range t.Artists {
		view.Artists = append(view.Artists, models.ThemeArtistView{
			Artist:      Artist(ctx, ta.Artist),
			Roles:       ta.Roles,
			Description: ta.Description,
		})
	}
	return view
}

func Gallery(ctx context.Context, g models.Gallery) models.GalleryView {
	view := models.GalleryView{
		ID:     g.ID,
		Photos: g.Photos,
		Video:  g.Video,
		Pandel: Pandel(ctx, g.Pandel),
		Year:   g.Year,
	}
	if view.Photos == nil {
		view.Photos = []string{}
	}
	return view
}

func Award(ctx context.Context, a models.Award) models.AwardView {
	view := models.AwardView{
		ID:        a.ID,
		AwardName: a.AwardName,
		Logo:      a.Logo,
		Winners:   make([]models.WinnerEntryView, 0, len(a.Winners)),
	}
	for _, entry := range a.Winners {
		view.Winners = append(view.Winners, models.WinnerEntryView{
			ID:      entry.ID,
			Year:    entry.Year,
			Pandels: Pandels(ctx, entry.Pandels),
		})
	}
	return view
}
