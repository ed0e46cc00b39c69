package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Theme struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Concept     string             `bson:"concept" json:"concept"`
	MainImage   string             `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	Year        int                `bson:"year" json:"year"`
	Pandel      primitive.ObjectID `bson:"pandel" json:"pandel"`
	Artists     []ThemeArtist      `bson:"artists" json:"artists"`
	Gallery     []string           `bson:"gallery" json:"gallery"`
	YoutubeLink string             `bson:"youtubeLink,omitempty" json:"youtubeLink,omitempty"`
}

type ThemeArtist struct {
	Artist      primitive.ObjectID `bson:"artist,omitempty" json:"artist,omitempty"`
	Roles       []string           `bson:"roles,omitempty" json:"roles,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// ThemeRef is the projection used when a theme is resolved from a
// reference on an artist's work.
type ThemeRef struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Year      int                `bson:"year" json:"year"`
	MainImage string             `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
}

// ThemeView is the read shape with references resolved. A deleted
// pandel or artist resolves to null rather than erroring.
type ThemeView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Concept     string             `json:"concept"`
	MainImage   string             `json:"mainImage,omitempty"`
	Year        int                `json:"year"`
	Pandel      *PandelRef         `json:"pandel"`
	Artists     []ThemeArtistView  `json:"artists"`
	Gallery     []string           `json:"gallery"`
	YoutubeLink string             `json:"youtubeLink,omitempty"`
}

type ThemeArtistView struct {
	Artist      *ArtistRef `json:"artist"`
	Roles       []string   `json:"roles,omitempty"`
	Description string     `json:"description,omitempty"`
}
