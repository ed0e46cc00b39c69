package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Gallery struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Photos []string           `bson:"photos" json:"photos"`
	Video  string             `bson:"video,omitempty" json:"video,omitempty"`
	Pandel primitive.ObjectID `bson:"pandel" json:"pandel"`
	Year   int                `bson:"year" json:"year"`
}

// GalleryView carries the populated pandel projection.
type GalleryView struct {
	ID     primitive.ObjectID `json:"id"`
	Photos []string           `json:"photos"`
	Video  string             `json:"video,omitempty"`
	Pandel *PandelRef         `json:"pandel"`
	Year   int                `json:"year"`
}
