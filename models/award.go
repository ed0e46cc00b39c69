package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Award struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AwardName string             `bson:"awardName" json:"awardName"`
	Logo      string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Winners   []WinnerEntry      `bson:"winners" json:"winners"`
}

// WinnerEntry holds the pandels recognized for one year. Adding pandels
// for an existing year merges into the entry as a set union.
type WinnerEntry struct {
	ID      primitive.ObjectID   `bson:"_id" json:"id"`
	Year    int                  `bson:"year" json:"year"`
	Pandels []primitive.ObjectID `bson:"pandels" json:"pandels"`
}

type AwardView struct {
	ID        primitive.ObjectID `json:"id"`
	AwardName string             `json:"awardName"`
	Logo      string             `json:"logo,omitempty"`
	Winners   []WinnerEntryView  `json:"winners"`
}

type WinnerEntryView struct {
	ID      primitive.ObjectID `json:"id"`
	Year    int                `json:"year"`
	Pandels []PandelRef        `json:"pandels"`
}
