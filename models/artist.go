package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Artist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role" json:"role"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Works     []Work             `bson:"works" json:"works"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Work is a yearwise contribution, addressable by its own id.
type Work struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Year        int                `bson:"year" json:"year"`
	Pandel      primitive.ObjectID `bson:"pandel,omitempty" json:"pandel,omitempty"`
	Theme       primitive.ObjectID `bson:"theme,omitempty" json:"theme,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// WorkView is a work with its references resolved.
type WorkView struct {
	ID          primitive.ObjectID `json:"id"`
	Year        int                `json:"year"`
	Pandel      *PandelRef         `json:"pandel"`
	Theme       *ThemeRef          `json:"theme"`
	Description string             `json:"description,omitempty"`
}

// ArtistView is the single-artist read shape: works populated and
// sorted ascending by year.
type ArtistView struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Role      string             `json:"role"`
	Bio       string             `json:"bio,omitempty"`
	Image     string             `json:"image,omitempty"`
	Works     []WorkView         `json:"works"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ArtistRef is the projection used when an artist is resolved from a
// reference on a theme.
type ArtistRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Role  string             `bson:"role" json:"role"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}

const (
	RoleArtist     = "Artist"
	RoleIdolArtist = "Idol Artist"

	// RoleOthers is the historical default applied when no role is
	// supplied. It is accepted as a third explicit value.
	RoleOthers = "Others"
)

var ArtistRoles = []string{RoleArtist, RoleIdolArtist, RoleOthers}

func ValidArtistRole(role string) bool {
	for _, v := range ArtistRoles {
		if v == role {
			return true
		}
	}
	return false
}
