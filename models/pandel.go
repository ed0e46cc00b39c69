package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Pandel struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Location       Location           `bson:"location" json:"location"`
	Logo           string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Address        string             `bson:"address" json:"address"`
	Founded        int                `bson:"founded,omitempty" json:"founded,omitempty"`
	Type           string             `bson:"type" json:"type"`
	Zone           string             `bson:"zone" json:"zone"`
	HeritageStatus bool               `bson:"heritageStatus" json:"heritageStatus"`
	NearestLoc     NearestLocation    `bson:"nearestLocation,omitempty" json:"nearestLocation,omitempty"`
	ContactNumbers []string           `bson:"contactNumbers,omitempty" json:"contactNumbers,omitempty"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	SocialLinks    SocialLinks        `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Location struct {
	City      string  `bson:"city" json:"city"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type NearestLocation struct {
	Metro   string `bson:"metro,omitempty" json:"metro,omitempty"`
	Railway string `bson:"railway,omitempty" json:"railway,omitempty"`
	Bus     string `bson:"bus,omitempty" json:"bus,omitempty"`
}

type SocialLinks struct {
	Facebook string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
}

// PandelRef is the minimal projection used when a pandel is resolved
// from a reference on another entity.
type PandelRef struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Zone    string             `bson:"zone" json:"zone"`
	Logo    string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Address string             `bson:"address" json:"address"`
}

const (
	TypeBarowari   = "Barowari"
	TypeBonediBari = "Bonedi Bari"
)

var PandelTypes = []string{TypeBarowari, TypeBonediBari}

var PandelZones = []string{
	"North Kolkata",
	"South Kolkata",
	"North & East City",
	"Behala",
	"Haridevpur & Others",
	"SaltLake & Central",
	"Bonedi Bari",
}

func ValidPandelType(t string) bool {
	for _, v := range PandelTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidPandelZone(z string) bool {
	for _, v := range PandelZones {
		if v == z {
			return true
		}
	}
	return false
}
