package models

import "testing"

func TestValidPandelZone(t *testing.T) {
	for _, zone := range PandelZones {
		if !ValidPandelZone(zone) {
			t.Errorf("zone %q should be valid", zone)
		}
	}
	for _, bad := range []string{"", "north kolkata", "Howrah"} {
		if ValidPandelZone(bad) {
			t.Errorf("zone %q should be invalid", bad)
		}
	}
}

func TestValidPandelType(t *testing.T) {
	if !ValidPandelType(TypeBarowari) || !ValidPandelType(TypeBonediBari) {
		t.Error("known types should be valid")
	}
	if ValidPandelType("Community") {
		t.Error("unknown type accepted")
	}
}

func TestValidArtistRole(t *testing.T) {
	for _, role := range ArtistRoles {
		if !ValidArtistRole(role) {
			t.Errorf("role %q should be valid", role)
		}
	}
	if ValidArtistRole("Sculptor") {
		t.Error("unknown role accepted")
	}
}
