package pandels

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseLocationRequiresCoordinates(t *testing.T) {
	for _, raw := range []string{
		"",
		`{"city":"Kolkata"}`,
		`{"city":"Kolkata","latitude":22.57}`,
		`{"city":"Kolkata","longitude":88.36}`,
		`{"latitude":22.57,"longitude":88.36}`,
		`{"city":"  ","latitude":22.57,"longitude":88.36}`,
	} {
		if _, err := parseLocation(raw); !errors.Is(err, errIncompleteLocation) {
			t.Errorf("parseLocation(%q) = %v, want errIncompleteLocation", raw, err)
		}
	}

	if _, err := parseLocation(`{"city":"Kolkata","latitude":`); err == nil || errors.Is(err, errIncompleteLocation) {
		t.Errorf("malformed JSON should fail decoding, got %v", err)
	}
}

func TestParseLocationComplete(t *testing.T) {
	loc, err := parseLocation(`{"city":"Kolkata","latitude":22.5726,"longitude":88.3639}`)
	if err != nil {
		t.Fatalf("complete location rejected: %v", err)
	}
	if loc.City != "Kolkata" || loc.Latitude != 22.5726 || loc.Longitude != 88.3639 {
		t.Fatalf("unexpected location: %+v", loc)
	}

	// an explicit zero coordinate is a real position, not an omission
	if _, err := parseLocation(`{"city":"Null Island","latitude":0,"longitude":0}`); err != nil {
		t.Fatalf("explicit zero coordinates rejected: %v", err)
	}
}

func TestFilterQueryEmpty(t *testing.T) {
	q := FilterQuery("", "  ", "")
	if len(q) != 0 {
		t.Fatalf("expected empty query, got %v", q)
	}
}

func TestFilterQueryCombined(t *testing.T) {
	q := FilterQuery("sangha", "South Kolkata", "Barowari")
	if len(q) != 3 {
		t.Fatalf("expected three clauses, got %v", q)
	}

	name := q["name"].(bson.M)
	if name["$regex"] != "sangha" || name["$options"] != "i" {
		t.Fatalf("bad name clause: %v", name)
	}

	// zone and type are exact matches, case-insensitive
	zone := q["zone"].(bson.M)
	if zone["$regex"] != "^South Kolkata$" {
		t.Fatalf("bad zone clause: %v", zone)
	}
	typ := q["type"].(bson.M)
	if typ["$regex"] != "^Barowari$" {
		t.Fatalf("bad type clause: %v", typ)
	}
}

func TestFilterQueryEscapesRegexMeta(t *testing.T) {
	q := FilterQuery("a.b*", "", "")
	name := q["name"].(bson.M)
	if name["$regex"] != `a\.b\*` {
		t.Fatalf("metacharacters not escaped: %v", name["$regex"])
	}
}

func TestShareURL(t *testing.T) {
	t.Setenv("PUBLIC_BASE", "")
	url := ShareURL("507f1f77bcf86cd799439011")
	if url != "http://localhost:8080/pandel/507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected share url: %s", url)
	}
}
