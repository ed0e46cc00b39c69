package utils

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID validates an id path/query parameter before it ever reaches
// the store. Malformed ids are a 400, not a failed query.
func ParseID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(s))
}

var slugPattern = regexp.MustCompile(`[^a-z0-9_\-]`)

// Slugify lowercases a name and collapses it to filename-safe runes.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	return slugPattern.ReplaceAllString(s, "")
}

// FormInt reads an integer form value; returns 0 when absent or invalid.
func FormInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return v
}

