package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"pranerpujo/db"
	"pranerpujo/rdx"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const countsCacheKey = "dashboard:counts"

type Counts struct {
	Pandals int64 `json:"pandals"`
	Themes  int64 `json:"themes"`
	Artists int64 `json:"artists"`
}

// GetCounts serves the admin dashboard headline numbers, cached in
// redis for a minute so repeated loads skip three collection counts.
func GetCounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if cached := rdx.Get(countsCacheKey); cached != "" {
		var counts Counts
		if json.Unmarshal([]byte(cached), &counts) == nil {
			utils.RespondWithJSON(w, http.StatusOK, counts)
			return
		}
	}

	pandals, err := db.PandelsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	themes, err := db.ThemesCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	artists, err := db.ArtistsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	counts := Counts{Pandals: pandals, Themes: themes, Artists: artists}
	if data, err := json.Marshal(counts); err == nil {
		rdx.SetWithExpiry(countsCacheKey, string(data), time.Minute)
	}

	utils.RespondWithJSON(w, http.StatusOK, counts)
}
