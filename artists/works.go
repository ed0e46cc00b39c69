package artists

import (
	"encoding/json"
	"net/http"
	"time"

	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddWork attaches a yearwise work entry. The referenced pandel and
// theme must both exist at creation time.
func AddWork(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	artistID, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	var input struct {
		Year        int    `json:"year"`
		Pandel      string `json:"pandel"`
		Theme       string `json:"theme"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Year == 0 || input.Pandel == "" || input.Theme == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Year, pandel, and theme are required")
		return
	}

	pandelID, err := utils.ParseID(input.Pandel)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}
	themeID, err := utils.ParseID(input.Theme)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid theme id")
		return
	}

	if err := db.ArtistsCollection.FindOne(ctx, bson.M{"_id": artistID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Artist not found")
		return
	}
	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": pandelID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel or Theme not found")
		return
	}
	if err := db.ThemesCollection.FindOne(ctx, bson.M{"_id": themeID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel or Theme not found")
		return
	}

	work := models.Work{
		ID:          primitive.NewObjectID(),
		Year:        input.Year,
		Pandel:      pandelID,
		Theme:       themeID,
		Description: input.Description,
	}

	_, err = db.ArtistsCollection.UpdateOne(ctx, bson.M{"_id": artistID}, bson.M{
		"$push": bson.M{"works": work},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	var artist models.Artist
	if err := db.ArtistsCollection.FindOne(ctx, bson.M{"_id": artistID}).Decode(&artist); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	SortWorksByYear(artist.Works)

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Work added to artist",
		"artist":  artist,
	})
}

// UpdateWork edits one work entry in place without touching siblings.
func UpdateWork(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	artistID, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}
	workID, err := utils.ParseID(ps.ByName("workId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid work id")
		return
	}

	var input struct {
		Year        *int    `json:"year"`
		Pandel      *string `json:"pandel"`
		Theme       *string `json:"theme"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updateData := bson.M{"updatedAt": time.Now()}
	if input.Year != nil {
		updateData["works.$.year"] = *input.Year
	}
	if input.Pandel != nil {
		pandelID, err := utils.ParseID(*input.Pandel)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
			return
		}
		if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": pandelID}).Err(); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Pandel not found")
			return
		}
		updateData["works.$.pandel"] = pandelID
	}
	if input.Theme != nil {
		themeID, err := utils.ParseID(*input.Theme)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid theme id")
			return
		}
		if err := db.ThemesCollection.FindOne(ctx, bson.M{"_id": themeID}).Err(); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Theme not found")
			return
		}
		updateData["works.$.theme"] = themeID
	}
	if input.Description != nil {
		updateData["works.$.description"] = *input.Description
	}

	res, err := db.ArtistsCollection.UpdateOne(ctx,
		bson.M{"_id": artistID, "works._id": workID},
		bson.M{"$set": updateData})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Work entry not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Work updated"})
}

func DeleteWork(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	artistID, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}
	workID, err := utils.ParseID(ps.ByName("workId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid work id")
		return
	}

	res, err := db.ArtistsCollection.UpdateOne(ctx, bson.M{"_id": artistID}, bson.M{
		"$pull": bson.M{"works": bson.M{"_id": workID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Artist not found")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Work entry not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Work removed"})
}
