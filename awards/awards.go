package awards

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/populate"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MergeWinners folds a year's winning pandels into the existing winner
// list. An entry for the year gains the new pandels as a set union;
// an unseen year is appended as a fresh entry. Order of existing
// entries and pandels is preserved.
func MergeWinners(entries []models.WinnerEntry, year int, pandels []primitive.ObjectID) []models.WinnerEntry {
	for i, entry := range entries {
		if entry.Year != year {
			continue
		}
		seen := make(map[primitive.ObjectID]bool, len(entry.Pandels))
		for _, id := range entry.Pandels {
			seen[id] = true
		}
		merged := entry.Pandels
		for _, id := range pandels {
			if !seen[id] {
				merged = append(merged, id)
				seen[id] = true
			}
		}
		entries[i].Pandels = merged
		return entries
	}

	deduped := make([]primitive.ObjectID, 0, len(pandels))
	seen := make(map[primitive.ObjectID]bool, len(pandels))
	for _, id := range pandels {
		if !seen[id] {
			deduped = append(deduped, id)
			seen[id] = true
		}
	}
	return append(entries, models.WinnerEntry{
		ID:      primitive.NewObjectID(),
		Year:    year,
		Pandels: deduped,
	})
}

// parsePandelIDs validates a winner list: every id must parse and
// reference a stored pandel.
func parsePandelIDs(w http.ResponseWriter, r *http.Request, raw []string) ([]primitive.ObjectID, bool) {
	ctx := r.Context()
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := utils.ParseID(s)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "One or more pandel IDs are invalid")
			return nil, false
		}
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		count, err := db.PandelsCollection.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Database error", err)
			return nil, false
		}
		if int(count) != len(dedupIDs(ids)) {
			utils.RespondWithError(w, http.StatusBadRequest, "One or more pandel IDs are invalid")
			return nil, false
		}
	}
	return ids, true
}

func dedupIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

func Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input struct {
		AwardName string               `json:"awardName"`
		Logo      string               `json:"logo"`
		Winners   []models.WinnerEntry `json:"winners"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	input.AwardName = strings.TrimSpace(input.AwardName)
	if input.AwardName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Award name is required")
		return
	}

	winners := input.Winners
	if winners == nil {
		winners = []models.WinnerEntry{}
	}
	for i := range winners {
		if winners[i].ID.IsZero() {
			winners[i].ID = primitive.NewObjectID()
		}
	}

	award := models.Award{
		ID:        primitive.NewObjectID(),
		AwardName: input.AwardName,
		Logo:      strings.TrimSpace(input.Logo),
		Winners:   winners,
	}

	if _, err := db.AwardsCollection.InsertOne(ctx, award); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to create award", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, bson.M{
		"message": "Award created successfully",
		"award":   populate.Award(ctx, award),
	})
}

func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.AwardsCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to fetch awards", err)
		return
	}
	defer cursor.Close(ctx)

	var awards []models.Award
	if err := cursor.All(ctx, &awards); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to fetch awards", err)
		return
	}

	views := make([]models.AwardView, 0, len(awards))
	for _, a := range awards {
		views = append(views, populate.Award(ctx, a))
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

func Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid award id")
		return
	}

	var award models.Award
	if err := db.AwardsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&award); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, populate.Award(ctx, award))
}

func Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid award id")
		return
	}

	var input struct {
		AwardName *string `json:"awardName"`
		Logo      *string `json:"logo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	set := bson.M{}
	if input.AwardName != nil {
		name := strings.TrimSpace(*input.AwardName)
		if name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Award name cannot be empty")
			return
		}
		set["awardName"] = name
	}
	if input.Logo != nil {
		set["logo"] = strings.TrimSpace(*input.Logo)
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	res, err := db.AwardsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update award", err)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}

	var award models.Award
	if err := db.AwardsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&award); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update award", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Award updated successfully",
		"award":   populate.Award(ctx, award),
	})
}

func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid award id")
		return
	}

	res, err := db.AwardsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to delete award", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Award deleted successfully"})
}

// Yearwise records a year's winners on an award. Pandels already
// listed for that year are kept; new ones are appended as a set union.
func Yearwise(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid award id")
		return
	}

	var body struct {
		Year    int      `json:"year"`
		Pandels []string `json:"pandels"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Year == 0 || len(body.Pandels) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Year and pandels are required")
		return
	}

	var award models.Award
	if err := db.AwardsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&award); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}

	pandelIDs, ok := parsePandelIDs(w, r, body.Pandels)
	if !ok {
		return
	}

	award.Winners = MergeWinners(award.Winners, body.Year, pandelIDs)

	update := bson.M{"$set": bson.M{"winners": award.Winners}}
	if _, err := db.AwardsCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update yearwise pandels", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Yearwise pandels updated successfully",
		"award":   populate.Award(ctx, award),
	})
}

// YearLookup answers "who won this award in that year".
func YearLookup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid award id")
		return
	}
	year, err := strconv.Atoi(ps.ByName("year"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	var award models.Award
	if err := db.AwardsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&award); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}

	for _, entry := range award.Winners {
		if entry.Year == year {
			utils.RespondWithJSON(w, http.StatusOK, bson.M{
				"awardName": award.AwardName,
				"logo":      award.Logo,
				"year":      year,
				"pandels":   populate.Pandels(ctx, entry.Pandels),
			})
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "No winners found for year "+strconv.Itoa(year))
}

func UpdateWinner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	awardID, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid award id")
		return
	}
	winnerID, err := utils.ParseID(ps.ByName("winnerId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid winner id")
		return
	}

	var body struct {
		Year    *int     `json:"year"`
		Pandels []string `json:"pandels"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	set := bson.M{}
	if body.Year != nil {
		set["winners.$.year"] = *body.Year
	}
	if body.Pandels != nil {
		pandelIDs, ok := parsePandelIDs(w, r, body.Pandels)
		if !ok {
			return
		}
		set["winners.$.pandels"] = pandelIDs
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	filter := bson.M{"_id": awardID, "winners._id": winnerID}
	res, err := db.AwardsCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update winner entry", err)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Award or winner entry not found")
		return
	}

	var award models.Award
	if err := db.AwardsCollection.FindOne(ctx, bson.M{"_id": awardID}).Decode(&award); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update winner entry", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Winner entry updated successfully",
		"award":   populate.Award(ctx, award),
	})
}

func DeleteWinner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	awardID, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid award id")
		return
	}
	winnerID, err := utils.ParseID(ps.ByName("winnerId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid winner id")
		return
	}

	filter := bson.M{"_id": awardID, "winners._id": winnerID}
	update := bson.M{"$pull": bson.M{"winners": bson.M{"_id": winnerID}}}
	res, err := db.AwardsCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to delete winner entry", err)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Award or winner entry not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Winner entry deleted successfully"})
}
