package artists

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/populate"
	"pranerpujo/rdx"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SortWorksByYear orders works ascending by year, keeping insertion
// order for equal years.
func SortWorksByYear(works []models.Work) {
	sort.SliceStable(works, func(i, j int) bool {
		return works[i].Year < works[j].Year
	})
}

func Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Bio   string `json:"bio"`
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if input.Role == "" {
		input.Role = models.RoleOthers
	}
	if !models.ValidArtistRole(input.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist role")
		return
	}

	artist := models.Artist{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Role:      input.Role,
		Bio:       input.Bio,
		Image:     input.Image,
		Works:     []models.Work{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := db.ArtistsCollection.InsertOne(ctx, artist); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	rdx.Del("dashboard:counts")

	utils.RespondWithJSON(w, http.StatusCreated, bson.M{
		"message": "Artist created successfully",
		"artist":  artist,
	})
}

func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.ArtistsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	defer cursor.Close(ctx)

	artists := []models.Artist{}
	if err := cursor.All(ctx, &artists); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, artists)
}

func Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	var artist models.Artist
	if err := db.ArtistsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&artist); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Artist not found")
		return
	}

	SortWorksByYear(artist.Works)

	view := models.ArtistView{
		ID:        artist.ID,
		Name:      artist.Name,
		Role:      artist.Role,
		Bio:       artist.Bio,
		Image:     artist.Image,
		Works:     make([]models.WorkView, 0, len(artist.Works)),
		CreatedAt: artist.CreatedAt,
		UpdatedAt: artist.UpdatedAt,
	}
	for _, work := range artist.Works {
		view.Works = append(view.Works, models.WorkView{
			ID:          work.ID,
			Year:        work.Year,
			Pandel:      populate.Pandel(ctx, work.Pandel),
			Theme:       populate.ThemeRef(ctx, work.Theme),
			Description: work.Description,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

func Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Role  *string `json:"role"`
		Bio   *string `json:"bio"`
		Image *string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updateData := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		if *input.Name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		updateData["name"] = *input.Name
	}
	if input.Role != nil {
		if !models.ValidArtistRole(*input.Role) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist role")
			return
		}
		updateData["role"] = *input.Role
	}
	if input.Bio != nil {
		updateData["bio"] = *input.Bio
	}
	if input.Image != nil {
		updateData["image"] = *input.Image
	}

	res := db.ArtistsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": updateData},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var updated models.Artist
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Artist not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Artist updated",
		"artist":  updated,
	})
}

func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	res, err := db.ArtistsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Artist not found")
		return
	}
	rdx.Del("dashboard:counts")

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Artist deleted"})
}
