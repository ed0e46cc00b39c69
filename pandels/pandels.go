package pandels

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"pranerpujo/assets"
	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/rdx"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listCacheKey = "pandel:all"
const maxFormMemory = 10 << 20

// API holds the pandel handlers and their asset store.
type API struct {
	Store *assets.Store
}

func New(store *assets.Store) *API {
	return &API{Store: store}
}

func invalidateCaches() {
	rdx.Del(listCacheKey, "dashboard:counts")
}

var errIncompleteLocation = errors.New("location requires city, latitude and longitude")

// parseLocation decodes the location form field. City, latitude and
// longitude are all required; an omitted coordinate is rejected rather
// than silently stored as (0,0).
func parseLocation(raw string) (models.Location, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Location{}, errIncompleteLocation
	}
	var input struct {
		City      string   `json:"city"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return models.Location{}, err
	}
	if strings.TrimSpace(input.City) == "" || input.Latitude == nil || input.Longitude == nil {
		return models.Location{}, errIncompleteLocation
	}
	return models.Location{
		City:      strings.TrimSpace(input.City),
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
	}, nil
}

// uploadLogo stores a pandel logo under a deterministic name derived
// from the pandel name, reusing an existing asset when one matches.
// Failures are logged and the logo is simply omitted.
func (api *API) uploadLogo(r *http.Request, pandelName string) string {
	file, _, err := r.FormFile("logo")
	if err != nil {
		return ""
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("pandel logo read failed: %v", err)
		return ""
	}

	fileName := assets.LogoFileName(pandelName)
	if url, ok := api.Store.Exists(fileName, assets.FolderPandels); ok {
		return url
	}
	url, err := api.Store.Upload(data, fileName, assets.FolderPandels)
	if err != nil {
		log.Printf("pandel logo upload failed: %v", err)
		return ""
	}
	return url
}

func (api *API) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	pandel := models.Pandel{
		ID:             primitive.NewObjectID(),
		Name:           strings.TrimSpace(r.FormValue("name")),
		Address:        strings.TrimSpace(r.FormValue("address")),
		Founded:        utils.FormInt(r, "founded"),
		Type:           strings.TrimSpace(r.FormValue("type")),
		Zone:           strings.TrimSpace(r.FormValue("zone")),
		HeritageStatus: r.FormValue("heritageStatus") == "true",
		Email:          strings.TrimSpace(r.FormValue("email")),
		ContactNumbers: []string{},
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if pandel.Name == "" || pandel.Address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and address are required")
		return
	}
	loc, err := parseLocation(r.FormValue("location"))
	if err != nil {
		if errors.Is(err, errIncompleteLocation) {
			utils.RespondWithError(w, http.StatusBadRequest, "Location city, latitude and longitude are required")
		} else {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid location payload")
		}
		return
	}
	pandel.Location = loc
	if !models.ValidPandelType(pandel.Type) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel type")
		return
	}
	if !models.ValidPandelZone(pandel.Zone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel zone")
		return
	}
	if raw := r.FormValue("nearestLocation"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pandel.NearestLoc); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid nearestLocation payload")
			return
		}
	}
	if raw := r.FormValue("contactNumbers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pandel.ContactNumbers); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid contactNumbers payload")
			return
		}
	}
	if raw := r.FormValue("socialLinks"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pandel.SocialLinks); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid socialLinks payload")
			return
		}
	}

	pandel.Logo = api.uploadLogo(r, pandel.Name)

	if _, err := db.PandelsCollection.InsertOne(ctx, pandel); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	invalidateCaches()

	utils.RespondWithJSON(w, http.StatusCreated, bson.M{
		"message": "Pandel added successfully",
		"pandel":  pandel,
	})
}

func (api *API) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if cached := rdx.Get(listCacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, cached)
		return
	}

	cursor, err := db.PandelsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching pandels", err)
		return
	}
	defer cursor.Close(ctx)

	pandels := []models.Pandel{}
	if err := cursor.All(ctx, &pandels); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error decoding pandels", err)
		return
	}

	if payload, err := json.Marshal(pandels); err == nil {
		rdx.SetWithExpiry(listCacheKey, string(payload), 30*time.Second)
	}

	utils.RespondWithJSON(w, http.StatusOK, pandels)
}

func (api *API) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		utils.RespondWithJSON(w, http.StatusOK, []models.Pandel{})
		return
	}

	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "location": 1, "zone": 1, "type": 1, "logo": 1}).
		SetLimit(10).
		SetSort(bson.M{"name": 1})

	cursor, err := db.PandelsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error searching pandels", err)
		return
	}
	defer cursor.Close(ctx)

	pandels := []models.Pandel{}
	if err := cursor.All(ctx, &pandels); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error searching pandels", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pandels)
}

// FilterQuery builds the Mongo filter for the combined search/zone/type
// endpoint. Kept separate so it can be exercised without a database.
func FilterQuery(search, zone, typ string) bson.M {
	query := bson.M{}
	if s := strings.TrimSpace(search); s != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
	}
	if z := strings.TrimSpace(zone); z != "" {
		query["zone"] = bson.M{"$regex": "^" + regexp.QuoteMeta(z) + "$", "$options": "i"}
	}
	if t := strings.TrimSpace(typ); t != "" {
		query["type"] = bson.M{"$regex": "^" + regexp.QuoteMeta(t) + "$", "$options": "i"}
	}
	return query
}

func (api *API) Filter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	q := r.URL.Query()

	query := FilterQuery(q.Get("search"), q.Get("zone"), q.Get("type"))

	cursor, err := db.PandelsCollection.Find(ctx, query,
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error filtering pandels", err)
		return
	}
	defer cursor.Close(ctx)

	pandels := []models.Pandel{}
	if err := cursor.All(ctx, &pandels); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error filtering pandels", err)
		return
	}
	if len(pandels) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No pandels found for given filters")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pandels)
}

func (api *API) Heritage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.PandelsCollection.Find(ctx, bson.M{"heritageStatus": true},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching heritage pandels", err)
		return
	}
	defer cursor.Close(ctx)

	pandels := []models.Pandel{}
	if err := cursor.All(ctx, &pandels); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching heritage pandels", err)
		return
	}
	if len(pandels) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No heritage pandels found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pandels)
}

func (api *API) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}

	var pandel models.Pandel
	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&pandel); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pandel)
}

func (api *API) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	var existing models.Pandel
	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel not found")
		return
	}

	updateData := bson.M{"updatedAt": time.Now()}

	if v := strings.TrimSpace(r.FormValue("name")); v != "" {
		updateData["name"] = v
		existing.Name = v
	}
	if v := strings.TrimSpace(r.FormValue("address")); v != "" {
		updateData["address"] = v
	}
	if v := r.FormValue("founded"); v != "" {
		updateData["founded"] = utils.FormInt(r, "founded")
	}
	if v := strings.TrimSpace(r.FormValue("type")); v != "" {
		if !models.ValidPandelType(v) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel type")
			return
		}
		updateData["type"] = v
	}
	if v := strings.TrimSpace(r.FormValue("zone")); v != "" {
		if !models.ValidPandelZone(v) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel zone")
			return
		}
		updateData["zone"] = v
	}
	if v := r.FormValue("heritageStatus"); v != "" {
		updateData["heritageStatus"] = v == "true"
	}
	if v := strings.TrimSpace(r.FormValue("email")); v != "" {
		updateData["email"] = v
	}
	if raw := r.FormValue("location"); raw != "" {
		loc, err := parseLocation(raw)
		if err != nil {
			if errors.Is(err, errIncompleteLocation) {
				utils.RespondWithError(w, http.StatusBadRequest, "Location city, latitude and longitude are required")
			} else {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid location payload")
			}
			return
		}
		updateData["location"] = loc
	}
	if raw := r.FormValue("nearestLocation"); raw != "" {
		var near models.NearestLocation
		if err := json.Unmarshal([]byte(raw), &near); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid nearestLocation payload")
			return
		}
		updateData["nearestLocation"] = near
	}
	if raw := r.FormValue("contactNumbers"); raw != "" {
		var numbers []string
		if err := json.Unmarshal([]byte(raw), &numbers); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid contactNumbers payload")
			return
		}
		updateData["contactNumbers"] = numbers
	}
	if raw := r.FormValue("socialLinks"); raw != "" {
		var links models.SocialLinks
		if err := json.Unmarshal([]byte(raw), &links); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid socialLinks payload")
			return
		}
		updateData["socialLinks"] = links
	}

	if logo := api.uploadLogo(r, existing.Name); logo != "" {
		updateData["logo"] = logo
	}

	if _, err := db.PandelsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateData}); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error updating pandel", err)
		return
	}
	invalidateCaches()

	var updated models.Pandel
	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error updating pandel", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Pandel updated successfully",
		"pandel":  updated,
	})
}

// Delete removes a pandel only. Entities referencing it are left in
// place; their pandel reference resolves to null on read.
func (api *API) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}

	res, err := db.PandelsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error deleting pandel", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel not found")
		return
	}
	invalidateCaches()

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Pandel deleted successfully"})
}

func (api *API) ByZone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	zone := ps.ByName("zone")

	cursor, err := db.PandelsCollection.Find(ctx, bson.M{"zone": zone})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching zone-wise pandels", err)
		return
	}
	defer cursor.Close(ctx)

	pandels := []models.Pandel{}
	if err := cursor.All(ctx, &pandels); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching zone-wise pandels", err)
		return
	}
	if len(pandels) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No pandels found in "+zone)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pandels)
}

func (api *API) ByType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	typ := ps.ByName("type")

	cursor, err := db.PandelsCollection.Find(ctx, bson.M{"type": typ})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching type-wise pandels", err)
		return
	}
	defer cursor.Close(ctx)

	pandels := []models.Pandel{}
	if err := cursor.All(ctx, &pandels); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error fetching type-wise pandels", err)
		return
	}
	if len(pandels) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No pandels found for type "+typ)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pandels)
}
