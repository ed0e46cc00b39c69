package gallery

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"

	"pranerpujo/assets"
	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/populate"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxFormMemory = 32 << 20

type API struct {
	Store *assets.Store
}

func New(store *assets.Store) *API {
	return &API{Store: store}
}

// SortByPandelName orders gallery views by the populated pandel name,
// case-insensitive; entries without a resolved pandel sink to the end.
func SortByPandelName(views []models.GalleryView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].Pandel, views[j].Pandel
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// NextPhotoIndex returns one past the highest -photo-N suffix among the
// stored photo URLs. Slice length is not enough: after a removal the
// remaining photos keep their original indexes, and reusing a live
// index would make the upload collide with a kept file's name.
func NextPhotoIndex(photos []string) int {
	max := 0
	for _, url := range photos {
		base := strings.TrimSuffix(path.Base(url), path.Ext(url))
		marker := strings.LastIndex(base, "-photo-")
		if marker < 0 {
			continue
		}
		if n, err := strconv.Atoi(base[marker+len("-photo-"):]); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// uploadPhotos stores a batch of pandel photos under index-suffixed
// names. A failed file is logged and skipped so one bad upload does
// not sink the batch. startIndex keeps names unique across updates.
func (api *API) uploadPhotos(r *http.Request, pandelID primitive.ObjectID, year, startIndex int) []string {
	urls := []string{}
	if r.MultipartForm == nil {
		return urls
	}
	for i, header := range r.MultipartForm.File["photos"] {
		fileName := assets.GalleryPhotoFileName(pandelID.Hex(), year, startIndex+i)
		file, err := header.Open()
		if err != nil {
			log.Printf("gallery photo open failed (%s): %v", fileName, err)
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			log.Printf("gallery photo read failed (%s): %v", fileName, err)
			continue
		}
		if url, ok := api.Store.Exists(fileName, assets.FolderPandels); ok {
			urls = append(urls, url)
			continue
		}
		url, err := api.Store.Upload(data, fileName, assets.FolderPandels)
		if err != nil {
			log.Printf("gallery photo upload failed (%s): %v", fileName, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func (api *API) cleanupPhotos(urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := api.Store.Delete(url); err != nil {
			log.Printf("failed to delete gallery photo %s: %v", url, err)
		}
	}
}

func (api *API) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	pandelRaw := strings.TrimSpace(r.FormValue("pandel"))
	yearRaw := strings.TrimSpace(r.FormValue("year"))
	if pandelRaw == "" || yearRaw == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Pandel and year are required")
		return
	}
	pandelID, err := utils.ParseID(pandelRaw)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": pandelID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel not found")
		return
	}

	// One gallery per (pandel, year)
	err = db.GalleryCollection.FindOne(ctx, bson.M{"pandel": pandelID, "year": year}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Gallery already exists for this pandel and year")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	photos := api.uploadPhotos(r, pandelID, year, 1)
	gallery := models.Gallery{
		ID:     primitive.NewObjectID(),
		Photos: photos,
		Video:  strings.TrimSpace(r.FormValue("video")),
		Pandel: pandelID,
		Year:   year,
	}

	if _, err := db.GalleryCollection.InsertOne(ctx, gallery); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, bson.M{
		"message": "Gallery uploaded successfully",
		"gallery": populate.Gallery(ctx, gallery),
	})
}

func (api *API) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gallery id")
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	var gallery models.Gallery
	if err := db.GalleryCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&gallery); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Gallery not found")
		return
	}

	nextIndex := NextPhotoIndex(gallery.Photos)

	origPandel, origYear := gallery.Pandel, gallery.Year
	if v := strings.TrimSpace(r.FormValue("pandel")); v != "" {
		pandelID, err := utils.ParseID(v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
			return
		}
		gallery.Pandel = pandelID
	}
	if v := strings.TrimSpace(r.FormValue("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		gallery.Year = year
	}
	if gallery.Pandel != origPandel || gallery.Year != origYear {
		err := db.GalleryCollection.FindOne(ctx, bson.M{
			"pandel": gallery.Pandel,
			"year":   gallery.Year,
			"_id":    bson.M{"$ne": id},
		}).Err()
		if err == nil {
			utils.RespondWithError(w, http.StatusConflict, "Gallery already exists for this pandel and year")
			return
		} else if err != mongo.ErrNoDocuments {
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Database error", err)
			return
		}
	}

	if raw := r.FormValue("removePhotos"); raw != "" {
		var remove []string
		if err := json.Unmarshal([]byte(raw), &remove); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid removePhotos payload")
			return
		}
		drop := make(map[string]bool, len(remove))
		for _, url := range remove {
			drop[url] = true
		}
		kept := gallery.Photos[:0]
		for _, url := range gallery.Photos {
			if drop[url] {
				api.cleanupPhotos(url)
			} else {
				kept = append(kept, url)
			}
		}
		gallery.Photos = kept
	}

	gallery.Photos = append(gallery.Photos, api.uploadPhotos(r, gallery.Pandel, gallery.Year, nextIndex)...)

	if v := strings.TrimSpace(r.FormValue("video")); v != "" {
		gallery.Video = v
	}

	if _, err := db.GalleryCollection.ReplaceOne(ctx, bson.M{"_id": id}, gallery); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Gallery updated successfully",
		"gallery": populate.Gallery(ctx, gallery),
	})
}

func (api *API) All(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.GalleryCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	defer cursor.Close(ctx)

	var galleries []models.Gallery
	if err := cursor.All(ctx, &galleries); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if len(galleries) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No galleries found")
		return
	}

	views := make([]models.GalleryView, 0, len(galleries))
	for _, g := range galleries {
		views = append(views, populate.Gallery(ctx, g))
	}
	SortByPandelName(views)

	utils.RespondWithJSON(w, http.StatusOK, views)
}

func (api *API) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gallery id")
		return
	}

	var gallery models.Gallery
	if err := db.GalleryCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&gallery); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Gallery not found")
		return
	}

	api.cleanupPhotos(gallery.Photos...)

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Gallery and associated photos deleted successfully"})
}

func (api *API) Photos(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	pandelID, err := utils.ParseID(ps.ByName("pandelId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}
	year, err := strconv.Atoi(ps.ByName("year"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	var gallery models.Gallery
	err = db.GalleryCollection.FindOne(ctx, bson.M{"pandel": pandelID, "year": year}).Decode(&gallery)
	if err != nil || len(gallery.Photos) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No photos found for this pandel and year")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"photos": gallery.Photos})
}

func (api *API) Video(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	pandelID, err := utils.ParseID(ps.ByName("pandelId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}
	year, err := strconv.Atoi(ps.ByName("year"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	var gallery models.Gallery
	err = db.GalleryCollection.FindOne(ctx, bson.M{"pandel": pandelID, "year": year}).Decode(&gallery)
	if err != nil || gallery.Video == "" {
		utils.RespondWithError(w, http.StatusNotFound, "No video found for this pandel and year")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"video": gallery.Video})
}
