package themes

import (
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pranerpujo/assets"
	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/populate"
	"pranerpujo/rdx"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxFormMemory = 20 << 20

type API struct {
	Store *assets.Store
}

func New(store *assets.Store) *API {
	return &API{Store: store}
}

// parseArtists decodes the artists form field and resolves each
// referenced artist, rejecting unknown ids and roles.
func parseArtists(r *http.Request, w http.ResponseWriter) ([]models.ThemeArtist, bool) {
	raw := r.FormValue("artists")
	if raw == "" {
		return []models.ThemeArtist{}, true
	}

	var input []struct {
		Artist      string   `json:"artist"`
		Roles       []string `json:"roles"`
		Description string   `json:"description"`
	}
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid artists payload")
		return nil, false
	}

	ctx := r.Context()
	parsed := make([]models.ThemeArtist, 0, len(input))
	for _, entry := range input {
		ta := models.ThemeArtist{Roles: entry.Roles, Description: entry.Description}
		for _, role := range entry.Roles {
			if role != models.RoleArtist && role != models.RoleIdolArtist {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist role: "+role)
				return nil, false
			}
		}
		if entry.Artist != "" {
			artistID, err := utils.ParseID(entry.Artist)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id: "+entry.Artist)
				return nil, false
			}
			if err := db.ArtistsCollection.FindOne(ctx, bson.M{"_id": artistID}).Err(); err != nil {
				utils.RespondWithError(w, http.StatusNotFound, "Artist not found for ID: "+entry.Artist)
				return nil, false
			}
			ta.Artist = artistID
		}
		parsed = append(parsed, ta)
	}
	return parsed, true
}

func (api *API) uploadFile(header *multipart.FileHeader, fileName, folder string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	if url, ok := api.Store.Exists(fileName, folder); ok {
		return url, nil
	}
	return api.Store.Upload(data, fileName, folder)
}

// uploadGallery stores a batch of theme gallery images under
// index-suffixed names. Individual failures are logged and dropped;
// the rest of the batch goes through. startIndex keeps names unique
// when appending to an existing gallery.
func (api *API) uploadGallery(headers []*multipart.FileHeader, title string, year, startIndex int) []string {
	urls := make([]string, 0, len(headers))
	for i, header := range headers {
		fileName := assets.ThemeGalleryFileName(title, year, startIndex+i)
		url, err := api.uploadFile(header, fileName, assets.FolderThemeGallery)
		if err != nil {
			log.Printf("theme gallery upload failed (%s): %v", fileName, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// cleanupImages is best-effort: a failed delete is logged, never fatal.
func (api *API) cleanupImages(urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := api.Store.Delete(url); err != nil {
			log.Printf("failed to delete theme image %s: %v", url, err)
		}
	}
}

func (api *API) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	concept := strings.TrimSpace(r.FormValue("concept"))
	yearRaw := strings.TrimSpace(r.FormValue("year"))
	pandelRaw := strings.TrimSpace(r.FormValue("pandel"))
	if title == "" || concept == "" || yearRaw == "" || pandelRaw == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	year, err := strconv.Atoi(yearRaw)
	if err != nil || year < 1900 || year > time.Now().Year() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid year provided")
		return
	}
	pandelID, err := utils.ParseID(pandelRaw)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
		return
	}

	// One theme per (pandel, year)
	err = db.ThemesCollection.FindOne(ctx, bson.M{"pandel": pandelID, "year": year}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Theme already exists for this pandel and year")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": pandelID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pandel not found")
		return
	}

	themeArtists, ok := parseArtists(r, w)
	if !ok {
		return
	}

	var mainImageURL string
	if files := r.MultipartForm.File["mainImageFile"]; len(files) > 0 {
		fileName := assets.ThemeMainFileName(title, year)
		mainImageURL, err = api.uploadFile(files[0], fileName, assets.FolderPandels)
		if err != nil {
			log.Printf("theme main image upload failed: %v", err)
			mainImageURL = ""
		}
	}

	galleryURLs := api.uploadGallery(r.MultipartForm.File["galleryFiles"], title, year, 1)

	theme := models.Theme{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Concept:     concept,
		MainImage:   mainImageURL,
		Year:        year,
		Pandel:      pandelID,
		Artists:     themeArtists,
		Gallery:     galleryURLs,
		YoutubeLink: strings.TrimSpace(r.FormValue("youtubeLink")),
	}

	if _, err := db.ThemesCollection.InsertOne(ctx, theme); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	rdx.Del("dashboard:counts")

	utils.RespondWithJSON(w, http.StatusCreated, bson.M{
		"message": "Theme created successfully",
		"theme":   populate.Theme(ctx, theme),
	})
}

// All returns every theme, latest year first; ties keep insertion order.
func (api *API) All(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := db.ThemesCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	defer cursor.Close(ctx)

	var themes []models.Theme
	if err := cursor.All(ctx, &themes); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if len(themes) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No themes found")
		return
	}

	views := make([]models.ThemeView, 0, len(themes))
	for _, t := range themes {
		views = append(views, populate.Theme(ctx, t))
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

func (api *API) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Search query missing")
		return
	}

	pattern := bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
	filter := bson.M{"$or": bson.A{bson.M{"title": pattern}, bson.M{"concept": pattern}}}

	cursor, err := db.ThemesCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	defer cursor.Close(ctx)

	var themes []models.Theme
	if err := cursor.All(ctx, &themes); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if len(themes) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No matching themes found")
		return
	}

	views := make([]models.ThemeView, 0, len(themes))
	for _, t := range themes {
		views = append(views, populate.Theme(ctx, t))
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

func (api *API) Filter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	q := r.URL.Query()

	yearRaw := strings.TrimSpace(q.Get("year"))
	artistRaw := strings.TrimSpace(q.Get("artist"))
	if yearRaw == "" && artistRaw == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide year or artist filter")
		return
	}

	filter := bson.M{}
	if yearRaw != "" {
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		filter["year"] = year
	}
	if artistRaw != "" {
		artistID, err := utils.ParseID(artistRaw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid artist id")
			return
		}
		filter["artists.artist"] = artistID
	}

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := db.ThemesCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	defer cursor.Close(ctx)

	var themes []models.Theme
	if err := cursor.All(ctx, &themes); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if len(themes) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No themes found with given filters")
		return
	}

	views := make([]models.ThemeView, 0, len(themes))
	for _, t := range themes {
		views = append(views, populate.Theme(ctx, t))
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

func (api *API) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid theme id")
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	var theme models.Theme
	if err := db.ThemesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&theme); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Theme not found")
		return
	}
	origPandel, origYear := theme.Pandel, theme.Year

	if v := strings.TrimSpace(r.FormValue("title")); v != "" {
		theme.Title = v
	}
	if v := strings.TrimSpace(r.FormValue("concept")); v != "" {
		theme.Concept = v
	}
	if v := strings.TrimSpace(r.FormValue("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid year provided")
			return
		}
		theme.Year = year
	}
	if v := strings.TrimSpace(r.FormValue("pandel")); v != "" {
		pandelID, err := utils.ParseID(v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid pandel id")
			return
		}
		theme.Pandel = pandelID
	}
	if v := strings.TrimSpace(r.FormValue("youtubeLink")); v != "" {
		theme.YoutubeLink = v
	}
	if r.FormValue("artists") != "" {
		themeArtists, ok := parseArtists(r, w)
		if !ok {
			return
		}
		theme.Artists = themeArtists
	}

	// Moving the theme to another pandel or year must not land on a
	// slot another theme already fills.
	if theme.Pandel != origPandel || theme.Year != origYear {
		err := db.ThemesCollection.FindOne(ctx, bson.M{
			"pandel": theme.Pandel,
			"year":   theme.Year,
			"_id":    bson.M{"$ne": id},
		}).Err()
		if err == nil {
			utils.RespondWithError(w, http.StatusConflict, "Theme already exists for this pandel and year")
			return
		}
		if err != mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Replace main image: old asset goes first, then the new upload.
	if files := r.MultipartForm.File["mainImageFile"]; len(files) > 0 {
		api.cleanupImages(theme.MainImage)
		fileName := assets.ThemeMainFileName(theme.Title, theme.Year)
		url, err := api.uploadFile(files[0], fileName, assets.FolderPandels)
		if err != nil {
			log.Printf("theme main image upload failed: %v", err)
		} else {
			theme.MainImage = url
		}
	}

	// Gallery: keep what the caller listed in existingGallery, delete
	// the rest, then append fresh uploads.
	keep := theme.Gallery
	if raw := r.FormValue("existingGallery"); raw != "" {
		keep = nil
		if err := json.Unmarshal([]byte(raw), &keep); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid existingGallery payload")
			return
		}
		kept := make(map[string]bool, len(keep))
		for _, url := range keep {
			kept[url] = true
		}
		for _, old := range theme.Gallery {
			if !kept[old] {
				api.cleanupImages(old)
			}
		}
	}
	if newFiles := r.MultipartForm.File["galleryFiles"]; len(newFiles) > 0 {
		keep = append(keep, api.uploadGallery(newFiles, theme.Title, theme.Year, len(keep)+1)...)
	}
	theme.Gallery = keep

	if _, err := db.ThemesCollection.ReplaceOne(ctx, bson.M{"_id": id}, theme); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Theme updated successfully",
		"theme":   populate.Theme(ctx, theme),
	})
}

// Delete removes the theme document first, then its stored images.
// Asset cleanup after a successful delete is best-effort: a crash in
// between leaves orphaned files, not a half-deleted theme.
func (api *API) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	id, err := utils.ParseID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid theme id")
		return
	}

	var theme models.Theme
	if err := db.ThemesCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&theme); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Theme not found")
		return
	}

	api.cleanupImages(theme.MainImage)
	api.cleanupImages(theme.Gallery...)
	rdx.Del("dashboard:counts")

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Theme and associated images deleted successfully"})
}

func (api *API) ByPandelYear(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	cursor, err := db.ThemesCollection.Find(ctx, bson.M{"pandel": pandelID, "year": year})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	defer cursor.Close(ctx)

	var themes []models.Theme
	if err := cursor.All(ctx, &themes); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if len(themes) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No themes found for this year")
		return
	}

	views := make([]models.ThemeView, 0, len(themes))
	for _, t := range themes {
		views = append(views, populate.Theme(ctx, t))
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}
