package geo

import (
	"fmt"
	"net/http"
	"strconv"

	"pranerpujo/db"
	"pranerpujo/models"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Route answers /api/map/route: straight-line distance from a start
// coordinate to a pandel.
func Route(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	q := r.URL.Query()

	startLat, errLat := strconv.ParseFloat(q.Get("startLat"), 64)
	startLng, errLng := strconv.ParseFloat(q.Get("startLng"), 64)
	if errLat != nil || errLng != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "startLat and startLng must be numeric")
		return
	}

	destID, err := utils.ParseID(q.Get("destId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid destination id")
		return
	}

	var dest models.Pandel
	if err := db.PandelsCollection.FindOne(ctx, bson.M{"_id": destID}).Decode(&dest); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Destination not found")
		return
	}

	distance := DistanceKm(startLat, startLng, dest.Location.Latitude, dest.Location.Longitude)

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"from":        bson.M{"lat": startLat, "lng": startLng},
		"to":          dest.Location,
		"destination": dest.Name,
		"distance":    fmt.Sprintf("%.2f km", distance),
	})
}
