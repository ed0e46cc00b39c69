package routes

import (
	"net/http"

	"pranerpujo/artists"
	"pranerpujo/auth"
	"pranerpujo/awards"
	"pranerpujo/dashboard"
	"pranerpujo/gallery"
	"pranerpujo/geo"
	"pranerpujo/middleware"
	"pranerpujo/pandels"
	"pranerpujo/ratelim"
	"pranerpujo/themes"
	"pranerpujo/utils"

	"github.com/julienschmidt/httprouter"
)

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/admin/signup", rl.Limit(auth.Signup))
	router.POST("/api/admin/login", rl.Limit(auth.Login))
	router.GET("/api/admin/profile", middleware.Authenticate(auth.Profile))
}

// pandelGet multiplexes the pandel GET subtree. httprouter keeps one
// tree per method and rejects a static segment next to a wildcard, so
// /api/pandel/search and /api/pandel/:id cannot be registered side by
// side; the reserved first segments are routed here instead.
func pandelGet(api *pandels.API) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		switch ps.ByName("id") {
		case "search":
			api.Search(w, r, ps)
		case "filter":
			api.Filter(w, r, ps)
		case "heritage":
			api.Heritage(w, r, ps)
		default:
			api.Get(w, r, ps)
		}
	}
}

func pandelGetSub(api *pandels.API) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sub := ps.ByName("sub")
		switch ps.ByName("id") {
		case "zone":
			api.ByZone(w, r, httprouter.Params{{Key: "zone", Value: sub}})
			return
		case "type":
			api.ByType(w, r, httprouter.Params{{Key: "type", Value: sub}})
			return
		case "export":
			if sub == "pdf" {
				middleware.Authenticate(api.ExportPDF)(w, r, ps)
				return
			}
		default:
			if sub == "qr" {
				api.QR(w, r, ps)
				return
			}
		}
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	}
}

func AddPandelRoutes(router *httprouter.Router, api *pandels.API, rl *ratelim.RateLimiter) {
	router.POST("/api/pandel/create", rl.Limit(middleware.Authenticate(api.Create)))
	router.GET("/api/pandel", api.List)
	router.GET("/api/pandel/:id", pandelGet(api))
	router.GET("/api/pandel/:id/:sub", pandelGetSub(api))
	router.PUT("/api/pandel/update/:id", rl.Limit(middleware.Authenticate(api.Update)))
	router.DELETE("/api/pandel/delete/:id", rl.Limit(middleware.Authenticate(api.Delete)))
}

// artistPost shares the POST wildcard with the work sub-resource;
// "create" is the only reserved segment.
func artistPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == "create" {
		artists.Create(w, r, ps)
		return
	}
	utils.RespondWithError(w, http.StatusNotFound, "Not found")
}

func AddArtistRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/artist/:id", rl.Limit(middleware.Authenticate(artistPost)))
	router.GET("/api/artist", artists.List)
	router.GET("/api/artist/:id", artists.Get)
	router.PUT("/api/artist/:id", rl.Limit(middleware.Authenticate(artists.Update)))
	router.DELETE("/api/artist/:id", rl.Limit(middleware.Authenticate(artists.Delete)))

	router.POST("/api/artist/:id/work", rl.Limit(middleware.Authenticate(artists.AddWork)))
	router.PUT("/api/artist/:id/work/:workId", rl.Limit(middleware.Authenticate(artists.UpdateWork)))
	router.DELETE("/api/artist/:id/work/:workId", rl.Limit(middleware.Authenticate(artists.DeleteWork)))
}

func AddThemeRoutes(router *httprouter.Router, api *themes.API, rl *ratelim.RateLimiter) {
	router.POST("/api/theme/create", rl.Limit(middleware.Authenticate(api.Create)))
	router.GET("/api/theme/all", api.All)
	router.GET("/api/theme/search", api.Search)
	router.GET("/api/theme/filter", api.Filter)
	router.GET("/api/theme/pandel/:pandelId/year/:year", api.ByPandelYear)
	router.PUT("/api/theme/:id", rl.Limit(middleware.Authenticate(api.Update)))
	router.DELETE("/api/theme/:id", rl.Limit(middleware.Authenticate(api.Delete)))
}

func AddGalleryRoutes(router *httprouter.Router, api *gallery.API, rl *ratelim.RateLimiter) {
	router.POST("/api/gallery/upload", rl.Limit(middleware.Authenticate(api.Upload)))
	router.PUT("/api/gallery/update/:id", rl.Limit(middleware.Authenticate(api.Update)))
	router.GET("/api/gallery/all", api.All)
	router.DELETE("/api/gallery/delete/:id", rl.Limit(middleware.Authenticate(api.Delete)))
	router.GET("/api/gallery/photos/:pandelId/:year", api.Photos)
	router.GET("/api/gallery/video/:pandelId/:year", api.Video)
}

func AddAwardRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/awards", rl.Limit(middleware.Authenticate(awards.Create)))
	router.GET("/api/awards", awards.List)
	router.GET("/api/awards/:id", awards.Get)
	router.PUT("/api/awards/:id", rl.Limit(middleware.Authenticate(awards.Update)))
	router.DELETE("/api/awards/:id", rl.Limit(middleware.Authenticate(awards.Delete)))

	router.POST("/api/awards/:id/yearwise", rl.Limit(middleware.Authenticate(awards.Yearwise)))
	router.GET("/api/awards/:id/year/:year", awards.YearLookup)
	router.PUT("/api/awards/:id/winner/:winnerId", rl.Limit(middleware.Authenticate(awards.UpdateWinner)))
	router.DELETE("/api/awards/:id/winner/:winnerId", rl.Limit(middleware.Authenticate(awards.DeleteWinner)))
}

func AddDashboardRoutes(router *httprouter.Router) {
	router.GET("/api/dashboard/counts", dashboard.GetCounts)
}

func AddMapRoutes(router *httprouter.Router) {
	router.GET("/api/map/route", geo.Route)
}

// AddStaticRoutes serves the asset store's upload directory; the URLs
// written into documents resolve here.
func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}
