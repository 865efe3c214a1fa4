package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripcraft/attractions"
	"tripcraft/auth"
	"tripcraft/autocom"
	"tripcraft/events"
	"tripcraft/home"
	"tripcraft/imgproxy"
	"tripcraft/itinerary"
	"tripcraft/middleware"
	"tripcraft/models"
	"tripcraft/profile"
	"tripcraft/ratelim"
	"tripcraft/rides"
)

// Deps carries the handlers and middleware the routes are built from.
type Deps struct {
	Auth        *middleware.Auth
	RateLimiter *ratelim.RateLimiter

	Login       *auth.Handler
	Events      *events.Handler
	Attractions *attractions.Handler
	Rides       *rides.Handler
	Itinerary   *itinerary.Handler
	Home        *home.Handler
	Profile     *profile.Handler
	Suggester   *autocom.Suggester
	Images      *imgproxy.Proxy
}

// New builds the router with every API route plus /health and /metrics.
func New(d Deps) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	AddAuthRoutes(router, d)
	AddProfileRoutes(router, d)
	AddEventsRoutes(router, d)
	AddAttractionRoutes(router, d)
	AddRideRoutes(router, d)
	AddItineraryRoutes(router, d)
	AddHomeRoutes(router, d)
	AddUtilityRoutes(router, d)
	return router
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("200"))
}

func AddAuthRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/auth/login", d.RateLimiter.Limit(d.Login.Login))
	router.GET("/api/users", d.Auth.RequireRole(d.Login.ListUsers, models.RoleAdmin))
}

func AddProfileRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/profile", d.Auth.Authenticate(d.Profile.GetProfile))
	router.GET("/api/routes", d.Auth.Authenticate(d.Itinerary.ListRoutes))
	router.POST("/api/routes", d.Auth.Authenticate(d.Itinerary.CreateRoute))
	router.GET("/api/routes/:id", d.Auth.Authenticate(d.Itinerary.GetRoute))
	router.DELETE("/api/routes/:id", d.Auth.Authenticate(d.Itinerary.DeleteRoute))
}

func AddEventsRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/events", d.Events.List)
	router.POST("/api/events", d.Auth.RequireRole(d.Events.Create, models.RoleProvider, models.RoleAdmin))
	router.GET("/api/events/:id", d.Events.Get)
	router.DELETE("/api/events/:id", d.Auth.RequireRole(d.Events.Delete, models.RoleAdmin))
}

func AddAttractionRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/attractions", d.Attractions.List)
	router.GET("/api/attractions/:id", d.Attractions.Get)
}

func AddRideRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/travel-plans", d.Rides.List)
	router.POST("/api/travel-plans", d.Auth.Authenticate(d.Rides.Create))
	router.POST("/api/travel-plans/:id/join", d.Auth.Authenticate(d.Rides.Join))
	router.GET("/api/travel-plans/:id/updates", d.Rides.Updates)
}

func AddItineraryRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/itinerary", d.RateLimiter.Limit(d.Auth.OptionalAuth(d.Itinerary.Generate)))
	router.POST("/api/itinerary/pdf", d.RateLimiter.Limit(d.Itinerary.PDF))
	router.POST("/api/estimate", d.Itinerary.Estimate)
}

func AddHomeRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/regions", d.Home.Regions)
	router.GET("/api/info", home.GetInfo)
	router.GET("/api/partners", home.GetPartners)
	router.POST("/api/companions/search", home.SearchCompanions)
}

func AddUtilityRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/autocomplete", d.Suggester.Handler)
	router.GET("/api/img", d.RateLimiter.Limit(d.Images.Handler))
}
