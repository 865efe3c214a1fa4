package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"tripcraft/attractions"
	"tripcraft/auth"
	"tripcraft/autocom"
	"tripcraft/catalog"
	"tripcraft/config"
	"tripcraft/db"
	"tripcraft/events"
	"tripcraft/home"
	"tripcraft/imgproxy"
	"tripcraft/itinerary"
	"tripcraft/logging"
	"tripcraft/middleware"
	"tripcraft/mq"
	"tripcraft/planner"
	"tripcraft/profile"
	"tripcraft/ratelim"
	"tripcraft/rdx"
	"tripcraft/rides"
	"tripcraft/routes"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		next.ServeHTTP(w, r)
	})
}

// openStores picks Mongo when a URI is configured and the sample memory
// catalog otherwise. The returned close func is never nil.
func openStores(ctx context.Context, cfg *config.Config) (catalog.Store, itinerary.RouteStore, func(context.Context), error) {
	if cfg.Mongo.URI == "" {
		log.Info().Msg("no mongo uri; using in-memory sample catalog")
		return catalog.NewSampleMemory(time.Now()), itinerary.NewMemoryStore(), func(context.Context) {}, nil
	}

	d, err := db.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	regions := catalog.DefaultRegions()
	store := catalog.NewMongo(d, regions, catalog.MongoOptions{
		CacheTTL:        cfg.Catalog.CacheTTL,
		BreakerFailures: cfg.Catalog.BreakerFailures,
		BreakerTimeout:  cfg.Catalog.BreakerTimeout,
	})
	if cfg.Mongo.Seed {
		if err := store.Seed(ctx, catalog.SampleData(time.Now(), regions)); err != nil {
			log.Warn().Err(err).Msg("seeding catalog failed")
		}
	}
	closeFn := func(ctx context.Context) {
		if err := d.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("closing mongo")
		}
	}
	return store, itinerary.NewMongoStore(d.RoutesCollection), closeFn, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	logging.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, routeStore, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening stores")
	}

	redisClient, err := rdx.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; continuing without it")
		redisClient = nil
	}

	suggester := autocom.New(redisClient)
	if evs, err := store.Events(ctx); err != nil {
		log.Warn().Err(err).Msg("loading events for autocomplete")
	} else if atts, err := store.Attractions(ctx); err != nil {
		log.Warn().Err(err).Msg("loading attractions for autocomplete")
	} else if err := suggester.Index(ctx, evs, atts); err != nil {
		log.Warn().Err(err).Msg("indexing autocomplete")
	}

	hub := rides.NewHub()
	go hub.Run()

	bus := mq.NewSeatBus(redisClient, hub.Deliver)
	go func() {
		if err := bus.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("seat update subscriber stopped")
		}
	}()

	authSvc, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing auth")
	}

	router := routes.New(routes.Deps{
		Auth:        middleware.NewAuth(cfg.Auth.JWTSecret),
		RateLimiter: ratelim.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
		Login:       auth.NewHandler(authSvc),
		Events:      events.NewHandler(store, suggester),
		Attractions: attractions.NewHandler(store),
		Rides:       rides.NewHandler(store, hub, bus),
		Itinerary:   itinerary.NewHandler(planner.New(store, cfg.Planner, planner.NewRandSource), routeStore, cfg.Auth.ShareSecret),
		Home:        home.NewHandler(store.Regions()),
		Profile:     profile.NewHandler(store, routeStore),
		Suggester:   suggester,
		Images:      imgproxy.New(nil),
	})

	// CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           logging.Middleware(securityHeaders(corsHandler)),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}
	server.RegisterOnShutdown(func() {
		log.Info().Msg("stopping ride hub")
		hub.Stop()
	})

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	closeStores(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info().Msg("server stopped")
}
