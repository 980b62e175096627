package main

import (
	"board-view-api/internal/auth"
	"board-view-api/internal/boardview"
	"board-view-api/internal/cache"
	"board-view-api/internal/config"
	"board-view-api/internal/consent"
	"board-view-api/internal/database"
	"board-view-api/internal/handlers"
	"board-view-api/internal/models"
	"board-view-api/internal/mover"
	"board-view-api/internal/realtime"
	"board-view-api/internal/routes"
	"board-view-api/internal/store"
	"board-view-api/internal/upstream"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	auth.Configure(auth.Settings{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	})

	// Init database
	if err := database.InitDB(cfg.DatabasePath, cfg.Debug); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	backend := upstream.New(cfg.UpstreamURL, cfg.UpstreamTimeout, nil)

	stop := make(chan struct{})
	defer close(stop)

	snapshots := cache.NewMemoryCache[*models.Board]()
	go snapshots.Janitor(cfg.SnapshotTTL, stop)

	var viewCache cache.Cache[boardview.ViewState]
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("Invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		viewCache = cache.NewRedisCache[boardview.ViewState](rdb, "board-view:state:", log.StandardLogger())
		log.WithField("addr", opts.Addr).Info("View states stored in Redis")
	} else {
		mem := cache.NewMemoryCache[boardview.ViewState]()
		go mem.Janitor(cfg.ViewStateTTL, stop)
		viewCache = mem
	}

	boards := store.NewBoards(snapshots, backend, cfg.SnapshotTTL)
	hub := realtime.NewHub(log.WithField("component", "realtime"))

	h := &handlers.Handlers{
		Boards: boards,
		Views:  store.NewViewStates(viewCache, cfg.ViewStateTTL),
		Mover: mover.New(boards, backend, hub, mover.Options{Retries: cfg.MoveRetries},
			log.WithField("component", "mover")),
		Consent: consent.New(backend, database.NewLocalStore(database.GetDB()), nil,
			log.WithField("component", "consent")),
		Hub:      hub,
		PageSize: cfg.PageSize,
		Logger:   log.WithField("component", "http"),
	}

	// Setup the routes
	ginRoutes := routes.SetupRoutes(h)

	log.WithFields(log.Fields{
		"addr":     cfg.Addr(),
		"upstream": cfg.UpstreamURL,
	}).Info("Board view service starting")

	if err := ginRoutes.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
