package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emmanueladavize43/Gemini-cupid/internal/config"
	"github.com/emmanueladavize43/Gemini-cupid/internal/repository"
	"github.com/emmanueladavize43/Gemini-cupid/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	ctx := context.Background()

	// Open the key-value backend
	kv, closeKV, err := openKV(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open store")
	}
	defer closeKV()
	log.Info().Str("driver", cfg.Store.Driver).Msg("Store backend ready")

	// Initialize the profile store
	store := repository.NewProfileStore(kv, log.Logger)
	store.Load(ctx)

	// Initialize services
	opts := services.DefaultSessionOptions()
	opts.UndoWindow = cfg.Matching.UndoWindow
	opts.SimulateReciprocity = cfg.Matching.SimulateReciprocity
	opts.LikeProbability = cfg.Matching.LikeProbability
	opts.SuperLikeProbability = cfg.Matching.SuperLikeProbability
	opts.Metrics = services.NewMetrics(prometheus.DefaultRegisterer)

	filters := services.DefaultFilters()
	filters.MaxDistance = cfg.Matching.MaxDistance
	opts.Filters = &filters

	if cfg.AWS.S3Bucket != "" {
		voice, err := services.NewS3VoiceStore(ctx, services.S3Options{
			Region:    cfg.AWS.Region,
			Bucket:    cfg.AWS.S3Bucket,
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
			Endpoint:  cfg.AWS.Endpoint,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create voice store")
		}
		opts.Voice = voice
	}

	session := services.NewSession(store, opts)

	var gen services.TextGenerator
	if cfg.AI.GeminiAPIKey != "" {
		g, err := services.NewGeminiGenerator(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create Gemini client, assistant will use fallbacks")
		} else {
			gen = g
		}
	}
	assistant := services.NewAssistant(gen, nil)

	logStartupSummary(ctx, session, assistant)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)

	// Routes
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Metrics.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("Starting metrics server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Metrics server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openKV connects the configured backend and returns a function releasing it
func openKV(ctx context.Context, cfg config.StoreConfig) (repository.KV, func(), error) {
	switch cfg.Driver {
	case "redis":
		kv, err := repository.NewRedisKV(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {
			if err := kv.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close redis client")
			}
		}, nil

	case "postgres":
		db, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		kv, err := repository.NewPostgresKV(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return kv, db.Close, nil

	default:
		return repository.NewMemoryKV(), func() {}, nil
	}
}

// logStartupSummary reports what the signed-in viewer would see first
func logStartupSummary(ctx context.Context, session *services.Session, assistant *services.Assistant) {
	viewer, ok := session.Viewer()
	if !ok {
		log.Warn().Msg("No viewer signed in")
		return
	}

	evt := log.Info().
		Int64("viewer_id", viewer.ID).
		Int("deck", len(session.Deck())).
		Int("pending_requests", len(session.PendingRequests())).
		Int("unread", session.UnreadSummary().Total)
	if top, ok := session.Current(); ok {
		evt = evt.Int64("top_profile_id", top.ID).Int("top_distance", *top.Distance)
	}
	evt.Msg("Session ready")

	if top, ok := session.Current(); ok {
		go func() {
			ideas := <-assistant.IcebreakersAsync(ctx, viewer, top)
			log.Debug().Int64("profile_id", top.ID).Strs("icebreakers", ideas).Msg("Icebreakers ready")
		}()
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
