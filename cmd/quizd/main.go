package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/mind-engage/sheetquiz/internal/api/http"
	auth "github.com/mind-engage/sheetquiz/internal/auth/middleware"
	"github.com/mind-engage/sheetquiz/internal/config"
	"github.com/mind-engage/sheetquiz/internal/db"
	"github.com/mind-engage/sheetquiz/internal/sheet"
	"github.com/mind-engage/sheetquiz/internal/storage"
	"github.com/mind-engage/sheetquiz/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// --- Session store ---
	sessions, ready := openStore(ctx, cfg)

	sessionSvc := auth.NewSessionService(cfg.SessionSecret, cfg.SessionCookie, cfg.SessionTTL, cfg.SecureCookie)
	h := api.NewQuizHandlers(sessions, sheet.NewReader(),
		api.Page{Title: cfg.QuizTitle, Subtitle: cfg.QuizSubtitle}, cfg.MaxUploadBytes)

	bs, err := storage.NewFSStore(cfg.AssetsPath)
	if err != nil {
		log.Fatalf("assets store: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Group(func(pr chi.Router) {
		pr.Use(sessionSvc.Middleware)
		api.Routes(pr, h, bs)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := ready(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (mode=%s, sessions=%s)", cfg.HTTPAddr, cfg.Mode, cfg.SessionDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// openStore picks the snapshot backend. The returned probe backs /readyz.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(context.Context) error) {
	switch cfg.SessionDriver {
	case "sqlite", "postgres":
		dbh, err := db.Open(ctx, db.Driver(cfg.SessionDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		st := store.NewSQLStore(dbh)
		go purgeLoop(st, cfg.SessionTTL)
		return st, dbh.PingContext
	case "redis":
		st := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err := st.Ping(ctx); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		return st, st.Ping
	case "", "memory":
		return store.NewInMemoryStore(), func(context.Context) error { return nil }
	}
	log.Fatalf("unsupported SESSION_DRIVER %q", cfg.SessionDriver)
	return nil, nil
}

// purgeLoop drops SQL snapshots idle for longer than ttl.
func purgeLoop(st *store.SQLStore, ttl time.Duration) {
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for range t.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := st.PurgeBefore(ctx, time.Now().Add(-ttl))
		cancel()
		if err != nil {
			log.Printf("purge sessions: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("purged %d idle sessions", n)
		}
	}
}
