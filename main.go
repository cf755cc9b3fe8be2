package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/HobbyShelf/HS-Backend/internal/auth"
	"github.com/HobbyShelf/HS-Backend/internal/config"
	"github.com/HobbyShelf/HS-Backend/internal/db"
	"github.com/HobbyShelf/HS-Backend/internal/hobbies"
	"github.com/HobbyShelf/HS-Backend/internal/middleware"
	"github.com/HobbyShelf/HS-Backend/internal/storage"
	"github.com/HobbyShelf/HS-Backend/internal/users"
	"github.com/HobbyShelf/HS-Backend/internal/views"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func HomeHandler(v *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.Render(w, http.StatusOK, "home.html", map[string]any{})
	}
}

func TestHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if cfg.SessionSecret == "" {
		if cfg.Production {
			log.Fatal("SESSION_SECRET must be set in production")
		}
		logger.Warn("SESSION_SECRET is empty")
	}

	gdb, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	logger.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	if err := auth.Init(gdb); err != nil {
		log.Fatal("Failed to migrate sessions: ", err)
	}
	if err := users.Init(gdb); err != nil {
		log.Fatal("Failed to migrate users: ", err)
	}
	if err := hobbies.Init(gdb); err != nil {
		log.Fatal("Failed to migrate hobbies: ", err)
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to set up file storage: ", err)
	}

	v, err := views.New()
	if err != nil {
		log.Fatal("Failed to parse templates: ", err)
	}

	sessions := auth.NewSessionStore(gdb)
	userRepo := users.NewRepository(gdb)
	hobbyRepo := hobbies.NewRepository(gdb)

	authHandler := auth.NewHandler(userRepo, sessions, v, logger, cfg.Production)
	userHandler := users.NewHandler(userRepo, store, v, logger)
	hobbyHandler := hobbies.NewHandler(hobbyRepo, userRepo, v, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SessionGuard(auth.SessionInfo{Sessions: sessions}, v))

	r.Get("/", HomeHandler(v))
	r.Get("/test", TestHandler)
	authHandler.RegisterRoutes(r)
	userHandler.RegisterRoutes(r)
	hobbyHandler.RegisterRoutes(r)

	if !cfg.Production {
		uploads := http.StripPrefix("/images/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/images/uploads/*", uploads.ServeHTTP)
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
