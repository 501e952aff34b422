// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tahcohcat/capsule-achievements/config"
	"github.com/tahcohcat/capsule-achievements/internal/api"
	"github.com/tahcohcat/capsule-achievements/internal/auth"
	"github.com/tahcohcat/capsule-achievements/internal/catalog"
	"github.com/tahcohcat/capsule-achievements/internal/database"
	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/services"
	"github.com/tahcohcat/capsule-achievements/internal/store"
	"github.com/tahcohcat/capsule-achievements/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}
	logger.SetGlobalLevel(cfg.Log.Level)
	l := logger.New()

	db, err := database.NewDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(cfg.Server.AllowedOrigins...)
	go hub.Run(ctx)

	cat := catalog.Load()
	st := store.New(db,
		store.WithReadTimeout(cfg.Store.ReadTimeout),
		store.WithRetries(cfg.Store.Retries),
	)
	engine := services.NewEngine(st, cat,
		services.WithCooldown(cfg.Achievements.Cooldown),
		services.WithSerializePerUser(cfg.Achievements.SerializePerUser),
		services.WithShownRetention(cfg.Notifications.ShownRetention),
		services.WithActivityRetention(cfg.Activity.Retention),
		services.WithNotifier(hub),
	)

	sessions := auth.New(cfg.Auth)

	r := mux.NewRouter()

	// Public routes (no session required)
	publicRouter := r.PathPrefix("/api/v1").Subrouter()
	publicRouter.HandleFunc("/session", sessions.LoginHandler).Methods("POST")
	publicRouter.HandleFunc("/session", sessions.LogoutHandler).Methods("DELETE")

	// User routes
	userRouter := r.PathPrefix("/api/v1").Subrouter()
	userRouter.Use(sessions.Middleware)

	api.RegisterRoutes(publicRouter, userRouter, api.NewHandler(engine, cat))

	websocket.RegisterRoutes(r, hub, func(req *http.Request) string {
		if id := sessions.UserID(req); id != "" {
			return id
		}
		if sessions.Enabled() {
			return ""
		}
		return req.URL.Query().Get("user")
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	l.Info(fmt.Sprintf("🏆 Achievement server starting on port %s", cfg.Server.Port))
	l.Info(fmt.Sprintf("🗄️ Database: %s (%s)", cfg.Database.URL, cfg.Database.Driver))
	l.Info(fmt.Sprintf("📚 Catalog: %d achievements", cat.Len()))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Failed to start server:", err)
	}
}
