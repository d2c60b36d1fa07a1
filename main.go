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

	"safeplate/auth"
	"safeplate/config"
	"safeplate/db"
	"safeplate/middleware"
	"safeplate/mq"
	"safeplate/ratelim"
	"safeplate/rdx"
	"safeplate/recipes"
	"safeplate/routes"
	"safeplate/suggestions"
	"safeplate/textnorm"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(d routes.Deps) http.Handler {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, d)
	routes.AddRecipeRoutes(router, d)
	routes.AddSuggestionRoutes(router, d)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return loggingMiddleware(securityHeaders(c.Handler(router)))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	defer func() {
		if err := store.Disconnect(context.Background()); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()
	log.Println("Connected to MongoDB")

	cache, err := rdx.New(ctx, cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	norm := textnorm.New(cfg.SingularOverrides)
	emitter := mq.NewEmitter(cache.Conn)
	guard := &middleware.Auth{Secret: cfg.JWTSecret, AdminUsername: cfg.AdminUsername}

	deps := routes.Deps{
		Recipes:     recipes.New(store, norm, emitter, cfg),
		Suggestions: suggestions.New(store, norm, cache),
		Auth:        auth.New(cfg),
		Guard:       guard,
		Limiter:     ratelim.NewRateLimiter(),
	}

	go mq.StartInvalidationWorker(ctx, cache.Conn, cache)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(deps),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server started on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on port %s: %v", cfg.Port, err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received. Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped cleanly")
}
