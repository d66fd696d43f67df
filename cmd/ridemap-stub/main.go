// Command ridemap-stub runs the in-memory events backend for local
// development. State is lost on exit; --seed loads a demo data set.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dnbonthebike/ridemap/internal/config"
	"github.com/dnbonthebike/ridemap/internal/middleware"
	"github.com/dnbonthebike/ridemap/internal/model"
	"github.com/dnbonthebike/ridemap/internal/stub"
)

func main() {
	seed := flag.Bool("seed", false, "load demo events and organizers")
	flag.Parse()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.API.AdminKey == "" {
		slog.Error("RIDEMAP_ADMIN_KEY is required to run the stub")
		os.Exit(1)
	}

	backend := stub.New(cfg.API.AdminKey)
	if *seed {
		seedDemo(backend)
		slog.Info("demo data seeded")
	}

	wrapped := middleware.Chain(
		backend.Handler(),
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting stub server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down stub server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

func strPtr(s string) *string { return &s }

func seedDemo(backend *stub.Server) {
	berlinCrew := backend.SeedOrganizer(model.Organizer{Name: "DNB Crew Berlin"})
	bassRiders := backend.SeedOrganizer(model.Organizer{Name: "Bass Riders"})

	nextMonth := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)
	lastMonth := time.Now().AddDate(0, -1, 0).Truncate(time.Hour)

	backend.SeedEvent(model.Event{
		Title:        "Neon Night Ride",
		Description:  strPtr("Sunset loop through Tempelhofer Feld, sound system on the cargo bike."),
		Organizer:    berlinCrew.Name,
		OrganizerID:  &berlinCrew.ID,
		LocationName: "Berlin",
		Country:      strPtr("Germany"),
		Latitude:     52.52,
		Longitude:    13.405,
		EventDate:    nextMonth,
		Status:       model.StatusApproved,
	})
	backend.SeedEvent(model.Event{
		Title:        "Canal Loop Ride",
		Organizer:    bassRiders.Name,
		OrganizerID:  &bassRiders.ID,
		LocationName: "Amsterdam",
		Country:      strPtr("Netherlands"),
		Latitude:     52.37,
		Longitude:    4.90,
		EventDate:    nextMonth.AddDate(0, 0, 7),
		Status:       model.StatusApproved,
	})
	backend.SeedEvent(model.Event{
		Title:        "Harbor Bassline",
		Organizer:    bassRiders.Name,
		OrganizerID:  &bassRiders.ID,
		LocationName: "Hamburg",
		Country:      strPtr("Germany"),
		Latitude:     53.55,
		Longitude:    9.99,
		EventDate:    lastMonth,
		Status:       model.StatusApproved,
		VideoURL:     strPtr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
	})
	backend.SeedEvent(model.Event{
		Title:        "River Roll",
		Organizer:    "Junglist Cycles",
		LocationName: "London",
		Country:      strPtr("United Kingdom"),
		Latitude:     51.5,
		Longitude:    -0.1,
		EventDate:    nextMonth.AddDate(0, 0, 14),
		Status:       model.StatusPending,
	})
}
