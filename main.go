package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itinerary/backend"
	"itinerary/config"
	"itinerary/geocode"
	"itinerary/handler"
	"itinerary/itinerary"
	"itinerary/logging"
	"itinerary/manager"

	"github.com/sirupsen/logrus"
)

const version = "1.0.0"

func main() {
	config.ParseArgs()
	if config.CliArgs.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if config.CliArgs.Debug {
		logging.SetLevel(logrus.DebugLevel)
	}
	log := logging.GetLogger()

	cfg, err := config.LoadConfig(config.CliArgs.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// One HTTP client and one set of concurrency slots shared by every request.
	client := backend.NewBackendClient(cfg.UpstreamTimeout, cfg.GeocoderUserAgent)
	slots := manager.NewConcurrencyManager(cfg.Upstreams, 10, cfg.SlotWait)

	gemini, err := itinerary.NewGeminiClient(client, cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to set up Gemini: %v", err)
	}
	generator := itinerary.NewGenerator(gemini, slots)
	geocoder := geocode.NewNominatim(client, cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, slots)

	httpHandler := handler.NewHTTPHandler(generator, geocoder)

	// Define the server
	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler.NewRouter(httpHandler, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on %s (model %s)", cfg.ListenAddress, cfg.GeminiModel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infoln("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	log.Infoln("Server exited")
}
