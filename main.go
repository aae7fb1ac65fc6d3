/*
Package main
File: main.go
Description: Server entry point. Loads the universe, starts the session loop that
keeps the economy ticking, the real-time WebSocket hub and the HTTP API.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/everforgeworks/congregation/internal/api"
	"github.com/everforgeworks/congregation/internal/game"
	"github.com/everforgeworks/congregation/internal/scene"
)

func main() {
	addr := flag.String("addr", ":8081", "HTTP listen address")
	configPath := flag.String("config", "", "universe YAML (default: embedded)")
	tick := flag.Duration("tick", 0, "real time per simulated day (default: from config)")
	flag.Parse()

	// 1. Load the static universe configuration from YAML
	uni, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Config Fail: %v", err)
	}
	log.Printf("Universe loaded: %d venues, %d staff roles", len(uni.Venues), len(uni.Staff))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Session, scene composer and the real-time hub
	seed := time.Now().UnixNano()
	session := game.NewSession(uni, *tick, rand.New(rand.NewSource(seed)))
	composer := scene.NewComposer(rand.New(rand.NewSource(seed + 1)))
	hub := api.NewHub()
	server := api.NewServer(session, composer, hub)
	session.OnChange(server.Broadcast)

	go hub.Run(ctx)

	// 3. THE HEARTBEAT
	// The session loop owns the day timer; cancelling ctx stops it.
	go func() {
		if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Session: stopped: %v", err)
		}
	}()

	// 4. Hot-reload logic: Listen for SIGHUP to refresh universe without restart
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		defer signal.Stop(sigChan)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigChan:
			}
			log.Println("SIGNAL: Reloading Universe...")
			if err := reload(ctx, session, *configPath); err != nil {
				log.Printf("Reload Fail: %v", err)
			}
		}
	}()

	// 5. Start the Server
	srv := &http.Server{
		Addr:              *addr,
		Handler:           corsMiddleware(server.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("CONGREGATION Server live on %s (session %s)", *addr, session.ID)
	log.Printf("Real-time Hub: Online")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-session.Done()
	log.Println("Server stopped")
}

// reload swaps a freshly loaded universe into the running session. The old
// universe stays in effect if loading or validation fails. The composer
// notices the new universe on its next frame.
func reload(ctx context.Context, session *game.Session, path string) error {
	next, err := game.LoadConfig(path)
	if err != nil {
		return err
	}
	return session.Reload(ctx, next)
}

// corsMiddleware lets browser clients on other origins call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
