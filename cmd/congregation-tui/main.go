/*
Package main
File: main.go
Description: Terminal client entry point. Runs a local session in-process and
paints it with tcell. Logs go to a file (or nowhere) so they don't tear the
screen.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/everforgeworks/congregation/internal/game"
	"github.com/everforgeworks/congregation/internal/scene"
	"github.com/everforgeworks/congregation/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "universe YAML (default: embedded)")
	tick := flag.Duration("tick", 0, "real time per simulated day (default: from config)")
	logPath := flag.String("log", "", "append logs to this file")
	sound := flag.Bool("sound", true, "play audio cues")
	flag.Parse()

	// 1. Logging stays off the terminal
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Log Fail: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	// 2. Universe and session
	uni, err := game.LoadConfig(*configPath)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Config Fail: %v", err)
	}
	session := game.NewSession(uni, *tick, nil)
	composer := scene.NewComposer(rand.New(rand.NewSource(time.Now().UnixNano())))

	// 3. Screen
	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Screen Fail: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Screen Fail: %v", err)
	}

	audio := tui.NewAudio(*sound)
	app := tui.NewApp(screen, session, composer, audio)
	session.OnChange(app.Notify)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("session stopped: %v", err)
		}
	}()

	// 4. Client loop; quitting cancels the session timer
	runErr := app.Run(ctx)
	cancel()
	<-session.Done()

	audio.Close()
	screen.Fini()

	if runErr != nil && !errors.Is(runErr, game.ErrSessionClosed) {
		log.SetOutput(os.Stderr)
		log.Printf("client stopped: %v", runErr)
		os.Exit(1)
	}
}
