// raycaster-stream runs one shared raycaster and streams its frames to
// browsers over websockets. Build:
//
//	go build -o raycaster-stream ./cmd/stream
//
// Usage:
//
//	./raycaster-stream [-addr :8080] [-config raycaster.yaml] [-rays 240]
//
// Then open http://localhost:8080/ and steer with the arrow keys or WASD.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"tile-raycaster/internal/sim"
	"tile-raycaster/internal/stream"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	configPath := flag.String("config", "", "JSON or YAML simulation config")
	rays := flag.Int("rays", 0, "Rays per frame (0 keeps the config value)")
	flag.Parse()

	cfg, err := sim.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *rays > 0 {
		cfg.RayCount = *rays
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	srv, err := stream.New(cfg, slog.Default())
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.Run(groupCtx)
	})
	group.Go(func() error {
		log.Printf("raycaster stream listening on %s", *addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := group.Wait(); err != nil {
		log.Fatal(err)
	}
}
