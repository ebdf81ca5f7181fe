// Command ivrdemo runs a small interactive-process runtime demonstration: a
// control IVR that begins a timer-driven sideshow ticking once per interval,
// counts ten ticks itself, then replaces the sideshow with a faster one for
// ten more before completing. SIGINT cancels the whole run cleanly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	ivr "github.com/taucore/ivr"
	"github.com/taucore/ivr/host"
	"github.com/taucore/ivr/observability"
	"github.com/taucore/ivr/sideshow"
)

func main() {
	var (
		tick    = flag.Duration("tick", 300*time.Millisecond, "Initial sideshow tick interval")
		verbose = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observability.RegisterObserver("slog-demo", observability.NewSlogObserver(logger))

	cfg := host.DefaultConfig()
	cfg.Observer = "slog-demo"

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h, err := host.New(ctx, cfg, requestHandler)
	if err != nil {
		log.Fatalf("construct host: %v", err)
	}

	go func() {
		<-ctx.Done()
		if err := h.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	result, err := host.Run(h, program(h, *tick))
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	switch {
	case result.IsCancelled():
		fmt.Println("interrupted")
	case result.IsError():
		fmt.Printf("failed: %v\n", result.Err())
	default:
		n, _ := result.Value()
		fmt.Printf("completed after %d ticks\n", n)
	}
}

// tickEvent is submitted to the host directly (bypassing the request
// handler) each time a ticker sideshow's delay elapses.
type tickEvent struct{ round string }

func requestHandler(req ivr.Request) ivr.Result[any] {
	return ivr.ErrorResult[any](fmt.Errorf("ivrdemo: unrecognized request %T", req))
}

// ticker is a sideshow that submits a tickEvent labeled round to h every d,
// forever, until cancelled.
func ticker(h *host.Host, d time.Duration, round string) ivr.Flux[struct{}] {
	return ivr.Bind(h.Delay(d), func(struct{}) ivr.Flux[struct{}] {
		h.Submit(tickEvent{round: round})
		return ticker(h, d, round)
	})
}

// countTicks consumes n occurrences of tickEvents labeled round.
func countTicks(round string, n int) ivr.Flux[struct{}] {
	if n <= 0 {
		return ivr.Zero()
	}
	return ivr.Bind(
		ivr.WaitFor(func(e tickEvent) (struct{}, bool) {
			if e.round != round {
				return struct{}{}, false
			}
			return struct{}{}, true
		}),
		func(struct{}) ivr.Flux[struct{}] { return countTicks(round, n-1) },
	)
}

// program attaches a ticking sideshow, waits for ten of its ticks, replaces
// it with a faster one, waits for ten more, then completes.
func program(h *host.Host, tick time.Duration) ivr.Flux[int] {
	return sideshow.AttachTo(func(c sideshow.Control[string]) ivr.Flux[int] {
		return ivr.Bind(c.Begin("slow", ticker(h, tick, "slow")), func(struct{}) ivr.Flux[int] {
			return ivr.Bind(countTicks("slow", 10), func(struct{}) ivr.Flux[int] {
				return ivr.Bind(c.Begin("fast", ticker(h, tick/3, "fast")), func(struct{}) ivr.Flux[int] {
					return ivr.Bind(countTicks("fast", 10), func(struct{}) ivr.Flux[int] {
						return ivr.Return(20)
					})
				})
			})
		})
	})
}
