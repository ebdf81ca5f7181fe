package host_test

import (
	"context"
	"testing"
	"time"

	ivr "github.com/taucore/ivr"
	"github.com/taucore/ivr/host"
)

func TestDelay_CompletesAfterItsDurationElapses(t *testing.T) {
	h, err := host.New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}

	done := make(chan struct{})
	var result ivr.Result[struct{}]
	go func() {
		result, _ = host.Run(h, h.Delay(10*time.Millisecond))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Delay to complete")
	}

	if !result.IsValue() {
		t.Fatalf("expected Value(()), got %+v", result)
	}
}

func TestDelay_CancellationStopsTheUnderlyingTimer(t *testing.T) {
	h, err := host.New(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}

	done := make(chan struct{})
	var result ivr.Result[struct{}]
	go func() {
		result, _ = host.Run(h, h.Delay(time.Hour))
		close(done)
	}()

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	<-done

	if !result.IsCancelled() {
		t.Fatalf("expected Cancelled once shutdown preempts the timer, got %+v", result)
	}
}
