package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

type scriptedPinger struct {
	failures int
	calls    int
}

func (p *scriptedPinger) PingContext(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForPing(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		opts      Options
		wantErr   bool
		wantCalls int
		wantSleep []time.Duration
	}{
		{
			name:      "first attempt succeeds",
			opts:      ServerOptions(),
			wantCalls: 1,
		},
		{
			name:      "retries with capped backoff",
			failures:  4,
			opts:      Options{MaxWait: time.Hour, InitialBackoff: time.Second, MaxBackoff: 3 * time.Second},
			wantCalls: 5,
			wantSleep: []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second},
		},
		{
			name:      "no wait budget gives up after one attempt",
			failures:  1,
			opts:      Options{InitialBackoff: time.Second},
			wantErr:   true,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPinger{failures: tt.failures}
			var slept []time.Duration

			err := waitForPing(context.Background(), p, tt.opts, func(d time.Duration) {
				slept = append(slept, d)
			})

			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if p.calls != tt.wantCalls {
				t.Fatalf("expected %d pings, got %d", tt.wantCalls, p.calls)
			}
			if len(slept) != len(tt.wantSleep) {
				t.Fatalf("expected sleeps %v, got %v", tt.wantSleep, slept)
			}
			for i := range slept {
				if slept[i] != tt.wantSleep[i] {
					t.Fatalf("expected sleeps %v, got %v", tt.wantSleep, slept)
				}
			}
		})
	}
}

func TestWaitForPingStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scriptedPinger{failures: 100}
	err := waitForPing(ctx, p, Options{MaxWait: time.Hour, InitialBackoff: time.Second}, func(time.Duration) {
		t.Fatalf("should not sleep after cancellation")
	})

	if err == nil {
		t.Fatalf("expected error")
	}
	if p.calls != 1 {
		t.Fatalf("expected a single ping, got %d", p.calls)
	}
}
