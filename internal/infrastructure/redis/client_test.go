package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	s := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     ClientConfig
		wantErr bool
	}{
		{"defaults", ClientConfig{URL: "redis://" + s.Addr()}, false},
		{"pool override", ClientConfig{URL: "redis://" + s.Addr(), PoolSize: 3, PingTimeout: time.Second}, false},
		{"invalid url", ClientConfig{URL: "://bad-url"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.cfg.URL)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected client, got error: %v", err)
			}
			defer client.Close()

			if tt.cfg.PoolSize > 0 && client.Options().PoolSize != tt.cfg.PoolSize {
				t.Fatalf("expected pool size %d, got %d", tt.cfg.PoolSize, client.Options().PoolSize)
			}
		})
	}
}

func TestNewClientServerDown(t *testing.T) {
	s := miniredis.RunT(t)
	url := "redis://" + s.Addr()
	s.Close()

	_, err := NewClient(context.Background(), ClientConfig{URL: url, PingTimeout: 500 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}
