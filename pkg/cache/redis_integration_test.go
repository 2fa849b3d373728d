//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("JIGSAW_REDIS_URL")
	if url == "" {
		t.Skip("JIGSAW_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, url, WithRedisPrefix("jigsaw-test:"))
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	if _, err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("empty Get hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if data, hit, err := c.Get(ctx, "k"); !hit || err != nil || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	n, err := c.Clear(ctx)
	if err != nil || n != 1 {
		t.Errorf("Clear = %d, %v", n, err)
	}
}
