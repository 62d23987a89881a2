package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hostel_portal/internal/adapters/redis"
	"hostel_portal/internal/stats"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	var miss stats.Rooms
	if ok, err := c.Get(ctx, "stats:rooms", &miss); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := stats.Rooms{Total: 250, Occupied: 80, Occupancy: 32}
	if err := c.Set(ctx, "stats:rooms", want, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("hostel:stats:rooms") {
		t.Fatalf("key not namespaced")
	}

	var got stats.Rooms
	if ok, err := c.Get(ctx, "stats:rooms", &got); !ok || err != nil || got != want {
		t.Fatalf("Get: ok=%v err=%v got=%+v", ok, err, got)
	}

	if err := c.Del(ctx, "stats:rooms"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := c.Get(ctx, "stats:rooms", &got); ok {
		t.Fatalf("key survived Del")
	}
}

func TestCache_DelMany(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	for _, k := range []string{"stats:polls", "stats:menu", "dashboard:management"} {
		_ = c.Set(ctx, k, 1, 0)
	}
	if err := c.Del(ctx, "stats:polls", "dashboard:management", "never-set"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if mr.Exists(redisad.Prefix+"stats:polls") || mr.Exists(redisad.Prefix+"dashboard:management") {
		t.Fatalf("listed keys should be gone")
	}
	if !mr.Exists(redisad.Prefix + "stats:menu") {
		t.Fatalf("unlisted key was dropped")
	}
	if err := c.Del(ctx); err != nil {
		t.Fatalf("Del with no keys: %v", err)
	}
}

func TestCache_CorruptSnapshotIsAMiss(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	_ = mr.Set(redisad.Prefix+"stats:rooms", "{not json")
	var got stats.Rooms
	if ok, err := c.Get(ctx, "stats:rooms", &got); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if mr.Exists(redisad.Prefix + "stats:rooms") {
		t.Fatalf("corrupt snapshot should be dropped")
	}
}

func TestCache_TTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	_ = c.Set(ctx, "k", 1, 30)
	mr.FastForward(31 * time.Second)
	var v int
	if ok, _ := c.Get(ctx, "k", &v); ok {
		t.Fatalf("key should have expired")
	}
}
