package shared_test

import (
	"testing"
	"time"

	"hostel_portal/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"TRUST_PROXY", "STORE", "PAGE_SIZE", "SESSION_TTL_MINUTES", "SEED_RESIDENTS", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.Store != shared.StoreMemory || c.PageSize != 20 || c.SessionTTL != 8*time.Hour {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.TrustProxy {
		t.Fatalf("proxy headers must not be trusted by default")
	}
	if c.SeedSizes.Residents != 750 || c.SeedSizes.Rooms != 250 || c.SeedSizes.Polls != 10 {
		t.Fatalf("unexpected seed sizes: %+v", c.SeedSizes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE", "MySQL")
	t.Setenv("LOGIN_RPS", "0.5")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("SEED_WORKERS", "not-a-number")
	c := shared.Load()
	if c.Store != shared.StoreMySQL || c.LoginRPS != 0.5 || c.CacheTTL != 5*time.Second || c.SeedWorkers != 4 {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoad_UnknownStoreFallsBack(t *testing.T) {
	t.Setenv("STORE", "postgres")
	if c := shared.Load(); c.Store != shared.StoreMemory {
		t.Fatalf("store=%s", c.Store)
	}
}
