//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "hostel_portal/internal/adapters/http_server"
	redisad "hostel_portal/internal/adapters/redis"
	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/generator"
	"hostel_portal/internal/session"
	"hostel_portal/internal/stats"
	mysqlrepo "hostel_portal/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hostel",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hostel?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func call(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, url, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

// Seeds MySQL through the batch loader, then drives the API with a redis
// cache in front and checks that a mutation shows up in the cached stats.
func TestHTTP_EndToEnd_SeededMySQLWithCache(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()
	if err := mysqlrepo.InitSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	now := time.Now().UTC()
	clock := func() time.Time { return now }
	st := app.NewMySQLStores(db)
	ds := generator.New(11, now).Dataset(generator.Sizes{Residents: 300, Rooms: 100, Polls: 5, MovementResidents: 25})
	if err := app.Seed(ctx, st, cache, ds, 4); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv := httpserver.New(false)
	srv.MountHandlers(&httpserver.Handlers{
		Q:        app.NewQueryService(st, cache, time.Minute, clock),
		C:        app.NewCommandService(st, cache, clock),
		Auth:     app.NewAuthService(app.NewStaticAuthenticator(), session.NewManager(time.Hour)),
		PageSize: 20,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res := call(t, http.MethodPost, ts.URL+"/v1/login", "", map[string]string{"role": "management", "email": "management@gmail.com", "password": "management"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", res.StatusCode)
	}
	var sess session.Session
	_ = json.NewDecoder(res.Body).Decode(&sess)

	getStats := func() stats.Residents {
		t.Helper()
		res := call(t, http.MethodGet, ts.URL+"/v1/management/residents/stats", sess.Token, nil)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("stats status %d", res.StatusCode)
		}
		var s stats.Residents
		_ = json.NewDecoder(res.Body).Decode(&s)
		return s
	}

	s := getStats()
	if s.Total != 300 || s.Blocks != 4 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if !mr.Exists("hostel:stats:residents") {
		t.Fatalf("stats should be cached in redis")
	}

	var active string
	for _, r := range ds.Residents {
		if r.Status == domain.ResidentActive {
			active = r.ID
			break
		}
	}
	res = call(t, http.MethodPut, ts.URL+"/v1/management/residents/"+active+"/status", sess.Token, map[string]string{"status": "checking-out"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("advance status %d", res.StatusCode)
	}
	if s2 := getStats(); s2.CheckingOut != s.CheckingOut+1 {
		t.Fatalf("cached stats not invalidated: before %+v after %+v", s, s2)
	}

	res = call(t, http.MethodGet, ts.URL+"/v1/management/rooms?status=occupied&page_size=10", sess.Token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("rooms status %d", res.StatusCode)
	}
	var rooms struct {
		Items []struct {
			Status string `json:"status"`
		} `json:"items"`
	}
	_ = json.NewDecoder(res.Body).Decode(&rooms)
	for _, r := range rooms.Items {
		if r.Status != "occupied" {
			t.Fatalf("status filter leaked %q", r.Status)
		}
	}
}
