//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"resto_dashboard/internal/adapters/csvfile"
	server "resto_dashboard/internal/adapters/http_server"
	redisad "resto_dashboard/internal/adapters/redis"
	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
	mysqlrepo "resto_dashboard/internal/storage/mysql"
)

const reviewsCSV = `Nama Restoran;Komentar;Rating;Tanggal
Sate Pak Budi;Satenya enak banget, bumbu mantap;5;2025-01-03
Sate Pak Budi;Pelayanan lambat dan kotor;2;2025-01-04
Bakso Mas Joko;biasa;3;2025-01-05
Bakso Mas Joko;porsi kecil;lima;2025-01-06
Bakso Mas Joko;Kuahnya gurih, recommended;4,5;2025-02-01
`

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

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
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=resto"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/resto?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))
	pool.MaxWait = 2 * time.Minute
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
	applyMigrations(t, db)
	return db
}

// Import a CSV into MySQL, then serve the stored table through the API with a redis cache.
func TestHTTP_EndToEnd_ImportThenDashboard(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	ing := app.NewIngestionService(csvfile.FromBytes("reviews.csv", []byte(reviewsCSV)), repo, nil)
	ds, err := ing.Prepare(ctx)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	for _, b := range app.Batches(ds.Records, 2) {
		if err := ing.StoreBatch(ctx, ds, b); err != nil {
			t.Fatalf("store: %v", err)
		}
	}
	if n := ing.LogRejects(ctx, ds); n != 1 {
		t.Fatalf("expected one reject, got %d", n)
	}

	mr := miniredis.RunT(t)
	cache := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	q := app.NewQueryService(repo, nil, cache, time.Minute)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	url := ts.URL + "/v1/dashboard?restaurant=Bakso%20Mas%20Joko&start=2025-01-01&end=2025-12-31"
	var first, second domain.DashboardView
	for i, dst := range []*domain.DashboardView{&first, &second} {
		resp, err := http.Get(url)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status %d", i, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	if first.Stats.Total != 2 || *first.Stats.MeanRating != 3.75 {
		t.Fatalf("unexpected stats: %+v", first.Stats)
	}
	if second.Fingerprint != first.Fingerprint || len(mr.Keys()) != 1 {
		t.Fatalf("expected the second response from a single cached entry, keys=%v", mr.Keys())
	}

	resp, err := http.Get(ts.URL + "/v1/meta")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var m domain.Meta
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.Source != "mysql:reviews" || m.Kept != 4 {
		t.Fatalf("meta: %+v", m)
	}
}
