//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"resto_dashboard/internal/adapters/csvfile"
	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
	mysqlrepo "resto_dashboard/internal/storage/mysql"
)

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

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
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=resto",
		},
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

func TestRepo_MySQL_UpsertAndReadBack(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	day := func(s string) time.Time { d, _ := time.Parse(domain.DateLayout, s); return d }
	rs := []domain.Review{
		{Line: 2, Restaurant: "Warung A", Comment: "enak banget", Rating: 5, Date: day("2024-01-02"), Sentiment: domain.Positive},
		{Line: 3, Restaurant: "Warung B", Comment: "kotor", Rating: 1.5, Date: day("2024-01-01"), Sentiment: domain.Negative, Extra: []string{"Bandung"}},
	}
	if err := repo.UpsertReviews(ctx, []string{"Kota"}, rs); err != nil {
		t.Fatalf("UpsertReviews: %v", err)
	}
	// same content again is an update, not a new row
	if err := repo.UpsertReviews(ctx, []string{"Kota"}, rs[:1]); err != nil {
		t.Fatalf("UpsertReviews again: %v", err)
	}
	if n, err := repo.CountReviews(ctx); err != nil || n != 2 {
		t.Fatalf("CountReviews = %d, %v", n, err)
	}
	if err := repo.LogReject(ctx, "file:x.csv", domain.Reject{Line: 7, Reason: "invalid rating"}); err != nil {
		t.Fatalf("LogReject: %v", err)
	}

	tbl, err := repo.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[0][0] != "Warung B" || tbl.Rows[0][2] != "1.5" || tbl.Rows[0][3] != "2024-01-01" {
		t.Fatalf("unexpected table: %+v", tbl.Rows)
	}
	if len(tbl.Header) != 5 || tbl.Header[4] != "Kota" || tbl.Rows[0][4] != "Bandung" || tbl.Rows[1][4] != "" {
		t.Fatalf("extra column not read back: %v %+v", tbl.Header, tbl.Rows)
	}
	again, _ := repo.Read(ctx)
	if tbl.Fingerprint == "" || again.Fingerprint != tbl.Fingerprint {
		t.Fatalf("fingerprint not stable: %q vs %q", tbl.Fingerprint, again.Fingerprint)
	}

	// the stored table loads like a file
	ds, err := app.LoadDataset(ctx, repo, nil)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if ds.Report.Kept != 2 || ds.Records[1].Sentiment != domain.Positive {
		t.Fatalf("unexpected dataset: %+v", ds.Report)
	}
	if len(ds.ExtraColumns) != 1 || ds.Records[0].Extra[0] != "Bandung" {
		t.Fatalf("extras lost: %v %+v", ds.ExtraColumns, ds.Records[0])
	}
}

func TestRepo_MySQL_IdenticalReviewsAndRejects(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	csv := "Nama Restoran,Komentar,Rating,Tanggal\n" +
		"Warung A,Enak,5,2024-01-01\n" +
		"Warung A,Enak,5,2024-01-01\n" +
		"Warung A,Enak,lima,2024-01-01\n"
	ing := app.NewIngestionService(csvfile.FromBytes("dup.csv", []byte(csv)), repo, nil)
	for round := 0; round < 2; round++ {
		ds, err := ing.Prepare(ctx)
		if err != nil {
			t.Fatalf("prepare: %v", err)
		}
		if err := ing.StoreBatch(ctx, ds, ds.Records); err != nil {
			t.Fatalf("store: %v", err)
		}
		if n := ing.LogRejects(ctx, ds); n != 1 {
			t.Fatalf("round %d: logged %d rejects", round, n)
		}
	}
	// both identical reviews are kept, and importing twice adds nothing
	if n, err := repo.CountReviews(ctx); err != nil || n != 2 {
		t.Fatalf("CountReviews = %d, %v", n, err)
	}
	if n, err := repo.CountRejects(ctx, "dup.csv"); err != nil || n != 1 {
		t.Fatalf("CountRejects = %d, %v", n, err)
	}
}
