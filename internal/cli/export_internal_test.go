package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resto_dashboard/internal/domain"
)

type failingClose struct {
	bytes.Buffer
	err error
}

func (f *failingClose) Close() error { return f.err }

func TestWriteExport_ReportsCloseError(t *testing.T) {
	fc := &failingClose{err: errors.New("disk quota exceeded")}
	orig := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return fc, nil }
	t.Cleanup(func() { createOutput = orig })

	rows := []domain.ReviewRow{{Review: domain.Review{Restaurant: "A", Comment: "ok", Rating: 4, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, CommentLength: 2}}
	err := writeExport("out.csv", nil, rows)
	if err == nil || !strings.Contains(err.Error(), "disk quota exceeded") {
		t.Fatalf("close error lost: %v", err)
	}
	if !strings.HasPrefix(fc.String(), "Nama Restoran,") {
		t.Fatalf("nothing written: %q", fc.String())
	}
}

func TestExportCmd_NoSuccessMessageOnFailure(t *testing.T) {
	fc := &failingClose{err: errors.New("input/output error")}
	orig := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return fc, nil }
	t.Cleanup(func() { createOutput = orig })

	src := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(src, []byte("Nama Restoran,Komentar,Rating,Tanggal\nA,ok,4,2024-01-01\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"export", "--source", src, "-o", "out.csv"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected export to fail")
	}
	if strings.Contains(out.String(), "wrote ") {
		t.Fatalf("success reported after failed close:\n%s", out.String())
	}
}
