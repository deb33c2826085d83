package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readReport(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReportClose_WritesEntries(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	stored := filepath.Join(dir, "result.html")
	if err := os.WriteFile(stored, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("result.html", stored)
	r.Store("missing.log", filepath.Join(dir, "never-created.log"))
	r.StoreData("meta.txt", []byte("first"))
	r.StoreData("meta.txt", []byte("second"))

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readReport(t, conf.Destination)
	if files["result.html"] != "<html></html>" {
		t.Errorf("result.html = %q", files["result.html"])
	}
	if files["meta.txt"] != "first" || files["meta.txt.1"] != "second" {
		t.Errorf("versioned entries = %q, %q", files["meta.txt"], files["meta.txt.1"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("entry for missing file should be skipped")
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"result.html", "meta.txt", "meta.txt.1", "missing.log"} {
		if !strings.Contains(manifest, "\t"+name+"\t") {
			t.Errorf("MANIFEST does not mention %s:\n%s", name, manifest)
		}
	}
	if !strings.Contains(manifest, "<5 bytes>") {
		t.Errorf("MANIFEST should describe stored data:\n%s", manifest)
	}
}

func TestReportPrepare_FallsBackToTemp(t *testing.T) {
	conf := ReporterConfig{Destination: filepath.Join(t.TempDir(), "no", "such", "dir", "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	name := r.Name()
	defer os.Remove(name)

	if name == conf.Destination {
		t.Fatalf("expected temporary report, got %q", name)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if files := readReport(t, name); len(files) != 1 {
		t.Errorf("expected only MANIFEST, got %d entries", len(files))
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if r.Name() != "" {
		t.Errorf("Name on nil report should be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
