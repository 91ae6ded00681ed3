package artifact

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/bldrhq/bldr/internal/platform"
)

// Builds a .tar.xz archive containing a toolchain-shaped tree.
func makeToolchainArchive(t *testing.T, root string) []byte {
	t.Helper()

	var buf bytes.Buffer
	xzw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	tw := tar.NewWriter(xzw)

	dirs := []string{root, root + "/bin", root + "/lib"}
	for _, d := range dirs {
		if err := tw.WriteHeader(&tar.Header{
			Name:     d + "/",
			Typeflag: tar.TypeDir,
			Mode:     0755,
		}); err != nil {
			t.Fatalf("tar dir: %v", err)
		}
	}

	files := map[string]struct {
		body string
		mode int64
	}{
		root + "/bin/ldc2":             {body: "#!/bin/sh\n", mode: 0755},
		root + "/bin/dub":              {body: "#!/bin/sh\n", mode: 0755},
		root + "/lib/libphobos2-ldc.a": {body: "!<arch>\n", mode: 0644},
	}
	for name, f := range files {
		if err := tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     f.mode,
			Size:     int64(len(f.body)),
		}); err != nil {
			t.Fatalf("tar file: %v", err)
		}
		if _, err := tw.Write([]byte(f.body)); err != nil {
			t.Fatalf("tar body: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if err := xzw.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func TestEnsureTree(t *testing.T) {
	const installDir = "ldc-1.35.0-linux-x86_64"
	archive := makeToolchainArchive(t, installDir)

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(archive)
	}))
	defer srv.Close()

	cache := &Cache{Root: t.TempDir()}
	desc := platform.Descriptor{
		Version:     "1.35.0",
		ArchiveName: installDir + ".tar.xz",
		InstallDir:  installDir,
		URL:         srv.URL + "/" + installDir + ".tar.xz",
	}

	installed, err := cache.EnsureTree(context.Background(), desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if installed != filepath.Join(cache.Root, installDir) {
		t.Errorf("install path = %q", installed)
	}

	info, err := os.Stat(filepath.Join(installed, "bin", "ldc2"))
	if err != nil {
		t.Fatalf("ldc2 missing after extraction: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("ldc2 mode = %v, want executable bit", info.Mode())
	}

	// No transient files left behind.
	entries, err := os.ReadDir(cache.Root)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".stage-") {
			t.Errorf("staging dir %s left behind", e.Name())
		}
		if strings.HasSuffix(e.Name(), ".tar.xz") {
			t.Errorf("archive %s left behind", e.Name())
		}
	}

	// Second acquisition reuses the entry without touching the network.
	before := hits.Load()
	if _, err := cache.EnsureTree(context.Background(), desc); err != nil {
		t.Fatalf("unexpected error on cached acquisition: %v", err)
	}
	if hits.Load() != before {
		t.Errorf("cached acquisition made %d network calls", hits.Load()-before)
	}
}

func TestEnsureTreeDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cache := &Cache{Root: t.TempDir()}
	desc := platform.Descriptor{
		Version:     "1.35.0",
		ArchiveName: "ldc-1.35.0-linux-x86_64.tar.xz",
		InstallDir:  "ldc-1.35.0-linux-x86_64",
		URL:         srv.URL + "/missing.tar.xz",
	}

	_, err := cache.EnsureTree(context.Background(), desc)
	if !errors.Is(err, ErrAcquisition) {
		t.Fatalf("err = %v, want ErrAcquisition", err)
	}
	if pathExists(filepath.Join(cache.Root, desc.InstallDir)) {
		t.Error("failed acquisition left a partial install dir")
	}
}

func TestEnsureTreeCorruptArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an xz stream"))
	}))
	defer srv.Close()

	cache := &Cache{Root: t.TempDir()}
	desc := platform.Descriptor{
		Version:     "1.35.0",
		ArchiveName: "ldc-1.35.0-linux-x86_64.tar.xz",
		InstallDir:  "ldc-1.35.0-linux-x86_64",
		URL:         srv.URL + "/ldc.tar.xz",
	}

	_, err := cache.EnsureTree(context.Background(), desc)
	if !errors.Is(err, ErrAcquisition) {
		t.Fatalf("err = %v, want ErrAcquisition", err)
	}

	entries, err := os.ReadDir(cache.Root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache root not clean after failure: %v", entries)
	}
}

func TestEnsureTreeWrongTreeInArchive(t *testing.T) {
	archive := makeToolchainArchive(t, "some-other-dir")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	cache := &Cache{Root: t.TempDir()}
	desc := platform.Descriptor{
		Version:     "1.35.0",
		ArchiveName: "ldc-1.35.0-linux-x86_64.tar.xz",
		InstallDir:  "ldc-1.35.0-linux-x86_64",
		URL:         srv.URL + "/ldc.tar.xz",
	}

	_, err := cache.EnsureTree(context.Background(), desc)
	if !errors.Is(err, ErrAcquisition) {
		t.Fatalf("err = %v, want ErrAcquisition", err)
	}
}

func TestEnsureExecutable(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("\x7fELF fake binary"))
	}))
	defer srv.Close()

	cache := &Cache{Root: t.TempDir()}
	desc := platform.Descriptor{
		Version:     "2.0.0",
		ArchiveName: "bldr-darwin-arm64",
		InstallDir:  "bldr-2.0.0",
		URL:         srv.URL + "/v2.0.0/bldr-darwin-arm64",
	}

	binary, err := cache.EnsureExecutable(context.Background(), desc, "bldr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if binary != filepath.Join(cache.Root, "bldr-2.0.0", "bldr") {
		t.Errorf("binary path = %q", binary)
	}

	info, err := os.Stat(binary)
	if err != nil {
		t.Fatalf("binary missing: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("binary mode = %v, want 0755", info.Mode().Perm())
	}

	// Second invocation within the same version performs no re-download.
	before := hits.Load()
	if _, err := cache.EnsureExecutable(context.Background(), desc, "bldr"); err != nil {
		t.Fatalf("unexpected error on cached acquisition: %v", err)
	}
	if hits.Load() != before {
		t.Errorf("cached acquisition made %d network calls", hits.Load()-before)
	}
}

func TestEnsureExecutableDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := &Cache{Root: t.TempDir()}
	desc := platform.Descriptor{
		Version:     "2.0.0",
		ArchiveName: "bldr-darwin-arm64",
		InstallDir:  "bldr-2.0.0",
		URL:         srv.URL + "/v2.0.0/bldr-darwin-arm64",
	}

	_, err := cache.EnsureExecutable(context.Background(), desc, "bldr")
	if !errors.Is(err, ErrAcquisition) {
		t.Fatalf("err = %v, want ErrAcquisition", err)
	}
	if pathExists(filepath.Join(cache.Root, "bldr-2.0.0")) {
		t.Error("failed acquisition left a partial install dir")
	}
}
