package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bldrhq/bldr/internal/paths"
	"github.com/bldrhq/bldr/internal/platform"
)

// Version-keyed local artifact cache rooted at a single directory.
type Cache struct {
	Root   string       // Cache directory. Created on first acquisition.
	Client *http.Client // HTTP client for downloads. Nil uses http.DefaultClient.
}

// Guarantees the extracted artifact tree is installed under the cache root
// and returns its path.
//
// If the install path already exists the cache entry is reused as-is and
// no network call is made. Otherwise the archive is downloaded and
// extracted in a staging directory and the resulting tree is renamed into
// place.
func (c *Cache) EnsureTree(ctx context.Context, desc platform.Descriptor) (string, error) {
	installPath := filepath.Join(c.Root, desc.InstallDir)
	if pathExists(installPath) {
		slog.Debug("artifact already installed", "path", installPath, "version", desc.Version)
		return installPath, nil
	}

	stage, err := c.newStage()
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(stage)

	archivePath := filepath.Join(stage, desc.ArchiveName)
	if err := c.download(ctx, desc.URL, archivePath); err != nil {
		return "", err
	}

	slog.Info("extracting", "archive", desc.ArchiveName)
	if err := extractTarXz(archivePath, stage); err != nil {
		return "", fmt.Errorf("%w: extracting %s: %w", ErrAcquisition, desc.ArchiveName, err)
	}

	// The downloaded archive is transient; only the tree is kept.
	if err := os.Remove(archivePath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	extracted := filepath.Join(stage, desc.InstallDir)
	if !pathExists(extracted) {
		return "", fmt.Errorf("%w: archive %s did not contain %s", ErrAcquisition, desc.ArchiveName, desc.InstallDir)
	}

	if err := commit(extracted, installPath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	slog.Info("artifact installed", "path", installPath, "version", desc.Version)
	return installPath, nil
}

// Guarantees a single executable asset is installed and returns its path.
//
// The asset is downloaded as-is, given the executable permission bit
// explicitly (it is not trusted to survive the transfer), and renamed
// into <root>/<installDir>/<name>. Success means the final executable
// exists, not merely that the transfer reported success.
func (c *Cache) EnsureExecutable(ctx context.Context, desc platform.Descriptor, name string) (string, error) {
	installDir := filepath.Join(c.Root, desc.InstallDir)
	binary := filepath.Join(installDir, name)
	if pathExists(binary) {
		slog.Debug("binary already installed", "path", binary, "version", desc.Version)
		return binary, nil
	}

	stage, err := c.newStage()
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(stage)

	downloaded := filepath.Join(stage, desc.ArchiveName)
	if err := c.download(ctx, desc.URL, downloaded); err != nil {
		return "", err
	}

	staged := filepath.Join(stage, desc.InstallDir)
	if err := os.MkdirAll(staged, paths.DefaultDirMode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	if err := os.Rename(downloaded, filepath.Join(staged, name)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	if err := os.Chmod(filepath.Join(staged, name), paths.ExecutableMode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	if err := commit(staged, installDir); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	if !pathExists(binary) {
		return "", fmt.Errorf("%w: %s missing after install", ErrAcquisition, binary)
	}

	slog.Info("binary installed", "path", binary, "version", desc.Version)
	return binary, nil
}

// Creates a private staging directory inside the cache root.
//
// Staging on the same filesystem as the final path keeps the commit
// rename atomic.
func (c *Cache) newStage() (string, error) {
	if err := os.MkdirAll(c.Root, paths.DefaultDirMode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	stage, err := os.MkdirTemp(c.Root, ".stage-")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	return stage, nil
}

// Renames a fully-staged entry into its final path.
//
// Losing a first-population race is not an error: if the rename fails but
// the final path exists, another writer committed an equivalent entry and
// this one is discarded by the caller's staging cleanup.
func commit(staged, final string) error {
	if err := os.Rename(staged, final); err != nil {
		if pathExists(final) {
			slog.Debug("cache entry populated concurrently", "path", final)
			return nil
		}
		return err
	}
	return nil
}

// Whether the path exists.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
