package artifact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/bldrhq/bldr/internal/paths"
)

// Downloads the URL to the destination file.
//
// The transfer blocks until complete. Any non-2xx status is a fatal
// [ErrAcquisition]; there is no retry.
func (c *Cache) download(ctx context.Context, url, dest string) error {
	slog.Info("downloading", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %s", ErrAcquisition, url, resp.Status)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, paths.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	counted := newCountReader(resp.Body)
	_, copyErr := io.Copy(out, counted)
	closeErr := out.Close()

	if copyErr != nil {
		return fmt.Errorf("%w: transfer of %s failed: %w", ErrAcquisition, url, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %w", ErrAcquisition, closeErr)
	}

	slog.Debug("download complete", "url", url, "bytes", counted.Count())
	return nil
}

// Wraps an [io.Reader] and counts the bytes read through it.
type countReader struct {
	r io.Reader
	n atomic.Int64
}

// Creates a new [countReader] wrapping the given reader.
func newCountReader(r io.Reader) *countReader {
	return &countReader{r: r}
}

// Delegates to the underlying reader, accumulating the byte count.
func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// Returns the number of bytes read so far.
func (c *countReader) Count() int64 {
	return c.n.Load()
}
