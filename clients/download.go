package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Download fetches url into dest. The body is streamed into a temporary file
// next to dest and renamed on success, so dest is either complete or absent.
func (h *HTTP) Download(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := h.c.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("download %s: %s: %s", url, resp.Status, string(body))
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	h.log.WithFields(logrus.Fields{
		"url":  url,
		"size": sizeOf(resp.ContentLength),
	}).Info("downloading corpus archive")

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetWriter(h.progress),
		progressbar.OptionSetDescription(filepath.Base(dest)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
	n, err := io.Copy(io.MultiWriter(tmp, bar), resp.Body)
	if err != nil {
		return n, fmt.Errorf("download %s: %w", url, err)
	}
	_ = bar.Finish()
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return n, fmt.Errorf("download %s: got %d of %d bytes", url, n, resp.ContentLength)
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return n, err
	}

	h.log.WithFields(logrus.Fields{
		"path": dest,
		"size": humanize.Bytes(uint64(n)),
	}).Info("download complete")
	return n, nil
}

func sizeOf(n int64) string {
	if n < 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(n))
}
