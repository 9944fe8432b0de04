package iosources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnsys"
)

// download saves url to dir/name unless the file is already there.
func download(ctx context.Context, url, dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		slog.Info("Using downloaded dataset", "path", path)
		return path, nil
	}

	if err := gnsys.MakeDir(dir); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}
	if err = os.Rename(tmp, path); err != nil {
		return "", err
	}

	slog.Info("Downloaded dataset",
		"url", url, "path", path, "size", humanize.Bytes(uint64(n)))
	return path, nil
}

// fileName builds the local name of a downloaded registry.
func fileName(dataset, url string) string {
	base := url
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = filepath.Base(base)
	if base == "" || base == "." || base == "/" {
		base = "data.csv"
	}
	return strings.ToLower(dataset) + "_" + base
}
