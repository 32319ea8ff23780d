// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads corpus partition files from a licensed
// distribution endpoint into the local corpus directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/tacred-tools/internal/httputil"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

const rawDir = "raw"

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// PartitionFiles returns the distribution file names for the named
// partitions, or for all three when none are given.
func PartitionFiles(parts []types.Partition) ([]string, error) {
	if len(parts) == 0 {
		parts = []types.Partition{types.PartitionTrain, types.PartitionDev, types.PartitionTest}
	}
	files := make([]string, len(parts))
	for i, p := range parts {
		if !types.ValidPartition(p) {
			return nil, fmt.Errorf("unknown partition %q (want train, dev, or test)", p)
		}
		files[i] = string(p) + ".conll"
	}
	return files, nil
}

// FetchFile downloads one file from cfg.BaseURL into corpusDir/raw/,
// skipping it when it already exists. The download goes to a temp file
// that is renamed into place on success, so a partial download never
// shadows the real file. An empty token omits authentication.
func FetchFile(ctx context.Context, client *http.Client, name string, cfg types.FetchConfig, token string, w io.Writer) (skipped bool, err error) {
	destDir := filepath.Join(cfg.CorpusDir, rawDir)
	destPath := filepath.Join(destDir, name)

	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
		return true, nil
	}

	fileURL, err := url.JoinPath(cfg.BaseURL, name)
	if err != nil {
		return false, fmt.Errorf("building URL for %s: %w", name, err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", destDir, err)
	}

	fmt.Fprintf(w, "downloading: %s\n", name)

	req, err := httputil.NewRequest(ctx, fileURL, cfg.UserAgent, token)
	if err != nil {
		return false, err
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return false, fmt.Errorf("fetching %s: %w", fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetching %s: HTTP %d", fileURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(destDir, name+".download-*")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return false, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("moving %s into place: %w", name, err)
	}

	return false, nil
}

// FetchBatch downloads multiple files, printing per-file status and
// returning a summary. It continues after individual failures and applies
// a delay between consecutive downloads.
func FetchBatch(ctx context.Context, client *http.Client, names []string, cfg types.FetchConfig, token string, w io.Writer) BatchResult {
	var result BatchResult
	for i, name := range names {
		if i > 0 && cfg.DownloadDelay > 0 {
			select {
			case <-ctx.Done():
				fmt.Fprintf(w, "failed:  %s (%v)\n", name, ctx.Err())
				result.Failed++
				continue
			case <-time.After(cfg.DownloadDelay):
			}
		}

		wasSkipped, err := FetchFile(ctx, client, name, cfg, token, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
		case wasSkipped:
			result.Skipped++
		default:
			result.Downloaded++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}
