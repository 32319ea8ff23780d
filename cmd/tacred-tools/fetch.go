// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tacred-tools/internal/fetch"
	"github.com/pdiddy/tacred-tools/internal/secrets"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "tacred-tools/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [partitions...]",
	Short: "Download corpus partition files from a licensed endpoint",
	Long: `Fetch downloads partition files (train, dev, test) from a licensed
distribution endpoint into <corpus-dir>/raw/. Existing files are skipped.
The access token is read from .secrets/ldc-token unless --token is given.

TACRED is distributed under an LDC license; fetch only works against an
endpoint your license grants you access to.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("base-url", "", "distribution endpoint base URL")
	fetchCmd.Flags().String("token", "", "access token (default: .secrets/ldc-token)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	fetchCmd.Flags().String("corpus-dir", "corpus", "base directory for corpus data")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		return fmt.Errorf("--base-url is required: the corpus is not publicly downloadable")
	}

	parts := make([]types.Partition, len(args))
	for i, a := range args {
		parts[i] = types.Partition(a)
	}
	files, err := fetch.PartitionFiles(parts)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}
	corpusDir, _ := cmd.Flags().GetString("corpus-dir")
	tokenFlag, _ := cmd.Flags().GetString("token")
	token := secretDefault(secrets.KeyLDCToken, tokenFlag)

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL:       baseURL,
		DownloadDelay: delay,
		CorpusDir:     corpusDir,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	result := fetch.FetchBatch(cmd.Context(), client, files, cfg, token, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to download", result.Failed)
	}
	return nil
}
