// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tacred-tools/internal/conll"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

// Format identifies an annotation file format.
type Format string

const (
	FormatCoNLL Format = "conll"
	FormatJSON  Format = "json"
)

// DetectFormat infers the format of a file from its extension: .json is
// JSON, everything else (.conll, .gold, .txt) is the tabular format.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCoNLL
}

// ReadExamples loads a file in either format, detected by extension.
func ReadExamples(path string) ([]*types.Example, error) {
	if DetectFormat(path) == FormatJSON {
		return ReadJSONFile(path)
	}
	return conll.ReadFile(path)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// outputPath derives the destination for a converted file: the input base
// name with the target format's extension, in outDir when set or next to
// the input otherwise.
func outputPath(inPath string, to Format, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	ext := ".conll"
	if to == FormatJSON {
		ext = ".json"
	}
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(inPath)
	}
	return filepath.Join(dir, base+ext)
}

// ConvertFile converts one annotation file to the target format, writing
// the result next to the input or into cfg.OutputDir. It skips files whose
// output already exists and reports per-file status on w.
func ConvertFile(path string, to Format, cfg types.ConvertConfig, w io.Writer) error {
	outPath := outputPath(path, to, cfg.OutputDir)

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (output exists)\n", filepath.Base(path))
		return os.ErrExist
	}

	examples, err := ReadExamples(path)
	if err != nil {
		return err
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	switch to {
	case FormatJSON:
		err = WriteJSONFile(outPath, examples, cfg.Indent)
	case FormatCoNLL:
		err = conll.WriteFile(outPath, examples)
	default:
		err = fmt.Errorf("unknown target format %q", to)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "converted: %s -> %s (%d examples)\n",
		filepath.Base(path), filepath.Base(outPath), len(examples))
	return nil
}

// ConvertBatch converts a list of files, printing per-file status to w and
// returning a summary. Failures do not stop the batch.
func ConvertBatch(paths []string, to Format, cfg types.ConvertConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch err := ConvertFile(p, to, cfg, w); {
		case err == nil:
			result.Converted++
		case errors.Is(err, os.ErrExist):
			result.Skipped++
		default:
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(p), err)
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
