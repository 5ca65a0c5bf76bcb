package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/adapter"
)

// Saver stores one staged file and returns its public URL
type Saver interface {
	Save(ctx context.Context, file adapter.File, targetDir string) (string, error)
}

// Result holds the outcome of one upload
type Result struct {
	Name     string
	URL      string
	Err      error
	Duration time.Duration
}

// Success reports whether the upload produced a URL
func (r Result) Success() bool { return r.Err == nil }

// SaveAll uploads files to targetDir with at most maxConcurrent uploads in
// flight. Results are returned in input order. A failed upload does not stop
// the others; all failures are joined into the returned error.
func SaveAll(ctx context.Context, saver Saver, files []adapter.File, targetDir string, maxConcurrent int, logger zerolog.Logger) ([]Result, error) {
	if len(files) == 0 {
		logger.Warn().Msg("no files to upload")
		return nil, nil
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	logger.Info().
		Int("total_files", len(files)).
		Int("max_concurrent", maxConcurrent).
		Msg("starting parallel upload")

	sem := semaphore.NewWeighted(int64(maxConcurrent))
	var g errgroup.Group

	// each goroutine owns one slot
	results := make([]Result, len(files))

	for i, file := range files {
		i, file := i, file

		g.Go(func() error {
			name := file.Name
			if name == "" {
				name = file.Path
			}
			results[i].Name = name

			if err := sem.Acquire(ctx, 1); err != nil {
				results[i].Err = fmt.Errorf("%s: %w", name, err)
				return nil
			}
			defer sem.Release(1)

			start := time.Now()
			url, err := saver.Save(ctx, file, targetDir)
			results[i].Duration = time.Since(start)
			if err != nil {
				results[i].Err = fmt.Errorf("%s: %w", name, err)
				logger.Error().Err(err).Str("file", name).Msg("upload failed")
				return nil
			}

			results[i].URL = url
			logger.Info().
				Str("file", name).
				Str("url", url).
				Dur("duration", results[i].Duration).
				Msg("upload completed")
			return nil
		})
	}

	_ = g.Wait()

	var errs []error
	var totalDuration time.Duration
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
		totalDuration += r.Duration
	}

	logger.Info().
		Int("successful", len(results)-len(errs)).
		Int("failed", len(errs)).
		Dur("total_duration", totalDuration).
		Msg("parallel upload completed")

	return results, errors.Join(errs...)
}
