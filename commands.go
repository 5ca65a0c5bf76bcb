package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/adapter"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/config"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/naming"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/upload"
)

// probeKey is read by check; a "not found" answer proves the bucket is reachable
const probeKey = ".ghost-s3-check"

var errUsage = errors.New("invalid arguments")

type cli struct {
	adapter       *adapter.Adapter
	out           io.Writer
	logger        zerolog.Logger
	targetDir     string
	contentType   string
	unique        bool
	maxConcurrent int
	now           func() time.Time
	create        func(name string) (io.WriteCloser, error)
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "save":
		if len(args) == 0 {
			return fmt.Errorf("%w: save needs at least one file", errUsage)
		}
		return c.save(ctx, args)
	case "exists":
		name, dir, err := nameAndDir(cmd, args)
		if err != nil {
			return err
		}
		ok, err := c.adapter.Exists(ctx, name, dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, ok)
		return nil
	case "delete":
		name, dir, err := nameAndDir(cmd, args)
		if err != nil {
			return err
		}
		ok, err := c.adapter.Delete(ctx, name, dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, ok)
		return nil
	case "read":
		if len(args) == 0 || len(args) > 2 {
			return fmt.Errorf("%w: read <key> [out]", errUsage)
		}
		out := ""
		if len(args) == 2 {
			out = args[1]
		}
		return c.read(ctx, args[0], out)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func nameAndDir(cmd string, args []string) (string, string, error) {
	switch len(args) {
	case 1:
		return args[0], "", nil
	case 2:
		return args[0], args[1], nil
	}
	return "", "", fmt.Errorf("%w: %s <name> [dir]", errUsage, cmd)
}

func (c *cli) save(ctx context.Context, paths []string) error {
	dir := c.targetDir
	if dir == "" {
		now := time.Now
		if c.now != nil {
			now = c.now
		}
		dir = naming.TargetDir(now())
	}

	files := make([]adapter.File, 0, len(paths))
	for _, p := range paths {
		name := naming.Sanitize(filepath.Base(p))
		if c.unique {
			free, err := naming.UniqueFileName(ctx, c.adapter, dir, name)
			if err != nil {
				return err
			}
			name = free
		}

		contentType := c.contentType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(p))
		}

		files = append(files, adapter.File{Path: p, Name: name, Type: contentType})
	}

	results, err := upload.SaveAll(ctx, c.adapter, files, dir, c.maxConcurrent, c.logger)
	for _, r := range results {
		if r.Success() {
			fmt.Fprintln(c.out, r.URL)
		}
	}
	return err
}

func (c *cli) read(ctx context.Context, key, out string) error {
	body, err := c.adapter.Read(ctx, adapter.ReadOptions{Path: key})
	if err != nil {
		return err
	}
	defer body.Close()

	if out == "" {
		return c.copyObject(key, c.out, body)
	}

	create := c.create
	if create == nil {
		create = func(name string) (io.WriteCloser, error) { return os.Create(name) }
	}

	f, err := create(out)
	if err != nil {
		return err
	}
	if err := c.copyObject(key, f, body); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}

func (c *cli) copyObject(key string, w io.Writer, body io.Reader) error {
	n, err := io.Copy(w, body)
	if err != nil {
		return fmt.Errorf("copying %s: %w", key, err)
	}
	c.logger.Debug().Str("key", key).Int64("bytes", n).Msg("read completed")
	return nil
}

// runCheck resolves opts, prints every field status and probes the bucket
// with a read of a key that should not exist
func runCheck(ctx context.Context, opts config.Options, out io.Writer, logger zerolog.Logger) error {
	cfg, err := config.Resolve(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "configuration:", cfg.String())

	a, err := adapter.Open(ctx, opts, adapter.WithLogger(logger))
	if err != nil {
		return err
	}
	return probe(ctx, a, out)
}

func probe(ctx context.Context, a *adapter.Adapter, out io.Writer) error {
	body, err := a.Read(ctx, adapter.ReadOptions{Path: probeKey})
	switch {
	case err == nil:
		body.Close()
	case adapter.IsNotFound(err):
	default:
		return fmt.Errorf("bucket probe failed: %w", err)
	}
	fmt.Fprintln(out, "bucket reachable")
	return nil
}
