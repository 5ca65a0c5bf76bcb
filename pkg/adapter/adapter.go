package adapter

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/config"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/naming"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage"
)

// File is an upload staged on local disk by the host
type File struct {
	Path string // temporary location of the content
	Name string // final, already unique file name; defaults to the base of Path
	Type string // declared MIME type
}

// ReadOptions selects the object to read
type ReadOptions struct {
	Path string // full object key, used as is
}

// Adapter implements the host's storage contract on top of an ObjectStore.
// It holds no per-call state and is safe for concurrent use.
type Adapter struct {
	cfg       config.ClientConfig
	store     storage.ObjectStore
	logger    zerolog.Logger
	overwrite bool
	now       func() time.Time
}

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the logger used for operation logs
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// WithOverwrite makes Exists report every name as free without asking the
// store, so the host never renames uploads and same-name uploads replace
// each other.
func WithOverwrite(overwrite bool) Option {
	return func(a *Adapter) { a.overwrite = overwrite }
}

// WithClock overrides the clock used for the default target directory
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// New creates an adapter for an already resolved config and store
func New(cfg config.ClientConfig, store storage.ObjectStore, opts ...Option) *Adapter {
	a := &Adapter{
		cfg:    cfg,
		store:  store,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With().
		Str("bucket", cfg.Bucket()).
		Str("provider", store.Name()).
		Logger()
	return a
}

// Open resolves raw options, builds the configured provider and returns the
// adapter. Any configuration problem is reported here, before first use.
func Open(ctx context.Context, raw config.Options, opts ...Option) (*Adapter, error) {
	cfg, err := config.Resolve(raw)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewFactory().Create(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithOverwrite(raw.Overwrite)}, opts...)
	return New(cfg, store, opts...), nil
}

// Config returns the resolved configuration
func (a *Adapter) Config() config.ClientConfig { return a.cfg }

// URL returns the public URL of key
func (a *Adapter) URL(key string) string {
	return a.cfg.PublicURL() + "/" + key
}

// Save uploads file under targetDir and returns its public URL. An empty
// targetDir means the current year/month partition.
func (a *Adapter) Save(ctx context.Context, file File, targetDir string) (string, error) {
	if targetDir == "" {
		targetDir = naming.TargetDir(a.now())
	}

	name := file.Name
	if name == "" {
		name = path.Base(file.Path)
	}

	key, err := ObjectKey(targetDir, name)
	if err != nil {
		return "", newOpError(OpSave, "", err)
	}
	log := a.logger.With().Str("key", key).Logger()

	src, err := os.Open(file.Path)
	if err != nil {
		log.Error().Err(err).Str("file", file.Path).Msg("failed to open staged upload")
		return "", newOpError(OpLocalRead, key, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", newOpError(OpLocalRead, key, err)
	}
	size := info.Size()

	start := time.Now()
	err = a.store.Put(ctx, key, src, storage.PutOptions{
		ContentType: file.Type,
		Size:        size,
		ACL:         a.cfg.ACL(),
	})
	if err != nil {
		log.Error().Err(err).Msg("upload failed")
		return "", newOpError(OpSave, key, err)
	}

	url := a.URL(key)
	log.Debug().
		Int64("size", size).
		Str("content_type", file.Type).
		Dur("duration", time.Since(start)).
		Str("url", url).
		Msg("upload succeeded")
	return url, nil
}

// Exists reports whether filename is taken in targetDir. Only a store
// "not found" answer yields false; any other failure is returned.
func (a *Adapter) Exists(ctx context.Context, filename, targetDir string) (bool, error) {
	key, err := ObjectKey(targetDir, filename)
	if err != nil {
		return false, newOpError(OpExists, "", err)
	}

	if a.overwrite {
		a.logger.Debug().Str("key", key).Msg("overwrite enabled, skipping existence check")
		return false, nil
	}

	if _, err := a.store.Head(ctx, key); err != nil {
		if storage.IsNotFound(err) {
			a.logger.Debug().Str("key", key).Bool("exists", false).Msg("existence check")
			return false, nil
		}
		a.logger.Error().Err(err).Str("key", key).Msg("existence check failed")
		return false, newOpError(OpExists, key, err)
	}

	a.logger.Debug().Str("key", key).Bool("exists", true).Msg("existence check")
	return true, nil
}

// Delete removes filename from targetDir. A key that is already gone counts
// as deleted.
func (a *Adapter) Delete(ctx context.Context, filename, targetDir string) (bool, error) {
	key, err := ObjectKey(targetDir, filename)
	if err != nil {
		return false, newOpError(OpDelete, "", err)
	}

	if err := a.store.Delete(ctx, key); err != nil && !storage.IsNotFound(err) {
		a.logger.Error().Err(err).Str("key", key).Msg("delete failed")
		return false, newOpError(OpDelete, key, err)
	}

	a.logger.Debug().Str("key", key).Msg("deleted")
	return true, nil
}

// Read opens the object at opts.Path. The caller must close the stream.
func (a *Adapter) Read(ctx context.Context, opts ReadOptions) (io.ReadCloser, error) {
	if err := checkKey(opts.Path); err != nil {
		return nil, newOpError(OpRead, opts.Path, err)
	}

	body, err := a.store.Get(ctx, opts.Path)
	if err != nil {
		if !storage.IsNotFound(err) {
			a.logger.Error().Err(err).Str("key", opts.Path).Msg("read failed")
		}
		return nil, newOpError(OpRead, opts.Path, err)
	}

	a.logger.Debug().Str("key", opts.Path).Msg("read opened")
	return body, nil
}

// Serve returns the request hook the host installs at startup. Objects are
// served from the public URL, so requests pass straight through.
func (a *Adapter) Serve() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}
