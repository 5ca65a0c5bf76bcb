package naming

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DirFormat partitions uploads by year and month
	DirFormat = "2006/01"

	// Separator between a file's base name and its collision counter
	Separator = "-"

	// MaxAttempts bounds the collision counter
	MaxAttempts = 1000
)

var ErrNoUniqueName = errors.New("no unique file name available")

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_@.\-]`)

// Exister answers whether a file name is taken in a directory
type Exister interface {
	Exists(ctx context.Context, filename, targetDir string) (bool, error)
}

// TargetDir returns the default directory for uploads made at t (e.g., "2024/05")
func TargetDir(t time.Time) string {
	return t.Format(DirFormat)
}

// Sanitize makes name safe for object keys and URLs. Unsafe characters
// become "-"; a name with nothing left of its base gets a random UUID base.
//
//	"My Photo (1).PNG" -> "My-Photo--1-.png"
func Sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(path.Ext(name))
	base := strings.TrimSuffix(name, path.Ext(name))

	base = unsafeChars.ReplaceAllString(base, Separator)
	ext = unsafeChars.ReplaceAllString(ext, "")
	base = strings.Trim(base, ".")

	if strings.Trim(base, Separator) == "" {
		base = uuid.NewString()
	}
	return base + ext
}

// UniqueFileName returns the sanitized name, or the first "name-N.ext" that
// ex reports as free. Errors from ex are returned, never read as "free".
func UniqueFileName(ctx context.Context, ex Exister, dir, name string) (string, error) {
	clean := Sanitize(name)
	ext := path.Ext(clean)
	base := strings.TrimSuffix(clean, ext)

	for i := 0; i < MaxAttempts; i++ {
		candidate := clean
		if i > 0 {
			candidate = fmt.Sprintf("%s%s%d%s", base, Separator, i, ext)
		}

		taken, err := ex.Exists(ctx, candidate, dir)
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s after %d attempts", ErrNoUniqueName, clean, MaxAttempts)
}
