package adapter

import (
	"fmt"
	"path"
	"strings"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage"
)

// ObjectKey joins a target directory and a file name into a store key.
// Keys always use forward slashes, never start with "/" and never contain
// ".." segments; backslashes from Windows-style inputs are converted.
func ObjectKey(dir, name string) (string, error) {
	dir = strings.ReplaceAll(dir, `\`, "/")
	name = strings.ReplaceAll(name, `\`, "/")

	if strings.Trim(name, "/ ") == "" || path.Clean("/"+name) == "/" {
		return "", fmt.Errorf("%w: empty file name", storage.ErrInvalidKey)
	}
	if err := checkSegments(dir + "/" + name); err != nil {
		return "", err
	}

	key := strings.TrimLeft(path.Join(dir, name), "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidKey, dir+"/"+name)
	}
	return key, nil
}

// checkKey validates a caller-supplied key without rewriting it
func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", storage.ErrInvalidKey)
	}
	return checkSegments(key)
}

func checkSegments(p string) error {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: %q contains a parent segment", storage.ErrInvalidKey, p)
		}
	}
	return nil
}
