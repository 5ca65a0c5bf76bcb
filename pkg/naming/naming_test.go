package naming

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExister struct {
	taken map[string]bool
	err   error
	calls []string
}

func (f *fakeExister) Exists(ctx context.Context, filename, targetDir string) (bool, error) {
	f.calls = append(f.calls, path.Join(targetDir, filename))
	if f.err != nil {
		return false, f.err
	}
	return f.taken[path.Join(targetDir, filename)], nil
}

func TestTargetDir(t *testing.T) {
	assert.Equal(t, "2024/05", TargetDir(time.Date(2024, 5, 17, 3, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025/12", TargetDir(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "photo.png", "photo.png"},
		{"spaces and parens", "My Photo (1).PNG", "My-Photo--1-.png"},
		{"keeps at and dash", "me@home-2.jpg", "me@home-2.jpg"},
		{"strips directories", "../../etc/passwd.png", "passwd.png"},
		{"windows path", `C:\Users\me\cat.gif`, "cat.gif"},
		{"no extension", "README", "README"},
		{"accented", "café.jpg", "caf-.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_EmptyBaseGetsUUID(t *testing.T) {
	uuidName := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.png$`)
	assert.Regexp(t, uuidName, Sanitize(".png"))
	assert.Regexp(t, uuidName, Sanitize("###.png"))
	assert.Regexp(t, uuidName, Sanitize("фото.png"))
}

func TestUniqueFileName(t *testing.T) {
	ctx := context.Background()

	t.Run("free_name", func(t *testing.T) {
		ex := &fakeExister{}
		name, err := UniqueFileName(ctx, ex, "2024/05", "photo.png")
		require.NoError(t, err)
		assert.Equal(t, "photo.png", name)
		assert.Equal(t, []string{"2024/05/photo.png"}, ex.calls)
	})

	t.Run("appends_counter", func(t *testing.T) {
		ex := &fakeExister{taken: map[string]bool{
			"2024/05/photo.png":   true,
			"2024/05/photo-1.png": true,
		}}
		name, err := UniqueFileName(ctx, ex, "2024/05", "photo.png")
		require.NoError(t, err)
		assert.Equal(t, "photo-2.png", name)
	})

	t.Run("probe_error_propagates", func(t *testing.T) {
		probeErr := errors.New("access denied")
		ex := &fakeExister{err: probeErr}
		_, err := UniqueFileName(ctx, ex, "2024/05", "photo.png")
		require.Error(t, err)
		assert.ErrorIs(t, err, probeErr)
	})

	t.Run("gives_up", func(t *testing.T) {
		taken := make(map[string]bool)
		taken["a.png"] = true
		for i := 1; i < MaxAttempts; i++ {
			taken["a-"+strconv.Itoa(i)+".png"] = true
		}
		_, err := UniqueFileName(ctx, &fakeExister{taken: taken}, "", "a.png")
		assert.ErrorIs(t, err, ErrNoUniqueName)
	})
}
