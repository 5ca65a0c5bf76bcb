package upload

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/adapter"
)

type fakeSaver struct {
	fail     map[string]error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32

	mu    sync.Mutex
	calls []string
}

func (f *fakeSaver) Save(ctx context.Context, file adapter.File, targetDir string) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, file.Name)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err := f.fail[file.Name]; err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + targetDir + "/" + file.Name, nil
}

func files(names ...string) []adapter.File {
	out := make([]adapter.File, len(names))
	for i, n := range names {
		out[i] = adapter.File{Path: "/tmp/" + n, Name: n}
	}
	return out
}

func TestSaveAll_OrderedResults(t *testing.T) {
	saver := &fakeSaver{}

	results, err := SaveAll(context.Background(), saver, files("a.png", "b.png", "c.png"), "2024/05", 2, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, name := range []string{"a.png", "b.png", "c.png"} {
		assert.Equal(t, name, results[i].Name)
		assert.Equal(t, "https://cdn.example.com/2024/05/"+name, results[i].URL)
		assert.True(t, results[i].Success())
	}
}

func TestSaveAll_FailureDoesNotStopOthers(t *testing.T) {
	boom := errors.New("boom")
	saver := &fakeSaver{fail: map[string]error{"b.png": boom}}

	results, err := SaveAll(context.Background(), saver, files("a.png", "b.png", "c.png"), "x", 1, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "b.png")

	assert.True(t, results[0].Success())
	assert.False(t, results[1].Success())
	assert.Empty(t, results[1].URL)
	assert.True(t, results[2].Success())
	assert.Len(t, saver.calls, 3)
}

func TestSaveAll_BoundsConcurrency(t *testing.T) {
	saver := &fakeSaver{delay: 20 * time.Millisecond}

	_, err := SaveAll(context.Background(), saver, files("1", "2", "3", "4", "5", "6"), "x", 2, zerolog.Nop())
	require.NoError(t, err)
	assert.LessOrEqual(t, saver.peak.Load(), int32(2))
}

func TestSaveAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := SaveAll(ctx, &fakeSaver{}, files("a.png"), "x", 1, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, results[0].Success())
}

func TestSaveAll_Empty(t *testing.T) {
	results, err := SaveAll(context.Background(), &fakeSaver{}, nil, "x", 4, zerolog.Nop())
	assert.NoError(t, err)
	assert.Empty(t, results)
}
