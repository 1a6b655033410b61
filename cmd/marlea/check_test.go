package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinemde/marlea/loader"
)

// lockedBuffer lets the watch goroutine write while the test reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// rewriteUntil rewrites path with content until out contains want. The tick
// is longer than watchDebounce so each write gets its own report.
func rewriteUntil(t *testing.T, path, content string, out *lockedBuffer, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		if strings.Contains(out.String(), want) {
			return true
		}
		_ = os.WriteFile(path, []byte(content), 0o644)
		return false
	}, 5*time.Second, 3*watchDebounce)
}

func TestWatchFilesRechecksOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.csv")
	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("a => b,1,\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, loader.NewDefaultRegistry(nil), []string{path}, out)
	}()

	rewriteUntil(t, path, "a => b,1,\nb => c,2,\n", out, "ok   "+path+" (2 reactions, 3 species)")

	require.NoError(t, os.WriteFile(other, []byte("x => y,1,\n"), 0o644))
	rewriteUntil(t, path, "a => ,1,\n", out, "FAIL ")

	assert.Contains(t, out.String(), "line 1, col 6: products")
	assert.NotContains(t, out.String(), "other.csv")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFiles did not return after cancel")
	}
}
