package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/pagelens/internal/extractor"
)

// Test Plan for watch mode:
// - A relevant file change triggers re-extraction and delivers a fresh
//   result to the callback
// - Events for ignored paths and non-code files are filtered out
// - Cancelling the context stops the watch loop cleanly

func TestEngine_Watch_ReextractsOnChange(t *testing.T) {
	t.Parallel()

	root := newTestProject(t)
	engine, err := New(DefaultConfig(root))
	require.NoError(t, err)
	defer engine.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *Result, 4)
	done := make(chan error, 1)
	go func() {
		done <- engine.Watch(ctx, func(result *Result) {
			results <- result
		})
	}()

	// Give the watcher time to register the directory tree.
	time.Sleep(250 * time.Millisecond)

	writeProjectFile(t, root, "src/extra.ts", "export function added() { return 1; }\n")

	select {
	case result := <-results:
		require.NotNil(t, result)
		var found bool
		for _, chunk := range result.Chunks {
			if chunk.Name == "added" && chunk.Kind == extractor.KindFunction {
				found = true
			}
		}
		assert.True(t, found, "expected the new file's chunk in the re-extraction result")
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for re-extraction")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestEngine_ShouldProcessEvent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	eng, err := New(DefaultConfig(root))
	require.NoError(t, err)
	defer eng.Close()

	e := eng.(*engine)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			"code file write",
			fsnotify.Event{Name: root + "/src/app.ts", Op: fsnotify.Write},
			true,
		},
		{
			"code file create",
			fsnotify.Event{Name: root + "/tests/new.spec.ts", Op: fsnotify.Create},
			true,
		},
		{
			"non-code file",
			fsnotify.Event{Name: root + "/README.md", Op: fsnotify.Write},
			false,
		},
		{
			"ignored directory",
			fsnotify.Event{Name: root + "/node_modules/pkg/index.ts", Op: fsnotify.Write},
			false,
		},
		{
			"output directory",
			fsnotify.Event{Name: root + "/.pagelens/chunks.json", Op: fsnotify.Write},
			false,
		},
		{
			"chmod only",
			fsnotify.Event{Name: root + "/src/app.ts", Op: fsnotify.Chmod},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.shouldProcessEvent(tt.event))
		})
	}
}
