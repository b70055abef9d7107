package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunOutputLogContract runs a suite of tests to verify that an OutputLog implementation
// adheres to the defined interface contract. The log must start empty.
func RunOutputLogContract(t *testing.T, log OutputLog) {
	ctx := context.Background()

	t.Run("Name", func(t *testing.T) {
		assert.NotEmpty(t, log.Name())
	})

	t.Run("Append Preserves Order", func(t *testing.T) {
		require.NoError(t, log.AppendLine(ctx, "1609459200"))
		require.NoError(t, log.AppendLine(ctx, "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)"))
		require.NoError(t, log.Show(ctx))

		lines, err := log.Lines(ctx)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "1609459200", lines[0])
		assert.Equal(t, "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)", lines[1])
	})

	t.Run("Concurrent Appends", func(t *testing.T) {
		before, err := log.Lines(ctx)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, log.AppendLine(ctx, fmt.Sprintf("line-%d", i)))
			}(i)
		}
		wg.Wait()

		after, err := log.Lines(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before)+20)
	})
}

// DocumentHostFactory builds a Host whose active document holds text with sel selected.
// An empty sel places the cursor at sel.Start.
type DocumentHostFactory func(t *testing.T, text string, sel domain.Range) (Host, func() string)

// RunDocumentHostContract verifies the document-facing half of a Host.
// The returned func of the factory reads back the current document text.
func RunDocumentHostContract(t *testing.T, factory DocumentHostFactory) {
	ctx := context.Background()

	t.Run("Active Selection", func(t *testing.T) {
		host, _ := factory(t, "ts=1609459200;", domain.Range{Start: 3, End: 13})
		sel, ok, err := host.ActiveSelection(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "1609459200", sel.Text)
		assert.Equal(t, domain.Range{Start: 3, End: 13}, sel.Range)
	})

	t.Run("Replace Selection", func(t *testing.T) {
		host, read := factory(t, "ts=1609459200;", domain.Range{Start: 3, End: 13})
		sel, _, err := host.ActiveSelection(ctx)
		require.NoError(t, err)

		require.NoError(t, host.ReplaceSelection(ctx, sel, "X"))
		assert.Equal(t, "ts=X;", read())
	})

	t.Run("Replace Empty Selection Inserts", func(t *testing.T) {
		host, read := factory(t, "ab", domain.Range{Start: 1, End: 1})
		sel, ok, err := host.ActiveSelection(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, sel.IsEmpty())

		require.NoError(t, host.ReplaceSelection(ctx, sel, "-"))
		assert.Equal(t, "a-b", read())
	})

	t.Run("Insert At Cursor", func(t *testing.T) {
		host, read := factory(t, "hello world", domain.Range{Start: 5, End: 5})
		require.NoError(t, host.InsertAtCursor(ctx, "!"))
		assert.Equal(t, "hello! world", read())
	})
}
