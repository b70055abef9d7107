package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/unixtime"
	"github.com/aretw0/unixtime/pkg/adapters/file"
	"github.com/aretw0/unixtime/pkg/adapters/memory"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
	"github.com/aretw0/unixtime/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestHost_DocumentContract(t *testing.T) {
	ports.RunDocumentHostContract(t, func(t *testing.T, text string, sel domain.Range) (ports.Host, func() string) {
		path := writeDoc(t, text)
		host, err := file.NewHost(path, sel, memory.NewHost())
		require.NoError(t, err)
		return host, func() string { return readDoc(t, path) }
	})
}

func TestNewHost_Errors(t *testing.T) {
	_, err := file.NewHost(filepath.Join(t.TempDir(), "missing"), domain.Range{}, memory.NewHost())
	assert.Error(t, err)

	path := writeDoc(t, "abc")
	_, err = file.NewHost(path, domain.Range{Start: 2, End: 9}, memory.NewHost())
	assert.Error(t, err)
}

func TestHost_StaleSelectionAfterExternalEdit(t *testing.T) {
	path := writeDoc(t, "at=0;")
	ui := memory.NewHost()
	host, err := file.NewHost(path, domain.Range{Start: 3, End: 4}, ui)
	require.NoError(t, err)

	ctx := context.Background()
	sel, ok, err := host.ActiveSelection(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("at=9;"), 0600))

	err = host.ReplaceSelection(ctx, sel, "X")
	assert.ErrorIs(t, err, domain.ErrStaleSelection)
	assert.Equal(t, "at=9;", readDoc(t, path))
}

func TestHost_PreservesFileMode(t *testing.T) {
	path := writeDoc(t, "x")
	host, err := file.NewHost(path, domain.Range{Start: 1, End: 1}, memory.NewHost())
	require.NoError(t, err)

	require.NoError(t, host.InsertAtCursor(context.Background(), "y"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestHost_ConvertSelectionInFile(t *testing.T) {
	path := writeDoc(t, "expires: 1609459200\n")
	ui := memory.NewHost()
	host, err := file.NewHost(path, domain.Range{Start: 9, End: 19}, ui)
	require.NoError(t, err)

	out := unixtime.New(unixtime.WithLocation(time.UTC)).ConvertUnixToHuman(context.Background(), host)

	require.Equal(t, domain.StatusReplaced, out.Status)
	assert.Equal(t, "expires: Fri Jan 01 2021 00:00:00 GMT+0000 (UTC)\n", readDoc(t, path))
	assert.Equal(t, []string{domain.MessageSelectionReplaced}, ui.Infos())
}

func TestHost_EmptySelectionPromptsThroughUI(t *testing.T) {
	path := writeDoc(t, "ts=;")
	ui := memory.NewHost(memory.WithAnswers("2021-01-01T00:00:00Z"))
	host, err := file.NewHost(path, domain.Range{Start: 3, End: 3}, ui)
	require.NoError(t, err)

	unixtime.New().ConvertToUnixTimestamp(context.Background(), host)

	assert.Equal(t, "ts=1609459200;", readDoc(t, path))
	assert.Equal(t, []string{domain.PromptTimestamp}, ui.Prompts())
}

func TestHost_InsertTimestamp(t *testing.T) {
	path := writeDoc(t, "a\nb\n")
	host, err := file.NewHost(path, domain.Range{Start: 2, End: 2}, memory.NewHost())
	require.NoError(t, err)

	u := unixtime.New(unixtime.WithClock(transform.FixedClock(time.Unix(42, 0))))
	out := u.InsertTimestamp(context.Background(), host)

	require.Equal(t, domain.StatusInserted, out.Status)
	assert.Equal(t, "a\n42b\n", readDoc(t, path))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Range
		wantErr bool
	}{
		{"3:7", domain.Range{Start: 3, End: 7}, false},
		{"5", domain.Range{Start: 5, End: 5}, false},
		{" 0:0 ", domain.Range{}, false},
		{"7:3", domain.Range{}, true},
		{"-1:2", domain.Range{}, true},
		{"a:b", domain.Range{}, true},
		{"", domain.Range{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := file.ParseRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
