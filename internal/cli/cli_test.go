package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
	"github.com/eshaffer321/orderparser/internal/infrastructure/storage"
)

// setupLocal points the CLI at a temp SQLite store and returns its path.
func setupLocal(t *testing.T, items ...orders.HistoryItem) string {
	t.Helper()
	dir := t.TempDir()
	kvPath := filepath.Join(dir, "local.db")
	t.Setenv("KV_DB_PATH", kvPath)
	t.Setenv("LOG_LEVEL", "error")

	store, err := storage.NewKVStore(kvPath, nil)
	require.NoError(t, err)
	for _, item := range items {
		require.NoError(t, store.Save(context.Background(), item))
	}
	require.NoError(t, store.Close())
	return kvPath
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--local", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func sampleRun() orders.HistoryItem {
	return orders.HistoryItem{
		ID:        "run-1",
		Timestamp: 1700000000000,
		Result: orders.ParsingResult{
			Orders: []orders.OrderRow{
				{ID: "r1", CustomerOrderNo: "AU-1", RecipientName: "Ann", City: "Sydney", State: "NSW", Quantity: "1", Warehouse: "Other"},
				{ID: "r2", CustomerOrderNo: "UK-1", RecipientName: "Bob", City: "Nottingham", Quantity: "2", Warehouse: "诺丁汉"},
			},
			Stats:     orders.ProcessingStats{RawOrderCount: 2, ProcessedRowCount: 2, AuRowCount: 1},
			ChangeLog: []orders.ChangeLogEntry{},
		},
	}
}

func TestHistoryCommand(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		setupLocal(t)

		out, _, err := run(t, "history")
		require.NoError(t, err)
		assert.Contains(t, out, "No saved runs.")
	})

	t.Run("lists runs", func(t *testing.T) {
		setupLocal(t, sampleRun())

		out, _, err := run(t, "history")
		require.NoError(t, err)
		assert.Contains(t, out, "run-1")
		assert.Contains(t, out, "2 original orders / 2 processed rows")
		assert.Contains(t, out, "Total: 1 runs")
	})
}

func TestExportCommand(t *testing.T) {
	setupLocal(t, sampleRun())

	t.Run("default layout to stdout", func(t *testing.T) {
		out, _, err := run(t, "export", "run-1")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[1], "UK-1\t"), "Nottingham rows first")
	})

	t.Run("australia layout", func(t *testing.T) {
		out, _, err := run(t, "export", "run-1", "--layout", "au")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "\tAU-1\tAnn\tNSW\t")
	})

	t.Run("clipboard", func(t *testing.T) {
		var copied string
		orig := writeClipboard
		writeClipboard = func(s string) error {
			copied = s
			return nil
		}
		defer func() { writeClipboard = orig }()

		out, errOut, err := run(t, "export", "run-1", "--layout", "bham", "--ids", "r1", "--clipboard")
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "Copied 1 rows")
		assert.True(t, strings.HasPrefix(copied, "客户订单号\t收件人姓名"))
		assert.Contains(t, copied, "\nAU-1\tAnn\tSydney")
	})

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.xlsx")
		_, _, err := run(t, "export", "run-1", "--xlsx", path)
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("unknown run", func(t *testing.T) {
		_, _, err := run(t, "export", "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unknown layout", func(t *testing.T) {
		_, _, err := run(t, "export", "run-1", "--layout", "mars")
		assert.Error(t, err)
	})
}

func TestEditAndShowCommands(t *testing.T) {
	setupLocal(t, sampleRun())

	out, _, err := run(t, "edit", "run-1", "r2", "city", "Nottingham")
	require.NoError(t, err)
	assert.Contains(t, out, "No change.")

	out, _, err = run(t, "edit", "run-1", "r2", "city", "Derby")
	require.NoError(t, err)
	assert.Contains(t, out, `UK-1 城市: "Nottingham" -> "Derby"`)

	out, _, err = run(t, "show", "run-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Change log:")
	assert.Contains(t, out, "[AU]")
	assert.Contains(t, out, `"Derby"`)
}

func TestParseCommand_NoCredentials(t *testing.T) {
	setupLocal(t)
	for _, key := range []string{"API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(key, "")
	}

	input := filepath.Join(t.TempDir(), "orders.txt")
	require.NoError(t, os.WriteFile(input, []byte("订单号：P1"), 0o644))

	_, _, err := run(t, "parse", "--file", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY is missing")
}

func TestParseCommand_EmptyInput(t *testing.T) {
	setupLocal(t)

	_, _, err := run(t, "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please enter some order text.")
}
