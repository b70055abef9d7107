package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streams struct {
	out *bytes.Buffer
	err *bytes.Buffer
}

func testOptions(t *testing.T, stdin string, config string) (Options, streams) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unixtime.yaml")
	require.NoError(t, os.WriteFile(path, []byte("location: UTC\n"+config), 0o644))

	s := streams{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	return Options{
		ConfigPath: path,
		Stdin:      strings.NewReader(stdin),
		Stdout:     s.out,
		Stderr:     s.err,
	}, s
}

func value(s string) *string { return &s }

func TestRunCommand_ValueToLog(t *testing.T) {
	opts, s := testOptions(t, "", "")

	err := RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{Value: value("0")})
	require.NoError(t, err)
	assert.Equal(t, "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)\n", s.out.String())
}

func TestRunCommand_PromptsOnStdin(t *testing.T) {
	opts, s := testOptions(t, "Fri Jan 01 2021 00:00:00 GMT+0000 (UTC)\n", "")

	require.NoError(t, RunCommand(opts, domain.CommandHumanToUnix, CommandOptions{}))
	assert.Equal(t, "1609459200\n", s.out.String())
}

func TestRunCommand_EmptyInputIsSilent(t *testing.T) {
	opts, s := testOptions(t, "\n", "")

	require.NoError(t, RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{}))
	assert.Empty(t, s.out.String())
	assert.Empty(t, s.err.String())
}

func TestRunCommand_InvalidInputIsReported(t *testing.T) {
	opts, s := testOptions(t, "", "")

	err := RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{Value: value("abc")})
	assert.ErrorIs(t, err, ErrReported)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, s.err.String(), "Invalid input")
	assert.Empty(t, s.out.String())
}

func TestRunCommand_InsertWithoutFile(t *testing.T) {
	opts, s := testOptions(t, "", "")

	err := RunCommand(opts, domain.CommandInsertTimestamp, CommandOptions{})
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)
	assert.Contains(t, s.err.String(), "There is no active text editor")
}

func TestRunCommand_FileSelection(t *testing.T) {
	opts, s := testOptions(t, "", "")
	doc := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(doc, []byte("at 0;"), 0o644))

	err := RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{File: doc, Selection: "3:4"})
	require.NoError(t, err)

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "at Thu Jan 01 1970 00:00:00 GMT+0000 (UTC);", string(data))
	assert.Contains(t, s.err.String(), domain.MessageSelectionReplaced)
	assert.Empty(t, s.out.String())
}

func TestRunCommand_FileCursorInsert(t *testing.T) {
	opts, _ := testOptions(t, "", "")
	doc := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(doc, []byte("t=;"), 0o644))

	require.NoError(t, RunCommand(opts, domain.CommandInsertTimestamp, CommandOptions{File: doc, Selection: "2"}))

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Regexp(t, `^t=[0-9]+;$`, string(data))
}

func TestRunCommand_BadSelection(t *testing.T) {
	opts, _ := testOptions(t, "", "")
	doc := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(doc, []byte("abc"), 0o644))

	assert.Error(t, RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{File: doc, Selection: "x"}))
	assert.Error(t, RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{File: doc, Selection: "1:9"}))
}

func TestSetup_FlagsOverrideConfig(t *testing.T) {
	opts, _ := testOptions(t, "", "")
	opts.Location = "America/Sao_Paulo"
	opts.Debug = true

	env, err := Setup(context.Background(), opts)
	require.NoError(t, err)
	defer env.Close()

	assert.Equal(t, "America/Sao_Paulo", env.Config.Location)
	assert.True(t, env.Config.Debug)
	assert.Equal(t, "America/Sao_Paulo", env.Utility.Converter().Location().String())
}

func TestSetup_Errors(t *testing.T) {
	opts, _ := testOptions(t, "", "")
	opts.Location = "Mars/Olympus"
	_, err := Setup(context.Background(), opts)
	assert.Error(t, err)

	opts.Location = ""
	opts.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Setup(context.Background(), opts)
	assert.Error(t, err)
}

func TestRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := "log_backend: redis\nredis:\n  addr: " + mr.Addr() + "\n  key: test:log\n"

	opts, s := testOptions(t, "", cfg)
	require.NoError(t, RunCommand(opts, domain.CommandHumanToUnix, CommandOptions{Value: value("1970-01-01T00:00:05Z")}))
	assert.Equal(t, "5\n", s.out.String())

	stored, err := mr.List("test:log")
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, stored)

	// A second process only echoes its own line.
	opts, s = testOptions(t, "", cfg)
	require.NoError(t, RunCommand(opts, domain.CommandHumanToUnix, CommandOptions{Value: value("1970-01-01T00:00:06Z")}))
	assert.Equal(t, "6\n", s.out.String())

	opts, s = testOptions(t, "", cfg)
	require.NoError(t, ShowLog(opts, false))
	assert.Contains(t, s.out.String(), "5")
	assert.Contains(t, s.out.String(), "6")
}

func TestRedisBackend_Unreachable(t *testing.T) {
	opts, s := testOptions(t, "", "log_backend: redis\nredis:\n  addr: 127.0.0.1:1\n")

	err := RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{Value: value("0")})
	assert.ErrorIs(t, err, ErrReported)
	assert.Contains(t, s.err.String(), "redis unreachable")
}

func TestShowLog_FollowNeedsRedis(t *testing.T) {
	opts, _ := testOptions(t, "", "")
	assert.Error(t, ShowLog(opts, true))
}

func TestPrintNow(t *testing.T) {
	opts, s := testOptions(t, "", "")
	require.NoError(t, PrintNow(opts))
	assert.Regexp(t, `^[0-9]+\n$`, s.out.String())
}

func TestRunMCP_UnknownTransport(t *testing.T) {
	opts, _ := testOptions(t, "", "")
	assert.Error(t, RunMCP(opts, "carrier-pigeon", 0))
}

func TestREPL(t *testing.T) {
	opts, s := testOptions(t, "human 0\nts\n1970-01-01T00:00:01Z\nnow\nbogus\n:log\nquit\nhuman 1\n", "")

	require.NoError(t, RunREPL(opts))

	out := s.out.String()
	assert.Contains(t, out, "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)\n")
	assert.Contains(t, out, "1\n")
	assert.Regexp(t, `(?m)^> [0-9]{9,}$`, out)
	assert.Contains(t, out, "Bye!")
	assert.NotContains(t, out, "00:00:01 GMT+0000")
	assert.Contains(t, s.err.String(), "Unknown command")
}

func TestREPL_EOFEndsSession(t *testing.T) {
	opts, s := testOptions(t, "human 0\n", "")

	require.NoError(t, RunREPL(opts))
	assert.Contains(t, s.out.String(), "Bye!")
}

func TestRedisBackend_Encrypted(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{42}, 32))
	cfg := "log_backend: redis\nredis:\n  addr: " + mr.Addr() + "\n  encryption_key: " + key + "\n"

	opts, s := testOptions(t, "", cfg)
	require.NoError(t, RunCommand(opts, domain.CommandUnixToHuman, CommandOptions{Value: value("0")}))
	assert.Equal(t, "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)\n", s.out.String())

	stored, err := mr.List("unixtime:log")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotContains(t, stored[0], "1970")

	opts, s = testOptions(t, "", cfg)
	require.NoError(t, ShowLog(opts, false))
	assert.Contains(t, s.out.String(), "1970")
}
