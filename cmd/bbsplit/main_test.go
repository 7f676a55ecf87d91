package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func minimalSession(t *testing.T) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("H Product:Blackbox flight data recorder by Nicholas Sherlock\n")
	b.WriteString("H Field I name:loopIteration,time\n")
	b.WriteString("H Field I signed:0,0\n")
	b.WriteString("H Field I predictor:0,0\n")
	b.WriteString("H Field I encoding:1,1\n")
	b.WriteString("H Field P signed:0,0\n")
	b.WriteString("H Field P predictor:1,1\n")
	b.WriteString("H Field P encoding:0,0\n")
	b.WriteString("I\x00\x00")

	return b.String()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRun_SplitOneToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dump.bbl")
	out := filepath.Join(dir, "session.bbl")

	require.NoError(t, os.WriteFile(in, []byte(minimalSession(t)), 0o644))
	require.NoError(t, run(testLogger(), in, 1, out, false))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, minimalSession(t), string(got))
}

func TestRun_SplitOneOutOfRange(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dump.bbl")
	require.NoError(t, os.WriteFile(in, []byte(minimalSession(t)), 0o644))

	err := run(testLogger(), in, 2, filepath.Join(dir, "out.bbl"), false)
	require.Error(t, err)
}

func TestRun_SplitAll(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dump.bbl")

	session := minimalSession(t)
	padding := strings.Repeat("\x00", 4096-len(session))
	data := session + padding + minimalSession(t)
	require.NoError(t, os.WriteFile(in, []byte(data), 0o644))

	base := filepath.Join(dir, "session")
	require.NoError(t, run(testLogger(), in, 0, base, false))

	first, err := os.ReadFile(base + ".1")
	require.NoError(t, err)
	require.Equal(t, data[:len(session)+len(padding)], string(first))

	second, err := os.ReadFile(base + ".2")
	require.NoError(t, err)
	require.Equal(t, minimalSession(t), string(second))
}

func TestSplitAll_RejectsStdout(t *testing.T) {
	err := splitAll(testLogger(), nil, "-")
	require.Error(t, err)
}

func TestOpenOutput_Stdout(t *testing.T) {
	for _, v := range []string{"", "-"} {
		w, closeFn, err := openOutput(v)
		require.NoError(t, err)
		require.Equal(t, os.Stdout, w)
		require.NoError(t, closeFn())
	}
}

func TestOpenOutput_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bbl")

	w, closeFn, err := openOutput(path)
	require.NoError(t, err)
	defer closeFn()

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.NoError(t, closeFn())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))
}

func TestOutputLabel(t *testing.T) {
	require.Equal(t, "stdout", outputLabel(""))
	require.Equal(t, "stdout", outputLabel("-"))
	require.Equal(t, "foo.bbl", outputLabel("foo.bbl"))
}

func TestNewLogger_Levels(t *testing.T) {
	l := newLogger(0)
	require.True(t, l.Enabled(nil, slog.LevelWarn))
	require.False(t, l.Enabled(nil, slog.LevelInfo))

	require.NotNil(t, newLogger(0))
	require.NotNil(t, newLogger(1))
	require.NotNil(t, newLogger(2))
}
